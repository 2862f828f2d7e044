// Copyright Consensys Software Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with
// the License. You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0

// Package analysis determines the shape and structural properties of matrix
// expressions, resolves program preambles into symbol tables, and normalises
// parsed expressions ahead of optimisation.  All operations are pure: the
// first failure on any path aborts the enclosing computation and is surfaced
// to the caller unchanged.
package analysis

import (
	"github.com/peter-maday/matrizer/pkg/expr"
	"github.com/peter-maday/matrizer/pkg/matrix"
)

// DescriptorOf computes the shape and structural properties of a given
// expression under a symbol table, by structural recursion.  Size checks and
// property prerequisites are enforced at every operator; the first failure
// aborts.
func DescriptorOf(e expr.Expr, table *SymbolTable) (matrix.Matrix, error) {
	switch e := e.(type) {
	case *expr.Leaf:
		if mat, ok := table.Lookup(e.Name); ok {
			return mat, nil
		}
		//
		return matrix.Matrix{}, &UnboundName{e.Name}
	case *expr.Identity:
		return matrix.Identity(e.Size), nil
	case *expr.Scalar:
		return matrix.Scalar(), nil
	case *expr.Unary:
		return unaryDescriptor(e, table)
	case *expr.Binary:
		return binaryDescriptor(e, table)
	case *expr.Ternary:
		return ternaryDescriptor(e, table)
	case *expr.Let:
		rhs, err := DescriptorOf(e.Rhs, table)
		//
		if err != nil {
			return matrix.Matrix{}, err
		}
		//
		return DescriptorOf(e.Body, table.Extend(e.Name, rhs))
	}
	// Unreachable for a well-formed tree.
	return matrix.Matrix{}, Errorf("unknown expression form %s", e)
}

func unaryDescriptor(e *expr.Unary, table *SymbolTable) (matrix.Matrix, error) {
	arg, err := DescriptorOf(e.Arg, table)
	//
	if err != nil {
		return matrix.Matrix{}, err
	}
	//
	switch e.Op {
	case expr.MInverse:
		if !arg.Square() {
			return matrix.Matrix{}, &InvalidOp{e.Op.String(), arg}
		}
		//
		props := arg.Props.Intersect(matrix.PropsOf(
			matrix.Diagonal, matrix.Symmetric, matrix.PosDef, matrix.LowerTriangular))
		//
		return matrix.New(arg.Rows, arg.Cols, props), nil
	case expr.MTranspose:
		props := arg.Props.Intersect(matrix.PropsOf(
			matrix.Diagonal, matrix.Symmetric, matrix.PosDef))
		//
		return matrix.New(arg.Cols, arg.Rows, props), nil
	case expr.MNegate:
		if !arg.Square() {
			return matrix.Matrix{}, &InvalidOp{e.Op.String(), arg}
		}
		//
		props := arg.Props.Intersect(matrix.PropsOf(matrix.Diagonal, matrix.Symmetric))
		//
		return matrix.New(arg.Rows, arg.Cols, props), nil
	case expr.MChol:
		if !arg.Square() {
			return matrix.Matrix{}, &InvalidOp{e.Op.String(), arg}
		}
		//
		if !arg.Has(matrix.PosDef) {
			return matrix.Matrix{}, &WrongUnaryProperties{e.Op.String(), arg.Props, e.Arg}
		}
		// The Cholesky factor is lower triangular, and diagonal whenever its
		// argument was.
		props := arg.Props.Intersect(matrix.PropsOf(matrix.Diagonal)).With(matrix.LowerTriangular)
		//
		return matrix.New(arg.Rows, arg.Cols, props), nil
	}
	//
	return matrix.Matrix{}, Errorf("unknown unary operator %s", e.Op)
}

func binaryDescriptor(e *expr.Binary, table *SymbolTable) (matrix.Matrix, error) {
	lhs, err := DescriptorOf(e.Lhs, table)
	//
	if err != nil {
		return matrix.Matrix{}, err
	}
	//
	rhs, err := DescriptorOf(e.Rhs, table)
	//
	if err != nil {
		return matrix.Matrix{}, err
	}
	//
	switch e.Op {
	case expr.MProduct:
		if lhs.Cols != rhs.Rows {
			return matrix.Matrix{}, sizeMismatch(e, lhs, rhs)
		}
		//
		return matrix.New(lhs.Rows, rhs.Cols, productProps(e.Lhs, e.Rhs, lhs.Props, rhs.Props)), nil
	case expr.MScalarProduct:
		if !lhs.IsScalar() {
			return matrix.Matrix{}, sizeMismatch(e, lhs, rhs)
		}
		//
		props := rhs.Props.Intersect(matrix.PropsOf(
			matrix.Symmetric, matrix.Diagonal, matrix.LowerTriangular))
		//
		return matrix.New(rhs.Rows, rhs.Cols, props), nil
	case expr.MSum:
		if lhs.Rows != rhs.Rows || lhs.Cols != rhs.Cols {
			return matrix.Matrix{}, sizeMismatch(e, lhs, rhs)
		}
		//
		return matrix.New(lhs.Rows, lhs.Cols, lhs.Props.Intersect(rhs.Props)), nil
	case expr.MLinSolve:
		if !lhs.Square() || lhs.Rows != rhs.Rows {
			return matrix.Matrix{}, sizeMismatch(e, lhs, rhs)
		}
		//
		return matrix.New(lhs.Cols, rhs.Cols, 0), nil
	case expr.MCholSolve:
		if !lhs.Square() || lhs.Rows != rhs.Rows {
			return matrix.Matrix{}, sizeMismatch(e, lhs, rhs)
		}
		//
		if !lhs.Has(matrix.LowerTriangular) {
			return matrix.Matrix{}, &WrongProperties{e.Op.String(), lhs.Props, rhs.Props, e.Lhs, e.Rhs}
		}
		//
		return matrix.New(lhs.Cols, rhs.Cols, 0), nil
	}
	//
	return matrix.Matrix{}, Errorf("unknown binary operator %s", e.Op)
}

func ternaryDescriptor(e *expr.Ternary, table *SymbolTable) (matrix.Matrix, error) {
	fst, err := DescriptorOf(e.Fst, table)
	//
	if err != nil {
		return matrix.Matrix{}, err
	}
	//
	snd, err := DescriptorOf(e.Snd, table)
	//
	if err != nil {
		return matrix.Matrix{}, err
	}
	//
	thd, err := DescriptorOf(e.Thd, table)
	//
	if err != nil {
		return matrix.Matrix{}, err
	}
	// Sizes check pairwise as two products.
	if fst.Cols != snd.Rows || snd.Cols != thd.Rows {
		return matrix.Matrix{}, &TernarySizeMismatch{e.Op.String(), fst, snd, thd}
	}
	// Properties follow the sequential reduction (a b) c ...
	props := productProps(e.Fst, e.Snd, fst.Props, snd.Props)
	props = productProps(expr.Product(e.Fst, e.Snd), e.Thd, props, thd.Props)
	// ... plus the dedicated sandwich patterns a' B a and a^-1 B a.
	if snd.Has(matrix.PosDef) && sandwiched(e.Fst, e.Thd) {
		props = props.With(matrix.PosDef).With(matrix.Symmetric)
	}
	//
	if fst.Has(matrix.PosDef) && snd.Has(matrix.PosDef) && e.Fst.Equals(e.Thd) {
		props = props.With(matrix.PosDef).With(matrix.Symmetric)
	}
	//
	return matrix.New(fst.Rows, thd.Cols, props), nil
}

// productProps determines the structural properties of the product of two
// terms.  Diagonality and triangularity are closed under multiplication;
// positive definiteness is inferred syntactically from the T'T pattern.
// Observe that this deliberately marks T'T positive definite even though it
// is only guaranteed semi-definite.
func productProps(lt expr.Expr, rt expr.Expr, lp matrix.Props, rp matrix.Props) matrix.Props {
	props := lp.Intersect(rp).Intersect(matrix.PropsOf(matrix.Diagonal, matrix.LowerTriangular))
	//
	if lt.Equals(expr.Transpose(rt)) || rt.Equals(expr.Transpose(lt)) {
		props = props.With(matrix.PosDef).With(matrix.Symmetric)
	}
	//
	return props
}

// sandwiched checks whether the outer terms of a ternary product transfer
// positive definiteness from the middle term: a = c' (either way around), or
// a = c^-1 (either way around).
func sandwiched(fst expr.Expr, thd expr.Expr) bool {
	return fst.Equals(expr.Transpose(thd)) || thd.Equals(expr.Transpose(fst)) ||
		fst.Equals(expr.Inverse(thd)) || thd.Equals(expr.Inverse(fst))
}

func sizeMismatch(e *expr.Binary, lhs matrix.Matrix, rhs matrix.Matrix) error {
	return &SizeMismatch{e.Op.String(), lhs, rhs, e.Lhs, e.Rhs}
}
