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

// Package flops estimates the floating-point cost of evaluating a matrix
// expression.  Costs are whole numbers of scalar operations, with all
// divisions truncating; the estimates drive the rewriter's choice between
// equivalent trees, so only their relative order matters in practice.
package flops

import (
	"github.com/peter-maday/matrizer/pkg/analysis"
	"github.com/peter-maday/matrizer/pkg/expr"
	"github.com/peter-maday/matrizer/pkg/matrix"
)

// Of estimates the number of floating-point operations needed to evaluate a
// given expression under a symbol table.  Shape failures anywhere in the tree
// surface as errors.
func Of(e expr.Expr, table *analysis.SymbolTable) (uint, error) {
	// Validate the whole tree up front, so the cost walk below only ever
	// sees well-shaped subtrees.
	if _, err := analysis.DescriptorOf(e, table); err != nil {
		return 0, err
	}
	//
	return of(e, table)
}

func of(e expr.Expr, table *analysis.SymbolTable) (uint, error) {
	switch e := e.(type) {
	case *expr.Leaf, *expr.Scalar:
		return 0, nil
	case *expr.Identity:
		return e.Size * e.Size, nil
	case *expr.Unary:
		return ofUnary(e, table)
	case *expr.Binary:
		return ofBinary(e, table)
	case *expr.Ternary:
		// A ternary product costs what its left-nested reduction costs.
		return of(expr.Product(expr.Product(e.Fst, e.Snd), e.Thd), table)
	case *expr.Let:
		return ofLet(e, table)
	}
	//
	return 0, analysis.Errorf("unknown expression form %s", e)
}

func ofUnary(e *expr.Unary, table *analysis.SymbolTable) (uint, error) {
	cost, err := of(e.Arg, table)
	//
	if err != nil {
		return 0, err
	}
	//
	arg, err := analysis.DescriptorOf(e.Arg, table)
	//
	if err != nil {
		return 0, err
	}
	//
	r := arg.Rows
	//
	switch e.Op {
	case expr.MInverse:
		if arg.Has(matrix.LowerTriangular) {
			return (r*r+r)/2 + cost, nil
		}
		//
		return 3*r*r*r/4 + cost, nil
	case expr.MTranspose:
		return cost + 1, nil
	case expr.MNegate:
		return cost, nil
	case expr.MChol:
		return r*r*r/3 + cost, nil
	}
	//
	return 0, analysis.Errorf("unknown unary operator %s", e.Op)
}

func ofBinary(e *expr.Binary, table *analysis.SymbolTable) (uint, error) {
	lcost, err := of(e.Lhs, table)
	//
	if err != nil {
		return 0, err
	}
	//
	rcost, err := of(e.Rhs, table)
	//
	if err != nil {
		return 0, err
	}
	//
	lhs, err := analysis.DescriptorOf(e.Lhs, table)
	//
	if err != nil {
		return 0, err
	}
	//
	rhs, err := analysis.DescriptorOf(e.Rhs, table)
	//
	if err != nil {
		return 0, err
	}
	//
	switch e.Op {
	case expr.MProduct:
		// r1 x c1 by c1 x c2: each output entry is a dot product.
		return lhs.Rows*rhs.Cols*(2*lhs.Cols-1) + lcost + rcost, nil
	case expr.MScalarProduct:
		return rhs.Rows*rhs.Cols + lcost + rcost, nil
	case expr.MSum:
		return lhs.Rows*lhs.Cols + lcost + rcost, nil
	case expr.MLinSolve:
		// LU factorisation plus triangular solves.
		r, c := lhs.Rows, rhs.Cols
		//
		return 2*(r*r*r/3+c*r*r) + lcost + rcost, nil
	case expr.MCholSolve:
		// Forward and backward substitution against an existing factor.
		r, c := lhs.Rows, rhs.Cols
		//
		return 2*c*r*r + lcost + rcost, nil
	}
	//
	return 0, analysis.Errorf("unknown binary operator %s", e.Op)
}

func ofLet(e *expr.Let, table *analysis.SymbolTable) (uint, error) {
	rcost, err := of(e.Rhs, table)
	//
	if err != nil {
		return 0, err
	}
	//
	bound, err := analysis.DescriptorOf(e.Rhs, table)
	//
	if err != nil {
		return 0, err
	}
	//
	bcost, err := of(e.Body, table.Extend(e.Name, bound))
	//
	if err != nil {
		return 0, err
	}
	//
	return rcost + bcost + 1, nil
}
