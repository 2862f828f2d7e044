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
package analysis

import (
	"github.com/peter-maday/matrizer/pkg/expr"
	"github.com/peter-maday/matrizer/pkg/matrix"
)

// identityName is the reserved leaf name for a contextually-sized identity
// matrix.  A leaf of this name is only reserved when no matrix of the same
// name has been declared.
const identityName byte = 'I'

// Preprocess normalises a parsed expression ahead of optimisation.  Two local
// rewrites are performed: bare identity leaves are resolved to identity
// matrices of a concrete size inferred from their context, and products with
// a 1x1 operand are reclassified as scalar products (scalar first).  A bare
// identity leaf in a position where no size can be inferred is an error, as
// is a ternary product (which the parser is contracted never to produce).
// Preprocessing is idempotent.
func Preprocess(e expr.Expr, table *SymbolTable) (expr.Expr, error) {
	out, err := preprocess(e, table)
	//
	if err != nil {
		return nil, err
	}
	//
	if bareIdentity(out, table) {
		return nil, Errorf("unable to infer size of identity matrix")
	}
	//
	return out, nil
}

func preprocess(e expr.Expr, table *SymbolTable) (expr.Expr, error) {
	switch e := e.(type) {
	case *expr.Leaf, *expr.Identity, *expr.Scalar:
		return e, nil
	case *expr.Unary:
		arg, err := preprocess(e.Arg, table)
		//
		if err != nil {
			return nil, err
		}
		//
		if bareIdentity(arg, table) {
			return nil, Errorf("unable to infer size of identity matrix")
		}
		//
		return &expr.Unary{Op: e.Op, Arg: arg}, nil
	case *expr.Binary:
		return preprocessBinary(e, table)
	case *expr.Ternary:
		return nil, Errorf("ternary product cannot appear in input")
	case *expr.Let:
		return preprocessLet(e, table)
	}
	//
	return nil, Errorf("unknown expression form %s", e)
}

func preprocessBinary(e *expr.Binary, table *SymbolTable) (expr.Expr, error) {
	lhs, err := preprocess(e.Lhs, table)
	//
	if err != nil {
		return nil, err
	}
	//
	rhs, err := preprocess(e.Rhs, table)
	//
	if err != nil {
		return nil, err
	}
	// Resolve a bare identity on either side against the other.
	lhs, rhs, err = resolveIdentity(e.Op, lhs, rhs, table)
	//
	if err != nil {
		return nil, err
	}
	// Reclassify products with a 1x1 operand as scalar products.
	if e.Op == expr.MProduct {
		return reclassifyProduct(lhs, rhs, table)
	}
	//
	return &expr.Binary{Op: e.Op, Lhs: lhs, Rhs: rhs}, nil
}

func preprocessLet(e *expr.Let, table *SymbolTable) (expr.Expr, error) {
	rhs, err := preprocess(e.Rhs, table)
	//
	if err != nil {
		return nil, err
	}
	//
	if bareIdentity(rhs, table) {
		return nil, Errorf("unable to infer size of identity matrix")
	}
	//
	bound, err := DescriptorOf(rhs, table)
	//
	if err != nil {
		return nil, err
	}
	//
	extended := table.Extend(e.Name, bound)
	//
	body, err := preprocess(e.Body, extended)
	//
	if err != nil {
		return nil, err
	}
	//
	if bareIdentity(body, extended) {
		return nil, Errorf("unable to infer size of identity matrix")
	}
	//
	return &expr.Let{Name: e.Name, Rhs: rhs, Temp: e.Temp, Body: body}, nil
}

// resolveIdentity replaces a bare identity leaf on one side of a binary
// operator with an identity matrix whose size is inferred from the operator
// and the opposite operand.
func resolveIdentity(op expr.BinaryOp, lhs expr.Expr, rhs expr.Expr,
	table *SymbolTable) (expr.Expr, expr.Expr, error) {
	var (
		left  = bareIdentity(lhs, table)
		right = bareIdentity(rhs, table)
	)
	//
	if !left && !right {
		return lhs, rhs, nil
	}
	//
	if left && right {
		return nil, nil, Errorf("unable to infer size of identity matrix")
	}
	//
	if left {
		other, err := DescriptorOf(rhs, table)
		//
		if err != nil {
			return nil, nil, err
		}
		//
		n, ok := identitySize(op, other, false)
		//
		if !ok {
			return nil, nil, Errorf("identity matrix not supported under %s", op)
		}
		//
		return expr.NewIdentity(n), rhs, nil
	}
	//
	other, err := DescriptorOf(lhs, table)
	//
	if err != nil {
		return nil, nil, err
	}
	//
	n, ok := identitySize(op, other, true)
	//
	if !ok {
		return nil, nil, Errorf("identity matrix not supported under %s", op)
	}
	//
	return lhs, expr.NewIdentity(n), nil
}

// identitySize determines the size of an identity operand from the opposing
// operand's descriptor.  The right flag indicates the identity sits on the
// right of the operator (i.e. other describes the left operand).
func identitySize(op expr.BinaryOp, other matrix.Matrix, right bool) (uint, bool) {
	switch op {
	case expr.MProduct:
		if right {
			return other.Cols, true
		}
		//
		return other.Rows, true
	case expr.MSum:
		return other.Rows, true
	case expr.MLinSolve, expr.MCholSolve:
		if right {
			return other.Rows, true
		}
		//
		return other.Cols, true
	}
	//
	return 0, false
}

// reclassifyProduct rebuilds a product node, downgrading it to a scalar
// product whenever either operand is 1x1.  The scalar always ends up on the
// left.
func reclassifyProduct(lhs expr.Expr, rhs expr.Expr, table *SymbolTable) (expr.Expr, error) {
	ld, err := DescriptorOf(lhs, table)
	//
	if err != nil {
		return nil, err
	}
	//
	rd, err := DescriptorOf(rhs, table)
	//
	if err != nil {
		return nil, err
	}
	//
	switch {
	case ld.IsScalar():
		return expr.ScalarProduct(lhs, rhs), nil
	case rd.IsScalar():
		return expr.ScalarProduct(rhs, lhs), nil
	default:
		return expr.Product(lhs, rhs), nil
	}
}

// bareIdentity checks whether a given expression is an identity leaf whose
// size is still unknown.  A declared matrix named "I" shadows the built-in
// identity.
func bareIdentity(e expr.Expr, table *SymbolTable) bool {
	if leaf, ok := e.(*expr.Leaf); ok && leaf.Name == identityName {
		_, declared := table.Lookup(identityName)
		//
		return !declared
	}
	//
	return false
}
