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
package expr

import "fmt"

// UnaryOp identifies a unary matrix operator.
type UnaryOp uint8

const (
	// MInverse is matrix inversion.
	MInverse UnaryOp = iota
	// MTranspose is matrix transposition.
	MTranspose
	// MNegate is matrix negation.
	MNegate
	// MChol is the (lower) Cholesky factor of a positive-definite matrix.
	MChol
)

func (op UnaryOp) String() string {
	switch op {
	case MInverse:
		return "Inverse"
	case MTranspose:
		return "Transpose"
	case MNegate:
		return "Negate"
	case MChol:
		return "Chol"
	}
	//
	return "???"
}

// Unary applies a unary operator to a single operand.
type Unary struct {
	Op  UnaryOp
	Arg Expr
}

// Inverse constructs the inverse of a given expression.
func Inverse(arg Expr) *Unary {
	return &Unary{MInverse, arg}
}

// Transpose constructs the transpose of a given expression.
func Transpose(arg Expr) *Unary {
	return &Unary{MTranspose, arg}
}

// Negate constructs the negation of a given expression.
func Negate(arg Expr) *Unary {
	return &Unary{MNegate, arg}
}

// Chol constructs the Cholesky factorisation of a given expression.
func Chol(arg Expr) *Unary {
	return &Unary{MChol, arg}
}

// Equals implementation for the Expr interface.
func (p *Unary) Equals(other Expr) bool {
	if o, ok := other.(*Unary); ok {
		return p.Op == o.Op && p.Arg.Equals(o.Arg)
	}
	//
	return false
}

func (p *Unary) String() string {
	switch p.Op {
	case MInverse:
		return fmt.Sprintf("%s^-1", atomic(p.Arg))
	case MTranspose:
		return fmt.Sprintf("%s'", atomic(p.Arg))
	case MNegate:
		return fmt.Sprintf("-%s", atomic(p.Arg))
	case MChol:
		return fmt.Sprintf("chol(%s)", p.Arg)
	}
	//
	return "???"
}

func (p *Unary) hash(h uint64) uint64 {
	h = hashByte(hashByte(h, tagUnary), byte(p.Op))
	//
	return p.Arg.hash(h)
}

// atomic renders a given expression, wrapping it in parentheses unless it is
// a leaf of some kind or its rendering is already parenthesised.
func atomic(e Expr) string {
	switch e := e.(type) {
	case *Leaf, *Identity, *Scalar, *Ternary:
		return e.String()
	case *Binary:
		if e.Op == MProduct || e.Op == MScalarProduct || e.Op == MSum {
			return e.String()
		}
	}
	//
	return fmt.Sprintf("(%s)", e)
}
