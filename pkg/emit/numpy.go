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

// Package emit renders expression trees in the syntax of a target numerical
// library.
package emit

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/peter-maday/matrizer/pkg/expr"
)

// Numpy renders a given expression as numpy code.  Let bindings become
// assignment statements preceding the code for their body.
func Numpy(e expr.Expr) string {
	switch e := e.(type) {
	case *expr.Leaf:
		return string(rune(e.Name))
	case *expr.Identity:
		return fmt.Sprintf("np.eye(%d)", e.Size)
	case *expr.Scalar:
		return strconv.FormatFloat(e.Value, 'g', -1, 64)
	case *expr.Unary:
		return numpyUnary(e)
	case *expr.Binary:
		return numpyBinary(e)
	case *expr.Ternary:
		return fmt.Sprintf("np.dot(np.dot(%s,%s),%s)",
			Numpy(e.Fst), Numpy(e.Snd), Numpy(e.Thd))
	case *expr.Let:
		return fmt.Sprintf("%c = %s\n%s", e.Name, Numpy(e.Rhs), Numpy(e.Body))
	}
	//
	return "???"
}

func numpyUnary(e *expr.Unary) string {
	switch e.Op {
	case expr.MInverse:
		return fmt.Sprintf("np.linalg.inv(%s)", Numpy(e.Arg))
	case expr.MTranspose:
		return fmt.Sprintf("%s.T", guarded(e.Arg))
	case expr.MNegate:
		return fmt.Sprintf("-%s", guarded(e.Arg))
	case expr.MChol:
		return fmt.Sprintf("np.linalg.cholesky(%s)", Numpy(e.Arg))
	}
	//
	return "???"
}

func numpyBinary(e *expr.Binary) string {
	switch e.Op {
	case expr.MProduct:
		return fmt.Sprintf("np.dot(%s,%s)", Numpy(e.Lhs), Numpy(e.Rhs))
	case expr.MScalarProduct:
		return fmt.Sprintf("%s * %s", guarded(e.Lhs), guarded(e.Rhs))
	case expr.MSum:
		return fmt.Sprintf("%s + %s", Numpy(e.Lhs), Numpy(e.Rhs))
	case expr.MLinSolve:
		return fmt.Sprintf("np.linalg.solve(%s,%s)", Numpy(e.Lhs), Numpy(e.Rhs))
	case expr.MCholSolve:
		return fmt.Sprintf("scipy.linalg.cho_solve((%s,True),%s)", Numpy(e.Lhs), Numpy(e.Rhs))
	}
	//
	return "???"
}

// guarded renders an operand for an infix or postfix context, parenthesising
// those forms which would otherwise bind too loosely.
func guarded(e expr.Expr) string {
	text := Numpy(e)
	//
	if infix(e) || strings.HasPrefix(text, "-") {
		return fmt.Sprintf("(%s)", text)
	}
	//
	return text
}

// infix identifies expressions rendered with an infix operator.
func infix(e expr.Expr) bool {
	if b, ok := e.(*expr.Binary); ok {
		return b.Op == expr.MSum || b.Op == expr.MScalarProduct
	}
	//
	return false
}
