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
package emit

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/peter-maday/matrizer/pkg/expr"
)

func Test_Numpy_00(t *testing.T) {
	var (
		a = expr.NewLeaf('A')
		b = expr.NewLeaf('B')
	)
	//
	assert.Equal(t, "A", Numpy(a))
	assert.Equal(t, "np.dot(A,B)", Numpy(expr.Product(a, b)))
	assert.Equal(t, "A + B", Numpy(expr.Sum(a, b)))
	assert.Equal(t, "np.linalg.inv(A)", Numpy(expr.Inverse(a)))
	assert.Equal(t, "A.T", Numpy(expr.Transpose(a)))
	assert.Equal(t, "-A", Numpy(expr.Negate(a)))
}

func Test_Numpy_01(t *testing.T) {
	var (
		a = expr.NewLeaf('A')
		b = expr.NewLeaf('B')
	)
	//
	assert.Equal(t, "np.linalg.cholesky(A)", Numpy(expr.Chol(a)))
	assert.Equal(t, "np.linalg.solve(A,B)", Numpy(expr.LinSolve(a, b)))
	assert.Equal(t, "scipy.linalg.cho_solve((A,True),B)", Numpy(expr.CholSolve(a, b)))
	assert.Equal(t, "np.eye(10)", Numpy(expr.NewIdentity(10)))
	assert.Equal(t, "2.5", Numpy(expr.NewScalar(2.5)))
}

func Test_Numpy_02(t *testing.T) {
	// Nested products emit nested calls.
	var (
		a = expr.NewLeaf('A')
		b = expr.NewLeaf('B')
		c = expr.NewLeaf('C')
	)
	//
	assert.Equal(t, "np.dot(np.dot(A,B),C)",
		Numpy(expr.Product(expr.Product(a, b), c)))
	assert.Equal(t, "np.dot(np.dot(A,B),C)",
		Numpy(expr.TernaryProduct(a, b, c)))
}

func Test_Numpy_03(t *testing.T) {
	// Infix operands are parenthesised where precedence demands it.
	var (
		a = expr.NewLeaf('A')
		b = expr.NewLeaf('B')
		s = expr.NewScalar(2)
	)
	//
	assert.Equal(t, "2 * (A + B)", Numpy(expr.ScalarProduct(s, expr.Sum(a, b))))
	assert.Equal(t, "-(A + B)", Numpy(expr.Negate(expr.Sum(a, b))))
	assert.Equal(t, "(A + B).T", Numpy(expr.Transpose(expr.Sum(a, b))))
	assert.Equal(t, "np.dot(A,B).T", Numpy(expr.Transpose(expr.Product(a, b))))
}

func Test_Numpy_04(t *testing.T) {
	// Let bindings become assignments ahead of their body.
	var (
		a   = expr.NewLeaf('A')
		b   = expr.NewLeaf('B')
		let = expr.NewLet('T', expr.Product(a, b), true, expr.Transpose(expr.NewLeaf('T')))
	)
	//
	assert.Equal(t, "T = np.dot(A,B)\nT.T", Numpy(let))
}
