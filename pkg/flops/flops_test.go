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
package flops

import (
	"testing"

	"github.com/peter-maday/matrizer/pkg/analysis"
	"github.com/peter-maday/matrizer/pkg/expr"
	"github.com/peter-maday/matrizer/pkg/matrix"
)

func Test_Flops_00(t *testing.T) {
	// Leaves and literals are free.
	checkFlops(t, expr.NewLeaf('B'), 0)
	checkFlops(t, expr.NewScalar(3), 0)
}

func Test_Flops_01(t *testing.T) {
	// Materialising an identity costs n^2.
	checkFlops(t, expr.NewIdentity(5), 25)
}

func Test_Flops_02(t *testing.T) {
	// 10x10 by 10x10: each of the 100 entries is a dot product of length 10.
	product := expr.Product(expr.NewLeaf('B'), expr.NewLeaf('B'))
	//
	checkFlops(t, product, 10*10*19)
}

func Test_Flops_03(t *testing.T) {
	// Matrix-vector product.
	checkFlops(t, expr.Product(expr.NewLeaf('B'), expr.NewLeaf('x')), 10*1*19)
}

func Test_Flops_04(t *testing.T) {
	checkFlops(t, expr.ScalarProduct(expr.NewScalar(2), expr.NewLeaf('B')), 100)
	checkFlops(t, expr.Sum(expr.NewLeaf('B'), expr.NewLeaf('B')), 100)
}

func Test_Flops_05(t *testing.T) {
	// LU solve: 2*(r^3/3 + c*r^2), truncating.
	solve := expr.LinSolve(expr.NewLeaf('B'), expr.NewLeaf('y'))
	//
	checkFlops(t, solve, 2*(1000/3+3*100))
}

func Test_Flops_06(t *testing.T) {
	// Cholesky solve: 2*c*r^2.
	solve := expr.CholSolve(expr.NewLeaf('L'), expr.NewLeaf('y'))
	//
	checkFlops(t, solve, 2*3*100)
}

func Test_Flops_07(t *testing.T) {
	// Inverting a triangular matrix is cheap ...
	checkFlops(t, expr.Inverse(expr.NewLeaf('L')), (100+10)/2)
	// ... a general matrix is not.
	checkFlops(t, expr.Inverse(expr.NewLeaf('B')), 3*1000/4)
}

func Test_Flops_08(t *testing.T) {
	checkFlops(t, expr.Transpose(expr.NewLeaf('B')), 1)
	checkFlops(t, expr.Negate(expr.NewLeaf('B')), 0)
	checkFlops(t, expr.Chol(expr.NewLeaf('P')), 1000/3)
}

func Test_Flops_09(t *testing.T) {
	// Ternary products cost what their left-nested reduction costs.
	var (
		b    = expr.NewLeaf('B')
		tern = expr.TernaryProduct(b, b, b)
		nest = expr.Product(expr.Product(b, b), b)
	)
	//
	ternCost, err1 := Of(tern, testTable())
	nestCost, err2 := Of(nest, testTable())
	//
	if err1 != nil || err2 != nil {
		t.Fatal(err1, err2)
	}
	//
	if ternCost != nestCost {
		t.Errorf("ternary cost %d differs from nested cost %d", ternCost, nestCost)
	}
}

func Test_Flops_10(t *testing.T) {
	// Let bindings cost their parts plus one.
	let := expr.NewLet('T', expr.Product(expr.NewLeaf('B'), expr.NewLeaf('B')),
		true, expr.Sum(expr.NewLeaf('T'), expr.NewLeaf('B')))
	//
	checkFlops(t, let, 1900+100+1)
}

func Test_Flops_11(t *testing.T) {
	// Shape failures surface as errors.
	if _, err := Of(expr.Product(expr.NewLeaf('x'), expr.NewLeaf('B')), testTable()); err == nil {
		t.Error("expected shape failure")
	}
}

// ===================================================================
// Test Helpers
// ===================================================================

func testTable() *analysis.SymbolTable {
	table := analysis.EmptySymbolTable()
	//
	table.Bind('B', matrix.New(10, 10, 0))
	table.Bind('P', matrix.New(10, 10, matrix.PropsOf(matrix.Symmetric, matrix.PosDef)))
	table.Bind('L', matrix.New(10, 10, matrix.PropsOf(matrix.LowerTriangular)))
	table.Bind('x', matrix.New(10, 1, 0))
	table.Bind('y', matrix.New(10, 3, 0))
	//
	return table
}

func checkFlops(t *testing.T, e expr.Expr, expected uint) {
	t.Helper()
	//
	actual, err := Of(e, testTable())
	//
	if err != nil {
		t.Fatalf("unexpected error for %s: %s", e, err)
	}
	//
	if actual != expected {
		t.Errorf("expected %d flops for %s, got %d", expected, e, actual)
	}
}
