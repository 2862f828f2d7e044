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
	"reflect"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/peter-maday/matrizer/pkg/expr"
	"github.com/peter-maday/matrizer/pkg/matrix"
)

func Test_Descriptor_00(t *testing.T) {
	checkDescriptor(t, expr.NewLeaf('A'), matrix.New(100, 50, 0))
}

func Test_Descriptor_01(t *testing.T) {
	_, err := DescriptorOf(expr.NewLeaf('Z'), testTable())
	//
	checkErrorType(t, err, &UnboundName{})
}

func Test_Descriptor_02(t *testing.T) {
	checkDescriptor(t, expr.NewIdentity(7),
		matrix.New(7, 7, matrix.PropsOf(matrix.Symmetric, matrix.PosDef, matrix.Diagonal, matrix.LowerTriangular)))
}

func Test_Descriptor_03(t *testing.T) {
	checkDescriptor(t, expr.NewScalar(2),
		matrix.New(1, 1, matrix.PropsOf(matrix.Symmetric, matrix.Diagonal, matrix.LowerTriangular)))
}

func Test_Descriptor_04(t *testing.T) {
	// A'A is marked positive definite (in the symmetric sense).
	a := expr.NewLeaf('A')
	//
	checkDescriptor(t, expr.Product(expr.Transpose(a), a),
		matrix.New(50, 50, matrix.PropsOf(matrix.Symmetric, matrix.PosDef)))
}

func Test_Descriptor_05(t *testing.T) {
	// ... and the other way around.
	a := expr.NewLeaf('A')
	//
	checkDescriptor(t, expr.Product(a, expr.Transpose(a)),
		matrix.New(100, 100, matrix.PropsOf(matrix.Symmetric, matrix.PosDef)))
}

func Test_Descriptor_06(t *testing.T) {
	// Incompatible product.
	_, err := DescriptorOf(expr.Product(expr.NewLeaf('A'), expr.NewLeaf('A')), testTable())
	//
	checkErrorType(t, err, &SizeMismatch{})
}

func Test_Descriptor_07(t *testing.T) {
	// Diagonality and triangularity survive products.
	var (
		d = expr.NewLeaf('D')
		l = expr.NewLeaf('L')
	)
	//
	checkDescriptor(t, expr.Product(d, d), matrix.New(10, 10, matrix.PropsOf(matrix.Diagonal)))
	checkDescriptor(t, expr.Product(l, l), matrix.New(10, 10, matrix.PropsOf(matrix.LowerTriangular)))
	checkDescriptor(t, expr.Product(d, l), matrix.New(10, 10, 0))
}

func Test_Descriptor_08(t *testing.T) {
	// Sums intersect the operand properties.
	var (
		p = expr.NewLeaf('P')
		s = expr.NewLeaf('S')
	)
	//
	checkDescriptor(t, expr.Sum(p, s), matrix.New(10, 10, matrix.PropsOf(matrix.Symmetric)))
	checkDescriptor(t, expr.Sum(p, p),
		matrix.New(10, 10, matrix.PropsOf(matrix.Symmetric, matrix.PosDef)))
}

func Test_Descriptor_09(t *testing.T) {
	_, err := DescriptorOf(expr.Sum(expr.NewLeaf('A'), expr.NewLeaf('S')), testTable())
	//
	checkErrorType(t, err, &SizeMismatch{})
}

func Test_Descriptor_10(t *testing.T) {
	// Scalar products keep the closed properties of the matrix operand.
	var (
		a = expr.NewScalar(3)
		p = expr.NewLeaf('P')
	)
	//
	checkDescriptor(t, expr.ScalarProduct(a, p),
		matrix.New(10, 10, matrix.PropsOf(matrix.Symmetric)))
}

func Test_Descriptor_11(t *testing.T) {
	// Scalar product requires a 1x1 left operand.
	_, err := DescriptorOf(expr.ScalarProduct(expr.NewLeaf('S'), expr.NewLeaf('S')), testTable())
	//
	checkErrorType(t, err, &SizeMismatch{})
}

func Test_Descriptor_12(t *testing.T) {
	checkDescriptor(t, expr.Transpose(expr.NewLeaf('A')), matrix.New(50, 100, 0))
	// Transposition drops triangularity.
	checkDescriptor(t, expr.Transpose(expr.NewLeaf('L')), matrix.New(10, 10, 0))
	checkDescriptor(t, expr.Transpose(expr.NewLeaf('P')),
		matrix.New(10, 10, matrix.PropsOf(matrix.Symmetric, matrix.PosDef)))
}

func Test_Descriptor_13(t *testing.T) {
	// Inversion preserves every structural property, but needs squareness.
	checkDescriptor(t, expr.Inverse(expr.NewLeaf('P')),
		matrix.New(10, 10, matrix.PropsOf(matrix.Symmetric, matrix.PosDef)))
	//
	_, err := DescriptorOf(expr.Inverse(expr.NewLeaf('A')), testTable())
	//
	checkErrorType(t, err, &InvalidOp{})
}

func Test_Descriptor_14(t *testing.T) {
	// Negation keeps symmetry and diagonality only.
	checkDescriptor(t, expr.Negate(expr.NewLeaf('P')),
		matrix.New(10, 10, matrix.PropsOf(matrix.Symmetric)))
	checkDescriptor(t, expr.Negate(expr.NewLeaf('L')), matrix.New(10, 10, 0))
}

func Test_Descriptor_15(t *testing.T) {
	// Cholesky factorisation requires positive definiteness.
	checkDescriptor(t, expr.Chol(expr.NewLeaf('P')),
		matrix.New(10, 10, matrix.PropsOf(matrix.LowerTriangular)))
	//
	_, err := DescriptorOf(expr.Chol(expr.NewLeaf('S')), testTable())
	//
	checkErrorType(t, err, &WrongUnaryProperties{})
}

func Test_Descriptor_16(t *testing.T) {
	// Solving against a general square matrix.
	checkDescriptor(t, expr.LinSolve(expr.NewLeaf('S'), expr.NewLeaf('x')), matrix.New(10, 1, 0))
	//
	_, err := DescriptorOf(expr.LinSolve(expr.NewLeaf('A'), expr.NewLeaf('x')), testTable())
	//
	checkErrorType(t, err, &SizeMismatch{})
}

func Test_Descriptor_17(t *testing.T) {
	// Solving against a Cholesky factor needs triangularity.
	checkDescriptor(t, expr.CholSolve(expr.NewLeaf('L'), expr.NewLeaf('x')), matrix.New(10, 1, 0))
	//
	_, err := DescriptorOf(expr.CholSolve(expr.NewLeaf('S'), expr.NewLeaf('x')), testTable())
	//
	checkErrorType(t, err, &WrongProperties{})
}

func Test_Descriptor_18(t *testing.T) {
	// Ternary products check sizes pairwise.
	var (
		a = expr.NewLeaf('A')
		s = expr.NewLeaf('S')
	)
	//
	_, err := DescriptorOf(expr.TernaryProduct(a, s, s), testTable())
	//
	checkErrorType(t, err, &TernarySizeMismatch{})
}

func Test_Descriptor_19(t *testing.T) {
	// a' B a transfers positive definiteness from the middle term.
	var (
		a = expr.NewLeaf('B')
		p = expr.NewLeaf('P')
	)
	//
	checkDescriptor(t, expr.TernaryProduct(expr.Transpose(a), p, a),
		matrix.New(10, 10, matrix.PropsOf(matrix.Symmetric, matrix.PosDef)))
	checkDescriptor(t, expr.TernaryProduct(a, p, expr.Transpose(a)),
		matrix.New(10, 10, matrix.PropsOf(matrix.Symmetric, matrix.PosDef)))
}

func Test_Descriptor_20(t *testing.T) {
	// ... likewise for a^-1 B a, and for P B P with a repeated posdef outer.
	var (
		s = expr.NewLeaf('S')
		p = expr.NewLeaf('P')
	)
	//
	checkDescriptor(t, expr.TernaryProduct(expr.Inverse(s), p, s),
		matrix.New(10, 10, matrix.PropsOf(matrix.Symmetric, matrix.PosDef)))
	checkDescriptor(t, expr.TernaryProduct(p, p, p),
		matrix.New(10, 10, matrix.PropsOf(matrix.Symmetric, matrix.PosDef)))
}

func Test_Descriptor_21(t *testing.T) {
	// Let bindings extend the table within their body only.
	var (
		a    = expr.NewLeaf('A')
		gram = expr.Product(expr.Transpose(a), a)
		let  = expr.NewLet('G', gram, false, expr.Inverse(expr.NewLeaf('G')))
	)
	//
	checkDescriptor(t, let, matrix.New(50, 50, matrix.PropsOf(matrix.Symmetric, matrix.PosDef)))
}

func Test_Descriptor_22(t *testing.T) {
	// Squareness invariant: any descriptor marked symmetric or diagonal is
	// square.
	exprs := []expr.Expr{
		expr.Product(expr.Transpose(expr.NewLeaf('A')), expr.NewLeaf('A')),
		expr.Sum(expr.NewLeaf('P'), expr.NewLeaf('D')),
		expr.ScalarProduct(expr.NewScalar(2), expr.NewLeaf('D')),
	}
	//
	for _, e := range exprs {
		mat, err := DescriptorOf(e, testTable())
		//
		if err != nil {
			t.Fatal(err)
		}
		//
		if (mat.Has(matrix.Symmetric) || mat.Has(matrix.Diagonal)) && !mat.Square() {
			t.Errorf("non-square descriptor %s for %s", mat, e)
		}
	}
}

// ===================================================================
// Test Helpers
// ===================================================================

// testTable provides the fixture matrices shared by the tests above.
func testTable() *SymbolTable {
	table := EmptySymbolTable()
	//
	table.Bind('A', matrix.New(100, 50, 0))
	table.Bind('B', matrix.New(10, 10, 0))
	table.Bind('S', matrix.New(10, 10, matrix.PropsOf(matrix.Symmetric)))
	table.Bind('P', matrix.New(10, 10, matrix.PropsOf(matrix.Symmetric, matrix.PosDef)))
	table.Bind('D', matrix.New(10, 10, matrix.PropsOf(matrix.Symmetric, matrix.Diagonal)))
	table.Bind('L', matrix.New(10, 10, matrix.PropsOf(matrix.LowerTriangular)))
	table.Bind('x', matrix.New(10, 1, 0))
	//
	return table
}

func checkDescriptor(t *testing.T, e expr.Expr, expected matrix.Matrix) {
	t.Helper()
	//
	actual, err := DescriptorOf(e, testTable())
	//
	if err != nil {
		t.Fatalf("unexpected error for %s: %s", e, err)
	}
	//
	if diff := cmp.Diff(expected, actual); diff != "" {
		t.Errorf("descriptor mismatch for %s (-want +got):\n%s", e, diff)
	}
}

func checkErrorType(t *testing.T, err error, expected error) {
	t.Helper()
	//
	if err == nil {
		t.Fatal("expected an error")
	}
	//
	if reflect.TypeOf(err) != reflect.TypeOf(expected) {
		t.Errorf("expected %T, got %T (%s)", expected, err, err)
	}
}
