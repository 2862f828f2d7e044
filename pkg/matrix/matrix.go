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
package matrix

import "fmt"

// Matrix describes the shape of a matrix-valued expression, along with any
// structural properties known to hold for it.  Descriptors are plain values
// and are never mutated once constructed.
type Matrix struct {
	// Number of rows.
	Rows uint
	// Number of columns.
	Cols uint
	// Structural properties (symmetry, etc).
	Props Props
}

// New constructs a matrix descriptor with given dimensions and properties.
func New(rows uint, cols uint, props Props) Matrix {
	return Matrix{rows, cols, props}
}

// Identity returns the descriptor of the n x n identity matrix, which holds
// every structural property.
func Identity(n uint) Matrix {
	return Matrix{n, n, PropsOf(Symmetric, PosDef, Diagonal, LowerTriangular)}
}

// Scalar returns the descriptor of a 1 x 1 literal value.  Observe that a
// scalar is trivially symmetric, diagonal and lower triangular, but is not
// assumed positive definite.
func Scalar() Matrix {
	return Matrix{1, 1, PropsOf(Symmetric, Diagonal, LowerTriangular)}
}

// Square checks whether this matrix has as many rows as columns.
func (p Matrix) Square() bool {
	return p.Rows == p.Cols
}

// IsScalar checks whether this matrix is 1 x 1.
func (p Matrix) IsScalar() bool {
	return p.Rows == 1 && p.Cols == 1
}

// Has checks whether a given structural property is known to hold.
func (p Matrix) Has(prop Prop) bool {
	return p.Props.Contains(prop)
}

func (p Matrix) String() string {
	if p.Props == 0 {
		return fmt.Sprintf("%dx%d", p.Rows, p.Cols)
	}
	//
	return fmt.Sprintf("%dx%d %s", p.Rows, p.Cols, p.Props)
}
