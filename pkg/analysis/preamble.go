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
	"strconv"

	"github.com/peter-maday/matrizer/pkg/matrix"
)

// Line is a single line of a program preamble: a matrix declaration, a
// dimension symbol definition, or nothing at all (blanks and comments).
type Line interface {
	isLine()
}

// BlankLine is a preamble line carrying no information.
type BlankLine struct{}

func (p BlankLine) isLine() {}

// SymbolLine defines a dimension symbol, binding a single letter to a
// concrete size.
type SymbolLine struct {
	Name  byte
	Value uint
}

func (p SymbolLine) isLine() {}

// MatrixSym is an unresolved matrix declaration, whose dimensions are raw
// tokens (decimal literals or single-letter symbols) yet to be resolved.
type MatrixSym struct {
	Dim1  string
	Dim2  string
	Props matrix.Props
}

// MatrixLine declares a matrix under a given (single character) name.
type MatrixLine struct {
	Name byte
	Sym  MatrixSym
}

func (p MatrixLine) isLine() {}

// ResolvePreamble turns an ordered list of preamble lines into a symbol
// table, resolving symbolic dimensions against the collected symbol
// definitions.  Duplicate matrix declarations resolve last-writer-wins.
func ResolvePreamble(lines []Line) (*SymbolTable, error) {
	var (
		table   = EmptySymbolTable()
		symbols = make(map[byte]uint)
	)
	// First, collect all dimension symbols.
	for _, line := range lines {
		if sym, ok := line.(SymbolLine); ok {
			symbols[sym.Name] = sym.Value
		}
	}
	// Second, resolve all matrix declarations.
	for _, line := range lines {
		decl, ok := line.(MatrixLine)
		//
		if !ok {
			continue
		}
		//
		rows, err := resolveDimension(decl.Sym.Dim1, symbols)
		if err != nil {
			return nil, err
		}
		//
		cols, err := resolveDimension(decl.Sym.Dim2, symbols)
		if err != nil {
			return nil, err
		}
		//
		props, err := normaliseProps(decl, rows, cols)
		if err != nil {
			return nil, err
		}
		//
		table.Bind(decl.Name, matrix.New(rows, cols, props))
	}
	//
	return table, nil
}

// resolveDimension turns a raw dimension token into a concrete size: either
// the token parses fully as a non-negative decimal, or it is a single letter
// bound by a symbol definition.
func resolveDimension(token string, symbols map[byte]uint) (uint, error) {
	if n, err := strconv.ParseUint(token, 10, 64); err == nil {
		return uint(n), nil
	}
	//
	if len(token) == 1 && isLetter(token[0]) {
		if n, ok := symbols[token[0]]; ok {
			return n, nil
		}
		//
		return 0, &UnboundName{token[0]}
	}
	//
	return 0, &BadDimension{token}
}

// normaliseProps checks the declared properties make sense for the resolved
// dimensions, and closes them under implication (positive definiteness is
// treated in the symmetric sense).
func normaliseProps(decl MatrixLine, rows uint, cols uint) (matrix.Props, error) {
	props := decl.Sym.Props
	//
	if props.Contains(matrix.PosDef) {
		props = props.With(matrix.Symmetric)
	}
	// Symmetry (and diagonality) only make sense for square matrices.
	square := props.Contains(matrix.Symmetric) || props.Contains(matrix.Diagonal)
	//
	if square && rows != cols {
		return 0, Errorf("matrix '%c' declared %s but is %dx%d", decl.Name, props, rows, cols)
	}
	//
	return props, nil
}

func isLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}
