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
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/peter-maday/matrizer/pkg/matrix"
)

// SymbolTable maps single-character matrix names to their resolved
// descriptors.  The table is built once (by the preamble resolver) and is
// read-only during analysis and optimisation; let bindings extend a shadowed
// copy rather than the table itself.
type SymbolTable struct {
	entries map[byte]matrix.Matrix
}

// EmptySymbolTable constructs a fresh table with no bindings.
func EmptySymbolTable() *SymbolTable {
	return &SymbolTable{make(map[byte]matrix.Matrix)}
}

// Bind associates a name with a descriptor, replacing any existing binding.
func (p *SymbolTable) Bind(name byte, mat matrix.Matrix) {
	p.entries[name] = mat
}

// Lookup returns the descriptor bound to a given name, if any.
func (p *SymbolTable) Lookup(name byte) (matrix.Matrix, bool) {
	mat, ok := p.entries[name]
	//
	return mat, ok
}

// Extend returns a shadowed copy of this table with one additional binding.
// The receiver is left untouched.
func (p *SymbolTable) Extend(name byte, mat matrix.Matrix) *SymbolTable {
	entries := maps.Clone(p.entries)
	entries[name] = mat
	//
	return &SymbolTable{entries}
}

// Size returns the number of bindings in this table.
func (p *SymbolTable) Size() uint {
	return uint(len(p.entries))
}

func (p *SymbolTable) String() string {
	var r strings.Builder
	// Sort names for a stable rendering.
	names := slices.Sorted(maps.Keys(p.entries))
	//
	for i, n := range names {
		if i != 0 {
			r.WriteString("; ")
		}
		//
		r.WriteString(fmt.Sprintf("%c: %s", n, p.entries[n]))
	}
	//
	return r.String()
}
