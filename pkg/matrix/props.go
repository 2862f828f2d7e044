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

import "strings"

// Prop identifies a single structural property of a matrix.
type Prop uint8

const (
	// Symmetric indicates the matrix equals its own transpose.
	Symmetric Prop = iota
	// PosDef indicates the matrix is positive definite (in the symmetric
	// sense, hence PosDef implies Symmetric).
	PosDef
	// Diagonal indicates all off-diagonal entries are zero.
	Diagonal
	// LowerTriangular indicates all entries above the diagonal are zero.
	LowerTriangular
	// nprops gives the size of the property universe.
	nprops
)

func (p Prop) String() string {
	switch p {
	case Symmetric:
		return "symmetric"
	case PosDef:
		return "posdef"
	case Diagonal:
		return "diagonal"
	case LowerTriangular:
		return "lowertriangular"
	}
	//
	return "???"
}

// Props is a bitset over the (small) universe of structural properties.
// Property sets are values: operations return new sets rather than mutating
// in place.
type Props uint8

// PropsOf constructs a property set containing exactly the given properties.
func PropsOf(props ...Prop) Props {
	var set Props
	//
	for _, p := range props {
		set = set.With(p)
	}
	//
	return set
}

// Contains checks whether a given property is in this set, or not.
func (p Props) Contains(prop Prop) bool {
	return p&(1<<prop) != 0
}

// With returns this set extended with a given property.
func (p Props) With(prop Prop) Props {
	return p | (1 << prop)
}

// Intersect returns the set of properties common to this set and another.
func (p Props) Intersect(other Props) Props {
	return p & other
}

// Union returns the set of properties in either this set or another.
func (p Props) Union(other Props) Props {
	return p | other
}

// Count returns the number of properties in this set.
func (p Props) Count() uint {
	count := uint(0)
	//
	for prop := Prop(0); prop < nprops; prop++ {
		if p.Contains(prop) {
			count++
		}
	}
	//
	return count
}

// String renders this set in the canonical property order (symmetric, posdef,
// diagonal, lowertriangular).
func (p Props) String() string {
	var (
		r     strings.Builder
		first = true
	)
	//
	r.WriteString("{")
	//
	for prop := Prop(0); prop < nprops; prop++ {
		if p.Contains(prop) {
			if !first {
				r.WriteString(", ")
			}
			//
			r.WriteString(prop.String())
			//
			first = false
		}
	}
	//
	r.WriteString("}")
	//
	return r.String()
}
