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

import (
	"fmt"
	"math"
	"strconv"
)

// Leaf is a reference to a declared matrix.  Names are single characters, as
// in the surface syntax.
type Leaf struct {
	Name byte
}

// NewLeaf constructs a reference to the matrix with a given name.
func NewLeaf(name byte) *Leaf {
	return &Leaf{name}
}

// Equals implementation for the Expr interface.
func (p *Leaf) Equals(other Expr) bool {
	if o, ok := other.(*Leaf); ok {
		return p.Name == o.Name
	}
	//
	return false
}

func (p *Leaf) String() string {
	return string(rune(p.Name))
}

func (p *Leaf) hash(h uint64) uint64 {
	return hashByte(hashByte(h, tagLeaf), p.Name)
}

// Identity is an n x n identity matrix whose size has been resolved to a
// concrete value.  Identity leaves never appear in parsed input; they are
// introduced by the preprocessor when it infers the size of a bare "I" from
// its context.
type Identity struct {
	Size uint
}

// NewIdentity constructs an identity matrix of a given size.
func NewIdentity(n uint) *Identity {
	return &Identity{n}
}

// Equals implementation for the Expr interface.
func (p *Identity) Equals(other Expr) bool {
	if o, ok := other.(*Identity); ok {
		return p.Size == o.Size
	}
	//
	return false
}

func (p *Identity) String() string {
	return fmt.Sprintf("eye(%d)", p.Size)
}

func (p *Identity) hash(h uint64) uint64 {
	return hashUint(hashByte(h, tagIdentity), uint64(p.Size))
}

// Scalar is a literal 1 x 1 value.
type Scalar struct {
	Value float64
}

// NewScalar constructs a literal scalar.
func NewScalar(value float64) *Scalar {
	return &Scalar{value}
}

// Equals implementation for the Expr interface.
func (p *Scalar) Equals(other Expr) bool {
	if o, ok := other.(*Scalar); ok {
		return p.Value == o.Value
	}
	//
	return false
}

func (p *Scalar) String() string {
	return strconv.FormatFloat(p.Value, 'g', -1, 64)
}

func (p *Scalar) hash(h uint64) uint64 {
	return hashUint(hashByte(h, tagScalar), math.Float64bits(p.Value))
}
