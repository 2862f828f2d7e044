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

// Let binds a name to an expression within the scope of its body.  The Temp
// flag marks bindings introduced for intermediate results; it is consumed by
// code emission only and has no analysis semantics.
type Let struct {
	Name byte
	Rhs  Expr
	Temp bool
	Body Expr
}

// NewLet constructs a let binding.
func NewLet(name byte, rhs Expr, temp bool, body Expr) *Let {
	return &Let{name, rhs, temp, body}
}

// Equals implementation for the Expr interface.
func (p *Let) Equals(other Expr) bool {
	if o, ok := other.(*Let); ok {
		return p.Name == o.Name && p.Temp == o.Temp &&
			p.Rhs.Equals(o.Rhs) && p.Body.Equals(o.Body)
	}
	//
	return false
}

func (p *Let) String() string {
	if p.Temp {
		return fmt.Sprintf("let %c := %s in %s", p.Name, p.Rhs, p.Body)
	}
	//
	return fmt.Sprintf("let %c = %s in %s", p.Name, p.Rhs, p.Body)
}

func (p *Let) hash(h uint64) uint64 {
	h = hashByte(hashByte(h, tagLet), p.Name)
	//
	if p.Temp {
		h = hashByte(h, 1)
	} else {
		h = hashByte(h, 0)
	}
	//
	h = p.Rhs.hash(h)
	//
	return p.Body.hash(h)
}
