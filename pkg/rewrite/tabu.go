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
package rewrite

import "github.com/peter-maday/matrizer/pkg/expr"

// tabuSet records the trees visited during search.  It is a true hashset in
// that fingerprint collisions are handled gracefully using buckets, with
// structural equality deciding membership within a bucket.  Insertion order
// is journalled, since selection must iterate the closure deterministically.
type tabuSet struct {
	// buckets maps fingerprints to *buckets* of trees.
	buckets map[uint64][]expr.Expr
	// order holds every member in insertion order.
	order []expr.Expr
}

func newTabuSet() *tabuSet {
	return &tabuSet{buckets: make(map[uint64][]expr.Expr)}
}

// Insert a tree into this set, returning true if it was already contained and
// false otherwise.
func (p *tabuSet) Insert(e expr.Expr) bool {
	hash := expr.Hash(e)
	//
	for _, o := range p.buckets[hash] {
		if o.Equals(e) {
			return true
		}
	}
	//
	p.buckets[hash] = append(p.buckets[hash], e)
	p.order = append(p.order, e)
	//
	return false
}

// Size returns the number of unique trees in this set.
func (p *tabuSet) Size() uint {
	return uint(len(p.order))
}

// Items returns the members of this set in insertion order.  The returned
// slice is shared with the set and must not be mutated.
func (p *tabuSet) Items() []expr.Expr {
	return p.order
}
