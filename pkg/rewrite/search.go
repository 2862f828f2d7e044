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

// Package rewrite searches for the cheapest expression equivalent to its
// input.  Equivalence is generated by a small set of algebraic rules applied
// at every tree position; the reachable set is closed breadth-first under a
// tabu set and the tree with the minimum estimated flop count wins.
package rewrite

import (
	log "github.com/sirupsen/logrus"

	"github.com/peter-maday/matrizer/pkg/analysis"
	"github.com/peter-maday/matrizer/pkg/expr"
	"github.com/peter-maday/matrizer/pkg/flops"
)

// DefaultClosureCap bounds the number of trees the search will visit before
// giving up.  The current rule set generates closures far below this bound
// for any realistic input.
const DefaultClosureCap uint = 1 << 20

// Optimize returns the cheapest tree equivalent to a given expression, along
// with its estimated flop count.  The result is deterministic: equal-cost
// candidates are ordered by their canonical rendering.
func Optimize(e expr.Expr, table *analysis.SymbolTable) (uint, expr.Expr, error) {
	return OptimizeWithCap(e, table, DefaultClosureCap)
}

// OptimizeWithCap is Optimize under an explicit bound on the closure size.
func OptimizeWithCap(e expr.Expr, table *analysis.SymbolTable, bound uint) (uint, expr.Expr, error) {
	seen := newTabuSet()
	seen.Insert(e)
	//
	queue := []expr.Expr{e}
	// Close the reachable set breadth-first.
	for len(queue) > 0 {
		t := queue[0]
		queue = queue[1:]
		//
		for _, g := range neighbours(t) {
			if seen.Insert(g) {
				continue
			}
			//
			if seen.Size() > bound {
				return 0, nil, analysis.Errorf("search space exceeded")
			}
			//
			queue = append(queue, g)
		}
	}
	//
	log.Debugf("rewrite closure of %s contains %d trees", e, seen.Size())
	// Select the cheapest tree, in insertion order for determinism.
	return selectCheapest(seen.Items(), table)
}

// neighbours produces every tree obtainable from a given tree by one rule
// application at one position.
func neighbours(t expr.Expr) []expr.Expr {
	var out []expr.Expr
	//
	for _, z := range positions(t) {
		for _, r := range Rules {
			if g, ok := r.Apply(z.focus); ok {
				out = append(out, z.rebuild(g))
			}
		}
	}
	//
	return out
}

func selectCheapest(trees []expr.Expr, table *analysis.SymbolTable) (uint, expr.Expr, error) {
	var (
		best     expr.Expr
		bestCost uint
		bestKey  string
	)
	//
	for _, t := range trees {
		cost, err := flops.Of(t, table)
		//
		if err != nil {
			return 0, nil, err
		}
		// Ties break on the canonical rendering, keeping selection stable
		// across platforms.
		key := t.String()
		//
		if best == nil || cost < bestCost || (cost == bestCost && key < bestKey) {
			best, bestCost, bestKey = t, cost, key
		}
	}
	//
	return bestCost, best, nil
}
