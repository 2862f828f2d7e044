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

// Rule is a partial function from expressions to equivalent expressions.  A
// rule either rewrites the node it is applied to, or reports that it does not
// match.
type Rule struct {
	Name  string
	Apply func(expr.Expr) (expr.Expr, bool)
}

// Rules is the active rule set.  The associativity rules preserve the
// multiset of leaf occurrences and the common-factor rules drop one
// occurrence of the shared factor, so no rule adds a leaf, which bounds the
// rewrite closure of any finite tree.  Rules which grow
// trees without bound (e.g. multiplying by a fresh identity) must not be
// added without also adding a depth bound to the search.
var Rules = []Rule{
	{"assoc-mult-left", assocMultLeft},
	{"assoc-mult-right", assocMultRight},
	{"common-factor-left", commonFactorLeft},
	{"common-factor-right", commonFactorRight},
}

// (l c) r ==> l (c r)
func assocMultLeft(e expr.Expr) (expr.Expr, bool) {
	if p, ok := product(e); ok {
		if l, ok := product(p.Lhs); ok {
			return expr.Product(l.Lhs, expr.Product(l.Rhs, p.Rhs)), true
		}
	}
	//
	return nil, false
}

// l (c r) ==> (l c) r
func assocMultRight(e expr.Expr) (expr.Expr, bool) {
	if p, ok := product(e); ok {
		if r, ok := product(p.Rhs); ok {
			return expr.Product(expr.Product(p.Lhs, r.Lhs), r.Rhs), true
		}
	}
	//
	return nil, false
}

// (a b) + (a c) ==> a (b + c)
func commonFactorLeft(e expr.Expr) (expr.Expr, bool) {
	if l, r, ok := sumOfProducts(e); ok && l.Lhs.Equals(r.Lhs) {
		return expr.Product(l.Lhs, expr.Sum(l.Rhs, r.Rhs)), true
	}
	//
	return nil, false
}

// (a c) + (b c) ==> (a + b) c
func commonFactorRight(e expr.Expr) (expr.Expr, bool) {
	if l, r, ok := sumOfProducts(e); ok && l.Rhs.Equals(r.Rhs) {
		return expr.Product(expr.Sum(l.Lhs, r.Lhs), l.Rhs), true
	}
	//
	return nil, false
}

func product(e expr.Expr) (*expr.Binary, bool) {
	if p, ok := e.(*expr.Binary); ok && p.Op == expr.MProduct {
		return p, true
	}
	//
	return nil, false
}

func sumOfProducts(e expr.Expr) (*expr.Binary, *expr.Binary, bool) {
	if s, ok := e.(*expr.Binary); ok && s.Op == expr.MSum {
		l, lok := product(s.Lhs)
		r, rok := product(s.Rhs)
		//
		if lok && rok {
			return l, r, true
		}
	}
	//
	return nil, nil, false
}
