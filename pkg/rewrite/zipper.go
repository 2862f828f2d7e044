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

import (
	"slices"

	"github.com/peter-maday/matrizer/pkg/expr"
)

// A breadcrumb records the immediate context of a focused subtree: the
// operator above it, and the siblings left behind on the way down.  Stitching
// a breadcrumb around a replacement subtree rebuilds one level of the
// original tree.
type breadcrumb interface {
	stitch(child expr.Expr) expr.Expr
}

type unaryCrumb struct {
	op expr.UnaryOp
}

func (p unaryCrumb) stitch(child expr.Expr) expr.Expr {
	return &expr.Unary{Op: p.op, Arg: child}
}

type binaryCrumb struct {
	op expr.BinaryOp
	// Sibling left behind during descent.
	other expr.Expr
	// Indicates the focus is the left child.
	left bool
}

func (p binaryCrumb) stitch(child expr.Expr) expr.Expr {
	if p.left {
		return &expr.Binary{Op: p.op, Lhs: child, Rhs: p.other}
	}
	//
	return &expr.Binary{Op: p.op, Lhs: p.other, Rhs: child}
}

type ternaryCrumb struct {
	op expr.TernaryOp
	// Siblings left behind, in order.
	fst, snd expr.Expr
	// Index of the focus (0, 1 or 2).
	index int
}

func (p ternaryCrumb) stitch(child expr.Expr) expr.Expr {
	switch p.index {
	case 0:
		return &expr.Ternary{Op: p.op, Fst: child, Snd: p.fst, Thd: p.snd}
	case 1:
		return &expr.Ternary{Op: p.op, Fst: p.fst, Snd: child, Thd: p.snd}
	default:
		return &expr.Ternary{Op: p.op, Fst: p.fst, Snd: p.snd, Thd: child}
	}
}

type letCrumb struct {
	name  byte
	temp  bool
	other expr.Expr
	// Indicates the focus is the bound expression (rather than the body).
	rhs bool
}

func (p letCrumb) stitch(child expr.Expr) expr.Expr {
	if p.rhs {
		return &expr.Let{Name: p.name, Rhs: child, Temp: p.temp, Body: p.other}
	}
	//
	return &expr.Let{Name: p.name, Rhs: p.other, Temp: p.temp, Body: child}
}

// zipper is a position within a tree: the focused subtree together with the
// breadcrumb path back to the root.
type zipper struct {
	focus expr.Expr
	path  []breadcrumb
}

// rebuild stitches the path back around a replacement for the focus, yielding
// a whole tree again.
func (p zipper) rebuild(e expr.Expr) expr.Expr {
	for i := len(p.path) - 1; i >= 0; i-- {
		e = p.path[i].stitch(e)
	}
	//
	return e
}

// positions enumerates every subtree position of a given tree, in a
// deterministic preorder walk.
func positions(t expr.Expr) []zipper {
	var out []zipper
	//
	walk(t, nil, &out)
	//
	return out
}

func walk(e expr.Expr, path []breadcrumb, out *[]zipper) {
	*out = append(*out, zipper{e, slices.Clone(path)})
	//
	switch e := e.(type) {
	case *expr.Unary:
		walk(e.Arg, append(path, unaryCrumb{e.Op}), out)
	case *expr.Binary:
		walk(e.Lhs, append(path, binaryCrumb{e.Op, e.Rhs, true}), out)
		walk(e.Rhs, append(path, binaryCrumb{e.Op, e.Lhs, false}), out)
	case *expr.Ternary:
		walk(e.Fst, append(path, ternaryCrumb{e.Op, e.Snd, e.Thd, 0}), out)
		walk(e.Snd, append(path, ternaryCrumb{e.Op, e.Fst, e.Thd, 1}), out)
		walk(e.Thd, append(path, ternaryCrumb{e.Op, e.Fst, e.Snd, 2}), out)
	case *expr.Let:
		walk(e.Rhs, append(path, letCrumb{e.Name, e.Temp, e.Body, true}), out)
		walk(e.Body, append(path, letCrumb{e.Name, e.Temp, e.Rhs, false}), out)
	}
}
