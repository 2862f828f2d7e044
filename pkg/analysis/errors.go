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

	"github.com/peter-maday/matrizer/pkg/expr"
	"github.com/peter-maday/matrizer/pkg/matrix"
)

// SizeMismatch indicates the operands of a binary operator had incompatible
// dimensions.
type SizeMismatch struct {
	// Operator being applied.
	Op string
	// Descriptors of the two operands.
	Left, Right matrix.Matrix
	// The offending operand terms.
	LeftTerm, RightTerm expr.Expr
}

func (p *SizeMismatch) Error() string {
	return fmt.Sprintf("%s: size mismatch between %s (%s) and %s (%s)",
		p.Op, p.Left, p.LeftTerm, p.Right, p.RightTerm)
}

// TernarySizeMismatch indicates the operands of a ternary operator had
// incompatible dimensions.
type TernarySizeMismatch struct {
	// Operator being applied.
	Op string
	// Descriptors of the three operands.
	Fst, Snd, Thd matrix.Matrix
}

func (p *TernarySizeMismatch) Error() string {
	return fmt.Sprintf("%s: size mismatch between %s, %s and %s", p.Op, p.Fst, p.Snd, p.Thd)
}

// InvalidOp indicates a unary operator was applied to a matrix of an
// unsuitable shape (e.g. inverting a rectangular matrix).
type InvalidOp struct {
	// Operator being applied.
	Op string
	// Descriptor of the operand.
	Mat matrix.Matrix
}

func (p *InvalidOp) Error() string {
	return fmt.Sprintf("%s: not applicable to %s matrix", p.Op, p.Mat)
}

// WrongProperties indicates a binary operator whose property prerequisites
// were not met by its operands.
type WrongProperties struct {
	// Operator being applied.
	Op string
	// Properties of the two operands.
	Left, Right matrix.Props
	// The offending operand terms.
	LeftTerm, RightTerm expr.Expr
}

func (p *WrongProperties) Error() string {
	return fmt.Sprintf("%s: unsuitable properties %s (%s) and %s (%s)",
		p.Op, p.Left, p.LeftTerm, p.Right, p.RightTerm)
}

// WrongUnaryProperties indicates a unary operator whose property prerequisite
// was not met by its operand.
type WrongUnaryProperties struct {
	// Operator being applied.
	Op string
	// Properties of the operand.
	Props matrix.Props
	// The offending operand term.
	Term expr.Expr
}

func (p *WrongUnaryProperties) Error() string {
	return fmt.Sprintf("%s: unsuitable properties %s (%s)", p.Op, p.Props, p.Term)
}

// UnboundName indicates a reference to a matrix (or dimension symbol) absent
// from the symbol table.
type UnboundName struct {
	Name byte
}

func (p *UnboundName) Error() string {
	return fmt.Sprintf("unbound name '%c'", p.Name)
}

// BadDimension indicates a dimension token which is neither a decimal literal
// nor a single-letter symbol.
type BadDimension struct {
	Token string
}

func (p *BadDimension) Error() string {
	return fmt.Sprintf("bad dimension \"%s\"", p.Token)
}

// Error is an untyped analysis failure, such as an identity matrix whose size
// cannot be determined from its context.
type Error struct {
	Msg string
}

// Errorf constructs an untyped analysis failure from a format string.
func Errorf(format string, args ...any) *Error {
	return &Error{fmt.Sprintf(format, args...)}
}

func (p *Error) Error() string {
	return p.Msg
}
