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
package syntax

import (
	"strconv"
	"strings"

	"github.com/peter-maday/matrizer/pkg/analysis"
	"github.com/peter-maday/matrizer/pkg/expr"
	"github.com/peter-maday/matrizer/pkg/matrix"
)

// Parse splits a source file into its preamble and its expression body,
// parsing both.  Preamble lines (matrix declarations, symbol definitions,
// comments and blanks) run up to the first line which is none of those; the
// remainder of the file is the expression.  The resulting tree never contains
// ternary products or let bindings.
func Parse(file *File) ([]analysis.Line, expr.Expr, *Error) {
	var (
		preamble []analysis.Line
		body     = -1
	)
	//
	for _, span := range physicalLines(file) {
		line, err := parsePreambleLine(file, span)
		//
		if err != nil {
			return nil, nil, err
		} else if line == nil {
			// Expression starts here.
			body = span.Start()
			break
		}
		//
		preamble = append(preamble, line)
	}
	//
	if body < 0 {
		return nil, nil, file.SyntaxError(NewSpan(len(file.Contents()), len(file.Contents())),
			"missing expression")
	}
	//
	e, err := parseExpression(file, NewSpan(body, len(file.Contents())))
	//
	if err != nil {
		return nil, nil, err
	}
	//
	return preamble, e, nil
}

// ParseString parses source text held in a string, under a given name.
func ParseString(name string, text string) ([]analysis.Line, expr.Expr, *Error) {
	return Parse(NewFile(name, []byte(text)))
}

// physicalLines splits a file into spans covering its lines, excluding the
// line terminators themselves.
func physicalLines(file *File) []Span {
	var (
		contents = file.Contents()
		spans    []Span
		start    = 0
	)
	//
	for i, c := range contents {
		if c == '\n' {
			spans = append(spans, NewSpan(start, i))
			start = i + 1
		}
	}
	//
	if start <= len(contents) {
		spans = append(spans, NewSpan(start, len(contents)))
	}
	//
	return spans
}

// parsePreambleLine attempts to read a single preamble line.  A nil line (and
// nil error) signals the line is not preamble, meaning the expression body
// starts here.
func parsePreambleLine(file *File, span Span) (analysis.Line, *Error) {
	trimmed := strings.TrimSpace(file.Text(span))
	//
	switch {
	case trimmed == "" || strings.HasPrefix(trimmed, "#"):
		return analysis.BlankLine{}, nil
	case strings.Contains(trimmed, ":"):
		return parseMatrixLine(file, span, trimmed)
	case isSymbolLine(trimmed):
		return parseSymbolLine(file, span, trimmed)
	default:
		return nil, nil
	}
}

// isSymbolLine checks for the shape of a symbol definition: a single letter
// followed by "=" or "~".
func isSymbolLine(trimmed string) bool {
	if len(trimmed) < 2 || !isLetterByte(trimmed[0]) {
		return false
	}
	//
	rest := strings.TrimLeft(trimmed[1:], " \t")
	//
	return len(rest) > 0 && (rest[0] == '=' || rest[0] == '~')
}

// parseSymbolLine reads a dimension symbol definition "n = 100" (or "n ~
// 100").
func parseSymbolLine(file *File, span Span, trimmed string) (analysis.Line, *Error) {
	name := trimmed[0]
	rest := strings.TrimLeft(trimmed[1:], " \t")
	// Strip the separator, already checked by isSymbolLine.
	rest = strings.TrimSpace(rest[1:])
	//
	value, err := strconv.ParseUint(rest, 10, 64)
	//
	if err != nil {
		return nil, file.SyntaxError(span, "malformed symbol definition")
	}
	//
	return analysis.SymbolLine{Name: name, Value: uint(value)}, nil
}

// parseMatrixLine reads a matrix declaration "A: dim x dim [props]".  The
// dimensions are kept as raw tokens; resolving them against the symbol
// definitions happens later.
func parseMatrixLine(file *File, span Span, trimmed string) (analysis.Line, *Error) {
	name, rest, _ := strings.Cut(trimmed, ":")
	name = strings.TrimSpace(name)
	//
	if len(name) != 1 || !isLetterByte(name[0]) {
		return nil, file.SyntaxError(span, "malformed matrix name")
	}
	//
	fields := strings.Fields(rest)
	//
	dim1, dim2, propFields, ok := splitDimensions(fields)
	//
	if !ok {
		return nil, file.SyntaxError(span, "malformed matrix dimensions")
	}
	//
	props, perr := parseProperties(file, span, propFields)
	//
	if perr != nil {
		return nil, perr
	}
	//
	sym := analysis.MatrixSym{Dim1: dim1, Dim2: dim2, Props: props}
	//
	return analysis.MatrixLine{Name: name[0], Sym: sym}, nil
}

// splitDimensions extracts the two dimension tokens from the declaration
// fields, accepting both the spaced form ("n x m") and the compact form
// ("100x100", "nxm").
func splitDimensions(fields []string) (string, string, []string, bool) {
	// Spaced form.
	if len(fields) >= 3 && fields[1] == "x" {
		return fields[0], fields[2], fields[3:], true
	}
	// Compact form: a leading digit run (or single letter), then "x", then
	// the rest.
	if len(fields) >= 1 {
		if dim1, dim2, ok := cutDimension(fields[0]); ok {
			return dim1, dim2, fields[1:], true
		}
	}
	//
	return "", "", nil, false
}

func cutDimension(field string) (string, string, bool) {
	n := 0
	//
	for n < len(field) && field[n] >= '0' && field[n] <= '9' {
		n++
	}
	//
	if n == 0 && len(field) > 1 && isLetterByte(field[0]) {
		// Single-letter dimension.
		n = 1
	}
	//
	if n == 0 || n >= len(field) || field[n] != 'x' {
		return "", "", false
	}
	//
	return field[:n], field[n+1:], true
}

// parseProperties reads the trailing property tokens of a declaration.
func parseProperties(file *File, span Span, fields []string) (matrix.Props, *Error) {
	var props matrix.Props
	//
	for _, f := range fields {
		switch strings.TrimRight(f, ",") {
		case "symmetric", "sym":
			props = props.With(matrix.Symmetric)
		case "posdef", "pd":
			props = props.With(matrix.PosDef)
		case "diag":
			props = props.With(matrix.Diagonal)
		default:
			return 0, file.SyntaxError(span, "unknown matrix property \""+f+"\"")
		}
	}
	//
	return props, nil
}

func isLetterByte(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

// ============================================================================
// Expressions
// ============================================================================

// parser is a recursive-descent parser over the token stream of an
// expression body.
type parser struct {
	file   *File
	tokens []Token
	index  int
}

// parseExpression reads the expression body covering a given region of the
// file.
func parseExpression(file *File, span Span) (expr.Expr, *Error) {
	tokens, err := Lex(file, span)
	//
	if err != nil {
		return nil, err
	}
	//
	if len(tokens) == 0 {
		return nil, file.SyntaxError(span, "missing expression")
	}
	//
	p := &parser{file, tokens, 0}
	//
	e, err := p.parseSum()
	//
	if err != nil {
		return nil, err
	}
	//
	if t, ok := p.lookahead(); ok {
		return nil, file.SyntaxError(t.Span, "unexpected token")
	}
	//
	return e, nil
}

// sum := product { ("+" | "-") product }
func (p *parser) parseSum() (expr.Expr, *Error) {
	lhs, err := p.parseProduct()
	//
	if err != nil {
		return nil, err
	}
	//
	for {
		t, ok := p.lookahead()
		//
		if !ok || (t.Kind != PLUS && t.Kind != MINUS) {
			return lhs, nil
		}
		//
		p.index++
		//
		rhs, err := p.parseProduct()
		//
		if err != nil {
			return nil, err
		}
		//
		if t.Kind == MINUS {
			rhs = expr.Negate(rhs)
		}
		//
		lhs = expr.Sum(lhs, rhs)
	}
}

// product := unary { "*" unary | unary }
//
// The second alternative is juxtaposition: two adjacent factors multiply
// without an explicit operator.
func (p *parser) parseProduct() (expr.Expr, *Error) {
	lhs, err := p.parseUnary()
	//
	if err != nil {
		return nil, err
	}
	//
	for {
		t, ok := p.lookahead()
		//
		switch {
		case ok && t.Kind == STAR:
			p.index++
		case ok && (t.Kind == LETTER || t.Kind == NUMBER || t.Kind == LPAREN):
			// juxtaposition
		default:
			return lhs, nil
		}
		//
		rhs, err := p.parseUnary()
		//
		if err != nil {
			return nil, err
		}
		//
		lhs = expr.Product(lhs, rhs)
	}
}

// unary := "-" unary | postfix
func (p *parser) parseUnary() (expr.Expr, *Error) {
	if t, ok := p.lookahead(); ok && t.Kind == MINUS {
		p.index++
		//
		arg, err := p.parseUnary()
		//
		if err != nil {
			return nil, err
		}
		//
		return expr.Negate(arg), nil
	}
	//
	return p.parsePostfix()
}

// postfix := atom { "'" | "^-1" }
func (p *parser) parsePostfix() (expr.Expr, *Error) {
	e, err := p.parseAtom()
	//
	if err != nil {
		return nil, err
	}
	//
	for {
		t, ok := p.lookahead()
		//
		switch {
		case ok && t.Kind == QUOTE:
			e = expr.Transpose(e)
		case ok && t.Kind == INVERSE:
			e = expr.Inverse(e)
		default:
			return e, nil
		}
		//
		p.index++
	}
}

// atom := letter | number | "(" sum ")"
func (p *parser) parseAtom() (expr.Expr, *Error) {
	t, ok := p.lookahead()
	//
	if !ok {
		return nil, p.file.SyntaxError(p.endSpan(), "unexpected end of expression")
	}
	//
	switch t.Kind {
	case LETTER:
		p.index++
		//
		return expr.NewLeaf(byte(p.file.Contents()[t.Span.Start()])), nil
	case NUMBER:
		p.index++
		//
		value, err := strconv.ParseFloat(p.file.Text(t.Span), 64)
		//
		if err != nil {
			return nil, p.file.SyntaxError(t.Span, "malformed number")
		}
		//
		return expr.NewScalar(value), nil
	case LPAREN:
		p.index++
		//
		e, serr := p.parseSum()
		//
		if serr != nil {
			return nil, serr
		}
		//
		if t, ok := p.lookahead(); !ok || t.Kind != RPAREN {
			return nil, p.file.SyntaxError(p.endSpan(), "expected ')'")
		}
		//
		p.index++
		//
		return e, nil
	}
	//
	return nil, p.file.SyntaxError(t.Span, "unexpected token")
}

func (p *parser) lookahead() (Token, bool) {
	if p.index < len(p.tokens) {
		return p.tokens[p.index], true
	}
	//
	return Token{}, false
}

// endSpan gives a span for reporting errors at the current position, falling
// back to the end of the file when no tokens remain.
func (p *parser) endSpan() Span {
	if p.index < len(p.tokens) {
		return p.tokens[p.index].Span
	}
	//
	n := len(p.file.Contents())
	//
	return NewSpan(n, n)
}
