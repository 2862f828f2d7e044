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

import "unicode"

// Token kinds recognised in expression bodies.
const (
	// LETTER is a single-character matrix reference.
	LETTER uint = iota
	// NUMBER is a literal scalar.
	NUMBER
	// LPAREN / RPAREN group subexpressions.
	LPAREN
	RPAREN
	// STAR is explicit multiplication.
	STAR
	// PLUS is addition.
	PLUS
	// MINUS is negation (prefix) or subtraction (infix).
	MINUS
	// QUOTE is postfix transposition.
	QUOTE
	// INVERSE is the postfix inversion marker "^-1".
	INVERSE
	// WHITESPACE separates tokens and is discarded.
	WHITESPACE
)

// Token associates a kind with a given range of characters in the text being
// lexed.
type Token struct {
	Kind uint
	Span Span
}

// scanner accepts some prefix of the input, returning how many characters
// were matched (zero meaning no match).
type scanner func([]rune) uint

// unit accepts exactly a given sequence of characters.
func unit(text string) scanner {
	chars := []rune(text)
	//
	return func(items []rune) uint {
		if len(items) < len(chars) {
			return 0
		}
		//
		for i, c := range chars {
			if items[i] != c {
				return 0
			}
		}
		//
		return uint(len(chars))
	}
}

// one accepts a single character matching a given predicate.
func one(pred func(rune) bool) scanner {
	return func(items []rune) uint {
		if len(items) > 0 && pred(items[0]) {
			return 1
		}
		//
		return 0
	}
}

// many accepts one or more characters matching a given predicate.
func many(pred func(rune) bool) scanner {
	return func(items []rune) uint {
		n := uint(0)
		//
		for int(n) < len(items) && pred(items[int(n)]) {
			n++
		}
		//
		return n
	}
}

// number accepts a decimal literal with an optional fractional part.
func number(items []rune) uint {
	n := many(unicode.IsDigit)(items)
	//
	if n == 0 {
		return 0
	}
	//
	if int(n) < len(items) && items[n] == '.' {
		if m := many(unicode.IsDigit)(items[n+1:]); m > 0 {
			return n + m + 1
		}
	}
	//
	return n
}

// lexRule associates a scanner with the kind of token it produces.  Rules are
// attempted in order, hence "^-1" must precede any rule matching "^".
type lexRule struct {
	scan scanner
	kind uint
}

var lexRules = []lexRule{
	{unit("^-1"), INVERSE},
	{unit("("), LPAREN},
	{unit(")"), RPAREN},
	{unit("*"), STAR},
	{unit("+"), PLUS},
	{unit("-"), MINUS},
	{unit("'"), QUOTE},
	{number, NUMBER},
	{one(unicode.IsLetter), LETTER},
	{many(unicode.IsSpace), WHITESPACE},
}

// Lex tokenises a region of a given source file, discarding whitespace.
// Spans are reported against the whole file, not the region.
func Lex(file *File, span Span) ([]Token, *Error) {
	var (
		contents = file.Contents()
		tokens   []Token
		index    = span.Start()
	)
	//
outer:
	for index < span.End() {
		for _, r := range lexRules {
			if n := r.scan(contents[index:span.End()]); n > 0 {
				if r.kind != WHITESPACE {
					tokens = append(tokens, Token{r.kind, NewSpan(index, index+int(n))})
				}
				//
				index += int(n)
				//
				continue outer
			}
		}
		//
		return nil, file.SyntaxError(NewSpan(index, index+1), "unknown character")
	}
	//
	return tokens, nil
}
