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
package cmd

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/peter-maday/matrizer/pkg/syntax"
)

// GetFlag gets an expected flag, or exits if an error arises.
func GetFlag(cmd *cobra.Command, flag string) bool {
	r, err := cmd.Flags().GetBool(flag)
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}

	return r
}

// GetUint gets an expected unsigned integer flag, or exits if an error
// arises.
func GetUint(cmd *cobra.Command, flag string) uint {
	r, err := cmd.Flags().GetUint(flag)
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}

	return r
}

// readSourceFile reads a given source file, exiting on failure.
func readSourceFile(filename string) *syntax.File {
	file, err := syntax.ReadFile(filename)
	//
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}
	//
	return file
}

// reportError prints a given error and exits.  Syntax errors are reported
// with the offending line highlighted.
func reportError(err error) {
	var serr *syntax.Error
	//
	if errors.As(err, &serr) {
		printSyntaxError(serr)
	} else {
		fmt.Println(err)
	}
	//
	os.Exit(1)
}

// printSyntaxError prints a syntax error with appropriate highlighting.
func printSyntaxError(err *syntax.Error) {
	var (
		span              = err.Span()
		line, num, offset = err.SourceFile().EnclosingLine(span)
	)
	// Print error + line number
	fmt.Printf("%s:%d: %s\n", err.SourceFile().Filename(), num, err.Message())
	// Truncate the line when stdout is a narrow terminal.
	if term.IsTerminal(int(os.Stdout.Fd())) {
		if width, _, terr := term.GetSize(int(os.Stdout.Fd())); terr == nil && len(line) > width {
			line = line[:width]
		}
	}
	// Print line
	fmt.Println(line)
	// Print indent (todo: account for tabs)
	indent := span.Start() - offset
	//
	if indent >= 0 && indent <= len(line) {
		fmt.Print(strings.Repeat(" ", indent))
		// Print highlight
		fmt.Println(strings.Repeat("^", max(1, min(span.Length(), len(line)-indent+1))))
	}
}
