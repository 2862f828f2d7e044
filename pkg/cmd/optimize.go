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
	"fmt"
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/peter-maday/matrizer/pkg/analysis"
	"github.com/peter-maday/matrizer/pkg/emit"
	"github.com/peter-maday/matrizer/pkg/expr"
	"github.com/peter-maday/matrizer/pkg/flops"
	"github.com/peter-maday/matrizer/pkg/rewrite"
	"github.com/peter-maday/matrizer/pkg/syntax"
)

// optimizeCmd represents the optimize command
var optimizeCmd = &cobra.Command{
	Use:   "optimize [flags] source_file",
	Short: "Optimise a matrix expression and emit numpy code.",
	Long: `Optimise a matrix expression and emit numpy code.
	The source file declares its matrices in a preamble, followed by the
	expression itself.`,
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) != 1 {
			fmt.Println(cmd.UsageString())
			os.Exit(1)
		}
		// Configure log level
		if GetFlag(cmd, "verbose") {
			log.SetLevel(log.DebugLevel)
		}
		//
		raw := GetFlag(cmd, "raw")
		stats := GetFlag(cmd, "stats")
		// Parse, resolve and normalise.
		tree, table := analyseSourceFile(args[0])
		//
		before, err := flops.Of(tree, table)
		//
		if err != nil {
			reportError(err)
		}
		//
		after := before
		// Go!
		if !raw {
			after, tree, err = rewrite.Optimize(tree, table)
			//
			if err != nil {
				reportError(err)
			}
		}
		//
		log.Debugf("optimised %d flops down to %d", before, after)
		//
		if stats {
			fmt.Printf("# %d flops (originally %d)\n", after, before)
		}
		//
		fmt.Println(emit.Numpy(tree))
	},
}

// analyseSourceFile runs the front half of the pipeline: read, parse,
// resolve the preamble and preprocess the expression.  Any failure is
// reported and exits.
func analyseSourceFile(filename string) (expr.Expr, *analysis.SymbolTable) {
	file := readSourceFile(filename)
	//
	preamble, tree, serr := syntax.Parse(file)
	//
	if serr != nil {
		reportError(serr)
	}
	//
	table, err := analysis.ResolvePreamble(preamble)
	//
	if err != nil {
		reportError(err)
	}
	//
	tree, err = analysis.Preprocess(tree, table)
	//
	if err != nil {
		reportError(err)
	}
	//
	return tree, table
}

func init() {
	rootCmd.AddCommand(optimizeCmd)
	optimizeCmd.Flags().Bool("raw", false, "emit the input expression without optimisation")
	optimizeCmd.Flags().Bool("stats", false, "report flop counts before and after optimisation")
}
