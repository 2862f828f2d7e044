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
	"github.com/peter-maday/matrizer/pkg/flops"
)

// analyzeCmd represents the analyze command
var analyzeCmd = &cobra.Command{
	Use:   "analyze [flags] source_file",
	Short: "Report the shape, properties and cost of an expression.",
	Long: `Report the shape, properties and estimated flop cost of a matrix
	expression, without optimising it.`,
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
		tree, table := analyseSourceFile(args[0])
		//
		descriptor, err := analysis.DescriptorOf(tree, table)
		//
		if err != nil {
			reportError(err)
		}
		//
		cost, err := flops.Of(tree, table)
		//
		if err != nil {
			reportError(err)
		}
		//
		fmt.Printf("%s\n", tree)
		fmt.Printf("%s, %d flops\n", descriptor, cost)
	},
}

func init() {
	rootCmd.AddCommand(analyzeCmd)
}
