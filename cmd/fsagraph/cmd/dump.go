//  Copyright (c) 2017 Couchbase, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// 		http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/flatgraph/automaton"
)

var dotOutput bool

var dumpCmd = &cobra.Command{
	Use:   "dump <graph>",
	Short: "Prints a previously built graph to stdout",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		m, err := automaton.OpenByteMachine[string](args[0])
		if err != nil {
			return err
		}
		defer m.Close()

		if dotOutput {
			return automaton.ExportMachineDot(m.Machine, os.Stdout)
		}
		return m.DebugDump(os.Stdout)
	},
}

func init() {
	dumpCmd.Flags().BoolVar(&dotOutput, "dot", false, "print GraphViz (dot) format instead of the debug dump")
}
