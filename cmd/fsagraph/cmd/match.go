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
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/flatgraph/automaton"
)

var matchAll bool

var matchCmd = &cobra.Command{
	Use:   "match <graph> <input>",
	Short: "Matches input against a previously built graph",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		m, err := automaton.OpenByteMachine[string](args[0])
		if err != nil {
			return err
		}
		defer m.Close()

		input := []byte(args[1])

		if matchAll {
			matches := m.FindAll(input)
			for _, match := range matches {
				fmt.Printf("%d-%d: %s\n", match.Start, match.End, match.Value)
			}
			logger.Info("find-all complete", zap.Int("matches", len(matches)))
			return nil
		}

		if value, ok := m.FullMatch(input); ok {
			fmt.Println(value)
			return nil
		}
		logger.Info("no full match", zap.String("input", args[1]))
		return fmt.Errorf("no match")
	},
}

func init() {
	matchCmd.Flags().BoolVar(&matchAll, "all", false, "find every non-overlapping match instead of requiring a full match")
}
