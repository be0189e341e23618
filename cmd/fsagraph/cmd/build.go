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
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/flatgraph/automaton"
)

var buildCSV bool

var buildCmd = &cobra.Command{
	Use:   "build <input> <output>",
	Short: "Builds a graph from a literal list or a two-column CSV of literal,value",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		inFile, err := os.Open(args[0])
		if err != nil {
			return err
		}
		defer inFile.Close()

		b := automaton.NewByteBuilder[string]()
		count := 0

		if buildCSV {
			count, err = buildFromCSV(b, inFile)
		} else {
			count, err = buildFromLines(b, inFile)
		}
		if err != nil {
			return err
		}
		if b.Err() != nil {
			return fmt.Errorf("conflict while building: %w", b.Err())
		}

		m, err := b.Compile()
		if err != nil {
			return err
		}

		if err := automaton.SaveByteMachine(m, args[1]); err != nil {
			return err
		}

		logger.Info("built graph", zap.Int("entries", count), zap.String("output", args[1]))
		return nil
	},
}

func buildFromLines(b *automaton.Builder[byte, string], r io.Reader) (int, error) {
	scanner := bufio.NewScanner(r)
	count := 0
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		b.MatchSequence([]byte(line)...).Commit(line, 0)
		count++
	}
	return count, scanner.Err()
}

func buildFromCSV(b *automaton.Builder[byte, string], r io.Reader) (int, error) {
	cr := csv.NewReader(r)
	count := 0
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return count, err
		}
		if len(record) != 2 {
			return count, fmt.Errorf("incorrect number of fields: %v", record)
		}
		b.MatchSequence([]byte(record[0])...).Commit(record[1], 0)
		count++
	}
	return count, nil
}

func init() {
	buildCmd.Flags().BoolVar(&buildCSV, "csv", false, "read input as literal,value CSV instead of one literal per line")
}
