// Copyright 2026 Ian Lewis
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"errors"
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/ianlewis/go-kys/script"
)

var dumpCommand = &cli.Command{
	Name:      "dump",
	Usage:     "Disassemble event scripts",
	ArgsUsage: "EVENT...",
	Action: func(c *cli.Context) error {
		if c.NArg() == 0 {
			return fmt.Errorf("%w: expected at least 1 event id", ErrFlagParse)
		}
		ids, err := parseIDs(c.Args().Slice())
		if err != nil {
			return err
		}

		s, _, err := openScanner(c)
		if err != nil {
			return err
		}

		for _, id := range ids {
			// Event ids are 1-based.
			start, end, err := s.Events().Range(id - 1)
			if err != nil {
				return fmt.Errorf("%w: event %d: %w", ErrKysutil, id, err)
			}
			heading(c, "--- Event %d (Offset %d, Length %d words) ---", id, start, (end-start)/2)

			lines, err := s.Dump(id - 1)
			for _, l := range lines {
				fmt.Fprintln(c.App.Writer, l)
			}
			switch {
			case errors.Is(err, script.ErrTruncated), errors.Is(err, script.ErrTrailingByte):
				fmt.Fprintf(c.App.ErrWriter, "warning: %v\n", err)
			case err != nil:
				return fmt.Errorf("%w: %w", ErrKysutil, err)
			}
			fmt.Fprintln(c.App.Writer)
		}

		return nil
	},
}
