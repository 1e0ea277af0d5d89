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
	"fmt"

	"github.com/urfave/cli/v2"
)

var textCommand = &cli.Command{
	Name:      "text",
	Usage:     "Show decoded talk records",
	ArgsUsage: "TALK...",
	Action: func(c *cli.Context) error {
		if c.NArg() == 0 {
			return fmt.Errorf("%w: expected at least 1 talk record", ErrFlagParse)
		}
		ids, err := parseIDs(c.Args().Slice())
		if err != nil {
			return err
		}

		s, _, err := openScanner(c)
		if err != nil {
			return err
		}

		tbl := newTable(c, "Talk", "Encoding", "Text")
		for _, i := range ids {
			res, err := s.Text(i)
			if err != nil {
				fmt.Fprintf(c.App.ErrWriter, "talk %d: %v\n", i, err)
				continue
			}
			tbl.AddRow(i, res.Encoding, res.Text)
		}
		tbl.Print()

		return nil
	},
}
