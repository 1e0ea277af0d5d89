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

	"github.com/ianlewis/go-kys"
)

var searchCommand = &cli.Command{
	Name:      "search",
	Usage:     "Find dialogue containing QUERY and the events that show it",
	ArgsUsage: "QUERY",
	Action: func(c *cli.Context) error {
		if c.NArg() != 1 {
			return fmt.Errorf("%w: expected 1 argument, got %d", ErrFlagParse, c.NArg())
		}
		query := c.Args().First()

		s, _, err := openScanner(c)
		if err != nil {
			return err
		}

		talk, refs, err := s.Search(c.Context, kys.Query{Text: query})
		if err != nil {
			return fmt.Errorf("%w: %w", ErrKysutil, err)
		}

		heading(c, "Talk records containing %q", query)
		tbl := newTable(c, "Talk", "Encoding", "Text")
		for _, i := range talk {
			res, err := s.Text(i)
			if err != nil {
				return fmt.Errorf("%w: %w", ErrKysutil, err)
			}
			tbl.AddRow(i, res.Encoding, res.Text)
		}
		tbl.Print()

		fmt.Fprintln(c.App.Writer)
		heading(c, "Events")
		tbl = newTable(c, "Event", "Offset", "Opcode", "Talk ID")
		for _, r := range refs {
			tbl.AddRow(r.EventID, r.Offset, opcodeName(s, r.Opcode), r.TalkID)
		}
		tbl.Print()

		return nil
	},
}

func opcodeName(s *kys.Scanner, code int16) string {
	if name := s.Table().Name(code); name != "" {
		return fmt.Sprintf("%d (%s)", code, name)
	}
	return fmt.Sprint(code)
}
