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

	"github.com/ianlewis/go-kys/script"
)

var opcodesCommand = &cli.Command{
	Name:  "opcodes",
	Usage: "Print the opcode table as YAML",
	Action: func(c *cli.Context) error {
		opts, err := scannerOptions(c)
		if err != nil {
			return err
		}
		t := opts.Table
		if t == nil {
			t = script.DefaultTable()
		}
		if err := script.WriteTable(c.App.Writer, t); err != nil {
			return fmt.Errorf("%w: %w", ErrKysutil, err)
		}
		return nil
	},
}
