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
	"github.com/fatih/color"
	"github.com/rodaine/table"
	"github.com/urfave/cli/v2"
)

// newTable returns a table that prints to the app's writer.
func newTable(c *cli.Context, headers ...interface{}) table.Table {
	tbl := table.New(headers...).WithWriter(c.App.Writer)
	if color.NoColor {
		return tbl
	}
	return tbl.
		WithHeaderFormatter(color.New(color.FgGreen, color.Underline).SprintfFunc()).
		WithFirstColumnFormatter(color.New(color.FgYellow).SprintfFunc())
}

// heading prints a section heading.
func heading(c *cli.Context, format string, a ...interface{}) {
	color.New(color.Bold).Fprintf(c.App.Writer, format+"\n", a...)
}
