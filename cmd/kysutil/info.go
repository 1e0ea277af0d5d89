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
	"github.com/urfave/cli/v2"

	"github.com/ianlewis/go-kys"
	"github.com/ianlewis/go-kys/grp"
)

var infoCommand = &cli.Command{
	Name:  "info",
	Usage: "Show resource information",
	Action: func(c *cli.Context) error {
		s, dir, err := openScanner(c)
		if err != nil {
			return err
		}
		logger := s.Logger()

		heading(c, "Resources in %s", dir)
		tbl := newTable(c, "Resource", "Records", "Bytes", "Malformed")
		for _, r := range []struct {
			name  string
			store *grp.Store
		}{
			{kys.EventResource, s.Events()},
			{kys.TalkResource, s.Talk()},
		} {
			errs := r.store.Validate()
			for _, err := range errs {
				logger.Debug("malformed record", "resource", r.name, "err", err)
			}
			tbl.AddRow(r.name, r.store.Count(), r.store.Size(), len(errs))
		}
		tbl.Print()

		return nil
	},
}
