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

package script

import (
	"errors"
	"fmt"
	"io"

	"github.com/goccy/go-yaml"
)

// tableVersion is the current opcode table file version.
const tableVersion = 1

// ErrTableVersion indicates an opcode table file with an unsupported
// version.
var ErrTableVersion = errors.New("unsupported table version")

// tableFile is the YAML form of a Table.
//
//	version: 1
//	extend: true
//	opcodes:
//	  - code: 1
//	    operands: 3
//	    name: Dialogue
//	    talk: {operand: 0, base: 1}
type tableFile struct {
	Version int `yaml:"version"`

	// Extend adds the opcodes to the default table instead of replacing it.
	Extend bool `yaml:"extend,omitempty"`

	Opcodes []opcodeEntry `yaml:"opcodes"`
}

type opcodeEntry struct {
	Code     int16      `yaml:"code"`
	Operands int        `yaml:"operands"`
	Name     string     `yaml:"name,omitempty"`
	Talk     *talkEntry `yaml:"talk,omitempty,flow"`
}

type talkEntry struct {
	Operand int `yaml:"operand"`
	Base    int `yaml:"base"`
}

// LoadTable reads a YAML opcode table from r.
func LoadTable(r io.Reader) (*Table, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading opcode table: %w", err)
	}

	var f tableFile
	if err := yaml.Unmarshal(b, &f); err != nil {
		return nil, fmt.Errorf("parsing opcode table: %w", err)
	}
	if f.Version != tableVersion {
		return nil, fmt.Errorf("%w: %d", ErrTableVersion, f.Version)
	}

	ops := make([]Opcode, 0, len(f.Opcodes))
	for _, e := range f.Opcodes {
		op := Opcode{
			Code:     e.Code,
			Operands: e.Operands,
			Name:     e.Name,
		}
		if e.Talk != nil {
			op.Talk = &TalkRef{
				Operand: e.Talk.Operand,
				Base:    e.Talk.Base,
			}
		}
		ops = append(ops, op)
	}

	if f.Extend {
		return DefaultTable().With(ops...)
	}
	return NewTable(ops...)
}

// WriteTable writes t to w in the format read by LoadTable.
func WriteTable(w io.Writer, t *Table) error {
	f := tableFile{
		Version: tableVersion,
	}
	for _, op := range t.Opcodes() {
		e := opcodeEntry{
			Code:     op.Code,
			Operands: op.Operands,
			Name:     op.Name,
		}
		if op.Talk != nil {
			e.Talk = &talkEntry{
				Operand: op.Talk.Operand,
				Base:    op.Talk.Base,
			}
		}
		f.Opcodes = append(f.Opcodes, e)
	}

	b, err := yaml.Marshal(f)
	if err != nil {
		return fmt.Errorf("encoding opcode table: %w", err)
	}
	if _, err := w.Write(b); err != nil {
		return fmt.Errorf("writing opcode table: %w", err)
	}
	return nil
}
