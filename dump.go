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

package kys

import (
	"fmt"
	"strings"

	"github.com/ianlewis/go-kys/script"
)

// TraceLine is a single disassembled instruction.
type TraceLine struct {
	// Offset is the word offset of the instruction in the event script.
	Offset int

	// Opcode is the instruction opcode.
	Opcode int16

	// Operands are the instruction operands.
	Operands []int16

	// Mnemonic is the opcode name, if the opcode table has one.
	Mnemonic string
}

func (l TraceLine) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "[%04d] Op: %d", l.Offset, l.Opcode)
	if l.Mnemonic != "" {
		fmt.Fprintf(&b, " (%s)", l.Mnemonic)
	}
	if len(l.Operands) > 0 {
		fmt.Fprintf(&b, " Args: %v", l.Operands)
	}
	return b.String()
}

// Dump disassembles the script of the 0-based event record. If the script
// ends inside an instruction or has a trailing byte, the lines decoded so far
// are returned along with the warning from the script package.
func (s *Scanner) Dump(event int) ([]TraceLine, error) {
	if s.events == nil {
		return nil, fmt.Errorf("%w: %s", ErrNoResource, EventResource)
	}

	rec, err := s.events.Record(event)
	if err != nil {
		return nil, fmt.Errorf("reading event record: %w", err)
	}

	insts, err := script.Decode(rec.Data, s.table)
	lines := make([]TraceLine, 0, len(insts))
	for _, inst := range insts {
		lines = append(lines, TraceLine{
			Offset:   inst.Offset,
			Opcode:   inst.Opcode,
			Operands: inst.Operands,
			Mnemonic: s.table.Name(inst.Opcode),
		})
	}
	if err != nil {
		return lines, fmt.Errorf("event %d: %w", event+1, err)
	}
	return lines, nil
}
