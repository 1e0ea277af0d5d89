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
	"maps"
	"slices"
)

// ErrInvalidOpcode indicates an opcode definition that cannot be used for
// decoding.
var ErrInvalidOpcode = errors.New("invalid opcode")

// TalkRef locates a talk (dialogue) record id in an instruction's operands.
// The default table follows the engine, where NewTalk0 keeps its id in the
// second operand and ids are 1-based. TalkRef{Operand: 0, Base: 0} instead
// compares the raw first operand with the 0-based record index.
type TalkRef struct {
	// Operand is the 0-based index of the operand holding the talk id.
	Operand int

	// Base is subtracted from the operand value to get the 0-based talk
	// record index. Scripts shipped with the game use 1-based ids.
	Base int
}

// Record returns the 0-based talk record index for the given instruction
// and whether the instruction has the operand at all.
func (r TalkRef) Record(inst Instruction) (id int16, record int, ok bool) {
	if r.Operand < 0 || r.Operand >= len(inst.Operands) {
		return 0, 0, false
	}
	id = inst.Operands[r.Operand]
	return id, int(id) - r.Base, true
}

// Opcode describes a single instruction.
type Opcode struct {
	// Code is the opcode word.
	Code int16

	// Operands is the number of operand words following the opcode.
	Operands int

	// Name is an optional mnemonic.
	Name string

	// Talk is set for opcodes that display a talk record.
	Talk *TalkRef
}

// Table maps opcodes to their definitions. A Table is not modified after it
// is created and is safe for concurrent use.
type Table struct {
	ops map[int16]Opcode
}

// NewTable returns a Table containing ops. Later definitions of the same
// opcode replace earlier ones.
func NewTable(ops ...Opcode) (*Table, error) {
	t := &Table{
		ops: make(map[int16]Opcode, len(ops)),
	}
	for _, op := range ops {
		if op.Operands < 0 {
			return nil, fmt.Errorf("%w: opcode %d: negative operand count %d", ErrInvalidOpcode, op.Code, op.Operands)
		}
		if op.Talk != nil && (op.Talk.Operand < 0 || op.Talk.Operand >= op.Operands) {
			return nil, fmt.Errorf("%w: opcode %d: talk operand %d not in [0, %d)",
				ErrInvalidOpcode, op.Code, op.Talk.Operand, op.Operands)
		}
		t.ops[op.Code] = op
	}
	return t, nil
}

// With returns a copy of the Table extended with ops.
func (t *Table) With(ops ...Opcode) (*Table, error) {
	return NewTable(append(t.Opcodes(), ops...)...)
}

// Lookup returns the definition of code.
func (t *Table) Lookup(code int16) (Opcode, bool) {
	op, ok := t.ops[code]
	return op, ok
}

// Operands returns the number of operand words for code. Unknown opcodes
// have no operands.
func (t *Table) Operands(code int16) int {
	return t.ops[code].Operands
}

// Name returns the mnemonic for code or an empty string.
func (t *Table) Name(code int16) string {
	return t.ops[code].Name
}

// Opcodes returns all definitions ordered by opcode.
func (t *Table) Opcodes() []Opcode {
	codes := slices.Sorted(maps.Keys(t.ops))
	ops := make([]Opcode, 0, len(codes))
	for _, c := range codes {
		ops = append(ops, t.ops[c])
	}
	return ops
}

// TalkRefs returns the talk reference of every opcode that has one.
func (t *Table) TalkRefs() map[int16]TalkRef {
	refs := map[int16]TalkRef{}
	for c, op := range t.ops {
		if op.Talk != nil {
			refs[c] = *op.Talk
		}
	}
	return refs
}

// defaultOpcodes is the instruction set of the game engine. Operand counts
// for the conditional jumps include both jump targets. Talk references use
// the engine's operand positions and 1-based ids, not the raw first operand
// compared with the 0-based record index; use a TalkRef of
// {Operand: 0, Base: 0} in a custom table for that.
var defaultOpcodes = []Opcode{
	{Code: 0, Operands: 0, Name: "Redraw"},
	{Code: 1, Operands: 3, Name: "Dialogue", Talk: &TalkRef{Operand: 0, Base: 1}},
	{Code: 2, Operands: 2, Name: "AddItem"},
	{Code: 3, Operands: 13, Name: "ModifyEvent"},
	{Code: 4, Operands: 3, Name: "IfUseItem"},
	{Code: 5, Operands: 2, Name: "AskBattle"},
	{Code: 6, Operands: 4, Name: "Battle"},
	{Code: 8, Operands: 1, Name: "PlayMusic"},
	{Code: 10, Operands: 1, Name: "JoinParty"},
	{Code: 11, Operands: 3, Name: "AddAttribute"},
	{Code: 12, Operands: 0, Name: "Rest"},
	{Code: 13, Operands: 0, Name: "FadeIn"},
	{Code: 14, Operands: 0, Name: "FadeOut"},
	{Code: 16, Operands: 1, Name: "Flash"},
	{Code: 17, Operands: 1, Name: "Delay"},
	{Code: 19, Operands: 2, Name: "Teleport"},
	{Code: 21, Operands: 1, Name: "LeaveParty"},
	{Code: 23, Operands: 4, Name: "EventAction"},
	{Code: 25, Operands: 4, Name: "Pan"},
	{Code: 26, Operands: 5, Name: "AddEventData"},
	{Code: 27, Operands: 3, Name: "Animation"},
	{Code: 28, Operands: 5, Name: "IfAttribute"},
	{Code: 29, Operands: 5, Name: "IfAttack"},
	{Code: 30, Operands: 4, Name: "Walk"},
	{Code: 31, Operands: 3, Name: "IfMoney"},
	{Code: 32, Operands: 2, Name: "AddItemQuiet"},
	{Code: 33, Operands: 3},
	{Code: 34, Operands: 2},
	{Code: 35, Operands: 4},
	{Code: 36, Operands: 3, Name: "IfSexual"},
	{Code: 37, Operands: 1},
	{Code: 38, Operands: 4, Name: "ReplacePic"},
	{Code: 39, Operands: 1, Name: "OpenScene"},
	{Code: 40, Operands: 1, Name: "Face"},
	{Code: 41, Operands: 3},
	{Code: 42, Operands: 2},
	{Code: 43, Operands: 3},
	{Code: 44, Operands: 6, Name: "DualAnimation"},
	{Code: 50, Operands: 1, Name: "PlaySound"},
	{Code: 68, Operands: 7, Name: "NewTalk0", Talk: &TalkRef{Operand: 1, Base: 1}},
	{Code: 69, Operands: 3, Name: "ReSetName"},
	{Code: 70, Operands: 2, Name: "ShowTitle", Talk: &TalkRef{Operand: 0, Base: 1}},
	{Code: 71, Operands: 3, Name: "JmpScene"},
}

// DefaultTable returns a new Table for the game engine's instruction set.
func DefaultTable() *Table {
	t, err := NewTable(defaultOpcodes...)
	if err != nil {
		panic(err)
	}
	return t
}
