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
	"encoding/binary"
	"errors"
	"fmt"
)

const wordSize = 2

var (
	// ErrTruncated indicates that a record ended inside an instruction's
	// operand list.
	ErrTruncated = errors.New("truncated instruction")

	// ErrTrailingByte indicates that a record has an odd byte length. The
	// final byte is not decoded.
	ErrTrailingByte = errors.New("trailing byte")
)

// TruncatedInstructionError is returned when the record ends before all of
// an instruction's operands could be read. Instructions before it were
// decoded normally.
type TruncatedInstructionError struct {
	// Offset is the word offset of the opcode.
	Offset int

	// Opcode is the opcode of the truncated instruction.
	Opcode int16

	// Want is the operand count from the Table.
	Want int

	// Operands are the operands that were present.
	Operands []int16
}

func (e *TruncatedInstructionError) Error() string {
	return fmt.Sprintf("%v: opcode %d at word %d: want %d operands, got %d",
		ErrTruncated, e.Opcode, e.Offset, e.Want, len(e.Operands))
}

func (e *TruncatedInstructionError) Unwrap() error {
	return ErrTruncated
}

// Instruction is a decoded instruction.
type Instruction struct {
	// Opcode is the opcode word.
	Opcode int16

	// Operands are the operand words. It is nil for instructions without
	// operands.
	Operands []int16

	// Offset is the word offset of the opcode within the record.
	Offset int
}

// Len returns the size of the instruction in words.
func (i Instruction) Len() int {
	return 1 + len(i.Operands)
}

// Scanner decodes the instructions of a single script record from start to
// end. A Scanner is not restartable; create a new one to decode the record
// again.
type Scanner struct {
	data  []byte
	table *Table
	words int
	pc    int

	inst Instruction
	err  error
	done bool
}

// NewScanner returns a Scanner over data. If table is nil, DefaultTable is
// used.
func NewScanner(data []byte, table *Table) *Scanner {
	if table == nil {
		table = DefaultTable()
	}
	return &Scanner{
		data:  data,
		table: table,
		words: len(data) / wordSize,
	}
}

// Scan advances to the next instruction. It returns false when the end of
// the record is reached or the next instruction is truncated.
func (s *Scanner) Scan() bool {
	if s.done {
		return false
	}

	if s.pc >= s.words {
		s.done = true
		if len(s.data)%wordSize != 0 {
			s.err = fmt.Errorf("%w: record is %d bytes", ErrTrailingByte, len(s.data))
		}
		return false
	}

	op := s.word(s.pc)
	n := s.table.Operands(op)
	if avail := s.words - s.pc - 1; n > avail {
		s.done = true
		s.err = &TruncatedInstructionError{
			Offset:   s.pc,
			Opcode:   op,
			Want:     n,
			Operands: s.read(s.pc+1, avail),
		}
		return false
	}

	s.inst = Instruction{
		Opcode:   op,
		Operands: s.read(s.pc+1, n),
		Offset:   s.pc,
	}
	s.pc += 1 + n
	return true
}

// Instruction returns the most recent instruction read by Scan.
func (s *Scanner) Instruction() Instruction {
	return s.inst
}

// Err returns the warning that stopped the scan, if any. Instructions
// returned before the warning are valid.
func (s *Scanner) Err() error {
	return s.err
}

// word returns the word at word offset i.
func (s *Scanner) word(i int) int16 {
	//nolint:gosec // reinterpreting the word bits.
	return int16(binary.LittleEndian.Uint16(s.data[i*wordSize:]))
}

// read returns n words starting at word offset i.
func (s *Scanner) read(i, n int) []int16 {
	if n == 0 {
		return nil
	}
	words := make([]int16, n)
	for k := range words {
		words[k] = s.word(i + k)
	}
	return words
}

// Decode decodes all instructions in data. The returned error is the
// Scanner's warning, if any, and the instructions decoded before it are
// returned with it.
func Decode(data []byte, table *Table) ([]Instruction, error) {
	var insts []Instruction
	s := NewScanner(data, table)
	for s.Scan() {
		insts = append(insts, s.Instruction())
	}
	return insts, s.Err()
}
