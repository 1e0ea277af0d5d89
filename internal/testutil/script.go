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

package testutil

import (
	"encoding/binary"

	"github.com/ianlewis/go-kys/script"
)

// Words encodes 16-bit words in little-endian order.
func Words(words ...int16) []byte {
	b := make([]byte, 0, 2*len(words))
	for _, w := range words {
		//nolint:gosec // reinterpreting the word bits.
		b = binary.LittleEndian.AppendUint16(b, uint16(w))
	}
	return b
}

// MakeScript encodes instructions as a kdef record. Operands are written as
// given; they are not checked against an opcode table.
func MakeScript(insts []script.Instruction) []byte {
	var words []int16
	for _, inst := range insts {
		words = append(words, inst.Opcode)
		words = append(words, inst.Operands...)
	}
	return Words(words...)
}
