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

// Package script implements decoding of kdef event scripts.
//
// An event script is a stream of little-endian signed 16-bit words. Each
// instruction is an opcode word followed by a fixed number of operand words.
// The operand count depends only on the opcode and is looked up in a Table.
// Opcodes missing from the Table, including negative opcodes, are decoded
// as instructions without operands. Results for such opcodes are
// approximate: if the real instruction has operands, those words will be
// decoded as opcodes.
//
// Opcode 0 has no operands and is not treated specially. Callers that want
// to stop at the first 0 must do so themselves.
package script
