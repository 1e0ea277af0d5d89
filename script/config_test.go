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

package script_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/ianlewis/go-kys/script"
)

// TestLoadTable tests LoadTable.
func TestLoadTable(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		yaml     string
		expected []script.Opcode
		err      error
	}{
		{
			name: "replace",
			yaml: `
version: 1
opcodes:
  - code: 1
    operands: 3
    name: Dialogue
    talk: {operand: 0, base: 1}
  - code: 25
    operands: 4
`,
			expected: []script.Opcode{
				{Code: 1, Operands: 3, Name: "Dialogue", Talk: &script.TalkRef{Operand: 0, Base: 1}},
				{Code: 25, Operands: 4},
			},
		},
		{
			name: "bad version",
			yaml: `
version: 2
opcodes: []
`,
			err: script.ErrTableVersion,
		},
		{
			name: "missing version",
			yaml: `
opcodes: []
`,
			err: script.ErrTableVersion,
		},
		{
			name: "invalid opcode",
			yaml: `
version: 1
opcodes:
  - code: 1
    operands: -2
`,
			err: script.ErrInvalidOpcode,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			table, err := script.LoadTable(strings.NewReader(test.yaml))
			if test.err != nil {
				require.ErrorIs(t, err, test.err)
				return
			}
			require.NoError(t, err)

			if diff := cmp.Diff(test.expected, table.Opcodes()); diff != "" {
				t.Errorf("Opcodes (-want, +got):\n%s", diff)
			}
		})
	}
}

// TestLoadTable_extend tests extending the default table.
func TestLoadTable_extend(t *testing.T) {
	t.Parallel()

	table, err := script.LoadTable(strings.NewReader(`
version: 1
extend: true
opcodes:
  - code: 72
    operands: 2
    name: Custom
  - code: 25
    operands: 2
`))
	require.NoError(t, err)

	if got := table.Operands(72); got != 2 {
		t.Errorf("Operands(72): want 2, got %d", got)
	}
	if got := table.Operands(25); got != 2 {
		t.Errorf("Operands(25): want 2, got %d", got)
	}
	if got := table.Operands(3); got != 13 {
		t.Errorf("Operands(3): want 13, got %d", got)
	}
}

// TestWriteTable tests that WriteTable output is read back by LoadTable.
func TestWriteTable(t *testing.T) {
	t.Parallel()

	want := script.DefaultTable()

	var buf bytes.Buffer
	require.NoError(t, script.WriteTable(&buf, want))

	got, err := script.LoadTable(&buf)
	require.NoError(t, err)

	if diff := cmp.Diff(want.Opcodes(), got.Opcodes()); diff != "" {
		t.Errorf("Opcodes (-want, +got):\n%s", diff)
	}
}
