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

package kys_test

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/ianlewis/go-kys"
	"github.com/ianlewis/go-kys/grp"
	"github.com/ianlewis/go-kys/internal/testutil"
	"github.com/ianlewis/go-kys/script"
	"github.com/ianlewis/go-kys/textenc"
)

var (
	// testTalk are talk records encoded in GBK.
	testTalk = [][]byte{
		[]byte("\xd6\xaa\xb5\xc0\xc1\xcb\x00"), // 知道了
		[]byte("hello\x00"),
		[]byte("\xbf\xd7\xcc\xc3\xd6\xf7\x00"), // 孔堂主
		[]byte("\xc4\xe3\xba\xc3\x00"),         // 你好
	}

	// testEvents are event scripts using the default opcode table, where
	// talk ids are 1-based.
	testEvents = [][]byte{
		// Dialogue(talk 1).
		testutil.Words(1, 1, 0, 0, 0),
		// NewTalk0(talk 3), Dialogue(talk 3).
		testutil.Words(68, 5, 3, 0, 0, 0, 0, 0, 1, 3, 0, 0, 0),
		// Pan.
		testutil.Words(25, 1, 2, 3, 4, 0),
		// Dialogue(talk 4) truncated.
		testutil.Words(1, 4),
		// ShowTitle(talk 4).
		testutil.Words(70, 4, 0, 0),
	}
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newStore(t *testing.T, records [][]byte) *grp.Store {
	t.Helper()

	index, blob := testutil.MakeResource(t, records)
	s, err := grp.New(index, blob)
	require.NoError(t, err)
	return s
}

func newScanner(t *testing.T, opts *kys.Options) *kys.Scanner {
	t.Helper()

	if opts == nil {
		opts = &kys.Options{}
	}
	if opts.Logger == nil {
		opts.Logger = discardLogger()
	}
	return kys.NewScanner(newStore(t, testEvents), newStore(t, testTalk), opts)
}

// TestScanner_FindRecordsContaining tests Scanner.FindRecordsContaining.
func TestScanner_FindRecordsContaining(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		query    kys.Query
		expected []int
	}{
		{
			name:     "single match",
			query:    kys.Query{Text: "知道"},
			expected: []int{0},
		},
		{
			name:     "ascii",
			query:    kys.Query{Text: "ell"},
			expected: []int{1},
		},
		{
			name:     "case sensitive",
			query:    kys.Query{Text: "HELLO"},
			expected: nil,
		},
		{
			name:     "no match",
			query:    kys.Query{Text: "金先生"},
			expected: nil,
		},
		{
			name:     "empty query matches all",
			query:    kys.Query{Text: ""},
			expected: []int{0, 1, 2, 3},
		},
		{
			name: "encoding override",
			query: kys.Query{
				Text:      "Öª",
				Encodings: []textenc.Encoding{textenc.Latin1},
			},
			expected: []int{0},
		},
	}

	s := newScanner(t, nil)
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			got, err := s.FindRecordsContaining(test.query)
			require.NoError(t, err)

			if diff := cmp.Diff(test.expected, got); diff != "" {
				t.Errorf("FindRecordsContaining (-want, +got):\n%s", diff)
			}
		})
	}
}

// TestScanner_FindRecordsContaining_skips tests that records that cannot be
// decoded do not stop the search.
func TestScanner_FindRecordsContaining_skips(t *testing.T) {
	t.Parallel()

	var logs bytes.Buffer
	talk := newStore(t, [][]byte{
		[]byte("\xff\xff"),
		[]byte("\xc4\xe3\xba\xc3"),
	})
	s := kys.NewScanner(nil, talk, &kys.Options{
		Text: textenc.New(&textenc.Options{
			Encodings: []textenc.Encoding{textenc.GBK},
		}),
		Logger: slog.New(slog.NewTextHandler(&logs, nil)),
	})

	got, err := s.FindRecordsContaining(kys.Query{Text: "你"})
	require.NoError(t, err)

	if diff := cmp.Diff([]int{1}, got); diff != "" {
		t.Errorf("FindRecordsContaining (-want, +got):\n%s", diff)
	}
	if !strings.Contains(logs.String(), "skipping talk record") {
		t.Errorf("expected skipped record to be logged, got %q", logs.String())
	}

	_, err = s.FindEventsReferencing(context.Background(), []int{1})
	require.ErrorIs(t, err, kys.ErrNoResource)
}

// TestScanner_FindEventsReferencing tests Scanner.FindEventsReferencing.
func TestScanner_FindEventsReferencing(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		talk     []int
		expected []kys.CrossReference
	}{
		{
			name: "dialogue",
			talk: []int{0},
			expected: []kys.CrossReference{
				{EventID: 1, Event: 0, Offset: 0, Opcode: 1, TalkID: 1, Talk: 0},
			},
		},
		{
			name: "multiple in one event",
			talk: []int{2},
			expected: []kys.CrossReference{
				{EventID: 2, Event: 1, Offset: 0, Opcode: 68, TalkID: 3, Talk: 2},
				{EventID: 2, Event: 1, Offset: 8, Opcode: 1, TalkID: 3, Talk: 2},
			},
		},
		{
			name: "truncated instruction is not a reference",
			talk: []int{3},
			expected: []kys.CrossReference{
				{EventID: 5, Event: 4, Offset: 0, Opcode: 70, TalkID: 4, Talk: 3},
			},
		},
		{
			name:     "unreferenced",
			talk:     []int{1},
			expected: nil,
		},
		{
			name:     "empty",
			talk:     nil,
			expected: nil,
		},
	}

	for _, concurrency := range []int{1, 4} {
		s := newScanner(t, &kys.Options{Concurrency: concurrency})
		for _, test := range tests {
			t.Run(test.name, func(t *testing.T) {
				t.Parallel()

				got, err := s.FindEventsReferencing(context.Background(), test.talk)
				require.NoError(t, err)

				if diff := cmp.Diff(test.expected, got); diff != "" {
					t.Errorf("FindEventsReferencing (-want, +got):\n%s", diff)
				}
			})
		}
	}
}

// TestScanner_FindEventsReferencing_table tests cross-referencing with a
// custom opcode table.
func TestScanner_FindEventsReferencing_table(t *testing.T) {
	t.Parallel()

	table, err := script.NewTable(
		script.Opcode{Code: 1, Operands: 2, Talk: &script.TalkRef{Operand: 0}},
		script.Opcode{Code: 9, Operands: 1},
	)
	require.NoError(t, err)

	events := newStore(t, [][]byte{
		testutil.Words(9, 1, 1, 1, 7),
		testutil.Words(1, 1, 0),
	})
	talk := newStore(t, [][]byte{
		[]byte("abc"),
		[]byte("xyz"),
	})

	s := kys.NewScanner(events, talk, &kys.Options{
		Table:  table,
		Logger: discardLogger(),
	})

	ids, refs, err := s.Search(context.Background(), kys.Query{Text: "y"})
	require.NoError(t, err)

	if diff := cmp.Diff([]int{1}, ids); diff != "" {
		t.Errorf("Search ids (-want, +got):\n%s", diff)
	}

	expected := []kys.CrossReference{
		{EventID: 1, Event: 0, Offset: 2, Opcode: 1, TalkID: 1, Talk: 1},
		{EventID: 2, Event: 1, Offset: 0, Opcode: 1, TalkID: 1, Talk: 1},
	}
	if diff := cmp.Diff(expected, refs); diff != "" {
		t.Errorf("Search refs (-want, +got):\n%s", diff)
	}

	// TalkRefs override the table.
	s = kys.NewScanner(events, talk, &kys.Options{
		Table: table,
		TalkRefs: map[int16]script.TalkRef{
			9: {Operand: 0},
		},
		Logger: discardLogger(),
	})
	refs, err = s.FindEventsReferencing(context.Background(), []int{1})
	require.NoError(t, err)

	expected = []kys.CrossReference{
		{EventID: 1, Event: 0, Offset: 0, Opcode: 9, TalkID: 1, Talk: 1},
	}
	if diff := cmp.Diff(expected, refs); diff != "" {
		t.Errorf("FindEventsReferencing (-want, +got):\n%s", diff)
	}
}

// TestScanner_FindEventsReferencing_badRecord tests that a malformed event
// record is skipped.
func TestScanner_FindEventsReferencing_badRecord(t *testing.T) {
	t.Parallel()

	blob := testutil.Words(1, 1, 0, 0)
	events, err := grp.New(testutil.MakeIndex([]uint32{0, 100, 0}), blob)
	require.NoError(t, err)

	var logs bytes.Buffer
	s := kys.NewScanner(events, newStore(t, testTalk), &kys.Options{
		Logger: slog.New(slog.NewTextHandler(&logs, nil)),
	})

	refs, err := s.FindEventsReferencing(context.Background(), []int{0})
	require.NoError(t, err)

	// Records 0 and 1 run past the blob. Record 2 is the whole blob.
	expected := []kys.CrossReference{
		{EventID: 3, Event: 2, Offset: 0, Opcode: 1, TalkID: 1, Talk: 0},
	}
	if diff := cmp.Diff(expected, refs); diff != "" {
		t.Errorf("FindEventsReferencing (-want, +got):\n%s", diff)
	}
	if got := strings.Count(logs.String(), "skipping event record"); got != 2 {
		t.Errorf("expected 2 skipped records to be logged, got %d: %q", got, logs.String())
	}
}

// TestScanner_FindEventsReferencing_canceled tests cancellation.
func TestScanner_FindEventsReferencing_canceled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	s := newScanner(t, nil)
	_, err := s.FindEventsReferencing(ctx, []int{0})
	require.ErrorIs(t, err, context.Canceled)
}

// TestByEvent tests ByEvent.
func TestByEvent(t *testing.T) {
	t.Parallel()

	refs := []kys.CrossReference{
		{EventID: 2, TalkID: 3},
		{EventID: 2, TalkID: 9},
		{EventID: 5, TalkID: 4},
	}

	expected := map[int]int16{
		2: 9,
		5: 4,
	}
	if diff := cmp.Diff(expected, kys.ByEvent(refs)); diff != "" {
		t.Errorf("ByEvent (-want, +got):\n%s", diff)
	}
}

// TestScanner_Dump tests Scanner.Dump.
func TestScanner_Dump(t *testing.T) {
	t.Parallel()

	s := newScanner(t, nil)

	got, err := s.Dump(1)
	require.NoError(t, err)

	expected := []kys.TraceLine{
		{Offset: 0, Opcode: 68, Operands: []int16{5, 3, 0, 0, 0, 0, 0}, Mnemonic: "NewTalk0"},
		{Offset: 8, Opcode: 1, Operands: []int16{3, 0, 0}, Mnemonic: "Dialogue"},
		{Offset: 12, Opcode: 0, Mnemonic: "Redraw"},
	}
	if diff := cmp.Diff(expected, got); diff != "" {
		t.Errorf("Dump (-want, +got):\n%s", diff)
	}
	if len(got) != len(expected) {
		return
	}

	if diff := cmp.Diff("[0008] Op: 1 (Dialogue) Args: [3 0 0]", got[1].String()); diff != "" {
		t.Errorf("String (-want, +got):\n%s", diff)
	}
	if diff := cmp.Diff("[0012] Op: 0 (Redraw)", got[2].String()); diff != "" {
		t.Errorf("String (-want, +got):\n%s", diff)
	}
}

// TestScanner_Dump_truncated tests Scanner.Dump on a truncated script.
func TestScanner_Dump_truncated(t *testing.T) {
	t.Parallel()

	events := newStore(t, [][]byte{
		testutil.Words(13, 99, 1, 4),
	})
	s := kys.NewScanner(events, nil, &kys.Options{Logger: discardLogger()})

	got, err := s.Dump(0)
	require.ErrorIs(t, err, script.ErrTruncated)

	expected := []kys.TraceLine{
		{Offset: 0, Opcode: 13, Mnemonic: "FadeIn"},
		{Offset: 1, Opcode: 99},
	}
	if diff := cmp.Diff(expected, got); diff != "" {
		t.Errorf("Dump (-want, +got):\n%s", diff)
	}
	if diff := cmp.Diff("[0001] Op: 99", got[1].String()); diff != "" {
		t.Errorf("String (-want, +got):\n%s", diff)
	}

	_, err = s.Dump(1)
	require.ErrorIs(t, err, grp.ErrRange)
}

// TestScanner_Text tests Scanner.Text.
func TestScanner_Text(t *testing.T) {
	t.Parallel()

	s := newScanner(t, nil)

	got, err := s.Text(2)
	require.NoError(t, err)

	expected := textenc.Result{Text: "孔堂主", Encoding: "gbk"}
	if diff := cmp.Diff(expected, got); diff != "" {
		t.Errorf("Text (-want, +got):\n%s", diff)
	}

	_, err = s.Text(len(testTalk))
	require.ErrorIs(t, err, grp.ErrRange)
}

// TestScanner_Logger tests that the Scanner reports skipped records to the
// logger it returns.
func TestScanner_Logger(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	s := newScanner(t, &kys.Options{Logger: logger})

	if s.Logger() != logger {
		t.Fatalf("Logger did not return the configured logger")
	}

	if got := kys.NewScanner(nil, nil, nil).Logger(); got != slog.Default() {
		t.Errorf("Logger: want slog.Default, got %v", got)
	}
}

// TestOpen tests Open.
func TestOpen(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	testutil.WriteResource(t, dir, "kdef", testEvents, &testutil.WriteOptions{Name: "Kdef"})
	testutil.WriteResource(t, dir, "talk", testTalk, &testutil.WriteOptions{DictZip: true})

	s, err := kys.Open(dir, &kys.Options{Logger: discardLogger()})
	require.NoError(t, err)

	ids, refs, err := s.Search(context.Background(), kys.Query{Text: "你好"})
	require.NoError(t, err)

	if diff := cmp.Diff([]int{3}, ids); diff != "" {
		t.Errorf("Search ids (-want, +got):\n%s", diff)
	}
	expected := []kys.CrossReference{
		{EventID: 5, Event: 4, Offset: 0, Opcode: 70, TalkID: 4, Talk: 3},
	}
	if diff := cmp.Diff(expected, refs); diff != "" {
		t.Errorf("Search refs (-want, +got):\n%s", diff)
	}

	_, err = kys.Open(t.TempDir(), nil)
	require.Error(t, err)
}
