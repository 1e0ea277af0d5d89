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
	"errors"
	"fmt"
	"log/slog"
	"runtime"

	"github.com/ianlewis/go-kys/grp"
	"github.com/ianlewis/go-kys/script"
	"github.com/ianlewis/go-kys/textenc"
)

const (
	// EventResource is the base name of the event script resource.
	EventResource = "kdef"

	// TalkResource is the base name of the dialogue resource.
	TalkResource = "talk"
)

// ErrNoResource indicates that the Scanner was created without the resource
// needed for an operation.
var ErrNoResource = errors.New("resource not loaded")

// Options are options for a Scanner.
type Options struct {
	// Table is the opcode table used to decode event scripts. Defaults to
	// script.DefaultTable.
	Table *script.Table

	// TalkRefs maps dialogue-invoking opcodes to the operand holding the
	// talk id. Defaults to the talk references in Table.
	TalkRefs map[int16]script.TalkRef

	// Text decodes dialogue text. Defaults to textenc.New(nil).
	Text *textenc.Decoder

	// Logger receives reports of records that are skipped. Defaults to
	// slog.Default.
	Logger *slog.Logger

	// Concurrency is the number of event records decoded at once. Defaults
	// to GOMAXPROCS.
	Concurrency int
}

// Scanner cross-references event scripts and dialogue. A Scanner is safe
// for concurrent use.
type Scanner struct {
	events *grp.Store
	talk   *grp.Store

	table       *script.Table
	refs        map[int16]script.TalkRef
	text        *textenc.Decoder
	logger      *slog.Logger
	concurrency int
}

// NewScanner returns a new Scanner over the given event and talk resources.
// Either may be nil if the operations that need it are not used.
func NewScanner(events, talk *grp.Store, opts *Options) *Scanner {
	if opts == nil {
		opts = &Options{}
	}

	s := &Scanner{
		events:      events,
		talk:        talk,
		table:       opts.Table,
		refs:        opts.TalkRefs,
		text:        opts.Text,
		logger:      opts.Logger,
		concurrency: opts.Concurrency,
	}
	if s.table == nil {
		s.table = script.DefaultTable()
	}
	if s.refs == nil {
		s.refs = s.table.TalkRefs()
	}
	if s.text == nil {
		s.text = textenc.New(nil)
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	if s.concurrency <= 0 {
		s.concurrency = runtime.GOMAXPROCS(0)
	}
	return s
}

// Open loads the event and talk resources from the resource directory dir.
func Open(dir string, opts *Options) (*Scanner, error) {
	events, err := grp.Open(dir, EventResource)
	if err != nil {
		return nil, fmt.Errorf("loading events: %w", err)
	}
	talk, err := grp.Open(dir, TalkResource)
	if err != nil {
		return nil, fmt.Errorf("loading talk: %w", err)
	}
	return NewScanner(events, talk, opts), nil
}

// Events returns the event script resource.
func (s *Scanner) Events() *grp.Store {
	return s.events
}

// Talk returns the dialogue resource.
func (s *Scanner) Talk() *grp.Store {
	return s.talk
}

// Logger returns the logger that receives reports of skipped records.
func (s *Scanner) Logger() *slog.Logger {
	return s.logger
}

// Table returns the opcode table used to decode event scripts.
func (s *Scanner) Table() *script.Table {
	return s.table
}

// Text decodes talk record i.
func (s *Scanner) Text(i int) (textenc.Result, error) {
	if s.talk == nil {
		return textenc.Result{}, fmt.Errorf("%w: %s", ErrNoResource, TalkResource)
	}
	return s.decodeTalk(s.text, i)
}

func (s *Scanner) decodeTalk(d *textenc.Decoder, i int) (textenc.Result, error) {
	rec, err := s.talk.Record(i)
	if err != nil {
		return textenc.Result{}, fmt.Errorf("reading talk record: %w", err)
	}
	res, err := d.Decode(rec.Data)
	if err != nil {
		return textenc.Result{}, fmt.Errorf("talk record %d: %w", i, err)
	}
	return res, nil
}
