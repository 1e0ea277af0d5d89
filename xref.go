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
	"context"
	"fmt"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/ianlewis/go-kys/script"
	"github.com/ianlewis/go-kys/textenc"
)

// Query is a dialogue text search.
type Query struct {
	// Text is matched as a case-sensitive substring of the decoded text.
	Text string

	// Encodings overrides the Scanner's encoding order when not empty.
	Encodings []textenc.Encoding
}

// CrossReference is an instruction in an event script that displays a talk
// record.
type CrossReference struct {
	// EventID is the 1-based event id.
	EventID int

	// Event is the 0-based kdef record index.
	Event int

	// Offset is the word offset of the instruction in the event script.
	Offset int

	// Opcode is the instruction opcode.
	Opcode int16

	// TalkID is the talk id operand as stored in the script.
	TalkID int16

	// Talk is the 0-based talk record index TalkID refers to.
	Talk int
}

// FindRecordsContaining returns the 0-based indexes of talk records whose
// text contains q.Text. Records that cannot be read or decoded are logged
// and skipped.
func (s *Scanner) FindRecordsContaining(q Query) ([]int, error) {
	if s.talk == nil {
		return nil, fmt.Errorf("%w: %s", ErrNoResource, TalkResource)
	}

	d := s.text.WithEncodings(q.Encodings)

	var found []int
	for i := range s.talk.Count() {
		res, err := s.decodeTalk(d, i)
		if err != nil {
			s.logger.Warn("skipping talk record", "record", i, "err", err)
			continue
		}
		if strings.Contains(res.Text, q.Text) {
			found = append(found, i)
		}
	}
	return found, nil
}

// FindEventsReferencing returns every dialogue-invoking instruction in the
// event scripts whose talk record is one of talk. Results are ordered by
// event and then by offset. Records that cannot be read are logged and
// skipped; only cancellation of ctx stops the scan.
func (s *Scanner) FindEventsReferencing(ctx context.Context, talk []int) ([]CrossReference, error) {
	if s.events == nil {
		return nil, fmt.Errorf("%w: %s", ErrNoResource, EventResource)
	}

	want := make(map[int]struct{}, len(talk))
	for _, t := range talk {
		want[t] = struct{}{}
	}
	if len(want) == 0 {
		return nil, nil
	}

	results := make([][]CrossReference, s.events.Count())

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)
	for i := range s.events.Count() {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = s.scanEvent(i, want)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("scanning events: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("scanning events: %w", err)
	}

	var refs []CrossReference
	for _, r := range results {
		refs = append(refs, r...)
	}
	return refs, nil
}

func (s *Scanner) scanEvent(i int, want map[int]struct{}) []CrossReference {
	rec, err := s.events.Record(i)
	if err != nil {
		s.logger.Warn("skipping event record", "event", i+1, "err", err)
		return nil
	}

	var refs []CrossReference
	sc := script.NewScanner(rec.Data, s.table)
	for sc.Scan() {
		inst := sc.Instruction()
		ref, ok := s.refs[inst.Opcode]
		if !ok {
			continue
		}
		id, talk, ok := ref.Record(inst)
		if !ok {
			continue
		}
		if _, ok := want[talk]; !ok {
			continue
		}
		refs = append(refs, CrossReference{
			EventID: i + 1,
			Event:   i,
			Offset:  inst.Offset,
			Opcode:  inst.Opcode,
			TalkID:  id,
			Talk:    talk,
		})
	}
	if err := sc.Err(); err != nil {
		s.logger.Debug("event script ends early", "event", i+1, "err", err)
	}
	return refs
}

// ByEvent maps event ids to talk ids. When an event refers to more than one
// talk record the last reference wins.
func ByEvent(refs []CrossReference) map[int]int16 {
	m := make(map[int]int16, len(refs))
	for _, r := range refs {
		m[r.EventID] = r.TalkID
	}
	return m
}

// Search finds the talk records matching q and the events referencing them.
func (s *Scanner) Search(ctx context.Context, q Query) ([]int, []CrossReference, error) {
	talk, err := s.FindRecordsContaining(q)
	if err != nil {
		return nil, nil, err
	}
	refs, err := s.FindEventsReferencing(ctx, talk)
	if err != nil {
		return talk, nil, err
	}
	return talk, refs, nil
}
