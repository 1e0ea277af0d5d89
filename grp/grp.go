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

package grp

import (
	"encoding/binary"
	"errors"
	"fmt"
)

// offsetSize is the size in bytes of a single .idx entry.
const offsetSize = 4

var (
	// ErrFormat indicates a malformed index or a record whose bounds do not
	// fit in the blob.
	ErrFormat = errors.New("malformed resource")

	// ErrRange indicates a record index outside of the index.
	ErrRange = errors.New("record index out of range")
)

// RecordError is an error reading a single record. Other records in the
// same Store are unaffected.
type RecordError struct {
	// Index is the 0-based record index.
	Index int

	// Start and End are the byte offsets read from the index.
	Start uint32
	End   uint32

	Err error
}

func (e *RecordError) Error() string {
	return fmt.Sprintf("record %d [%d, %d): %v", e.Index, e.Start, e.End, e.Err)
}

func (e *RecordError) Unwrap() error {
	return e.Err
}

// Record is a view of a single record in a .grp blob.
type Record struct {
	// Index is the 0-based record index.
	Index int

	// Start is the byte offset of the record in the blob.
	Start uint32

	// End is the byte offset one past the end of the record.
	End uint32

	// Data is the record payload. It shares memory with the Store and must
	// not be modified.
	Data []byte
}

// Len returns the record size in bytes.
func (r *Record) Len() int {
	return len(r.Data)
}

// Odd reports whether the record has an odd byte length. Script records are
// 16-bit word streams so an odd length indicates damaged data.
func (r *Record) Odd() bool {
	return len(r.Data)%2 != 0
}

// Store is an immutable in-memory .idx/.grp pair.
type Store struct {
	offsets []uint32
	blob    []byte
}

// New returns a new Store from raw .idx and .grp contents. The Store takes
// ownership of both slices.
func New(index, blob []byte) (*Store, error) {
	if len(index)%offsetSize != 0 {
		return nil, fmt.Errorf("%w: index size %d is not a multiple of %d", ErrFormat, len(index), offsetSize)
	}

	offsets := make([]uint32, len(index)/offsetSize)
	for i := range offsets {
		offsets[i] = binary.LittleEndian.Uint32(index[i*offsetSize:])
	}

	return &Store{
		offsets: offsets,
		blob:    blob,
	}, nil
}

// Count returns the number of records in the index.
func (s *Store) Count() int {
	return len(s.offsets)
}

// Size returns the size of the blob in bytes.
func (s *Store) Size() int {
	return len(s.blob)
}

// Range returns the byte span of record i. The last record extends to the
// end of the blob. A record whose bounds are reversed or run past the blob
// returns a *RecordError wrapping ErrFormat.
func (s *Store) Range(i int) (start, end uint32, err error) {
	if i < 0 || i >= len(s.offsets) {
		return 0, 0, fmt.Errorf("%w: %d not in [0, %d)", ErrRange, i, len(s.offsets))
	}

	start = s.offsets[i]
	if i+1 < len(s.offsets) {
		end = s.offsets[i+1]
	} else {
		//nolint:gosec // .grp files are addressed by 32-bit offsets.
		end = uint32(len(s.blob))
	}

	size := uint64(len(s.blob))
	switch {
	case uint64(start) > size || uint64(end) > size:
		return start, end, &RecordError{
			Index: i,
			Start: start,
			End:   end,
			Err:   fmt.Errorf("%w: record ends past blob size %d", ErrFormat, size),
		}
	case start > end:
		return start, end, &RecordError{
			Index: i,
			Start: start,
			End:   end,
			Err:   fmt.Errorf("%w: offsets decrease", ErrFormat),
		}
	}

	return start, end, nil
}

// Record returns record i.
func (s *Store) Record(i int) (*Record, error) {
	start, end, err := s.Range(i)
	if err != nil {
		return nil, err
	}
	return &Record{
		Index: i,
		Start: start,
		End:   end,
		Data:  s.blob[start:end:end],
	}, nil
}

// Validate checks the bounds of every record and returns one error per
// malformed record.
func (s *Store) Validate() []error {
	var errs []error
	for i := range s.offsets {
		if _, _, err := s.Range(i); err != nil {
			errs = append(errs, err)
		}
	}
	return errs
}
