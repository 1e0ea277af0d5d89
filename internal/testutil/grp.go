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

// Package testutil builds .idx/.grp fixtures for tests.
package testutil

import (
	"encoding/binary"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/ianlewis/go-dictzip"
	"github.com/klauspost/compress/gzip"
)

// MakeIndex encodes offsets as a .idx file.
func MakeIndex(offsets []uint32) []byte {
	b := make([]byte, 0, 4*len(offsets))
	for _, o := range offsets {
		b = binary.LittleEndian.AppendUint32(b, o)
	}
	return b
}

// MakeResource lays records out back to back and returns the matching .idx
// and .grp contents.
func MakeResource(t testing.TB, records [][]byte) (index, blob []byte) {
	t.Helper()

	offsets := make([]uint32, 0, len(records))
	for _, r := range records {
		if len(blob) > math.MaxUint32 {
			t.Fatalf("blob too large: %d", len(blob))
		}
		//nolint:gosec // bounds checked above.
		offsets = append(offsets, uint32(len(blob)))
		blob = append(blob, r...)
	}
	return MakeIndex(offsets), blob
}

// WriteOptions are options for WriteResource.
type WriteOptions struct {
	// Name overrides the base name used for the files. Defaults to the name
	// passed to WriteResource.
	Name string

	// IdxExt is the .idx file extension. Defaults to ".idx", or ".idx.gz"
	// when Gzip is true.
	IdxExt string

	// GrpExt is the .grp file extension. Defaults to ".grp", or ".grp.dz"
	// when DictZip is true.
	GrpExt string

	// Gzip compresses the .idx file with gzip.
	Gzip bool

	// DictZip compresses the .grp file with dictzip.
	DictZip bool
}

func (o *WriteOptions) idxExt() string {
	if o.IdxExt != "" {
		return o.IdxExt
	}
	if o.Gzip {
		return ".idx.gz"
	}
	return ".idx"
}

func (o *WriteOptions) grpExt() string {
	if o.GrpExt != "" {
		return o.GrpExt
	}
	if o.DictZip {
		return ".grp.dz"
	}
	return ".grp"
}

// WriteResource writes records as a .idx/.grp pair in dir and returns the
// paths of the two files.
func WriteResource(t testing.TB, dir, name string, records [][]byte, opts *WriteOptions) (idxPath, grpPath string) {
	t.Helper()
	if opts == nil {
		opts = &WriteOptions{}
	}
	if opts.Name != "" {
		name = opts.Name
	}

	index, blob := MakeResource(t, records)

	idxPath = filepath.Join(dir, name+opts.idxExt())
	grpPath = filepath.Join(dir, name+opts.grpExt())

	writeFile(t, idxPath, index, opts.Gzip)

	if !opts.DictZip {
		writeFile(t, grpPath, blob, false)
		return idxPath, grpPath
	}

	f, err := os.Create(grpPath)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	z, err := dictzip.NewWriter(f)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := z.Write(blob); err != nil {
		t.Fatal(err)
	}
	if err := z.Close(); err != nil {
		t.Fatal(err)
	}

	return idxPath, grpPath
}

func writeFile(t testing.TB, path string, b []byte, gz bool) {
	t.Helper()

	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	if !gz {
		if _, err := f.Write(b); err != nil {
			t.Fatal(err)
		}
		return
	}

	z := gzip.NewWriter(f)
	if _, err := z.Write(b); err != nil {
		t.Fatal(err)
	}
	if err := z.Close(); err != nil {
		t.Fatal(err)
	}
}
