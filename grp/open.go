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
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ianlewis/go-dictzip"
	"github.com/klauspost/compress/gzip"
)

var (
	idxExts = []string{".idx", ".IDX", ".idx.gz", ".IDX.gz", ".IDX.GZ"}
	grpExts = []string{".grp", ".GRP", ".grp.dz", ".GRP.dz", ".GRP.DZ"}
)

// Open opens the resource pair with the given base name (e.g. "kdef" or
// "talk") in dir. Both lower case and capitalized base names are tried, as
// are upper case and compressed extensions.
func Open(dir, name string) (*Store, error) {
	idxPath, err := findPath(dir, name, idxExts)
	if err != nil {
		return nil, fmt.Errorf("opening %s index: %w", name, err)
	}
	grpPath, err := findPath(dir, name, grpExts)
	if err != nil {
		return nil, fmt.Errorf("opening %s blob: %w", name, err)
	}
	return Load(idxPath, grpPath)
}

// Load reads an .idx file and its .grp blob fully into memory. Index files
// with a .gz extension are decompressed with gzip. Blob files with a .dz
// extension are decompressed with dictzip.
func Load(indexPath, blobPath string) (*Store, error) {
	index, err := readIndex(indexPath)
	if err != nil {
		return nil, err
	}
	blob, err := readBlob(blobPath)
	if err != nil {
		return nil, err
	}

	s, err := New(index, blob)
	if err != nil {
		return nil, fmt.Errorf("reading %q: %w", indexPath, err)
	}
	return s, nil
}

func readIndex(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %q: %w", path, err)
	}
	defer f.Close()

	var r io.Reader = f
	if strings.ToLower(filepath.Ext(path)) == ".gz" {
		z, err := gzip.NewReader(f)
		if err != nil {
			return nil, fmt.Errorf("opening %q: %w", path, err)
		}
		defer z.Close()
		r = z
	}

	b, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading %q: %w", path, err)
	}
	return b, nil
}

func readBlob(path string) ([]byte, error) {
	if strings.ToLower(filepath.Ext(path)) != ".dz" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading %q: %w", path, err)
		}
		return b, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %q: %w", path, err)
	}
	defer f.Close()

	z, err := dictzip.NewReader(f)
	if err != nil {
		return nil, fmt.Errorf("opening %q: %w", path, err)
	}

	b, err := io.ReadAll(z)
	if err != nil {
		return nil, fmt.Errorf("reading %q: %w", path, err)
	}
	return b, nil
}

// findPath returns the first existing file in dir named name plus one of
// exts. The capitalized name is tried after the name as given.
func findPath(dir, name string, exts []string) (string, error) {
	names := []string{name}
	if c := capitalize(name); c != name {
		names = append(names, c)
	}

	for _, n := range names {
		for _, ext := range exts {
			p := filepath.Join(dir, n+ext)
			_, err := os.Stat(p)
			if err == nil {
				return p, nil
			}
			if !errors.Is(err, os.ErrNotExist) {
				return "", fmt.Errorf("stat %q: %w", p, err)
			}
		}
	}

	return "", fmt.Errorf("%w: no %s file in %q", os.ErrNotExist, strings.Join(exts, "/"), dir)
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
