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

// Package mask implements the byte mask applied to talk data by some game
// releases.
package mask

import (
	"golang.org/x/text/transform"
)

// XOR is a [transform.Transformer] that XORs every byte with a fixed key.
type XOR struct {
	Key byte
}

// Transform implements [transform.Transformer.Transform].
func (x XOR) Transform(dst, src []byte, _ bool) (int, int, error) {
	var err error
	n := len(src)
	if len(dst) < n {
		n = len(dst)
		err = transform.ErrShortDst
	}
	for i := range n {
		dst[i] = src[i] ^ x.Key
	}
	return n, n, err
}

// Reset implements [transform.Transformer.Reset].
func (XOR) Reset() {}
