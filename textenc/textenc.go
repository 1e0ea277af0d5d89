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

package textenc

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/encoding/korean"
	"golang.org/x/text/encoding/simplifiedchinese"
	"golang.org/x/text/encoding/traditionalchinese"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/ianlewis/go-kys/internal/mask"
)

var (
	// ErrDecodeFailure indicates that none of the encodings could decode
	// the text.
	ErrDecodeFailure = errors.New("text decode failure")

	// ErrUnknownEncoding indicates an encoding name that Lookup does not
	// recognize.
	ErrUnknownEncoding = errors.New("unknown encoding")
)

// Encoding is a named text encoding.
type Encoding struct {
	Name     string
	Encoding encoding.Encoding
}

var (
	// GBK is the simplified Chinese encoding used by mainland releases.
	GBK = Encoding{Name: "gbk", Encoding: simplifiedchinese.GBK}

	// Big5 is the traditional Chinese encoding used by the original release.
	Big5 = Encoding{Name: "big5", Encoding: traditionalchinese.Big5}

	// Latin1 maps every byte to a rune and so never fails.
	Latin1 = Encoding{Name: "iso-8859-1", Encoding: charmap.ISO8859_1}

	// UTF8 is UTF-8.
	UTF8 = Encoding{Name: "utf-8", Encoding: unicode.UTF8}
)

var knownEncodings = map[string]Encoding{
	"gbk":        GBK,
	"cp936":      GBK,
	"gb2312":     GBK,
	"gb18030":    {Name: "gb18030", Encoding: simplifiedchinese.GB18030},
	"big5":       Big5,
	"cp950":      Big5,
	"shift_jis":  {Name: "shift_jis", Encoding: japanese.ShiftJIS},
	"sjis":       {Name: "shift_jis", Encoding: japanese.ShiftJIS},
	"euc-jp":     {Name: "euc-jp", Encoding: japanese.EUCJP},
	"euc-kr":     {Name: "euc-kr", Encoding: korean.EUCKR},
	"latin1":     Latin1,
	"iso-8859-1": Latin1,
	"utf-8":      UTF8,
	"utf8":       UTF8,
}

// Lookup returns the encoding with the given name. Names are case
// insensitive. Names not known to this package are resolved through the
// WHATWG encoding labels.
func Lookup(name string) (Encoding, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	if e, ok := knownEncodings[n]; ok {
		return e, nil
	}

	e, err := htmlindex.Get(n)
	if err != nil {
		return Encoding{}, fmt.Errorf("%w: %q", ErrUnknownEncoding, name)
	}
	return Encoding{Name: n, Encoding: e}, nil
}

// Options are options for a Decoder.
type Options struct {
	// Encodings are tried in order.
	Encodings []Encoding

	// Mask is XORed with every byte before decoding. Zero disables masking.
	Mask byte
}

// DefaultOptions tries GBK, then Big5, then Latin1.
var DefaultOptions = &Options{
	Encodings: []Encoding{GBK, Big5, Latin1},
}

// Result is successfully decoded text.
type Result struct {
	// Text is the decoded text.
	Text string

	// Encoding is the name of the encoding that decoded the text.
	Encoding string
}

// Decoder decodes text by trying several encodings. A Decoder is safe for
// concurrent use.
type Decoder struct {
	encodings []Encoding
	mask      byte
}

// New returns a new Decoder. If opts is nil, DefaultOptions is used. If
// opts has no encodings, the default encodings are used.
func New(opts *Options) *Decoder {
	if opts == nil {
		opts = DefaultOptions
	}
	d := &Decoder{
		encodings: append([]Encoding(nil), DefaultOptions.Encodings...),
		mask:      opts.Mask,
	}
	if len(opts.Encodings) > 0 {
		d.encodings = append([]Encoding(nil), opts.Encodings...)
	}
	return d
}

// WithEncodings returns a copy of the Decoder that tries encodings instead.
// An empty list returns the Decoder unchanged.
func (d *Decoder) WithEncodings(encodings []Encoding) *Decoder {
	if len(encodings) == 0 {
		return d
	}
	return &Decoder{
		encodings: append([]Encoding(nil), encodings...),
		mask:      d.mask,
	}
}

// Encodings returns the encodings in the order they are tried.
func (d *Decoder) Encodings() []Encoding {
	return append([]Encoding(nil), d.encodings...)
}

// Decode decodes b. A single trailing NUL byte is removed before decoding;
// other NUL bytes are kept.
func (d *Decoder) Decode(b []byte) (Result, error) {
	if d.mask != 0 {
		var err error
		b, _, err = transform.Bytes(mask.XOR{Key: d.mask}, b)
		if err != nil {
			return Result{}, fmt.Errorf("unmasking text: %w", err)
		}
	}

	if n := len(b); n > 0 && b[n-1] == 0 {
		b = b[:n-1]
	}

	for _, e := range d.encodings {
		if text, ok := decode(e.Encoding, b); ok {
			return Result{
				Text:     text,
				Encoding: e.Name,
			}, nil
		}
	}

	names := make([]string, 0, len(d.encodings))
	for _, e := range d.encodings {
		names = append(names, e.Name)
	}
	return Result{}, fmt.Errorf("%w: tried %s", ErrDecodeFailure, strings.Join(names, ", "))
}

// decode decodes b with e. The x/text decoders substitute U+FFFD for
// invalid input rather than failing, so output containing U+FFFD is rejected
// unless the input contains the encoded form of U+FFFD.
func decode(e encoding.Encoding, b []byte) (string, bool) {
	if e == unicode.UTF8 {
		if !utf8.Valid(b) {
			return "", false
		}
		return string(b), true
	}

	out, err := e.NewDecoder().Bytes(b)
	if err != nil {
		return "", false
	}

	if bytes.ContainsRune(out, utf8.RuneError) {
		rep, err := e.NewEncoder().Bytes([]byte(string(utf8.RuneError)))
		if err != nil || !bytes.Contains(b, rep) {
			return "", false
		}
	}

	return string(out), true
}
