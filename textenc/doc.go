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

// Package textenc decodes text stored in legacy multi-byte encodings.
//
// Talk and name records carry no encoding marker. Releases of the game exist
// in both simplified and traditional Chinese, so a Decoder tries a list of
// encodings in order and uses the first one that decodes every byte.
package textenc
