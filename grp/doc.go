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

// Package grp implements reading paired .idx/.grp resource files.
//
// The .idx file is a flat array of little-endian unsigned 32-bit byte
// offsets. Each offset marks the start of a record in the companion .grp
// file. A record ends where the next one begins and the final record extends
// to the end of the .grp file.
//
// The same layout is shared by several resource kinds:
//  1. kdef: event scripts, a stream of little-endian 16-bit words.
//  2. talk: dialogue text in a legacy multi-byte encoding.
//  3. name: character names in the same encoding as talk.
//
// Records are addressed by 0-based index.
package grp
