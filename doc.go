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

// Package kys implements a library for reading the event scripts and
// dialogue of the Jin Yong Qunxia Zhuan (KYS) game engine in pure Go.
//
// Game resources come in .idx/.grp pairs (see package grp):
//  1. kdef.idx/kdef.grp contain event scripts, one record per event. Each
//     record is a stream of 16-bit instructions (see package script).
//  2. talk.idx/talk.grp contain dialogue text, one record per line of
//     dialogue, in a legacy Chinese encoding (see package textenc).
//
// Event scripts refer to dialogue by talk id. A Scanner searches dialogue
// text and finds the events that display it.
//
// Record indexes are 0-based throughout. Event ids, as used by scene data
// and shown to users, are 1-based: event id N is kdef record N-1.
package kys
