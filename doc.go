// Copyright 2024 The Cockroach Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package swiss implements a flat, open-addressed hash table using a
// Swiss-table-style metadata array, as described by
// https://abseil.io/about/design/swisstables.
//
// Every slot in the table has a matching one-byte entry in a parallel
// control-byte array. The control byte is either EMPTY, DELETED
// (a tombstone), or OCCUPIED-with-fingerprint: an occupied slot's control
// byte carries the high 7 bits of its key's hash ("H2"), which lets a
// lookup reject most non-matching slots without touching the slot array
// at all. The low 57 bits of the hash ("H1") select where a key's probe
// sequence starts.
//
// Lookups, insertions, and deletions scan the control-byte array 16 bytes
// at a time ("a group"), compute a 16-bit match mask for the group, and
// only fall through to a key comparison on slots whose control byte
// fingerprint-matches. On a full miss — no fingerprint match and no empty
// slot in the group — the probe walk advances to the next group of 16,
// wrapping at the end of the array. A small scratch buffer presents a
// logically contiguous 16-byte window when a probe position is close
// enough to the end of the array that the group would otherwise run off
// the end.
//
// A Table grows by doubling whenever inserting one more element would
// bring it up to its load factor (7/8 by default). A rebuild allocates fresh
// slot and control arrays at double the old capacity, re-probes every
// occupied slot into the new arrays, and discards the old ones — which
// also clears out any accumulated tombstones.
//
// A Table is not safe for concurrent use. Mutating the table invalidates
// any outstanding Iterator. Running this package's tests under
// `go test -race` with concurrent callers is expected to fail: that is a
// documented non-goal, not a defect — callers needing concurrent access
// must provide their own synchronization.
package swiss
