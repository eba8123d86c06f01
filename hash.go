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

package swiss

const (
	fnvOffset64 uint64 = 0xcbf29ce484222325
	fnvPrime64  uint64 = 0x100000001b3
)

// Hasher is the hashing capability a Table requires of its key type. It is
// the Go rendering of spec.md's "polymorphic hashing interface over the
// key set {fixed-width integer, byte string}" — rather than enforce the
// two-kind restriction at compile time (not expressible generically
// without code generation), New resolves a default Hasher[K] for exactly
// uint64 and string, and WithHasher lets a caller supply any other
// Hasher[K] explicitly.
type Hasher[K comparable] func(key K) uint64

// HashUint64 computes the canonical FNV-1a hash of an unsigned 64-bit
// integer, iterating its 8 bytes least-significant-byte first.
func HashUint64(key uint64) uint64 {
	h := fnvOffset64
	for i := 0; i < 8; i++ {
		b := byte(key >> (8 * i))
		h = (h ^ uint64(b)) * fnvPrime64
	}
	return h
}

// HashBytes computes the canonical FNV-1a hash of a byte string.
func HashBytes(key string) uint64 {
	h := fnvOffset64
	for i := 0; i < len(key); i++ {
		h = (h ^ uint64(key[i])) * fnvPrime64
	}
	return h
}

// defaultHasher resolves the built-in Hasher[K] for the two key kinds
// spec.md names: fixed-width 64-bit integers and byte strings. It returns
// ok=false for any other K, which New reports as UnsupportedKey unless the
// caller supplied a Hasher[K] of their own via WithHasher.
func defaultHasher[K comparable]() (h Hasher[K], ok bool) {
	var zero K
	switch any(zero).(type) {
	case uint64:
		return func(k K) uint64 { return HashUint64(any(k).(uint64)) }, true
	case string:
		return func(k K) uint64 { return HashBytes(any(k).(string)) }, true
	default:
		return nil, false
	}
}

// splitHash divides a 64-bit hash into its H1 (probe start) and H2
// (fingerprint) components per spec.md §3: H1 is the low 57 bits, H2 is
// the high 7 bits.
func splitHash(h uint64) (h1 uint64, h2 uint8) {
	return h & (1<<57 - 1), uint8(h>>57) & h2Mask
}
