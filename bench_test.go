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

import (
	"fmt"
	"testing"

	"github.com/cespare/xxhash"
	"pgregory.net/rand"
)

func benchSizes(f func(b *testing.B, n int)) func(b *testing.B) {
	return func(b *testing.B) {
		for _, n := range []int{8, 64, 1024, 65536} {
			b.Run(fmt.Sprintf("n=%d", n), func(b *testing.B) {
				f(b, n)
			})
		}
	}
}

func genUint64Keys(n int) []uint64 {
	r := rand.New(uint64(n))
	keys := make([]uint64, n)
	for i := range keys {
		keys[i] = r.Uint64()
	}
	return keys
}

func genStringKeys(n int) []string {
	r := rand.New(uint64(n))
	keys := make([]string, n)
	buf := make([]byte, 16)
	for i := range keys {
		r.Read(buf)
		keys[i] = fmt.Sprintf("%x", buf)
	}
	return keys
}

func xxhashUint64(k uint64) uint64 {
	var b [8]byte
	for i := range b {
		b[i] = byte(k >> (8 * i))
	}
	return xxhash.Sum64(b[:])
}

func xxhashString(k string) uint64 {
	return xxhash.Sum64([]byte(k))
}

// BenchmarkHasherUint64 compares the default FNV-1a Hasher[uint64] against
// an xxhash-backed one supplied via WithHasher.
func BenchmarkHasherUint64(b *testing.B) {
	b.Run("hash=fnv1a", benchSizes(func(b *testing.B, n int) {
		benchmarkInsertLookup(b, genUint64Keys(n), nil)
	}))
	b.Run("hash=xxhash", benchSizes(func(b *testing.B, n int) {
		benchmarkInsertLookup(b, genUint64Keys(n), Hasher[uint64](xxhashUint64))
	}))
}

// BenchmarkHasherString compares the default FNV-1a Hasher[string]
// against an xxhash.Sum64-backed one supplied via WithHasher.
func BenchmarkHasherString(b *testing.B) {
	b.Run("hash=fnv1a", benchSizes(func(b *testing.B, n int) {
		benchmarkInsertLookupString(b, genStringKeys(n), nil)
	}))
	b.Run("hash=xxhash", benchSizes(func(b *testing.B, n int) {
		benchmarkInsertLookupString(b, genStringKeys(n), Hasher[string](xxhashString))
	}))
}

func benchmarkInsertLookup(b *testing.B, keys []uint64, h Hasher[uint64]) {
	opts := []option[uint64, struct{}]{}
	if h != nil {
		opts = append(opts, WithHasher[uint64, struct{}](h))
	}
	for i := 0; i < b.N; i++ {
		tbl := New[uint64, struct{}](opts...)
		for _, k := range keys {
			tbl.Insert(k, struct{}{})
		}
		for _, k := range keys {
			tbl.Contains(k)
		}
	}
}

func benchmarkInsertLookupString(b *testing.B, keys []string, h Hasher[string]) {
	opts := []option[string, struct{}]{}
	if h != nil {
		opts = append(opts, WithHasher[string, struct{}](h))
	}
	for i := 0; i < b.N; i++ {
		tbl := New[string, struct{}](opts...)
		for _, k := range keys {
			tbl.Insert(k, struct{}{})
		}
		for _, k := range keys {
			tbl.Contains(k)
		}
	}
}

func BenchmarkRebuild(b *testing.B) {
	b.Run("n=65536", func(b *testing.B) {
		keys := genUint64Keys(65536)
		for i := 0; i < b.N; i++ {
			tbl := New[uint64, struct{}]()
			for _, k := range keys {
				tbl.Insert(k, struct{}{})
			}
		}
	})
}
