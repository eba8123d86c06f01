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

// option configures a Table while it is being constructed by New.
type option[K comparable, V any] interface {
	apply(t *Table[K, V])
}

type hasherOption[K comparable, V any] struct {
	hash Hasher[K]
}

func (o hasherOption[K, V]) apply(t *Table[K, V]) { t.hash = o.hash }

// WithHasher overrides the default Hasher[K] New would otherwise resolve.
// Required for any K outside {uint64, string}; also useful to swap in an
// alternate hash algorithm (e.g. xxhash, see bench_test.go) for one of the
// two supported kinds.
func WithHasher[K comparable, V any](hash Hasher[K]) option[K, V] {
	return hasherOption[K, V]{hash}
}

type loadFactorOption[K comparable, V any] struct {
	loadFactor float64
}

func (o loadFactorOption[K, V]) apply(t *Table[K, V]) { t.loadFactor = o.loadFactor }

// WithLoadFactor overrides the default 0.875 load-factor rebuild
// threshold (spec.md §4.6).
func WithLoadFactor[K comparable, V any](loadFactor float64) option[K, V] {
	return loadFactorOption[K, V]{loadFactor}
}

type reporterOption[K comparable, V any] struct {
	reporter Reporter
}

func (o reporterOption[K, V]) apply(t *Table[K, V]) { t.reporter = o.reporter }

// WithReporter overrides the default Reporter (spec.md §6's
// "Assertion/log sink" collaborator).
func WithReporter[K comparable, V any](r Reporter) option[K, V] {
	return reporterOption[K, V]{r}
}

type capacityOption[K comparable, V any] struct {
	capacity int
}

func (o capacityOption[K, V]) apply(t *Table[K, V]) { t.initialCapacity = o.capacity }

// WithCapacity overrides the default initial capacity of 1024. A capacity
// of zero or less is ignored: New then uses the default.
func WithCapacity[K comparable, V any](capacity int) option[K, V] {
	return capacityOption[K, V]{capacity}
}

type allocatorOption[K comparable, V any] struct {
	allocator Allocator[K, V]
}

func (o allocatorOption[K, V]) apply(t *Table[K, V]) { t.allocator = o.allocator }

// WithAllocator overrides the default make()-backed Allocator.
func WithAllocator[K comparable, V any](a Allocator[K, V]) option[K, V] {
	return allocatorOption[K, V]{a}
}

// Allocator is the storage-allocation seam spec.md §6 names: "standard raw
// array allocation/deallocation". A custom Allocator can back the slot and
// control arrays with pooled or arena memory without the probing engine
// needing to know.
type Allocator[K comparable, V any] interface {
	// AllocSlots returns a slice equivalent to make([]slot[K,V], n).
	AllocSlots(n int) []slot[K, V]
	// AllocControls returns a slice equivalent to make([]ctrl, n), with
	// every byte set to ctrlEmpty.
	AllocControls(n int) []ctrl
}

type defaultAllocator[K comparable, V any] struct{}

func (defaultAllocator[K, V]) AllocSlots(n int) []slot[K, V] {
	return make([]slot[K, V], n)
}

func (defaultAllocator[K, V]) AllocControls(n int) []ctrl {
	ctrls := make([]ctrl, n)
	for i := range ctrls {
		ctrls[i] = ctrlEmpty
	}
	return ctrls
}
