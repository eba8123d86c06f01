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

// probeSeq walks the groups of a table's control-byte array in the order
// spec.md §4.3 specifies: start at p = h1 mod capacity, and on a full
// group miss advance p by groupSize, wrapping at capacity. This is a
// linear walk at group granularity — simpler than (and a deliberate
// departure from) the teacher's quadratic probeSeq, because spec.md is
// normative on the exact stepping rule. See DESIGN.md.
type probeSeq struct {
	capacity int
	offset   int
}

func makeProbeSeq(h1 uint64, capacity int) probeSeq {
	return probeSeq{
		capacity: capacity,
		offset:   int(h1 % uint64(capacity)),
	}
}

func (s probeSeq) next() probeSeq {
	s.offset = (s.offset + groupSize) % s.capacity
	return s
}

// loadGroup returns a contiguous groupSize-length view of the control-byte
// array starting at p. When the window would run past the end of ctrls it
// is copied into scratch first, so callers always see a logically
// contiguous window — grounded on the reference source's
// m_temporary_metadata_bucket.
func loadGroup(ctrls []ctrl, scratch *[groupSize]ctrl, p int) []ctrl {
	n := len(ctrls)
	if p+groupSize <= n {
		return ctrls[p : p+groupSize]
	}
	for i := 0; i < groupSize; i++ {
		scratch[i] = ctrls[(p+i)%n]
	}
	return scratch[:]
}
