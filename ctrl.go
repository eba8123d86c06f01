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

// ctrl is the one-byte control state for a single slot:
//
//	   empty: 1 0 0 0 0 0 0 0
//	 deleted: 1 1 1 1 1 1 1 0
//	occupied: 0 h h h h h h h  // h is the 7-bit H2 fingerprint
//
// EMPTY and DELETED both set the high bit so that a fingerprint match
// (which only ever compares against the low 7 bits of an occupied byte)
// can never accidentally match an unoccupied slot. Unlike the reference
// source this package's EMPTY and DELETED sentinels are distinct values,
// which is required for tombstones to not terminate a probe.
type ctrl uint8

const (
	ctrlEmpty   ctrl = 0b1000_0000
	ctrlDeleted ctrl = 0b1111_1110

	h2Mask = 0b0111_1111
)

func (c ctrl) isEmpty() bool    { return c == ctrlEmpty }
func (c ctrl) isDeleted() bool  { return c == ctrlDeleted }
func (c ctrl) isOccupied() bool { return c&0b1000_0000 == 0 }

// occupiedCtrl builds the control byte for a slot occupied by a key whose
// fingerprint is h2.
func occupiedCtrl(h2 uint8) ctrl {
	return ctrl(h2 & h2Mask)
}
