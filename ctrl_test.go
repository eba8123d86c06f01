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
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCtrlEncoding(t *testing.T) {
	require.True(t, ctrlEmpty.isEmpty())
	require.False(t, ctrlEmpty.isDeleted())
	require.False(t, ctrlEmpty.isOccupied())

	require.True(t, ctrlDeleted.isDeleted())
	require.False(t, ctrlDeleted.isEmpty())
	require.False(t, ctrlDeleted.isOccupied())

	require.NotEqual(t, ctrlEmpty, ctrlDeleted, "EMPTY and DELETED must be distinct sentinels")
}

func TestOccupiedCtrl(t *testing.T) {
	for h2 := 0; h2 < 128; h2++ {
		c := occupiedCtrl(uint8(h2))
		require.True(t, c.isOccupied())
		require.False(t, c.isEmpty())
		require.False(t, c.isDeleted())
		require.Equal(t, uint8(h2), uint8(c)&h2Mask)
	}
}
