// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//	http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package badger

import "testing"

// NewMemoryStores opens an in-memory backend and returns the three stores
// built on it. The backend is closed automatically when the test ends.
func NewMemoryStores(t *testing.T) (*ChunkRepository, *MeetingRepository, *VectorIndex) {
	t.Helper()

	backend, err := OpenBackend("", true)
	if err != nil {
		t.Fatalf("failed to open in-memory backend: %v", err)
	}
	t.Cleanup(func() {
		_ = backend.Close()
	})

	return NewChunkRepository(backend), NewMeetingRepository(backend), NewVectorIndex(backend)
}
