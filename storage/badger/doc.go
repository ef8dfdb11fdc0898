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

// Package badger provides BadgerDB-backed implementations of the storage
// repositories and the vector index.
//
// All records live in a single Badger instance under typed key prefixes.
// Chunk keys embed their index in BigEndian so prefix iteration returns a
// transcript in order, and vector entries carry a per-user index key so
// similarity queries never scan outside the querying user's data.
package badger
