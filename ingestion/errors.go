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

package ingestion

import "errors"

var (
	// ErrChunkRepositoryRequired is returned when a Pipeline is constructed
	// without a chunk repository.
	ErrChunkRepositoryRequired = errors.New("chunk repository is required")

	// ErrVectorIndexRequired is returned when a Pipeline is constructed
	// without a vector index.
	ErrVectorIndexRequired = errors.New("vector index is required")

	// ErrEmbedderRequired is returned when a Pipeline is constructed without
	// an embedder.
	ErrEmbedderRequired = errors.New("embedder is required")

	// ErrEmbeddingCountMismatch is returned when the embedder yields a
	// different number of vectors than texts submitted.
	ErrEmbeddingCountMismatch = errors.New("embedding count does not match chunk count")
)
