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

package chat

import "errors"

var (
	// ErrVectorIndexRequired is returned when a Service is constructed
	// without a vector index.
	ErrVectorIndexRequired = errors.New("vector index is required")

	// ErrEmbedderRequired is returned when a Service is constructed without
	// an embedder.
	ErrEmbedderRequired = errors.New("embedder is required")

	// ErrGeneratorRequired is returned when a Service is constructed without
	// a generator.
	ErrGeneratorRequired = errors.New("generator is required")

	// ErrEmptyQuestion is returned when the question is empty or whitespace.
	ErrEmptyQuestion = errors.New("question must not be empty")
)
