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

package recallit

import (
	"io"
	"log/slog"

	"github.com/poiesic/recallit/ai"
	"github.com/poiesic/recallit/ai/openai"
	"github.com/poiesic/recallit/chat"
	"github.com/poiesic/recallit/ingestion"
	"github.com/poiesic/recallit/reconcile"
	"github.com/poiesic/recallit/storage"
	"github.com/poiesic/recallit/storage/badger"
)

// Database bundles the storage backend, its repositories and the AI provider
// behind one open/close lifecycle, and acts as the factory for the indexing
// pipeline, the chat service and the reconciliation sweeper.
type Database struct {
	backend     *badger.Backend
	chunkRepo   storage.ChunkRepository
	meetingRepo storage.MeetingRepository
	vectorIndex storage.VectorIndex
	provider    ai.Provider
	logger      *slog.Logger
}

// DatabaseOption configures a Database.
type DatabaseOption func(*databaseOptions)

type databaseOptions struct {
	aiConfig *ai.Config
}

// WithAIConfig overrides the default AI provider configuration.
func WithAIConfig(config *ai.Config) DatabaseOption {
	return func(o *databaseOptions) {
		o.aiConfig = config
	}
}

// NewDatabase opens a database at filePath and wires its components.
func NewDatabase(filePath string, opts ...DatabaseOption) (*Database, error) {
	options := &databaseOptions{
		aiConfig: ai.DefaultConfig(),
	}
	for _, opt := range opts {
		opt(options)
	}

	backend, err := badger.OpenBackend(filePath, false)
	if err != nil {
		return nil, err
	}

	provider, err := openai.NewProvider(options.aiConfig)
	if err != nil {
		backend.Close()
		return nil, err
	}

	return &Database{
		backend:     backend,
		chunkRepo:   badger.NewChunkRepository(backend),
		meetingRepo: badger.NewMeetingRepository(backend),
		vectorIndex: badger.NewVectorIndex(backend),
		provider:    provider,
		logger:      slog.Default(),
	}, nil
}

// Close releases the AI provider and the storage backend.
func (db *Database) Close() error {
	if err := db.provider.Close(); err != nil {
		db.logger.Error("error closing AI provider", "err", err)
	}

	if err := db.chunkRepo.Close(); err != nil {
		db.logger.Error("error closing chunk repository", "err", err)
		return err
	}
	if err := db.meetingRepo.Close(); err != nil {
		db.logger.Error("error closing meeting repository", "err", err)
		return err
	}
	if err := db.vectorIndex.Close(); err != nil {
		db.logger.Error("error closing vector index", "err", err)
		return err
	}

	if err := db.backend.Close(); err != nil {
		db.logger.Error("error closing backend storage", "err", err)
		return err
	}
	return nil
}

func (db *Database) ChunkRepository() storage.ChunkRepository {
	return db.chunkRepo
}

func (db *Database) MeetingRepository() storage.MeetingRepository {
	return db.meetingRepo
}

func (db *Database) VectorIndex() storage.VectorIndex {
	return db.vectorIndex
}

func (db *Database) NewIngestionPipeline(opts ...ingestion.Option) (*ingestion.Pipeline, error) {
	return ingestion.NewPipeline(db.chunkRepo, db.vectorIndex, db.provider.Embedder(), opts...)
}

func (db *Database) NewChatService(opts ...chat.Option) (*chat.Service, error) {
	return chat.NewService(db.vectorIndex, db.meetingRepo, db.provider.Embedder(), db.provider.Generator(), opts...)
}

func (db *Database) NewSweeper(config *reconcile.Config, progress io.Writer) (*reconcile.Sweeper, error) {
	return reconcile.NewSweeper(db.chunkRepo, db.meetingRepo, db.vectorIndex, db.provider.Embedder(), config, progress)
}
