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

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/poiesic/recallit/ai"
	"github.com/poiesic/recallit/core"
	"github.com/poiesic/recallit/storage"
)

const (
	singleMeetingTopK = 5
	allMeetingsTopK   = 8
)

// Service answers questions about indexed meetings. It embeds the question,
// retrieves the most similar chunks within the caller's tenant scope,
// assembles them into grounding context and asks the generator for an answer
// constrained to that context.
type Service struct {
	vectors   storage.VectorIndex
	meetings  storage.MeetingRepository
	embedder  ai.Embedder
	generator ai.Generator
	logger    *slog.Logger
}

// Option configures a Service.
type Option func(*Service)

// WithLogger sets a custom logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger.With("component", "chat")
	}
}

// NewService creates a chat service. The meeting repository is optional;
// without it single-meeting answers fall back to generic title and date.
func NewService(vectors storage.VectorIndex, meetings storage.MeetingRepository, embedder ai.Embedder, generator ai.Generator, opts ...Option) (*Service, error) {
	if vectors == nil {
		return nil, ErrVectorIndexRequired
	}
	if embedder == nil {
		return nil, ErrEmbedderRequired
	}
	if generator == nil {
		return nil, ErrGeneratorRequired
	}

	s := &Service{
		vectors:   vectors,
		meetings:  meetings,
		embedder:  embedder,
		generator: generator,
		logger:    slog.Default().With("component", "chat"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Result is a grounded answer with the retrieved chunks it was based on.
type Result struct {
	Answer  string
	Sources []core.Source
}

// ChatWithMeeting answers a question scoped to one meeting. Retrieval is
// filtered to the caller's user id and the meeting id; an empty retrieval
// still invokes the model, which the system prompt instructs to report that
// nothing relevant was found.
func (s *Service) ChatWithMeeting(ctx context.Context, userID, meetingID, question string) (*Result, error) {
	if strings.TrimSpace(question) == "" {
		return nil, ErrEmptyQuestion
	}

	vector, err := s.embedder.EmbedText(ctx, question)
	if err != nil {
		return nil, err
	}

	results, err := s.vectors.QueryVectors(ctx, vector,
		storage.Filter{UserID: userID, MeetingID: meetingID}, singleMeetingTopK)
	if err != nil {
		return nil, err
	}

	title, date := s.meetingLabel(ctx, meetingID)

	answer, err := s.generator.Generate(ctx,
		meetingSystemPrompt(title, date),
		scaffoldMessages(buildMeetingContext(results), question))
	if err != nil {
		return nil, err
	}

	s.logger.Info("answered meeting question",
		"meetingID", meetingID, "retrieved", len(results))

	return &Result{Answer: answer, Sources: toSources(results)}, nil
}

// ChatWithAllMeetings answers a question across every meeting the user owns.
func (s *Service) ChatWithAllMeetings(ctx context.Context, userID, question string) (*Result, error) {
	if strings.TrimSpace(question) == "" {
		return nil, ErrEmptyQuestion
	}

	vector, err := s.embedder.EmbedText(ctx, question)
	if err != nil {
		return nil, err
	}

	results, err := s.vectors.QueryVectors(ctx, vector,
		storage.Filter{UserID: userID}, allMeetingsTopK)
	if err != nil {
		return nil, err
	}

	answer, err := s.generator.Generate(ctx,
		allMeetingsSystemPrompt(),
		scaffoldMessages(buildAllMeetingsContext(results), question))
	if err != nil {
		return nil, err
	}

	s.logger.Info("answered cross-meeting question",
		"userID", userID, "retrieved", len(results))

	return &Result{Answer: answer, Sources: toSources(results)}, nil
}

// meetingLabel looks up the meeting's title and date for the system prompt.
// The lookup is best-effort; a missing record falls back to placeholders
// rather than failing the chat.
func (s *Service) meetingLabel(ctx context.Context, meetingID string) (title, date string) {
	title, date = "Untitled Meeting", "Unknown"
	if s.meetings == nil {
		return title, date
	}

	meeting, err := s.meetings.GetMeeting(ctx, meetingID)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			s.logger.Warn("meeting lookup failed", "meetingID", meetingID, "err", err)
		}
		return title, date
	}

	if meeting.Title != "" {
		title = meeting.Title
	}
	if !meeting.StartedAt.IsZero() {
		date = meeting.StartedAt.Format("2006-01-02")
	}
	return title, date
}

func toSources(results []*core.RetrievalResult) []core.Source {
	sources := make([]core.Source, len(results))
	for i, result := range results {
		sources[i] = core.Source{
			MeetingID:    result.MeetingID,
			MeetingTitle: result.MeetingTitle,
			Content:      result.Content,
			SpeakerName:  result.SpeakerName,
			Confidence:   result.Confidence,
		}
	}
	return sources
}
