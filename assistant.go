// Copyright 2025 Poiesic Systems
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


// Package supportai wires the support assistant pipeline together.
//
// An Assistant answers a shopper's question by harvesting the site corpus
// (once per process), ranking it against the question, asking the answer
// generator and recording the exchange in the message store.
package supportai

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/poiesic/supportai/core"
	"github.com/poiesic/supportai/rank"
	"github.com/poiesic/supportai/storage"
)

// ContextSource supplies the harvested site corpus.
type ContextSource interface {
	SiteContext(ctx context.Context) ([]core.ContextPart, error)
}

// AnswerGenerator produces an answer for a question and its context.
type AnswerGenerator interface {
	Generate(ctx context.Context, query, relevantContext string) (string, error)
}

// Assistant runs prompts through harvest, ranking and generation.
// It is safe for concurrent use.
type Assistant struct {
	corpus    ContextSource
	generator AnswerGenerator
	messages  storage.MessageRepository
	clock     func() time.Time
	logger    *slog.Logger
	closers   []func() error
}

// Option configures an Assistant.
type Option func(*Assistant) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(a *Assistant) error {
		if logger == nil {
			logger = slog.Default()
		}
		a.logger = logger.With("component", "assistant")
		return nil
	}
}

// WithClock sets the time source used to stamp messages.
// Default is time.Now in UTC.
func WithClock(clock func() time.Time) Option {
	return func(a *Assistant) error {
		if clock != nil {
			a.clock = clock
		}
		return nil
	}
}

// NewAssistant creates an assistant. messages may be nil, in which case
// exchanges are not recorded and History returns ErrHistoryUnavailable.
func NewAssistant(corpus ContextSource, generator AnswerGenerator, messages storage.MessageRepository, opts ...Option) (*Assistant, error) {
	if corpus == nil {
		return nil, ErrHarvesterRequired
	}
	if generator == nil {
		return nil, ErrGeneratorRequired
	}

	a := &Assistant{
		corpus:    corpus,
		generator: generator,
		messages:  messages,
		clock:     func() time.Time { return time.Now().UTC() },
		logger:    slog.Default().With("component", "assistant"),
	}

	for _, opt := range opts {
		if err := opt(a); err != nil {
			return nil, err
		}
	}

	return a, nil
}

// Ask answers content on behalf of userID and returns the stored AI message.
//
// The prompt and the answer are recorded once an answer exists. A failure
// to record is logged and does not fail the call.
func (a *Assistant) Ask(ctx context.Context, userID, content string) (*core.ChatMessage, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, fmt.Errorf("%w: %w", ErrInvalidPrompt, core.ErrEmptyUserID)
	}
	if strings.TrimSpace(content) == "" {
		return nil, fmt.Errorf("%w: %w", ErrInvalidPrompt, core.ErrEmptyContent)
	}

	askedAt := a.clock()

	corpus, err := a.corpus.SiteContext(ctx)
	if err != nil {
		return nil, err
	}

	relevant := rank.Retrieve(corpus, content)

	text, err := a.generator.Generate(ctx, content, relevant)
	if err != nil {
		return nil, err
	}

	contextPages := min(len(corpus), rank.DefaultTopN)
	prompt := &core.ChatMessage{
		UserID:    userID,
		Speaker:   core.SpeakerTypeHuman,
		Contents:  content,
		Timestamp: askedAt,
	}
	reply := &core.ChatMessage{
		UserID:    userID,
		Speaker:   core.SpeakerTypeAI,
		Contents:  text,
		Timestamp: a.clock(),
		Metadata:  map[string]string{"context_pages": strconv.Itoa(contextPages)},
	}

	a.record(ctx, prompt, reply)

	a.logger.Debug("prompt answered",
		"user", userID,
		"context_pages", contextPages,
		"answer_length", len(text))
	return reply, nil
}

// History returns up to limit of the user's most recent messages, oldest first.
func (a *Assistant) History(ctx context.Context, userID string, limit int) ([]*core.ChatMessage, error) {
	if a.messages == nil {
		return nil, ErrHistoryUnavailable
	}
	if strings.TrimSpace(userID) == "" {
		return nil, fmt.Errorf("%w: %w", ErrInvalidPrompt, core.ErrEmptyUserID)
	}
	return a.messages.GetUserMessages(ctx, userID, limit)
}

// Close releases resources acquired by Open. It is a no-op for assistants
// built with NewAssistant.
func (a *Assistant) Close() error {
	var firstErr error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			a.logger.Error("error closing assistant resource", "err", err)
			if firstErr == nil {
				firstErr = err
			}
		}
	}
	a.closers = nil
	return firstErr
}

func (a *Assistant) record(ctx context.Context, messages ...*core.ChatMessage) {
	if a.messages == nil {
		return
	}
	if _, err := a.messages.AddMessages(ctx, messages...); err != nil {
		a.logger.Warn("failed to record chat messages", "user", messages[0].UserID, "err", err)
	}
}
