// Copyright 2025 Quadrant Analytics
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

package reembed

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/quadrantai/woqa/ai"
	"github.com/quadrantai/woqa/core"
	"github.com/quadrantai/woqa/examples"
)

// Config holds configuration for the reembedding operation.
type Config struct {
	// BatchSize is the number of examples rewritten per transaction
	BatchSize int

	// ReportInterval is how often to report progress (number of examples)
	ReportInterval int

	// MaxRetries is the maximum number of attempts for failed operations
	MaxRetries int

	// RetryDelay is the base delay for exponential backoff
	RetryDelay time.Duration
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		BatchSize:      100,
		ReportInterval: 100,
		MaxRetries:     3,
		RetryDelay:     1 * time.Second,
	}
}

// Reembedder regenerates the vector of every example in an index.
type Reembedder struct {
	store    *examples.Store
	embedder ai.Embedder
	config   *Config
	progress io.Writer
}

// NewReembedder creates a reembedder over the given store and embedder.
// progress is where progress output is written, typically os.Stderr; nil
// discards it.
func NewReembedder(store *examples.Store, embedder ai.Embedder, config *Config, progress io.Writer) (*Reembedder, error) {
	if store == nil {
		return nil, ErrStoreRequired
	}
	if embedder == nil {
		return nil, ErrEmbedderRequired
	}
	if config == nil {
		config = DefaultConfig()
	}
	if progress == nil {
		progress = io.Discard
	}

	return &Reembedder{
		store:    store,
		embedder: embedder,
		config:   config,
		progress: progress,
	}, nil
}

// Run reembeds every example in the store with the configured embedder.
// Records are rewritten in place batch by batch, so a failed run leaves
// the index partially refreshed but never loses an example.
func (r *Reembedder) Run(ctx context.Context) error {
	total, err := r.store.Count(ctx)
	if err != nil {
		return fmt.Errorf("failed to count examples: %w", err)
	}
	if total == 0 {
		fmt.Fprintf(r.progress, "No examples found in index (0 records)\n")
		return nil
	}

	fmt.Fprintf(r.progress, "Starting reembedding of %d examples (batch size: %d)\n",
		total, r.config.BatchSize)

	tracker := NewProgressTracker(r.progress, total, r.config.ReportInterval)
	tracker.Start()

	processed := 0
	err = r.store.ForEachBatch(ctx, r.config.BatchSize, func(batch []*core.Example) error {
		if err := r.reembedBatch(ctx, batch); err != nil {
			return err
		}
		processed += len(batch)
		tracker.Update(processed)
		return nil
	})
	if err != nil {
		return err
	}

	tracker.Finish()

	elapsed := tracker.Elapsed()
	fmt.Fprintf(r.progress, "Reembedding complete. Processed %d examples in %v (%.1f examples/sec)\n",
		total, elapsed.Round(time.Second), float64(total)/elapsed.Seconds())

	return nil
}

func (r *Reembedder) reembedBatch(ctx context.Context, batch []*core.Example) error {
	for _, example := range batch {
		var vector []float32
		err := RetryWithBackoff(ctx, func() error {
			var embedErr error
			vector, embedErr = r.embedder.EmbedText(ctx, example.Content)
			return embedErr
		}, r.config.MaxRetries, r.config.RetryDelay)
		if err != nil {
			return fmt.Errorf("failed to embed example %d: %w", example.Id, err)
		}
		example.Vector = vector
	}

	err := RetryWithBackoff(ctx, func() error {
		return r.store.AddExamples(ctx, batch...)
	}, r.config.MaxRetries, r.config.RetryDelay)
	if err != nil {
		return fmt.Errorf("failed to store batch: %w", err)
	}
	return nil
}
