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

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/quadrantai/woqa"
	"github.com/quadrantai/woqa/ai"
	"github.com/quadrantai/woqa/ai/openai"
	"github.com/quadrantai/woqa/barcode"
	"github.com/quadrantai/woqa/core"
	"github.com/quadrantai/woqa/document"
	"github.com/quadrantai/woqa/examples"
	"github.com/quadrantai/woqa/execution"
	"github.com/quadrantai/woqa/reembed"
)

func main() {
	app := &cli.App{
		Name:  "woqa",
		Usage: "Question answering over engineering work order data",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "info",
			},
		},
		Before: setupLogger,
		Commands: []*cli.Command{
			{
				Name:      "ask",
				Usage:     "Answer one question through the full pipeline",
				Action:    askCommand,
				ArgsUsage: "QUESTION",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "index",
						Aliases:  []string{"i"},
						Usage:    "Path to the example index directory",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "token",
						Usage: "Tenant token scoping database access",
					},
					&cli.StringFlag{
						Name:  "schema",
						Usage: "Path to a schema file overriding the bundled one",
					},
					&cli.StringFlag{
						Name:    "db-host",
						Usage:   "Database server host (omit to skip execution)",
						EnvVars: []string{"WOQA_DB_HOST"},
					},
					&cli.IntFlag{
						Name:    "db-port",
						Usage:   "Database server port",
						Value:   5432,
						EnvVars: []string{"WOQA_DB_PORT"},
					},
					&cli.StringFlag{
						Name:    "db-user",
						Usage:   "Database user",
						EnvVars: []string{"WOQA_DB_USER"},
					},
					&cli.StringFlag{
						Name:    "db-password",
						Usage:   "Database password",
						EnvVars: []string{"WOQA_DB_PASSWORD"},
					},
					&cli.StringFlag{
						Name:    "vision-credentials",
						Usage:   "Google credentials file enabling OCR for scanned documents",
						EnvVars: []string{"WOQA_VISION_CREDENTIALS"},
					},
				},
			},
			{
				Name:      "seed",
				Usage:     "Populate the example index from a corpus file",
				Action:    seedCommand,
				ArgsUsage: "CORPUS_FILE",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "index",
						Aliases:  []string{"i"},
						Usage:    "Path to the example index directory",
						Required: true,
					},
					&cli.IntFlag{
						Name:  "workers",
						Usage: "Concurrent embedding workers",
						Value: 4,
					},
				},
			},
			{
				Name:   "reembed",
				Usage:  "Reembed all stored examples with new embeddings",
				Action: reembedCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "index",
						Aliases:  []string{"i"},
						Usage:    "Path to the example index directory",
						Required: true,
					},
					&cli.IntFlag{
						Name:  "batch-size",
						Usage: "Number of examples to process in each batch",
						Value: 100,
					},
					&cli.IntFlag{
						Name:  "report-interval",
						Usage: "Report progress every N examples",
						Value: 100,
					},
					&cli.IntFlag{
						Name:  "max-retries",
						Usage: "Maximum retry attempts for failed operations",
						Value: 3,
					},
					&cli.DurationFlag{
						Name:  "retry-delay",
						Usage: "Base delay for exponential backoff",
						Value: 1 * time.Second,
					},
				},
			},
			{
				Name:      "barcode",
				Usage:     "Look up and validate a barcode from a question",
				Action:    barcodeCommand,
				ArgsUsage: "QUESTION",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "cert",
						Usage:    "Path to the .pfx client certificate",
						Required: true,
					},
					&cli.StringFlag{
						Name:    "cert-password",
						Usage:   "Certificate password",
						EnvVars: []string{"WOQA_CERT_PASSWORD"},
					},
					&cli.StringFlag{
						Name:     "token",
						Usage:    "API auth token",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "endpoint",
						Usage: "Lookup endpoint URL",
						Value: barcode.DefaultEndpoint,
					},
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func askCommand(c *cli.Context) error {
	question := strings.TrimSpace(strings.Join(c.Args().Slice(), " "))
	if question == "" {
		return fmt.Errorf("a question is required")
	}

	ctx := context.Background()

	opts := []woqa.AssistantOption{
		woqa.WithAIConfig(aiConfigFromEnv()),
	}
	if schema := c.String("schema"); schema != "" {
		opts = append(opts, woqa.WithSchemaPath(schema))
	}
	if host := c.String("db-host"); host != "" {
		opts = append(opts, woqa.WithDatabaseConfig(execution.NewConfig(
			execution.WithHost(host),
			execution.WithPort(c.Int("db-port")),
			execution.WithUser(c.String("db-user")),
			execution.WithPassword(c.String("db-password")),
		)))
	}
	if creds := c.String("vision-credentials"); creds != "" {
		recognizer, err := document.NewVisionRecognizer(ctx, creds)
		if err != nil {
			return fmt.Errorf("failed to create recognizer: %w", err)
		}
		defer recognizer.Close()
		opts = append(opts, woqa.WithRecognizer(recognizer))
	}

	assistant, err := woqa.NewAssistant(c.String("index"), opts...)
	if err != nil {
		return fmt.Errorf("failed to open assistant: %w", err)
	}
	defer assistant.Close()

	envelope, err := assistant.Ask(ctx, &core.Question{
		Text:  question,
		Token: c.String("token"),
	})
	if err != nil {
		return err
	}

	encoded, err := json.MarshalIndent(envelope, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(encoded))
	return nil
}

func seedCommand(c *cli.Context) error {
	corpusPath := c.Args().First()
	if corpusPath == "" {
		return fmt.Errorf("a corpus file is required")
	}

	corpus, err := os.ReadFile(corpusPath)
	if err != nil {
		return fmt.Errorf("failed to read corpus: %w", err)
	}

	assistant, err := woqa.NewAssistant(c.String("index"),
		woqa.WithAIConfig(aiConfigFromEnv()))
	if err != nil {
		return fmt.Errorf("failed to open assistant: %w", err)
	}
	defer assistant.Close()

	seeder, err := assistant.NewSeeder(examples.WithSeederPoolSize(c.Int("workers")))
	if err != nil {
		return fmt.Errorf("failed to create seeder: %w", err)
	}
	defer seeder.Release()

	stored, err := seeder.Seed(context.Background(), string(corpus))
	if err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "Stored %d example blocks\n", stored)
	return nil
}

func reembedCommand(c *cli.Context) error {
	ctx := context.Background()

	store, err := examples.OpenStore(c.String("index"), false)
	if err != nil {
		return fmt.Errorf("failed to open example index: %w", err)
	}
	defer store.Close()

	provider, err := openai.NewProvider(aiConfigFromEnv())
	if err != nil {
		return fmt.Errorf("failed to create AI provider: %w", err)
	}
	defer provider.Close()

	config := &reembed.Config{
		BatchSize:      c.Int("batch-size"),
		ReportInterval: c.Int("report-interval"),
		MaxRetries:     c.Int("max-retries"),
		RetryDelay:     c.Duration("retry-delay"),
	}

	reembedder, err := reembed.NewReembedder(store, provider.Embedder(), config, os.Stderr)
	if err != nil {
		return fmt.Errorf("failed to create reembedder: %w", err)
	}
	return reembedder.Run(ctx)
}

func barcodeCommand(c *cli.Context) error {
	question := strings.TrimSpace(strings.Join(c.Args().Slice(), " "))
	if question == "" {
		return fmt.Errorf("a question is required")
	}

	client, err := barcode.NewClient(c.String("endpoint"), c.String("cert"), c.String("cert-password"))
	if err != nil {
		return fmt.Errorf("failed to create barcode client: %w", err)
	}

	provider, err := openai.NewProvider(aiConfigFromEnv())
	if err != nil {
		return fmt.Errorf("failed to create AI provider: %w", err)
	}
	defer provider.Close()

	service, err := barcode.NewService(client, provider.Completer())
	if err != nil {
		return err
	}

	answer, err := service.Answer(context.Background(), question, c.String("token"))
	if err != nil {
		return err
	}
	fmt.Println(answer)
	return nil
}

func aiConfigFromEnv() *ai.Config {
	return ai.NewConfig(
		ai.WithEndpoint(os.Getenv("AZURE_OPENAI_ENDPOINT")),
		ai.WithAPIKey(os.Getenv("AZURE_OPENAI_API_KEY")),
		ai.WithChatDeployment(os.Getenv("AZURE_OPENAI_CHAT_DEPLOYMENT")),
		ai.WithEmbeddingDeployment(os.Getenv("AZURE_OPENAI_EMBEDDING_DEPLOYMENT")),
	)
}

func setupLogger(c *cli.Context) error {
	levelStr := strings.ToLower(c.String("log-level"))

	var level slog.Level
	switch levelStr {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return fmt.Errorf("invalid log level %q: must be one of debug, info, warn, error", levelStr)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	return nil
}
