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

package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/poiesic/recallit"
	"github.com/poiesic/recallit/ai"
	"github.com/poiesic/recallit/core"
	"github.com/poiesic/recallit/reconcile"
	"github.com/urfave/cli/v2"
)

func main() {
	// Local development keeps hosts and tokens in a .env file; a missing
	// file is fine.
	_ = godotenv.Load()

	app := &cli.App{
		Name:   "recallit",
		Usage:  "Meeting intelligence: transcript indexing and retrieval-augmented chat",
		Before: setupLogger,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "info",
			},
		},
		Commands: []*cli.Command{
			{
				Name:   "index",
				Usage:  "Index a meeting transcript for retrieval",
				Action: indexCommand,
				Flags: append(commonFlags(),
					&cli.StringFlag{
						Name:     "meeting-id",
						Aliases:  []string{"m"},
						Usage:    "Meeting identifier",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "user-id",
						Aliases:  []string{"u"},
						Usage:    "Owning user identifier",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "title",
						Usage: "Meeting title",
					},
					&cli.StringFlag{
						Name:    "file",
						Aliases: []string{"f"},
						Usage:   "Transcript file path (reads stdin if omitted)",
					},
				),
			},
			{
				Name:      "ask",
				Usage:     "Ask a question about one meeting",
				ArgsUsage: "QUESTION",
				Action:    askCommand,
				Flags: append(commonFlags(),
					&cli.StringFlag{
						Name:     "meeting-id",
						Aliases:  []string{"m"},
						Usage:    "Meeting identifier",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "user-id",
						Aliases:  []string{"u"},
						Usage:    "Owning user identifier",
						Required: true,
					},
					&cli.BoolFlag{
						Name:  "sources",
						Usage: "Print the retrieved chunks the answer was grounded on",
					},
				),
			},
			{
				Name:      "ask-all",
				Usage:     "Ask a question across all of a user's meetings",
				ArgsUsage: "QUESTION",
				Action:    askAllCommand,
				Flags: append(commonFlags(),
					&cli.StringFlag{
						Name:     "user-id",
						Aliases:  []string{"u"},
						Usage:    "Owning user identifier",
						Required: true,
					},
					&cli.BoolFlag{
						Name:  "sources",
						Usage: "Print the retrieved chunks the answer was grounded on",
					},
				),
			},
			{
				Name:   "reconcile",
				Usage:  "Repair missing or stale vector entries for persisted chunks",
				Action: reconcileCommand,
				Flags: append(commonFlags(),
					&cli.IntFlag{
						Name:  "pool-size",
						Usage: "Number of meetings swept concurrently (0 = auto)",
					},
					&cli.IntFlag{
						Name:  "report-interval",
						Usage: "Report progress every N meetings",
						Value: 100,
					},
					&cli.IntFlag{
						Name:  "max-retries",
						Usage: "Maximum retry attempts for embedding calls",
						Value: 3,
					},
					&cli.DurationFlag{
						Name:  "retry-delay",
						Usage: "Base delay for exponential backoff",
						Value: 1 * time.Second,
					},
				),
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

// commonFlags are shared by every command: database location and AI service
// configuration.
func commonFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:     "db",
			Aliases:  []string{"d"},
			Usage:    "Path to BadgerDB database directory",
			Required: true,
		},
		&cli.StringFlag{
			Name:    "host",
			Usage:   "OpenAI-compatible service host URL",
			Value:   "http://localhost:11434/v1",
			EnvVars: []string{"RECALLIT_HOST"},
		},
		&cli.StringFlag{
			Name:    "embedding-model",
			Usage:   "Embedding model name",
			Value:   "embeddinggemma",
			EnvVars: []string{"RECALLIT_EMBEDDING_MODEL"},
		},
		&cli.StringFlag{
			Name:    "chat-model",
			Usage:   "Chat model name",
			Value:   "qwen2.5:3b",
			EnvVars: []string{"RECALLIT_CHAT_MODEL"},
		},
	}
}

func openDatabase(c *cli.Context) (*recallit.Database, error) {
	aiConfig := ai.NewConfig(
		ai.WithHost(c.String("host")),
		ai.WithEmbeddingModel(c.String("embedding-model")),
		ai.WithChatModel(c.String("chat-model")),
	)
	if err := aiConfig.Validate(); err != nil {
		return nil, fmt.Errorf("invalid AI configuration: %w", err)
	}

	db, err := recallit.NewDatabase(c.String("db"), recallit.WithAIConfig(aiConfig))
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	return db, nil
}

func indexCommand(c *cli.Context) error {
	ctx := context.Background()

	var raw []byte
	var err error
	if path := c.String("file"); path != "" {
		raw, err = os.ReadFile(path)
	} else {
		raw, err = io.ReadAll(os.Stdin)
	}
	if err != nil {
		return fmt.Errorf("failed to read transcript: %w", err)
	}

	db, err := openDatabase(c)
	if err != nil {
		return err
	}
	defer db.Close()

	meetingID := c.String("meeting-id")
	userID := c.String("user-id")
	title := c.String("title")

	err = db.MeetingRepository().PutMeeting(ctx, &core.Meeting{
		ID:        meetingID,
		UserID:    userID,
		Title:     title,
		StartedAt: time.Now().UTC(),
	})
	if err != nil {
		return fmt.Errorf("failed to store meeting: %w", err)
	}

	pipeline, err := db.NewIngestionPipeline()
	if err != nil {
		return err
	}

	result, err := pipeline.ProcessTranscript(ctx, meetingID, userID, string(raw), title)
	if err != nil {
		return fmt.Errorf("indexing failed: %w", err)
	}

	fmt.Printf("Indexed meeting %s: %d chunks (%d new)\n",
		meetingID, result.ChunkCount, result.Inserted)
	return nil
}

func askCommand(c *cli.Context) error {
	question := strings.TrimSpace(strings.Join(c.Args().Slice(), " "))
	if question == "" {
		return fmt.Errorf("a question is required")
	}

	db, err := openDatabase(c)
	if err != nil {
		return err
	}
	defer db.Close()

	service, err := db.NewChatService()
	if err != nil {
		return err
	}

	result, err := service.ChatWithMeeting(context.Background(),
		c.String("user-id"), c.String("meeting-id"), question)
	if err != nil {
		return fmt.Errorf("chat failed: %w", err)
	}

	printResult(c, result.Answer, result.Sources)
	return nil
}

func askAllCommand(c *cli.Context) error {
	question := strings.TrimSpace(strings.Join(c.Args().Slice(), " "))
	if question == "" {
		return fmt.Errorf("a question is required")
	}

	db, err := openDatabase(c)
	if err != nil {
		return err
	}
	defer db.Close()

	service, err := db.NewChatService()
	if err != nil {
		return err
	}

	result, err := service.ChatWithAllMeetings(context.Background(),
		c.String("user-id"), question)
	if err != nil {
		return fmt.Errorf("chat failed: %w", err)
	}

	printResult(c, result.Answer, result.Sources)
	return nil
}

func reconcileCommand(c *cli.Context) error {
	db, err := openDatabase(c)
	if err != nil {
		return err
	}
	defer db.Close()

	config := reconcile.DefaultConfig()
	if c.Int("pool-size") > 0 {
		config.PoolSize = c.Int("pool-size")
	}
	config.ReportInterval = c.Int("report-interval")
	config.MaxRetries = c.Int("max-retries")
	config.RetryDelay = c.Duration("retry-delay")

	if config.ReportInterval <= 0 {
		return fmt.Errorf("report-interval must be greater than 0")
	}
	if config.MaxRetries <= 0 {
		return fmt.Errorf("max-retries must be greater than 0")
	}

	sweeper, err := db.NewSweeper(config, os.Stderr)
	if err != nil {
		return err
	}

	report, err := sweeper.Run(context.Background())
	if err != nil {
		return fmt.Errorf("reconciliation failed: %w", err)
	}

	fmt.Printf("Swept %d meetings, checked %d chunks: %d missing, %d drifted, %d repaired\n",
		report.MeetingsSwept, report.ChunksChecked, report.Missing, report.Drifted, report.Repaired)
	return nil
}

func printResult(c *cli.Context, answer string, sources []core.Source) {
	fmt.Println(answer)

	if c.Bool("sources") && len(sources) > 0 {
		fmt.Println("\nSources:")
		for i, source := range sources {
			fmt.Printf("%d: [%s] %s: %s [%0.3f]\n",
				i+1, source.MeetingTitle, source.SpeakerName, source.Content, source.Confidence)
		}
	}
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
