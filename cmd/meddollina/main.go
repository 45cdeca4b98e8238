// Copyright 2025 Meddollina
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
	"fmt"
	"log"
	"log/slog"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"

	"github.com/meddollina/assistant"
	"github.com/meddollina/assistant/ai"
)

func main() {
	app := &cli.App{
		Name:   "meddollina",
		Usage:  "Surgical question answering assistant",
		Before: setup,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "info",
			},
			&cli.StringFlag{
				Name:    "chat-host",
				Usage:   "Chat completion service host URL",
				Value:   "http://localhost:11434/v1",
				EnvVars: []string{"MEDDOLLINA_CHAT_HOST"},
			},
			&cli.StringFlag{
				Name:    "embedding-host",
				Usage:   "Embedding service host URL (defaults to chat-host)",
				EnvVars: []string{"MEDDOLLINA_EMBEDDING_HOST"},
			},
			&cli.StringFlag{
				Name:    "chat-model",
				Usage:   "Chat model name",
				Value:   "llama3.3:70b",
				EnvVars: []string{"MEDDOLLINA_CHAT_MODEL"},
			},
			&cli.StringFlag{
				Name:    "embedding-model",
				Usage:   "Embedding model name",
				Value:   "embeddinggemma",
				EnvVars: []string{"MEDDOLLINA_EMBEDDING_MODEL"},
			},
			&cli.StringFlag{
				Name:    "token",
				Usage:   "API token for the inference services",
				Value:   "none",
				EnvVars: []string{"MEDDOLLINA_TOKEN"},
			},
			&cli.StringFlag{
				Name:    "chroma-url",
				Usage:   "Chroma vector database URL",
				Value:   "http://localhost:8000",
				EnvVars: []string{"MEDDOLLINA_CHROMA_URL"},
			},
			&cli.StringFlag{
				Name:    "namespace",
				Usage:   "Chroma collection namespace",
				Value:   "meddollina",
				EnvVars: []string{"MEDDOLLINA_NAMESPACE"},
			},
			&cli.StringFlag{
				Name:    "metrics",
				Usage:   "Performance metrics log file (empty disables the log)",
				Value:   "performance_log.json",
				EnvVars: []string{"MEDDOLLINA_METRICS"},
			},
		},
		Commands: []*cli.Command{
			{
				Name:      "ask",
				Usage:     "Answer one medical question",
				ArgsUsage: "<question>",
				Action:    askCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "db",
						Aliases: []string{"d"},
						Usage:   "Path to the BadgerDB conversation directory",
						EnvVars: []string{"MEDDOLLINA_DB"},
					},
					&cli.StringFlag{
						Name:    "session",
						Aliases: []string{"s"},
						Usage:   "Session key for conversation continuity (requires --db)",
					},
				},
			},
			{
				Name:   "suggest",
				Usage:  "Generate candidate questions to show an idle user",
				Action: suggestCommand,
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:    "count",
						Aliases: []string{"n"},
						Usage:   "Number of suggestions to generate",
						Value:   5,
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

	session := c.String("session")
	if session != "" && c.String("db") == "" {
		return fmt.Errorf("--session requires --db")
	}

	a, err := newAssistant(c)
	if err != nil {
		return err
	}
	defer a.Close()

	result, err := a.Ask(context.Background(), question, session)
	if err != nil {
		return fmt.Errorf("answer question: %w", err)
	}

	fmt.Printf("# %s\n\n%s\n", result.Heading, result.Answer)
	if len(result.SourceLinks) > 0 {
		fmt.Println("\nSources:")
		for _, link := range result.SourceLinks {
			fmt.Printf("  - %s\n", link)
		}
	}
	return nil
}

func suggestCommand(c *cli.Context) error {
	a, err := newAssistant(c)
	if err != nil {
		return err
	}
	defer a.Close()

	suggestions := a.Suggestions(context.Background(), c.Int("count"))
	if len(suggestions) == 0 {
		return fmt.Errorf("no suggestions could be generated")
	}
	for _, s := range suggestions {
		fmt.Println(s)
	}
	return nil
}

func newAssistant(c *cli.Context) (*assistant.Assistant, error) {
	embeddingHost := c.String("embedding-host")
	if embeddingHost == "" {
		embeddingHost = c.String("chat-host")
	}

	cfg := assistant.Config{
		AI: ai.NewConfig(
			ai.WithChatHost(c.String("chat-host")),
			ai.WithEmbeddingHost(embeddingHost),
			ai.WithChatModel(c.String("chat-model")),
			ai.WithEmbeddingModel(c.String("embedding-model")),
			ai.WithToken(c.String("token")),
		),
		ChromaURL:       c.String("chroma-url"),
		ChromaNamespace: c.String("namespace"),
		DBPath:          c.String("db"),
		MetricsPath:     c.String("metrics"),
	}
	return assistant.New(cfg)
}

func setup(c *cli.Context) error {
	// Optional .env file, matching how deployments configure the service.
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		slog.Warn("could not load .env file", "error", err)
	}

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
