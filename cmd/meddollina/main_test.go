package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"
)

func newTestApp() *cli.App {
	return &cli.App{
		Name:   "meddollina",
		Before: setup,
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "log-level", Aliases: []string{"l"}, Value: "info"},
		},
		Commands: []*cli.Command{
			{
				Name:      "ask",
				ArgsUsage: "<question>",
				Action:    askCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "db", Aliases: []string{"d"}},
					&cli.StringFlag{Name: "session", Aliases: []string{"s"}},
				},
			},
		},
	}
}

func TestAskCommandValidation(t *testing.T) {
	t.Run("question is required", func(t *testing.T) {
		err := newTestApp().Run([]string{"meddollina", "ask"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "question is required")
	})

	t.Run("session requires a database", func(t *testing.T) {
		err := newTestApp().Run([]string{"meddollina", "ask", "--session", "alice", "What is a hernia?"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "--session requires --db")
	})
}

func TestSetupLogLevel(t *testing.T) {
	t.Run("rejects unknown levels", func(t *testing.T) {
		err := newTestApp().Run([]string{"meddollina", "--log-level", "verbose", "ask", "q"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid log level")
	})

	t.Run("accepts mixed case levels", func(t *testing.T) {
		// The ask action still fails on the missing question, proving Before
		// passed.
		err := newTestApp().Run([]string{"meddollina", "--log-level", "DEBUG", "ask"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "question is required")
	})
}
