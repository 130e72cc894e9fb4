// Package cli implements the go-solver commands.
package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/robalobadob/wordle/apps/go-solver/internal/config"
	"github.com/robalobadob/wordle/apps/go-solver/internal/history"
	"github.com/robalobadob/wordle/apps/go-solver/internal/words"
)

var (
	cfg config.Config

	wordlistFlag string
	dbFlag       string
)

// RootCmd is the top-level command.
var RootCmd = &cobra.Command{
	Use:           "go-solver",
	Short:         "Wordle solver that plays forever and learns from its losses",
	Long:          "Narrows a persisted five-letter word list from per-letter feedback, guesses until the board is solved or full, and reconciles the list after every game.",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load()
		if err != nil {
			return err
		}
		if wordlistFlag != "" {
			c.WordlistPath = wordlistFlag
		}
		if cmd.Flags().Changed("db") {
			c.DBPath = dbFlag
		}
		c.SetupLogging()
		cfg = c
		return nil
	},
}

func init() {
	RootCmd.PersistentFlags().StringVarP(&wordlistFlag, "wordlist", "w", "", "Word list path (default: $WORDLIST_PATH or ./data/wordlist.txt)")
	RootCmd.PersistentFlags().StringVar(&dbFlag, "db", "", "History database path, empty disables (default: $SOLVER_DB or ./data/solver.db)")
}

// openList opens the word list, seeding it from the embedded defaults when missing.
func openList() (*words.FileList, error) {
	l := words.NewFileList(cfg.WordlistPath)
	seed, err := words.Defaults()
	if err != nil {
		return nil, fmt.Errorf("load embedded words: %w", err)
	}
	if _, err := l.Seed(seed); err != nil {
		return nil, fmt.Errorf("seed word list: %w", err)
	}
	return l, nil
}

// openHistory opens the history database, or returns nil when disabled.
func openHistory() (*history.Store, error) {
	if cfg.DBPath == "" {
		return nil, nil
	}
	return history.Open(cfg.DBPath)
}

func printJSON(w io.Writer, v any) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(b))
	return err
}

func cmdContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
