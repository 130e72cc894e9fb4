package cli

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/robalobadob/wordle/apps/go-solver/internal/history"
	"github.com/robalobadob/wordle/apps/go-solver/internal/session"
)

var statsRecent int

func init() {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show win/loss totals from the session history",
		Args:  cobra.NoArgs,
		RunE:  runStats,
	}
	cmd.Flags().IntVarP(&statsRecent, "recent", "r", 0, "Also list this many recent sessions")

	RootCmd.AddCommand(cmd)
}

func runStats(cmd *cobra.Command, args []string) error {
	s, err := openHistory()
	if err != nil {
		return err
	}
	if s == nil {
		return errors.New("history disabled: set --db or SOLVER_DB")
	}
	defer s.Close()

	ctx := cmdContext(cmd)
	st, err := s.Stats(ctx)
	if err != nil {
		return err
	}
	out := struct {
		history.Stats
		Recent []session.Result `json:"recent,omitempty"`
	}{Stats: st}
	if statsRecent > 0 {
		if out.Recent, err = s.Recent(ctx, statsRecent); err != nil {
			return err
		}
	}
	return printJSON(cmd.OutOrStdout(), out)
}
