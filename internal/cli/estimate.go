package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/robalobadob/wordle/apps/go-solver/internal/solver"
)

func init() {
	cmd := &cobra.Command{
		Use:   "estimate <candidates> <guesses>",
		Short: "Print the win confidence for a candidate count and remaining guesses",
		Args:  cobra.ExactArgs(2),
		RunE:  runEstimate,
	}

	RootCmd.AddCommand(cmd)
}

func runEstimate(cmd *cobra.Command, args []string) error {
	c, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("candidates: %w", err)
	}
	g, err := strconv.Atoi(args[1])
	if err != nil {
		return fmt.Errorf("guesses: %w", err)
	}
	_, err = fmt.Fprintf(cmd.OutOrStdout(), "%.2f\n", solver.Estimate(c, g))
	return err
}
