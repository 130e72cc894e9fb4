package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "words",
		Short: "Inspect or edit the persisted word list",
	}

	count := &cobra.Command{
		Use:   "count",
		Short: "Print the number of usable words",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			l, err := openList()
			if err != nil {
				return err
			}
			ws, err := l.Load(cmdContext(cmd))
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), len(ws))
			return err
		},
	}

	add := &cobra.Command{
		Use:   "add <word>...",
		Short: "Append words to the list (duplicates are ignored)",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			l, err := openList()
			if err != nil {
				return err
			}
			out := make(map[string]bool, len(args))
			for _, w := range args {
				added, err := l.Append(cmdContext(cmd), w)
				if err != nil {
					return fmt.Errorf("add %q: %w", w, err)
				}
				out[w] = added
			}
			return printJSON(cmd.OutOrStdout(), out)
		},
	}

	rm := &cobra.Command{
		Use:   "rm <word>...",
		Short: "Remove words from the list",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			l, err := openList()
			if err != nil {
				return err
			}
			out := make(map[string]bool, len(args))
			for _, w := range args {
				removed, err := l.Remove(cmdContext(cmd), w)
				if err != nil {
					return fmt.Errorf("rm %q: %w", w, err)
				}
				out[w] = removed
			}
			return printJSON(cmd.OutOrStdout(), out)
		},
	}

	cmd.AddCommand(count, add, rm)
	RootCmd.AddCommand(cmd)
}
