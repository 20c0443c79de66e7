// Command internpool-demo is a small ambient-configuration surface over
// the shared shard.Pool: it exercises intern/contains/remove/stats from
// the command line, the way the teacher's main.go exercised its Cache
// directly rather than shipping it headless.
package main

import (
	"bufio"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dreamware/internpool/shard"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "internpool-demo",
		Short: "Exercise the sharded intern pool from a terminal",
	}
	root.AddCommand(newInternCmd(), newContainsCmd(), newRemoveCmd(), newStatsCmd(), newReplCmd())
	return root
}

func newInternCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "intern [value]",
		Short: "Intern a value and print the canonical instance",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			canonical, err := shard.Shared().Intern(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), canonical)
			return nil
		},
	}
}

func newContainsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "contains [value]",
		Short: "Report whether a value is already interned",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(cmd.OutOrStdout(), shard.Shared().Contains(args[0]))
			return nil
		},
	}
}

func newRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove [value]",
		Short: "Remove a value from the pool",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(cmd.OutOrStdout(), shard.Shared().Remove(args[0]))
			return nil
		},
	}
}

func newStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Print the pool's aggregated counters",
		RunE: func(cmd *cobra.Command, args []string) error {
			s := shard.Shared().Stats()
			fmt.Fprintf(cmd.OutOrStdout(), "count=%d considered=%d added=%d evicted=%d deduped=%d\n",
				s.Count, s.Considered, s.Added, s.Evicted, s.Deduped())
			return nil
		},
	}
}

// newReplCmd reads one value per line from stdin and interns each,
// printing whether the returned instance was newly added or a dedupe;
// useful for piping a corpus through the pool and watching Stats move.
func newReplCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "load",
		Short: "Intern one value per line read from stdin",
		RunE: func(cmd *cobra.Command, args []string) error {
			pool := shard.Shared()
			scanner := bufio.NewScanner(cmd.InOrStdin())
			for scanner.Scan() {
				before := pool.Stats().Added
				if _, err := pool.Intern(scanner.Text()); err != nil {
					return err
				}
				after := pool.Stats().Added
				if after > before {
					fmt.Fprintln(cmd.OutOrStdout(), "added")
				} else {
					fmt.Fprintln(cmd.OutOrStdout(), "deduped")
				}
			}
			return scanner.Err()
		},
	}
}
