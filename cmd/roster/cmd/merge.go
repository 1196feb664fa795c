package cmd

import (
	"github.com/spf13/cobra"

	"github.com/wexinc/roster/internal/config"
	rerrors "github.com/wexinc/roster/internal/errors"
	"github.com/wexinc/roster/internal/session"
)

func newMergeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "merge OUT FILE...",
		Short: "Combine several CSV files into one",
		Long: `Import each FILE in order into one roster and export it to OUT.

A person found in more than one file is kept once, in the position of its
first appearance. Unreadable lines are reported and skipped. OUT is replaced
only after the merged roster has been written completely.

Examples:
  roster merge all.csv team-a.csv team-b.csv`,
		Args: cobra.MinimumNArgs(2),
		RunE: runMerge,
	}
}

// runMerge handles the merge command.
func runMerge(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	// The merged file keeps every person in import order.
	cfg.View.Filter = ""
	cfg.View.SortColumn = config.SortNone
	s, err := newSession(cfg, session.WithLogger(cliLogger(cmd, cfg)))
	if err != nil {
		return err
	}

	out, inputs := args[0], args[1:]
	for _, path := range inputs {
		result, err := s.ImportFile(path)
		if err != nil {
			return err
		}
		for _, p := range result.Problems {
			cmd.PrintErrln(path + ": skipped " + rerrors.Describe(p))
		}
		cmd.Printf("%s: %s\n", path, session.Summary(result))
	}

	if err := s.ExportFile(out); err != nil {
		return err
	}
	cmd.Printf("✓ Wrote %d persons to %s\n", s.Store().Len(), out)
	return nil
}
