package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	rerrors "github.com/wexinc/roster/internal/errors"
	"github.com/wexinc/roster/internal/session"
)

func newCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check FILE",
		Short: "Report lines of a CSV file that cannot be imported",
		Long: `Read a CSV file the way import does and list every line that would be
skipped: wrong number of fields, an age that is not a whole number, or a
person already listed earlier in the file.

The command exits with a non-zero status when any problem is found.

Examples:
  roster check people.csv`,
		Args: cobra.ExactArgs(1),
		RunE: runCheck,
	}
}

// runCheck handles the check command.
func runCheck(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	s, err := newSession(cfg, session.WithLogger(cliLogger(cmd, cfg)))
	if err != nil {
		return err
	}

	result, err := s.ImportFile(args[0])
	if err != nil {
		return err
	}

	for _, p := range result.Problems {
		cmd.Println("✗ " + rerrors.Describe(p))
	}
	cmd.Printf("%d lines: %s\n", result.Lines, session.Summary(result))

	if result.HasProblems() {
		return fmt.Errorf("%s: %d of %d lines cannot be imported", args[0], len(result.Problems), result.Lines)
	}
	cmd.Println("✓ No problems found.")
	return nil
}
