package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/wexinc/roster/internal/version"
)

// newChecker is replaced in tests.
var newChecker = version.NewChecker

func newVersionCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Long: `Show detailed version information for roster.

Displays the current version, commit hash, build date,
and Go/platform information.

Examples:
  roster version           # Show detailed version info
  roster version --check   # Check for updates`,
		Args: cobra.NoArgs,
		RunE: runVersion,
	}
	c.Flags().BoolP("check", "c", false, "Check for available updates")
	return c
}

// runVersion handles the version command.
func runVersion(cmd *cobra.Command, args []string) error {
	info := version.NewInfo(Version, Commit, Date)
	cmd.Println(info.FullString())

	if check, _ := cmd.Flags().GetBool("check"); check {
		return checkForUpdate(cmd)
	}
	return nil
}

// checkForUpdate checks for available updates and reports.
func checkForUpdate(cmd *cobra.Command) error {
	cmd.Println("")
	cmd.Println("Checking for updates...")

	ctx, cancel := context.WithTimeout(cmd.Context(), 10*time.Second)
	defer cancel()

	release, err := newChecker().CheckForUpdate(ctx, Version)
	if err != nil {
		return fmt.Errorf("failed to check for updates: %w", err)
	}

	if release == nil {
		cmd.Println("✓ You are running the latest version.")
		return nil
	}

	cmd.Printf("A new version is available: %s (current: %s)\n", release.TagName, Version)
	cmd.Printf("Release notes: %s\n", release.HTMLURL)
	return nil
}
