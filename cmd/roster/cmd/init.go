package cmd

import (
	"github.com/spf13/cobra"

	"github.com/wexinc/roster/internal/config"
)

func newInitCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "init",
		Short: "Write a default configuration file",
		Long: `Write a configuration file with every setting at its default value.

The file goes to .roster/config.yaml unless --config names another path.
Use --force to overwrite an existing file.

Examples:
  roster init          # Create .roster/config.yaml
  roster init --force  # Replace it with the defaults`,
		Args: cobra.NoArgs,
		RunE: runInit,
	}
	c.Flags().Bool("force", false, "Overwrite existing configuration")
	return c
}

// runInit is the main entry point for the init command.
func runInit(cmd *cobra.Command, args []string) error {
	force, _ := cmd.Flags().GetBool("force")
	path, _ := cmd.Flags().GetString("config")
	if path == "" {
		path = config.DefaultConfigPath
	}

	if err := config.Write(path, config.NewConfig(), force); err != nil {
		return err
	}

	cmd.Printf("Created %s\n", path)
	cmd.Println("Edit it to set the initial sort, the import/export folder and logging.")
	return nil
}
