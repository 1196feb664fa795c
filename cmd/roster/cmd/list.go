package cmd

import (
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	rerrors "github.com/wexinc/roster/internal/errors"
	"github.com/wexinc/roster/internal/session"
	"github.com/wexinc/roster/internal/view"
)

func newListCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "list FILE",
		Short: "Print the persons in a CSV file",
		Long: `Import a CSV file into an empty roster and print it.

Lines that cannot be read are reported on stderr and skipped.
Filter and sort defaults come from the view section of the config.

Examples:
  roster list people.csv                      # Print as a table
  roster list people.csv --filter an          # First names containing "an"
  roster list people.csv --sort age --desc    # Oldest first
  roster list people.csv -o csv > sorted.csv  # Write the view as CSV`,
		Args: cobra.ExactArgs(1),
		RunE: runList,
	}
	c.Flags().String("filter", "", "Show only first names containing this text")
	c.Flags().String("sort", "", "Sort column: first, last or age")
	c.Flags().Bool("desc", false, "Sort descending")
	c.Flags().StringP("output", "o", "table", "Output format: table or csv")
	return c
}

// runList handles the list command.
func runList(cmd *cobra.Command, args []string) error {
	output, _ := cmd.Flags().GetString("output")
	if output != "table" && output != "csv" {
		return fmt.Errorf("unknown output format %q (valid: table, csv)", output)
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	s, err := newSession(cfg, session.WithLogger(cliLogger(cmd, cfg)))
	if err != nil {
		return err
	}
	if err := applyViewFlags(cmd, s); err != nil {
		return err
	}

	result, err := s.ImportFile(args[0])
	if err != nil {
		return err
	}
	for _, p := range result.Problems {
		fmt.Fprintln(cmd.ErrOrStderr(), "skipped "+rerrors.Describe(p))
	}

	if output == "csv" {
		return s.Export(cmd.OutOrStdout())
	}
	writeTable(cmd.OutOrStdout(), s)
	return nil
}

// applyViewFlags overrides the configured view with any flags given.
func applyViewFlags(cmd *cobra.Command, s *session.Session) error {
	flags := cmd.Flags()
	if flags.Changed("filter") {
		q, _ := flags.GetString("filter")
		s.SetQuery(q)
	}
	if !flags.Changed("sort") && !flags.Changed("desc") {
		return nil
	}

	column := s.View().Ordering().Column
	if flags.Changed("sort") {
		name, _ := flags.GetString("sort")
		c, err := view.ParseColumn(name)
		if err != nil {
			return err
		}
		column = c
	}
	direction := view.Ascending
	if desc, _ := flags.GetBool("desc"); desc {
		direction = view.Descending
	}
	s.SetOrdering(column, direction)
	return nil
}

// writeTable prints the current view with the sorted column marked.
func writeTable(w io.Writer, s *session.Session) {
	ordering := s.View().Ordering()
	columns := []view.Column{view.ColumnFirstName, view.ColumnLastName, view.ColumnAge}
	headers := make([]string, len(columns))
	for i, c := range columns {
		headers[i] = c.Title()
		if ordering.Column == c {
			headers[i] += " " + ordering.Direction.Arrow()
		}
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers(headers...).
		StyleFunc(func(row, col int) lipgloss.Style {
			style := lipgloss.NewStyle().Padding(0, 1)
			if col == 2 {
				style = style.Align(lipgloss.Right)
			}
			return style
		})

	rows := s.Rows()
	for _, e := range rows {
		t.Row(e.Person.FirstName, e.Person.LastName, strconv.Itoa(e.Person.Age))
	}

	fmt.Fprintln(w, t.Render())
	fmt.Fprintf(w, "%d of %d persons\n", len(rows), s.Store().Len())
}
