package cli

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/spf13/cobra"
)

// positionsCommand creates the position override management command.
func (c *CLI) positionsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "positions",
		Short: "Manage saved position overrides",
	}

	cmd.AddCommand(c.positionsShowCommand())
	cmd.AddCommand(c.positionsClearCommand())

	return cmd
}

// positionsShowCommand creates the "positions show" subcommand.
func (c *CLI) positionsShowCommand() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "show [project]",
		Short: "Show the saved positions of a project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := c.openStore(cmd.Context())
			if err != nil {
				return err
			}
			defer st.Close()

			positions, err := st.Get(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("load positions: %w", err)
			}
			if len(positions) == 0 {
				printInfo("No saved positions for %q", args[0])
				return nil
			}

			if asJSON {
				data, err := json.MarshalIndent(positions, "", "  ")
				if err != nil {
					return err
				}
				fmt.Println(string(data))
				return nil
			}

			ids := make([]string, 0, len(positions))
			for id := range positions {
				ids = append(ids, id)
			}
			sort.Strings(ids)

			fmt.Println(StyleTitle.Render(args[0]))
			for _, id := range ids {
				p := positions[id]
				printKeyValue(id, fmt.Sprintf("(%.0f, %.0f)", p.X, p.Y))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print raw JSON")
	return cmd
}

// positionsClearCommand creates the "positions clear" subcommand.
func (c *CLI) positionsClearCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clear [project]",
		Short: "Discard the saved positions of a project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := c.openStore(cmd.Context())
			if err != nil {
				return err
			}
			defer st.Close()

			if err := st.Clear(cmd.Context(), args[0]); err != nil {
				return fmt.Errorf("clear positions: %w", err)
			}
			printSuccess("Cleared positions for %q", args[0])
			return nil
		},
	}
}
