package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/trufflesuite/vscode-ext-sub002/pkg/service"
)

func NewTreeCmd(svc **service.Service) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "tree",
		Short: "Show the network tree",
		Long: `Show every service with its projects and network nodes, followed by
the consortiums.

Examples:
  tnet tree          # Render the tree
  tnet tree --json   # Print the persisted JSON form`,
		RunE: func(cmd *cobra.Command, args []string) error {
			s := *svc
			if jsonOutput {
				data, err := s.Snapshot()
				if err != nil {
					return err
				}
				return writeIndentedJSON(cmd.OutOrStdout(), data)
			}
			if err := s.Render(cmd.OutOrStdout()); err != nil {
				return fmt.Errorf("render tree: %w", err)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output the tree as JSON")

	return cmd
}
