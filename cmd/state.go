package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/trufflesuite/vscode-ext-sub002/pkg/service"
)

func NewStateCmd(svc **service.Service) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "state",
		Short: "Export, import or reset the persisted tree",
	}

	cmd.AddCommand(newStateExportCmd(svc))
	cmd.AddCommand(newStateImportCmd(svc))
	cmd.AddCommand(newStateResetCmd(svc))

	return cmd
}

func newStateExportCmd(svc **service.Service) *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the tree as JSON",
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := (*svc).Snapshot()
			if err != nil {
				return err
			}
			if file == "" || file == "-" {
				return writeIndentedJSON(cmd.OutOrStdout(), data)
			}
			if err := os.WriteFile(file, data, 0644); err != nil {
				return fmt.Errorf("write %s: %w", file, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Exported tree to %s\n", file)
			return nil
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "Output file (default stdout)")

	return cmd
}

func newStateImportCmd(svc **service.Service) *cobra.Command {
	return &cobra.Command{
		Use:         "import <file>",
		Short:       "Replace the tree with an exported JSON file",
		Args:        cobra.ExactArgs(1),
		Annotations: map[string]string{serviceAnnotation: serviceNoLoad},
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				data []byte
				err  error
			)
			if args[0] == "-" {
				data, err = io.ReadAll(cmd.InOrStdin())
			} else {
				data, err = os.ReadFile(args[0])
			}
			if err != nil {
				return fmt.Errorf("read %s: %w", args[0], err)
			}
			if err := (*svc).Import(cmd.Context(), data); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Imported %d root item(s)\n", len((*svc).Roots()))
			return nil
		},
	}
}

func newStateResetCmd(svc **service.Service) *cobra.Command {
	return &cobra.Command{
		Use:         "reset",
		Short:       "Discard the persisted tree and restore the default services",
		Annotations: map[string]string{serviceAnnotation: serviceNoLoad},
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := (*svc).Reset(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Tree reset to defaults.")
			return nil
		},
	}
}
