package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/trufflesuite/vscode-ext-sub002/cmd/config"
	"github.com/trufflesuite/vscode-ext-sub002/pkg/mnemonic"
	"github.com/trufflesuite/vscode-ext-sub002/pkg/service"
)

func NewMnemonicCmd(svc **service.Service) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mnemonic",
		Short: "Manage stored mnemonics",
	}

	cmd.AddCommand(newMnemonicListCmd(svc))
	cmd.AddCommand(newMnemonicNewCmd(svc))

	return cmd
}

func newMnemonicListCmd(svc **service.Service) *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List stored mnemonics (masked)",
		RunE: func(cmd *cobra.Command, args []string) error {
			repo := config.NewMnemonicRepository(*svc)
			paths, err := repo.ExistingPaths(cmd.Context())
			if err != nil {
				return err
			}
			if len(paths) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No stored mnemonics.")
				return nil
			}
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "MNEMONIC\tFILE")
			for _, p := range paths {
				m, err := repo.Load(p)
				if err != nil {
					config.Logger.WithError(err).WithField("file", p).Warn("skipping unreadable mnemonic")
					continue
				}
				fmt.Fprintf(w, "%s\t%s\n", mnemonic.Mask(m), p)
			}
			return w.Flush()
		},
	}
}

func newMnemonicNewCmd(svc **service.Service) *cobra.Command {
	var show bool

	cmd := &cobra.Command{
		Use:   "new",
		Short: "Generate and store a new mnemonic",
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := mnemonic.Generate()
			if err != nil {
				return err
			}
			path, err := config.NewMnemonicRepository(*svc).Save(cmd.Context(), m)
			if err != nil {
				return err
			}
			if show {
				fmt.Fprintln(cmd.OutOrStdout(), m)
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "Stored %s in %s\n", mnemonic.Mask(m), path)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&show, "show", false, "Print the full mnemonic")

	return cmd
}
