package cmd

import (
	"errors"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/trufflesuite/vscode-ext-sub002/cmd/config"
	"github.com/trufflesuite/vscode-ext-sub002/pkg/network"
	"github.com/trufflesuite/vscode-ext-sub002/pkg/service"
)

func NewDeployCmd(svc **service.Service) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "deploy",
		Short: "Inspect deploy destinations",
	}

	cmd.AddCommand(newDeployDestinationsCmd(svc))
	cmd.AddCommand(newDeployConfigCmd(svc))

	return cmd
}

func newDeployDestinationsCmd(svc **service.Service) *cobra.Command {
	return &cobra.Command{
		Use:     "destinations",
		Aliases: []string{"ls"},
		Short:   "List deploy destinations",
		RunE: func(cmd *cobra.Command, args []string) error {
			dests := (*svc).Destinations()
			if len(dests) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No deploy destinations.")
				return nil
			}
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "DESTINATION\tNETWORK ID\tURL")
			for _, d := range dests {
				fmt.Fprintf(w, "%s\t%s\t%s\n", d.Label, d.NetworkID, d.Detail)
			}
			return w.Flush()
		},
	}
}

func newDeployConfigCmd(svc **service.Service) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "config <destination>",
		Short: "Print the truffle network for a deploy destination",
		Long: `Print the truffle-config networks entry for a deploy destination.
Infura and mainnet/testnet networks ask for gas settings; mnemonic-backed
networks ask which mnemonic to use.

Examples:
  tnet deploy config loc_dev_dev
  tnet deploy config inf_myapp_mainnet -o json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := (*svc).FindDestination(args[0])
			if err != nil {
				return err
			}
			n, err := d.Network(cmd.Context(), config.NewResolver(*svc))
			if errors.Is(err, network.ErrNotReady) {
				fmt.Fprintf(cmd.ErrOrStderr(), "%s is not ready yet, try again once its resources are provisioned.\n", d.Label)
				return nil
			}
			if err != nil {
				return err
			}
			if n == nil {
				fmt.Fprintln(cmd.ErrOrStderr(), "Cancelled.")
				return nil
			}
			return writeNetwork(cmd.OutOrStdout(), n, output)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "yaml", "Output format: yaml or json")

	return cmd
}
