package cmd

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/trufflesuite/vscode-ext-sub002/cmd/config"
	"github.com/trufflesuite/vscode-ext-sub002/pkg/network"
	"github.com/trufflesuite/vscode-ext-sub002/pkg/service"
	"github.com/trufflesuite/vscode-ext-sub002/pkg/tree"
)

var consortiumKinds = map[string]tree.ItemType{
	"azure":   tree.TypeAzureConsortium,
	"local":   tree.TypeLocalConsortium,
	"mainnet": tree.TypeMainNetConsortium,
	"testnet": tree.TypeTestNetConsortium,
}

func consortiumKindNames() []string {
	names := make([]string, 0, len(consortiumKinds))
	for k := range consortiumKinds {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

func NewConsortiumCmd(svc **service.Service) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "consortium",
		Short: "Manage consortiums",
	}

	cmd.AddCommand(newConsortiumCreateCmd(svc))
	cmd.AddCommand(newConsortiumListCmd(svc))
	cmd.AddCommand(newConsortiumRemoveCmd(svc))
	cmd.AddCommand(newConsortiumConfigCmd(svc))

	return cmd
}

func newConsortiumCreateCmd(svc **service.Service) *cobra.Command {
	var (
		kind string
		opts service.ConsortiumOptions
	)

	cmd := &cobra.Command{
		Use:   "create <name>",
		Short: "Create a consortium",
		Long: `Create a consortium. Testnet consortiums are named after the public
test network they join, e.g. goerli or sepolia.

Examples:
  tnet consortium create ganache --type local --url 127.0.0.1:7545
  tnet consortium create goerli --type testnet --url goerli.infura.io/v3/KEY`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, ok := consortiumKinds[strings.ToLower(kind)]
			if !ok {
				return fmt.Errorf("unknown consortium type %q (want one of %s)", kind, strings.Join(consortiumKindNames(), ", "))
			}
			opts.Kind = t
			opts.Label = args[0]
			if t == tree.TypeTestNetConsortium {
				if _, ok := network.TestNetID(opts.Label); !ok {
					return fmt.Errorf("unknown test network %q (want one of %s)", opts.Label, strings.Join(network.TestNetNames(), ", "))
				}
			}
			c, err := (*svc).CreateConsortium(opts)
			if err != nil {
				return explain(err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created %s %q\n", service.KindName(c.Type), c.Label)
			return nil
		},
	}

	cmd.Flags().StringVarP(&kind, "type", "t", "local", "Consortium type: "+strings.Join(consortiumKindNames(), ", "))
	cmd.Flags().StringSliceVar(&opts.URLs, "url", nil, "Member url, repeatable")
	cmd.Flags().StringVar(&opts.SubscriptionID, "subscription", "", "Azure subscription id")
	cmd.Flags().StringVar(&opts.ResourceGroup, "resource-group", "", "Azure resource group")
	cmd.Flags().StringVar(&opts.MemberName, "member", "", "Azure blockchain member name")
	_ = cmd.MarkFlagRequired("url")

	return cmd
}

func newConsortiumListCmd(svc **service.Service) *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List consortiums",
		RunE: func(cmd *cobra.Command, args []string) error {
			consortiums := (*svc).Consortiums()
			if len(consortiums) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No consortiums.")
				return nil
			}
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tTYPE\tID\tNETWORK ID\tURLS")
			for _, c := range consortiums {
				p := c.Payload.(*tree.Consortium)
				urls := make([]string, 0, len(p.URLs))
				for _, u := range p.URLs {
					urls = append(urls, u.String())
				}
				fmt.Fprintf(w, "%s\t%s\t%d\t%s\t%s\n", c.Label, service.KindName(c.Type), p.ConsortiumID, network.NetworkID(c), strings.Join(urls, ","))
			}
			return w.Flush()
		},
	}
}

func newConsortiumRemoveCmd(svc **service.Service) *cobra.Command {
	return &cobra.Command{
		Use:     "remove <name>",
		Aliases: []string{"rm"},
		Short:   "Remove a consortium",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := (*svc).RemoveConsortium(args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed consortium %q\n", args[0])
			return nil
		},
	}
}

func newConsortiumConfigCmd(svc **service.Service) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "config <name>",
		Short: "Print the truffle network for a consortium",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := (*svc).Consortium(args[0])
			if err != nil {
				return err
			}
			n, err := config.NewResolver(*svc).TruffleNetwork(cmd.Context(), c)
			if errors.Is(err, network.ErrNotReady) {
				fmt.Fprintf(cmd.ErrOrStderr(), "%s is not ready yet, try again once its resources are provisioned.\n", c.Label)
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
