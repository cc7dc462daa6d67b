package cmd

import (
	"errors"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/trufflesuite/vscode-ext-sub002/cmd/config"
	"github.com/trufflesuite/vscode-ext-sub002/pkg/network"
	"github.com/trufflesuite/vscode-ext-sub002/pkg/service"
	"github.com/trufflesuite/vscode-ext-sub002/pkg/tree"
)

func NewNetworkCmd(svc **service.Service) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "network",
		Aliases: []string{"net"},
		Short:   "Create, connect and inspect network projects",
	}

	cmd.AddCommand(newNetworkListCmd(svc))
	cmd.AddCommand(newCreateLocalCmd(svc))
	cmd.AddCommand(newConnectEndpointCmd(svc, "connect-generic", "Connect to any JSON-RPC endpoint", (*service.Service).ConnectGeneric))
	cmd.AddCommand(newConnectEndpointCmd(svc, "connect-quorum", "Connect to a quorum node", (*service.Service).ConnectQuorum))
	cmd.AddCommand(newConnectDashboardCmd(svc))
	cmd.AddCommand(newConnectInfuraCmd(svc))
	cmd.AddCommand(newConnectAzureCmd(svc, "connect-azure", "Connect to an Azure Blockchain Service project", (*service.Service).ConnectAzure))
	cmd.AddCommand(newConnectAzureCmd(svc, "connect-bdm", "Connect to a Blockchain Data Manager", (*service.Service).ConnectBDM))
	cmd.AddCommand(newNetworkRemoveCmd(svc))
	cmd.AddCommand(newNetworkStatusCmd(svc))

	return cmd
}

// explain turns a sibling label collision into an actionable message.
func explain(err error) error {
	var dup *tree.DuplicateChildError
	if errors.As(err, &dup) {
		return fmt.Errorf("%q already exists under %q, choose another name", dup.Label, dup.Parent)
	}
	return err
}

func projectCreated(cmd *cobra.Command, p *tree.Item) {
	fmt.Fprintf(cmd.OutOrStdout(), "Created %s %q with %d network(s)\n", service.KindName(p.Type), p.Label, p.Len())
}

func newNetworkListCmd(svc **service.Service) *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List projects and their networks",
		RunE: func(cmd *cobra.Command, args []string) error {
			projects := (*svc).Projects()
			if len(projects) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No projects. Create one with 'tnet network create-local'.")
				return nil
			}
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "PROJECT\tTYPE\tNETWORK\tURL\tNETWORK ID")
			for _, p := range projects {
				for _, n := range p.Children() {
					addr := "-"
					if u, ok := network.URL(n); ok {
						addr = u.String()
					}
					fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", p.Label, service.KindName(p.Type), n.Label, addr, network.NetworkID(n))
				}
				if p.Len() == 0 {
					fmt.Fprintf(w, "%s\t%s\t-\t-\t-\n", p.Label, service.KindName(p.Type))
				}
			}
			return w.Flush()
		},
	}
}

func newCreateLocalCmd(svc **service.Service) *cobra.Command {
	var port int

	cmd := &cobra.Command{
		Use:   "create-local <name>",
		Short: "Create a local ganache network",
		Long: `Create a local ganache project listening on 127.0.0.1.

Examples:
  tnet network create-local dev               # Listen on port 8545
  tnet network create-local dev2 --port 7545`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := (*svc).CreateLocalNetwork(args[0], port)
			if err != nil {
				return explain(err)
			}
			projectCreated(cmd, p)
			return nil
		},
	}

	cmd.Flags().IntVarP(&port, "port", "p", 8545, "Port the local node listens on")

	return cmd
}

func newConnectEndpointCmd(svc **service.Service, use, short string, connect func(*service.Service, string, string, string) (*tree.Item, error)) *cobra.Command {
	var (
		rawURL    string
		networkID string
	)

	cmd := &cobra.Command{
		Use:   use + " <name>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := connect(*svc, args[0], rawURL, networkID)
			if err != nil {
				return explain(err)
			}
			projectCreated(cmd, p)
			return nil
		},
	}

	cmd.Flags().StringVar(&rawURL, "url", "", "Endpoint url, scheme defaults to http")
	cmd.Flags().StringVar(&networkID, "network-id", "*", "Network id, or * to match any")
	_ = cmd.MarkFlagRequired("url")

	return cmd
}

func newConnectDashboardCmd(svc **service.Service) *cobra.Command {
	var port int

	cmd := &cobra.Command{
		Use:   "connect-dashboard <name>",
		Short: "Connect to a running truffle dashboard",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := (*svc).ConnectDashboard(args[0], port)
			if err != nil {
				return explain(err)
			}
			projectCreated(cmd, p)
			return nil
		},
	}

	cmd.Flags().IntVarP(&port, "port", "p", 24012, "Port the dashboard listens on")

	return cmd
}

func newConnectInfuraCmd(svc **service.Service) *cobra.Command {
	var (
		projectID string
		networks  []string
	)

	cmd := &cobra.Command{
		Use:   "connect-infura <name>",
		Short: "Connect to an Infura project",
		Long: fmt.Sprintf(`Connect to an Infura project. Each network becomes a node of the project.

Known networks: mainnet, %s.

Examples:
  tnet network connect-infura myapp --project-id abc123 --networks mainnet,goerli`, strings.Join(network.TestNetNames(), ", ")),
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := (*svc).ConnectInfura(args[0], projectID, networks...)
			if err != nil {
				return explain(err)
			}
			projectCreated(cmd, p)
			return nil
		},
	}

	cmd.Flags().StringVar(&projectID, "project-id", "", "Infura project id")
	cmd.Flags().StringSliceVar(&networks, "networks", []string{"mainnet"}, "Networks to add")
	_ = cmd.MarkFlagRequired("project-id")

	return cmd
}

func newConnectAzureCmd(svc **service.Service, use, short string, connect func(*service.Service, service.AzureOptions) (*tree.Item, error)) *cobra.Command {
	var (
		opts    service.AzureOptions
		members []string
	)

	cmd := &cobra.Command{
		Use:   use + " <name>",
		Short: short,
		Long: short + `.

Members are given as name=url, optionally suffixed with @networkId.

Examples:
  tnet network ` + use + ` prod --subscription SUB --resource-group RG \
    --member member1=member1.blockchain.azure.com:3200`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Label = args[0]
			opts.Members = opts.Members[:0]
			for _, raw := range members {
				m, err := parseMember(raw)
				if err != nil {
					return err
				}
				opts.Members = append(opts.Members, m)
			}
			p, err := connect(*svc, opts)
			if err != nil {
				return explain(err)
			}
			projectCreated(cmd, p)
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.SubscriptionID, "subscription", "", "Azure subscription id")
	cmd.Flags().StringVar(&opts.ResourceGroup, "resource-group", "", "Azure resource group")
	cmd.Flags().StringArrayVar(&members, "member", nil, "Member as name=url[@networkId], repeatable")

	return cmd
}

func parseMember(raw string) (service.AzureMember, error) {
	name, rest, ok := strings.Cut(raw, "=")
	if !ok || name == "" || rest == "" {
		return service.AzureMember{}, fmt.Errorf("invalid member %q, want name=url[@networkId]", raw)
	}
	m := service.AzureMember{Name: name, URL: rest}
	if i := strings.LastIndex(rest, "@"); i > 0 {
		m.URL, m.NetworkID = rest[:i], rest[i+1:]
	}
	return m, nil
}

func newNetworkRemoveCmd(svc **service.Service) *cobra.Command {
	return &cobra.Command{
		Use:     "remove <name>",
		Aliases: []string{"rm"},
		Short:   "Remove a project and its networks",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := (*svc).RemoveProject(args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed project %q\n", args[0])
			return nil
		},
	}
}

func newNetworkStatusCmd(svc **service.Service) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Probe every deploy destination with net_version",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			resolver := config.NewResolver(*svc)
			client := config.NewRPCClient()

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "DESTINATION\tADDRESS\tEXPECTED\tSTATUS")
			for _, d := range (*svc).Destinations() {
				addr := resolver.RPCAddress(ctx, d.Node)
				status := "not ready"
				if addr != "" {
					got, err := client.NetVersion(ctx, addr)
					switch {
					case err != nil:
						status = "unreachable: " + err.Error()
					case d.NetworkID != tree.AnyNetwork && string(d.NetworkID) != got:
						status = "network id mismatch: " + got
					default:
						status = "ok (" + got + ")"
					}
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", d.Label, redact(addr), d.NetworkID, status)
			}
			return w.Flush()
		},
	}
}

// redact hides access keys spliced into an address.
func redact(addr string) string {
	if addr == "" {
		return "-"
	}
	u, err := tree.ParseURL(addr, "https")
	if err != nil || u.Path == "/" {
		return addr
	}
	return tree.Origin(u) + "/…"
}
