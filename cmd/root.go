package cmd

import (
	"github.com/spf13/cobra"

	"github.com/trufflesuite/vscode-ext-sub002/cmd/config"
	"github.com/trufflesuite/vscode-ext-sub002/pkg/service"
)

// serviceAnnotation controls how PersistentPreRunE prepares the service.
const serviceAnnotation = "tnet/service"

const (
	serviceSkip   = "skip"
	serviceNoLoad = "noload"
)

// NewRootCmd builds the tnet command tree.
func NewRootCmd() *cobra.Command {
	var svc *service.Service

	rootCmd := &cobra.Command{
		Use:          "tnet",
		Short:        "Manage truffle networks, projects and consortiums",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// This runs once before any subcommand
			config.InitConfig()

			mode := cmd.Annotations[serviceAnnotation]
			if mode == serviceSkip {
				return nil
			}
			s, err := config.InitService(cmd.Context(), mode != serviceNoLoad)
			if err != nil {
				return err
			}
			svc = s
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if svc == nil {
				return nil
			}
			err := svc.Close()
			svc = nil
			return err
		},
	}
	config.AddGlobalFlags(rootCmd)

	rootCmd.AddCommand(NewTreeCmd(&svc))
	rootCmd.AddCommand(NewNetworkCmd(&svc))
	rootCmd.AddCommand(NewConsortiumCmd(&svc))
	rootCmd.AddCommand(NewDeployCmd(&svc))
	rootCmd.AddCommand(NewMnemonicCmd(&svc))
	rootCmd.AddCommand(NewStateCmd(&svc))
	rootCmd.AddCommand(NewVersionCmd())

	return rootCmd
}
