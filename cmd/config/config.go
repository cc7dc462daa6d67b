package config

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/trufflesuite/vscode-ext-sub002/pkg/ethrpc"
	"github.com/trufflesuite/vscode-ext-sub002/pkg/keys"
	"github.com/trufflesuite/vscode-ext-sub002/pkg/mnemonic"
	"github.com/trufflesuite/vscode-ext-sub002/pkg/network"
	"github.com/trufflesuite/vscode-ext-sub002/pkg/prompt"
	"github.com/trufflesuite/vscode-ext-sub002/pkg/service"
	"github.com/trufflesuite/vscode-ext-sub002/pkg/state"
)

var (
	cfgFile string
	envFile string

	// Logger is shared by every command. It writes to stderr.
	Logger = logrus.New()
)

func InitConfig() {
	loadEnv()

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		configDir := filepath.Join(home, ".config", "tnet")
		viper.AddConfigPath(configDir)
		viper.SetConfigType("yaml")
		viper.SetConfigName("config")
	}

	viper.SetEnvPrefix("TNET")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	// Set defaults
	home, _ := os.UserHomeDir()
	dataDir := filepath.Join(home, ".local", "share", "tnet")
	viper.SetDefault("data_dir", dataDir)
	viper.SetDefault("log_level", "warn")
	viper.SetDefault("refresh_debounce", service.DefaultRefreshDebounce)
	viper.SetDefault("state.backend", "sqlite")
	viper.SetDefault("state.etcd.prefix", "/tnet/")
	viper.SetDefault("state.etcd.dial_timeout", 5*time.Second)
	viper.SetDefault("azure.endpoint", keys.DefaultAzureEndpoint)
	viper.SetDefault("mnemonic.dir", filepath.Join(dataDir, "mnemonics"))
	viper.SetDefault("rpc.timeout", 5*time.Second)

	if err := viper.ReadInConfig(); err == nil {
		Logger.WithField("file", viper.ConfigFileUsed()).Debug("using config file")
	}

	Logger.SetOutput(os.Stderr)
	level, err := logrus.ParseLevel(viper.GetString("log_level"))
	if err != nil {
		Logger.WithError(err).Warn("invalid log_level, using warn")
		level = logrus.WarnLevel
	}
	Logger.SetLevel(level)
}

// loadEnv reads KEY=value pairs into the environment. A missing default
// .env file is not an error.
func loadEnv() {
	path := envFile
	if path == "" {
		path = ".env"
	}
	if err := godotenv.Load(path); err != nil {
		if envFile == "" && errors.Is(err, fs.ErrNotExist) {
			return
		}
		Logger.WithError(err).WithField("file", path).Warn("could not load env file")
	}
}

// NewStore opens the configured global state backend.
func NewStore() (state.Store, error) {
	switch backend := viper.GetString("state.backend"); backend {
	case "sqlite", "":
		return state.NewSQLiteStore(viper.GetString("data_dir"))
	case "etcd":
		return state.NewEtcdStore(state.EtcdConfig{
			Endpoints:   viper.GetStringSlice("state.etcd.endpoints"),
			Prefix:      viper.GetString("state.etcd.prefix"),
			DialTimeout: viper.GetDuration("state.etcd.dial_timeout"),
		})
	case "memory":
		return state.NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("unknown state backend %q", backend)
	}
}

// InitService opens the store and, when load is set, restores the tree.
func InitService(ctx context.Context, load bool) (*service.Service, error) {
	store, err := NewStore()
	if err != nil {
		return nil, fmt.Errorf("open state store: %w", err)
	}

	config := &service.Config{
		RefreshDebounce: viper.GetDuration("refresh_debounce"),
	}
	svc := service.New(config, store, Logger.WithField("component", "service"))
	if !load {
		return svc, nil
	}
	if err := svc.Load(ctx); err != nil {
		store.Close()
		return nil, fmt.Errorf("%w (run 'tnet state reset' to start over)", err)
	}
	return svc, nil
}

// NewMnemonicRepository returns the mnemonic history kept next to the tree.
func NewMnemonicRepository(svc *service.Service) *mnemonic.Repository {
	return mnemonic.NewRepository(svc.Store, viper.GetString("mnemonic.dir"))
}

// NewResolver wires interactive prompts, access keys and mnemonics.
func NewResolver(svc *service.Service) *network.Resolver {
	prompter := prompt.NewTerminal()
	return &network.Resolver{
		Prompter: prompter,
		Keys: &keys.Router{
			Azure:  keys.NewAzureClient(viper.GetString("azure.endpoint"), viper.GetString("azure.access_token")),
			Infura: keys.InfuraKeys{},
		},
		Mnemonics: &mnemonic.Selector{Repo: NewMnemonicRepository(svc), Prompter: prompter},
		Log:       Logger.WithField("component", "network"),
	}
}

// NewRPCClient returns the JSON-RPC client used for endpoint probes.
func NewRPCClient() *ethrpc.Client {
	return ethrpc.New(viper.GetDuration("rpc.timeout"))
}

func AddGlobalFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.config/tnet/config.yaml)")
	cmd.PersistentFlags().StringVar(&envFile, "env-file", "", "dotenv file to load (default is ./.env)")
	cmd.PersistentFlags().String("log-level", "", "log level (debug, info, warn, error)")
	cmd.PersistentFlags().String("state-backend", "", "global state backend (sqlite, etcd, memory)")
	cobra.CheckErr(viper.BindPFlag("log_level", cmd.PersistentFlags().Lookup("log-level")))
	cobra.CheckErr(viper.BindPFlag("state.backend", cmd.PersistentFlags().Lookup("state-backend")))
}
