//go:build integration

package main

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trufflesuite/vscode-ext-sub002/pkg/ethrpc"
	"github.com/trufflesuite/vscode-ext-sub002/pkg/mnemonic"
	"github.com/trufflesuite/vscode-ext-sub002/pkg/network"
	"github.com/trufflesuite/vscode-ext-sub002/pkg/prompt"
	"github.com/trufflesuite/vscode-ext-sub002/pkg/service"
	"github.com/trufflesuite/vscode-ext-sub002/pkg/state"
	"github.com/trufflesuite/vscode-ext-sub002/pkg/tree"
)

func TestIntegration(t *testing.T) {
	// Skip if not running integration tests
	if os.Getenv("RUN_INTEGRATION_TESTS") == "" {
		t.Skip("Skipping integration test. Set RUN_INTEGRATION_TESTS=1 to run.")
	}

	ctx := context.Background()
	tmpDir := t.TempDir()
	dataDir := filepath.Join(tmpDir, "data")

	node := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			ID uint64 `json:"id"`
		}
		_ = json.NewDecoder(r.Body).Decode(&req)
		_ = json.NewEncoder(w).Encode(map[string]any{"jsonrpc": "2.0", "id": req.ID, "result": "1337"})
	}))
	defer node.Close()

	t.Run("PersistAcrossRestart", func(t *testing.T) {
		store, err := state.NewSQLiteStore(dataDir)
		require.NoError(t, err)
		svc := service.New(&service.Config{RefreshDebounce: time.Hour}, store, nil)
		require.NoError(t, svc.Load(ctx))

		_, err = svc.ConnectGeneric("chain", node.URL, "1337")
		require.NoError(t, err)
		_, err = svc.ConnectInfura("infura", "pid", "mainnet", "sepolia")
		require.NoError(t, err)
		require.NoError(t, svc.Close())

		store, err = state.NewSQLiteStore(dataDir)
		require.NoError(t, err)
		svc = service.New(nil, store, nil)
		require.NoError(t, svc.Load(ctx))
		defer svc.Close()

		var got []string
		for _, d := range svc.Destinations() {
			got = append(got, d.Label)
		}
		assert.Equal(t, []string{"inf_infura_mainnet", "inf_infura_sepolia", "gen_chain_chain"}, got)
	})

	t.Run("ProbeAndResolve", func(t *testing.T) {
		store, err := state.NewSQLiteStore(dataDir)
		require.NoError(t, err)
		svc := service.New(nil, store, nil)
		require.NoError(t, svc.Load(ctx))
		defer svc.Close()

		d, err := svc.FindDestination("gen_chain_chain")
		require.NoError(t, err)

		r := &network.Resolver{}
		addr := r.RPCAddress(ctx, d.Node)
		assert.True(t, strings.HasPrefix(node.URL, addr))

		version, err := ethrpc.New(time.Second).NetVersion(ctx, addr)
		require.NoError(t, err)
		assert.Equal(t, string(d.NetworkID), version)
	})

	t.Run("MnemonicProvider", func(t *testing.T) {
		store, err := state.NewSQLiteStore(dataDir)
		require.NoError(t, err)
		svc := service.New(nil, store, nil)
		require.NoError(t, svc.Load(ctx))
		defer svc.Close()

		script := prompt.NewScript(prompt.Answer{Value: "1"}, prompt.Answer{Value: ""}, prompt.Answer{Index: 0})
		repo := mnemonic.NewRepository(store, filepath.Join(tmpDir, "mnemonics"))
		r := &network.Resolver{
			Prompter:  script,
			Keys:      staticKey("pid"),
			Mnemonics: &mnemonic.Selector{Repo: repo, Prompter: script},
		}

		d, err := svc.FindDestination("inf_infura_mainnet")
		require.NoError(t, err)
		n, err := d.Network(ctx, r)
		require.NoError(t, err)
		require.NotNil(t, n.Options.Provider)
		assert.Equal(t, "https://mainnet.infura.io/v3/pid", n.Options.Provider.URL)
		assert.Equal(t, uint64(1), *n.Options.GasPrice)
		assert.Nil(t, n.Options.Gas)

		paths, err := repo.Paths(ctx)
		require.NoError(t, err)
		assert.Equal(t, []string{n.Options.Provider.Mnemonic}, paths)
	})
}

type staticKey string

func (k staticKey) AccessKey(context.Context, *tree.Item) (string, error) {
	return string(k), nil
}
