package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trufflesuite/vscode-ext-sub002/pkg/state"
)

// run executes tnet with an isolated data directory.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	t.Setenv("TNET_DATA_DIR", filepath.Join(dir, "data"))
	t.Setenv("TNET_MNEMONIC_DIR", filepath.Join(dir, "mnemonics"))
	t.Setenv("TNET_STATE_BACKEND", "sqlite")
	return dir
}

func TestCreateLocalAndDeployConfig(t *testing.T) {
	isolate(t)

	out, err := run(t, "network", "create-local", "dev", "--port", "7545")
	require.NoError(t, err)
	assert.Contains(t, out, `"dev"`)

	out, err = run(t, "deploy", "destinations")
	require.NoError(t, err)
	assert.Contains(t, out, "loc_dev_dev")
	assert.Contains(t, out, "http://127.0.0.1:7545/")

	out, err = run(t, "deploy", "config", "loc_dev_dev", "-o", "json")
	require.NoError(t, err)
	var entry map[string]map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &entry))
	opts := entry["loc_dev_dev"]
	assert.Equal(t, "127.0.0.1", opts["host"])
	assert.Equal(t, float64(7545), opts["port"])
	assert.Equal(t, "*", opts["network_id"])

	out, err = run(t, "deploy", "config", "loc_dev_dev")
	require.NoError(t, err)
	assert.Contains(t, out, "loc_dev_dev:")
	assert.Contains(t, out, "host: 127.0.0.1")
}

func TestDuplicateProjectName(t *testing.T) {
	isolate(t)

	_, err := run(t, "network", "create-local", "dev")
	require.NoError(t, err)
	_, err = run(t, "network", "create-local", "dev", "--port", "9545")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")
}

func TestTreeAndRemove(t *testing.T) {
	isolate(t)

	_, err := run(t, "network", "connect-generic", "gen", "--url", "10.0.0.1:8545", "--network-id", "1337")
	require.NoError(t, err)

	out, err := run(t, "tree")
	require.NoError(t, err)
	assert.Contains(t, out, "Other Services")
	assert.Contains(t, out, "gen")

	out, err = run(t, "network", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "1337")

	_, err = run(t, "network", "remove", "gen")
	require.NoError(t, err)
	_, err = run(t, "network", "remove", "gen")
	assert.Error(t, err)
}

func TestConsortiumCommands(t *testing.T) {
	isolate(t)

	_, err := run(t, "consortium", "create", "ganache", "--type", "local", "--url", "127.0.0.1:7545")
	require.NoError(t, err)
	_, err = run(t, "consortium", "create", "nowhere", "--type", "testnet", "--url", "x.infura.io")
	assert.Error(t, err)

	out, err := run(t, "consortium", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "ganache")
	assert.Contains(t, out, "Local Consortium")

	out, err = run(t, "consortium", "config", "ganache")
	require.NoError(t, err)
	assert.Contains(t, out, "port: 7545")

	_, err = run(t, "consortium", "remove", "ganache")
	require.NoError(t, err)
	out, err = run(t, "consortium", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "No consortiums.")
}

func TestStateExportImportReset(t *testing.T) {
	dir := isolate(t)

	_, err := run(t, "network", "create-local", "dev")
	require.NoError(t, err)

	file := filepath.Join(dir, "tree.json")
	_, err = run(t, "state", "export", "--file", file)
	require.NoError(t, err)

	_, err = run(t, "state", "reset")
	require.NoError(t, err)
	out, err := run(t, "deploy", "destinations")
	require.NoError(t, err)
	assert.Contains(t, out, "No deploy destinations.")

	_, err = run(t, "state", "import", file)
	require.NoError(t, err)
	out, err = run(t, "deploy", "destinations")
	require.NoError(t, err)
	assert.Contains(t, out, "loc_dev_dev")
}

func TestResetRecoversMalformedState(t *testing.T) {
	dir := isolate(t)

	bad := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte(`[{"itemType":77,"label":"x","children":[]}]`), 0644))
	_, err := run(t, "state", "import", bad)
	require.Error(t, err)

	store, err := state.NewSQLiteStore(filepath.Join(dir, "data"))
	require.NoError(t, err)
	require.NoError(t, store.Put(context.Background(), state.KeyTree, []byte(`[{"label":"missing type"}]`)))
	require.NoError(t, store.Close())

	_, err = run(t, "tree")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "tnet state reset")

	_, err = run(t, "state", "reset")
	require.NoError(t, err)
	out, err := run(t, "tree")
	require.NoError(t, err)
	assert.Contains(t, out, "Ganache Service")
}

func TestNetworkListChildWithoutURL(t *testing.T) {
	dir := isolate(t)

	file := filepath.Join(dir, "tree.json")
	data := `[{"itemType":14,"label":"Other Services","children":[
		{"itemType":24,"label":"custom","children":[{"itemType":2,"label":"unreachable","children":[]}]}
	]}]`
	require.NoError(t, os.WriteFile(file, []byte(data), 0644))
	_, err := run(t, "state", "import", file)
	require.NoError(t, err)

	out, err := run(t, "network", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "unreachable")
	assert.NotContains(t, out, "<nil>")
}

func TestMnemonicCommands(t *testing.T) {
	isolate(t)

	out, err := run(t, "mnemonic", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "No stored mnemonics.")

	out, err = run(t, "mnemonic", "new")
	require.NoError(t, err)
	assert.Contains(t, out, " ... ")

	out, err = run(t, "mnemonic", "list")
	require.NoError(t, err)
	assert.Contains(t, out, ".env")
}

func TestParseMember(t *testing.T) {
	m, err := parseMember("m1=m1.blockchain.azure.com:3200@5")
	require.NoError(t, err)
	assert.Equal(t, "m1", m.Name)
	assert.Equal(t, "m1.blockchain.azure.com:3200", m.URL)
	assert.Equal(t, "5", m.NetworkID)

	m, err = parseMember("m2=https://m2.example.com")
	require.NoError(t, err)
	assert.Equal(t, "https://m2.example.com", m.URL)
	assert.Empty(t, m.NetworkID)

	_, err = parseMember("novalue")
	assert.Error(t, err)
}

func TestVersion(t *testing.T) {
	out, err := run(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "tnet")
}
