package keys

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trufflesuite/vscode-ext-sub002/pkg/tree"
)

func azureNode(t *testing.T, kind tree.ItemType, label string) *tree.Item {
	t.Helper()
	item, err := tree.NewAzureNetworkNode(kind, label, "member.blockchain.azure.com:3200", "*", "sub-1", "rg-1", "member-1")
	require.NoError(t, err)
	return item
}

func TestAzureClientAccessKey(t *testing.T) {
	var gotPath, gotAuth, gotMethod string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		gotMethod = r.Method
		assert.Equal(t, DefaultAzureAPIVersion, r.URL.Query().Get("api-version"))
		_ = json.NewEncoder(w).Encode(apiKeyList{Keys: []apiKey{{KeyName: "key1", Value: "secret-key"}}})
	}))
	defer srv.Close()

	c := NewAzureClient(srv.URL+"/", "token")
	key, err := c.AccessKey(context.Background(), azureNode(t, tree.TypeAzureBlockchainNetworkNode, "node"))
	require.NoError(t, err)

	assert.Equal(t, "secret-key", key)
	assert.Equal(t, http.MethodPost, gotMethod)
	assert.Equal(t, "Bearer token", gotAuth)
	assert.Equal(t, "/subscriptions/sub-1/resourceGroups/rg-1/providers/Microsoft.Blockchain/blockchainMembers/member-1/listApiKeys", gotPath)
}

func TestAzureClientTransactionNodePath(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		_, _ = w.Write([]byte(`{"keys":[{"keyName":"key1","value":"tx-key"}]}`))
	}))
	defer srv.Close()

	key, err := NewAzureClient(srv.URL, "token").AccessKey(context.Background(), azureNode(t, tree.TypeTransactionNode, "tx1"))
	require.NoError(t, err)
	assert.Equal(t, "tx-key", key)
	assert.Contains(t, gotPath, "/blockchainMembers/member-1/transactionNodes/tx1/listApiKeys")
}

func TestAzureClientErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error":{"code":"ResourceNotFound","message":"member is provisioning"}}`))
	}))
	defer srv.Close()

	ctx := context.Background()
	_, err := NewAzureClient(srv.URL, "token").AccessKey(ctx, azureNode(t, tree.TypeAzureBlockchainNetworkNode, "n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "member is provisioning")

	_, err = NewAzureClient(srv.URL, "").AccessKey(ctx, azureNode(t, tree.TypeAzureBlockchainNetworkNode, "n"))
	assert.Error(t, err)

	local, err := tree.NewNetworkNode(tree.TypeLocalNetworkNode, "l", "127.0.0.1:8545", "*")
	require.NoError(t, err)
	_, err = NewAzureClient(srv.URL, "token").AccessKey(ctx, local)
	assert.Error(t, err)
}

func TestInfuraKeys(t *testing.T) {
	project := tree.NewItem(tree.TypeInfuraProject, "infura", "", &tree.InfuraProject{ProjectID: "pid"})
	node, err := tree.NewNetworkNode(tree.TypeInfuraNetworkNode, "ropsten", "ropsten.infura.io", "3")
	require.NoError(t, err)

	_, err = InfuraKeys{}.AccessKey(context.Background(), node)
	assert.Error(t, err)

	require.NoError(t, project.AddChild(node))
	key, err := InfuraKeys{}.AccessKey(context.Background(), node)
	require.NoError(t, err)
	assert.Equal(t, "pid", key)
}

func TestRouter(t *testing.T) {
	r := &Router{Infura: InfuraKeys{}}
	node := azureNode(t, tree.TypeAzureBlockchainNetworkNode, "n")
	_, err := r.AccessKey(context.Background(), node)
	assert.Error(t, err)
}
