package network

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trufflesuite/vscode-ext-sub002/pkg/tree"
)

func TestDeployDestinations(t *testing.T) {
	project := tree.NewItem(tree.TypeLocalProject, "myproj", "", &tree.PortProject{Port: 8545})
	assert.Empty(t, DeployDestinations(project))
	assert.Equal(t, "", (&Resolver{}).ProjectRPCAddress(context.Background(), project))

	require.NoError(t, project.AddChild(node(t, tree.TypeLocalNetworkNode, "dev", "127.0.0.1:8545", "*")))
	require.NoError(t, project.AddChild(node(t, tree.TypeLocalNetworkNode, "alt", "127.0.0.1:9545", "*")))

	dests := DeployDestinations(project)
	require.Len(t, dests, 2)
	assert.Equal(t, "loc_myproj_dev", dests[0].Label)
	assert.Equal(t, "http://127.0.0.1:8545/", dests[0].Detail)
	assert.Equal(t, tree.AnyNetwork, dests[0].NetworkID)
	assert.Equal(t, "loc_myproj_alt", dests[1].Label)

	assert.Equal(t, "http://127.0.0.1:8545", (&Resolver{}).ProjectRPCAddress(context.Background(), project))

	n, err := dests[1].Network(context.Background(), &Resolver{})
	require.NoError(t, err)
	assert.Equal(t, "loc_myproj_alt", n.Name)
	assert.Equal(t, 9545, n.Options.Port)
}
