package service

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trufflesuite/vscode-ext-sub002/pkg/state"
	"github.com/trufflesuite/vscode-ext-sub002/pkg/tree"
)

func TestCreateLocalNetwork(t *testing.T) {
	s := newTestService(t, state.NewMemoryStore())

	p, err := s.CreateLocalNetwork("local1", 8545)
	require.NoError(t, err)
	require.Equal(t, 1, p.Len())
	node := p.Children()[0]
	ep, ok := node.Endpoint()
	require.True(t, ok)
	assert.Equal(t, "http://127.0.0.1:8545/", ep.URL.String())
	assert.Equal(t, tree.AnyNetwork, ep.NetworkID)
	assert.Equal(t, tree.TypeLocalService, p.Parent().Type)

	_, err = s.CreateLocalNetwork("local1", 9545)
	var dup *tree.DuplicateChildError
	require.ErrorAs(t, err, &dup)
	assert.Equal(t, "local1", dup.Label)
	assert.Equal(t, 1, p.Parent().Len())

	_, err = s.CreateLocalNetwork("bad", 0)
	assert.Error(t, err)
}

func TestConnectInfura(t *testing.T) {
	s := newTestService(t, state.NewMemoryStore())

	p, err := s.ConnectInfura("infura1", "pid", "mainnet", "goerli")
	require.NoError(t, err)
	nodes := p.Children()
	require.Len(t, nodes, 2)
	ep, _ := nodes[0].Endpoint()
	assert.Equal(t, "https://mainnet.infura.io/", ep.URL.String())
	assert.Equal(t, tree.NetworkID("1"), ep.NetworkID)
	ep, _ = nodes[1].Endpoint()
	assert.Equal(t, tree.NetworkID("5"), ep.NetworkID)

	_, err = s.ConnectInfura("infura2", "pid", "nowhere")
	assert.Error(t, err)
	_, err = s.ConnectInfura("infura3", "")
	assert.Error(t, err)
}

func TestConnectAzureAndBDM(t *testing.T) {
	s := newTestService(t, state.NewMemoryStore())

	p, err := s.ConnectAzure(AzureOptions{
		Label:          "abs",
		SubscriptionID: "sub",
		ResourceGroup:  "rg",
		Members:        []AzureMember{{Name: "member1", URL: "member1.blockchain.azure.com:3200"}},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"member1"}, p.Payload.(*tree.AzureProject).MemberNames)
	node := p.Children()[0]
	ae := node.Payload.(*tree.AzureEndpoint)
	assert.Equal(t, "sub", ae.SubscriptionID)
	assert.Equal(t, "member1", ae.MemberName)
	assert.Equal(t, "https", ae.URL.Scheme)

	_, err = s.ConnectBDM(AzureOptions{Label: "bdm", SubscriptionID: "sub"})
	assert.Error(t, err)

	b, err := s.ConnectBDM(AzureOptions{Label: "bdm", SubscriptionID: "sub", ResourceGroup: "rg"})
	require.NoError(t, err)
	assert.Equal(t, tree.TypeBDMService, b.Parent().Type)
}

func TestConnectEndpointKinds(t *testing.T) {
	s := newTestService(t, state.NewMemoryStore())

	g, err := s.ConnectGeneric("gen", "10.0.0.1:8545", "1337")
	require.NoError(t, err)
	assert.Equal(t, tree.TypeGenericNetworkNode, g.Children()[0].Type)

	q, err := s.ConnectQuorum("q", "10.0.0.2:22000", "10")
	require.NoError(t, err)
	assert.Equal(t, tree.TypeQuorumService, q.Parent().Type)

	d, err := s.ConnectDashboard("dash", 24012)
	require.NoError(t, err)
	ep, _ := d.Children()[0].Endpoint()
	assert.Equal(t, "http://127.0.0.1:24012/rpc", ep.URL.String())

	_, err = s.ConnectGeneric("bad", "10.0.0.1:8545", "one")
	assert.Error(t, err)
}

func TestDestinations(t *testing.T) {
	s := newTestService(t, state.NewMemoryStore())
	assert.Empty(t, s.Destinations())

	_, err := s.CreateLocalNetwork("local1", 8545)
	require.NoError(t, err)
	_, err = s.ConnectGeneric("gen", "10.0.0.1:8545", "1337")
	require.NoError(t, err)

	var got []string
	for _, d := range s.Destinations() {
		got = append(got, d.Label)
	}
	assert.Equal(t, []string{"loc_local1_local1", "gen_gen_gen"}, got)

	d, err := s.FindDestination("gen_gen_gen")
	require.NoError(t, err)
	assert.Equal(t, tree.NetworkID("1337"), d.NetworkID)

	_, err = s.FindDestination("nope")
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestRemoveProject(t *testing.T) {
	s := newTestService(t, state.NewMemoryStore())
	p, err := s.CreateLocalNetwork("local1", 8545)
	require.NoError(t, err)

	require.NoError(t, s.RemoveProject("local1"))
	assert.Nil(t, p.Parent())
	assert.Empty(t, s.Projects())
	assert.True(t, errors.Is(s.RemoveProject("local1"), ErrNotFound))
}

func TestConsortiums(t *testing.T) {
	s := newTestService(t, state.NewMemoryStore())

	c, err := s.CreateConsortium(ConsortiumOptions{
		Kind:           tree.TypeAzureConsortium,
		Label:          "abs-consortium",
		URLs:           []string{"member.blockchain.azure.com:3200"},
		SubscriptionID: "sub",
		ResourceGroup:  "rg",
		MemberName:     "member",
	})
	require.NoError(t, err)
	assert.Equal(t, "sub", c.Payload.(*tree.Consortium).SubscriptionID)

	_, err = s.CreateConsortium(ConsortiumOptions{Kind: tree.TypeMainNetConsortium, Label: "mainnet", URLs: []string{"mainnet.infura.io/v3/x"}})
	require.NoError(t, err)

	_, err = s.CreateConsortium(ConsortiumOptions{Kind: tree.TypeMainNetConsortium, Label: "mainnet", URLs: []string{"mainnet.infura.io"}})
	var dup *tree.DuplicateChildError
	assert.ErrorAs(t, err, &dup)

	_, err = s.CreateConsortium(ConsortiumOptions{Kind: tree.TypeLocalConsortium, Label: "nourl"})
	assert.Error(t, err)
	_, err = s.CreateConsortium(ConsortiumOptions{Kind: tree.TypeLocalProject, Label: "x", URLs: []string{"a"}})
	assert.Error(t, err)
	_, err = s.CreateConsortium(ConsortiumOptions{Kind: tree.TypeAzureConsortium, Label: "abs-unset", URLs: []string{"member2.blockchain.azure.com:3200"}})
	assert.Error(t, err)

	assert.Equal(t, []string{"abs-consortium", "mainnet"}, labels(s.Consortiums()))

	require.NoError(t, s.RemoveConsortium("mainnet"))
	_, err = s.Consortium("mainnet")
	assert.True(t, errors.Is(err, ErrNotFound))
	assert.True(t, errors.Is(s.RemoveConsortium("mainnet"), ErrNotFound))
}
