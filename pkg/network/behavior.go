package network

import (
	"strings"

	"github.com/trufflesuite/vscode-ext-sub002/pkg/tree"
)

type gasPolicy int

const (
	// gasDefault leaves gas unset so the build tool picks its own value.
	gasDefault gasPolicy = iota
	// gasFree networks do not charge fees.
	gasFree
	// gasPrompt asks the user, allowing an empty answer.
	gasPrompt
)

type providerKind int

const (
	providerHostPort providerKind = iota
	providerMnemonic
)

// behavior is the network semantics of one item kind.
type behavior struct {
	gas      gasPolicy
	provider providerKind
	// keyPath, when set, marks endpoints whose RPC address is origin+keyPath+accessKey.
	keyPath string
}

var behaviors = map[tree.ItemType]behavior{
	tree.TypeLocalNetworkNode:           {gas: gasDefault, provider: providerHostPort},
	tree.TypeGenericNetworkNode:         {gas: gasDefault, provider: providerHostPort},
	tree.TypeDashboardNetworkNode:       {gas: gasDefault, provider: providerHostPort},
	tree.TypeQuorumNetworkNode:          {gas: gasFree, provider: providerHostPort},
	tree.TypeAzureBlockchainNetworkNode: {gas: gasFree, provider: providerMnemonic, keyPath: "/"},
	tree.TypeBDMNetworkNode:             {gas: gasFree, provider: providerMnemonic},
	tree.TypeInfuraNetworkNode:          {gas: gasPrompt, provider: providerMnemonic, keyPath: "/v3/"},
	tree.TypeTransactionNode:            {gas: gasFree, provider: providerMnemonic, keyPath: "/"},

	tree.TypeAzureConsortium:   {gas: gasFree, provider: providerMnemonic, keyPath: "/"},
	tree.TypeLocalConsortium:   {gas: gasDefault, provider: providerHostPort},
	tree.TypeMainNetConsortium: {gas: gasPrompt, provider: providerMnemonic},
	tree.TypeTestNetConsortium: {gas: gasPrompt, provider: providerMnemonic},
}

// IsNetwork reports whether items of kind t resolve to a truffle network.
func IsNetwork(t tree.ItemType) bool {
	_, ok := behaviors[t]
	return ok
}

// MainNetID is the chain id of the Ethereum main network.
const MainNetID tree.NetworkID = "1"

var testNetIDs = map[string]tree.NetworkID{
	"ropsten": "3",
	"rinkeby": "4",
	"goerli":  "5",
	"kovan":   "42",
	"sepolia": "11155111",
}

// TestNetID returns the chain id of a named public test network.
func TestNetID(name string) (tree.NetworkID, bool) {
	id, ok := testNetIDs[strings.ToLower(strings.TrimSpace(name))]
	return id, ok
}

// TestNetNames lists the known public test networks.
func TestNetNames() []string {
	return []string{"goerli", "kovan", "rinkeby", "ropsten", "sepolia"}
}
