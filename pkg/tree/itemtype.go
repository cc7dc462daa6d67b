package tree

import "fmt"

// ItemType discriminates every kind of node in the network tree. Values are
// persisted, so existing constants must never be renumbered.
type ItemType int

const (
	TypeCommand         ItemType = 0
	TypeNullable        ItemType = 1
	TypeInfo            ItemType = 2
	TypeGroup           ItemType = 3
	TypeMember          ItemType = 4
	TypeTransactionNode ItemType = 5

	TypeAzureBlockchainService ItemType = 10
	TypeLocalService           ItemType = 11
	TypeInfuraService          ItemType = 12
	TypeBDMService             ItemType = 13
	TypeGenericService         ItemType = 14
	TypeDashboardService       ItemType = 15
	TypeQuorumService          ItemType = 16

	TypeAzureBlockchainProject ItemType = 20
	TypeLocalProject           ItemType = 21
	TypeInfuraProject          ItemType = 22
	TypeBDMProject             ItemType = 23
	TypeGenericProject         ItemType = 24
	TypeDashboardProject       ItemType = 25
	TypeQuorumProject          ItemType = 26

	TypeAzureBlockchainNetworkNode ItemType = 30
	TypeLocalNetworkNode           ItemType = 31
	TypeInfuraNetworkNode          ItemType = 32
	TypeBDMNetworkNode             ItemType = 33
	TypeGenericNetworkNode         ItemType = 34
	TypeDashboardNetworkNode       ItemType = 35
	TypeQuorumNetworkNode          ItemType = 36

	TypeAzureConsortium   ItemType = 40
	TypeLocalConsortium   ItemType = 41
	TypeMainNetConsortium ItemType = 42
	TypeTestNetConsortium ItemType = 43
)

// Family groups item types that share tree semantics.
type Family int

const (
	FamilyOther Family = iota
	FamilyService
	FamilyProject
	FamilyNetworkNode
	FamilyConsortium
)

type kindInfo struct {
	name   string
	family Family
	scheme string // default URL scheme for endpoint-bearing kinds
	prefix string // deploy destination prefix, shared by service/project/node
}

// Service, project and node kinds of one integration share an offset from
// their family base, e.g. TypeLocalService+10 == TypeLocalProject.
var kinds = map[ItemType]kindInfo{
	TypeCommand:         {name: "command"},
	TypeNullable:        {name: "nullable"},
	TypeInfo:            {name: "info"},
	TypeGroup:           {name: "group"},
	TypeMember:          {name: "member"},
	TypeTransactionNode: {name: "transaction node", scheme: "https"},

	TypeAzureBlockchainService: {name: "azure blockchain service", family: FamilyService, scheme: "https", prefix: "abs"},
	TypeLocalService:           {name: "local service", family: FamilyService, scheme: "http", prefix: "loc"},
	TypeInfuraService:          {name: "infura service", family: FamilyService, scheme: "https", prefix: "inf"},
	TypeBDMService:             {name: "blockchain data manager", family: FamilyService, scheme: "https", prefix: "bdm"},
	TypeGenericService:         {name: "generic service", family: FamilyService, scheme: "http", prefix: "gen"},
	TypeDashboardService:       {name: "truffle dashboard", family: FamilyService, scheme: "http", prefix: "dsh"},
	TypeQuorumService:          {name: "quorum service", family: FamilyService, scheme: "http", prefix: "qrm"},

	TypeAzureBlockchainProject: {name: "azure blockchain project", family: FamilyProject, scheme: "https", prefix: "abs"},
	TypeLocalProject:           {name: "local project", family: FamilyProject, scheme: "http", prefix: "loc"},
	TypeInfuraProject:          {name: "infura project", family: FamilyProject, scheme: "https", prefix: "inf"},
	TypeBDMProject:             {name: "bdm project", family: FamilyProject, scheme: "https", prefix: "bdm"},
	TypeGenericProject:         {name: "generic project", family: FamilyProject, scheme: "http", prefix: "gen"},
	TypeDashboardProject:       {name: "dashboard project", family: FamilyProject, scheme: "http", prefix: "dsh"},
	TypeQuorumProject:          {name: "quorum project", family: FamilyProject, scheme: "http", prefix: "qrm"},

	TypeAzureBlockchainNetworkNode: {name: "azure blockchain network", family: FamilyNetworkNode, scheme: "https", prefix: "abs"},
	TypeLocalNetworkNode:           {name: "local network", family: FamilyNetworkNode, scheme: "http", prefix: "loc"},
	TypeInfuraNetworkNode:          {name: "infura network", family: FamilyNetworkNode, scheme: "https", prefix: "inf"},
	TypeBDMNetworkNode:             {name: "bdm network", family: FamilyNetworkNode, scheme: "https", prefix: "bdm"},
	TypeGenericNetworkNode:         {name: "generic network", family: FamilyNetworkNode, scheme: "http", prefix: "gen"},
	TypeDashboardNetworkNode:       {name: "dashboard network", family: FamilyNetworkNode, scheme: "http", prefix: "dsh"},
	TypeQuorumNetworkNode:          {name: "quorum network", family: FamilyNetworkNode, scheme: "http", prefix: "qrm"},

	TypeAzureConsortium:   {name: "azure consortium", family: FamilyConsortium, scheme: "https"},
	TypeLocalConsortium:   {name: "local consortium", family: FamilyConsortium, scheme: "http"},
	TypeMainNetConsortium: {name: "ethereum mainnet", family: FamilyConsortium, scheme: "https"},
	TypeTestNetConsortium: {name: "ethereum testnet", family: FamilyConsortium, scheme: "https"},
}

// Types returns every known item type in ascending order.
func Types() []ItemType {
	out := make([]ItemType, 0, len(kinds))
	for t := TypeCommand; t <= TypeTestNetConsortium; t++ {
		if _, ok := kinds[t]; ok {
			out = append(out, t)
		}
	}
	return out
}

// Valid reports whether t is a known item type.
func (t ItemType) Valid() bool {
	_, ok := kinds[t]
	return ok
}

func (t ItemType) String() string {
	if k, ok := kinds[t]; ok {
		return k.name
	}
	return fmt.Sprintf("ItemType(%d)", int(t))
}

// Family returns the tree family of t.
func (t ItemType) Family() Family {
	return kinds[t].family
}

// DefaultScheme is the URL scheme assumed when an endpoint string has none.
func (t ItemType) DefaultScheme() string {
	if s := kinds[t].scheme; s != "" {
		return s
	}
	return "http"
}

// Prefix is the deploy destination prefix of the integration t belongs to.
func (t ItemType) Prefix() string {
	return kinds[t].prefix
}

// ProjectType maps a service kind to the project kind it holds.
func (t ItemType) ProjectType() (ItemType, bool) {
	if t.Family() != FamilyService {
		return 0, false
	}
	return t + 10, true
}

// NodeType maps a project kind to the network node kind it holds.
func (t ItemType) NodeType() (ItemType, bool) {
	if t.Family() != FamilyProject {
		return 0, false
	}
	return t + 10, true
}

// ServiceType maps a project or network node kind back to its service kind.
func (t ItemType) ServiceType() (ItemType, bool) {
	switch t.Family() {
	case FamilyService:
		return t, true
	case FamilyProject:
		return t - 10, true
	case FamilyNetworkNode:
		return t - 20, true
	}
	return 0, false
}
