package service

import (
	"fmt"
	"strconv"

	"github.com/trufflesuite/vscode-ext-sub002/pkg/network"
	"github.com/trufflesuite/vscode-ext-sub002/pkg/tree"
)

// AzureMember is one blockchain member exposed by an Azure project.
type AzureMember struct {
	Name      string
	URL       string
	NetworkID string
}

// AzureOptions describes an Azure Blockchain Service or BDM connection.
type AzureOptions struct {
	Label          string
	SubscriptionID string
	ResourceGroup  string
	Members        []AzureMember
}

func localURL(port int) string {
	return "127.0.0.1:" + strconv.Itoa(port)
}

func validPort(port int) error {
	if port <= 0 || port > 65535 {
		return fmt.Errorf("invalid port %d", port)
	}
	return nil
}

// CreateLocalNetwork adds a local ganache project listening on port.
func (s *Service) CreateLocalNetwork(label string, port int) (*tree.Item, error) {
	if err := validPort(port); err != nil {
		return nil, err
	}
	project := tree.NewItem(tree.TypeLocalProject, label, "", &tree.PortProject{Port: port})
	node, err := tree.NewNetworkNode(tree.TypeLocalNetworkNode, label, localURL(port), string(tree.AnyNetwork))
	if err != nil {
		return nil, err
	}
	return s.attach(project, node)
}

// ConnectDashboard adds a truffle dashboard project listening on port.
func (s *Service) ConnectDashboard(label string, port int) (*tree.Item, error) {
	if err := validPort(port); err != nil {
		return nil, err
	}
	project := tree.NewItem(tree.TypeDashboardProject, label, "", &tree.PortProject{Port: port})
	node, err := tree.NewNetworkNode(tree.TypeDashboardNetworkNode, label, localURL(port)+"/rpc", string(tree.AnyNetwork))
	if err != nil {
		return nil, err
	}
	return s.attach(project, node)
}

// ConnectGeneric adds a project for an arbitrary JSON-RPC endpoint.
func (s *Service) ConnectGeneric(label, rawURL, networkID string) (*tree.Item, error) {
	return s.connectEndpoint(tree.TypeGenericProject, label, rawURL, networkID)
}

// ConnectQuorum adds a project for a quorum node.
func (s *Service) ConnectQuorum(label, rawURL, networkID string) (*tree.Item, error) {
	return s.connectEndpoint(tree.TypeQuorumProject, label, rawURL, networkID)
}

func (s *Service) connectEndpoint(kind tree.ItemType, label, rawURL, networkID string) (*tree.Item, error) {
	nodeKind, _ := kind.NodeType()
	node, err := tree.NewNetworkNode(nodeKind, label, rawURL, networkID)
	if err != nil {
		return nil, err
	}
	return s.attach(tree.NewItem(kind, label, "", nil), node)
}

// ConnectInfura adds an Infura project with one node per named network,
// e.g. "mainnet" or "goerli".
func (s *Service) ConnectInfura(label, projectID string, networks ...string) (*tree.Item, error) {
	if projectID == "" {
		return nil, fmt.Errorf("infura project id is required")
	}
	project := tree.NewItem(tree.TypeInfuraProject, label, "", &tree.InfuraProject{ProjectID: projectID})
	nodes := make([]*tree.Item, 0, len(networks))
	for _, name := range networks {
		id := network.MainNetID
		if name != "mainnet" {
			var ok bool
			if id, ok = network.TestNetID(name); !ok {
				return nil, fmt.Errorf("unknown infura network %q", name)
			}
		}
		node, err := tree.NewNetworkNode(tree.TypeInfuraNetworkNode, name, name+".infura.io", string(id))
		if err != nil {
			return nil, err
		}
		nodes = append(nodes, node)
	}
	return s.attach(project, nodes...)
}

// ConnectAzure adds an Azure Blockchain Service project.
func (s *Service) ConnectAzure(opts AzureOptions) (*tree.Item, error) {
	names := make([]string, 0, len(opts.Members))
	for _, m := range opts.Members {
		names = append(names, m.Name)
	}
	project := tree.NewItem(tree.TypeAzureBlockchainProject, opts.Label, "", &tree.AzureProject{
		SubscriptionID: opts.SubscriptionID,
		ResourceGroup:  opts.ResourceGroup,
		MemberNames:    names,
	})
	return s.connectAzure(project, tree.TypeAzureBlockchainNetworkNode, opts)
}

// ConnectBDM adds a Blockchain Data Manager project.
func (s *Service) ConnectBDM(opts AzureOptions) (*tree.Item, error) {
	project := tree.NewItem(tree.TypeBDMProject, opts.Label, "", &tree.BDMProject{
		SubscriptionID: opts.SubscriptionID,
		ResourceGroup:  opts.ResourceGroup,
	})
	return s.connectAzure(project, tree.TypeBDMNetworkNode, opts)
}

func (s *Service) connectAzure(project *tree.Item, nodeKind tree.ItemType, opts AzureOptions) (*tree.Item, error) {
	if opts.SubscriptionID == "" || opts.ResourceGroup == "" {
		return nil, fmt.Errorf("subscription id and resource group are required")
	}
	nodes := make([]*tree.Item, 0, len(opts.Members))
	for _, m := range opts.Members {
		id := m.NetworkID
		if id == "" {
			id = string(tree.AnyNetwork)
		}
		node, err := tree.NewAzureNetworkNode(nodeKind, m.Name, m.URL, id, opts.SubscriptionID, opts.ResourceGroup, m.Name)
		if err != nil {
			return nil, err
		}
		nodes = append(nodes, node)
	}
	return s.attach(project, nodes...)
}

// attach builds project with nodes and adds it to the service of its kind.
func (s *Service) attach(project *tree.Item, nodes ...*tree.Item) (*tree.Item, error) {
	if err := project.SetChildren(nodes); err != nil {
		return nil, err
	}
	serviceKind, _ := project.Type.ServiceType()
	err := s.mutate(func() error {
		svc, ok := s.rootOfType(serviceKind)
		if !ok {
			return fmt.Errorf("%s: %w", serviceKind, ErrNotFound)
		}
		return svc.AddChild(project)
	})
	if err != nil {
		return nil, err
	}
	s.Log.WithField("project", project.Label).WithField("type", project.Type.String()).Info("project added")
	return project, nil
}

// rootOfType must be called with the lock held.
func (s *Service) rootOfType(t tree.ItemType) (*tree.Item, bool) {
	for _, r := range s.roots {
		if r.Type == t {
			return r, true
		}
	}
	return nil, false
}

// Projects returns every project across services.
func (s *Service) Projects() []*tree.Item {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []*tree.Item
	for _, r := range s.roots {
		if r.Type.Family() != tree.FamilyService {
			continue
		}
		out = append(out, r.Children()...)
	}
	return out
}

// Project returns the first project labelled label.
func (s *Service) Project(label string) (*tree.Item, error) {
	for _, p := range s.Projects() {
		if p.Label == label {
			return p, nil
		}
	}
	return nil, fmt.Errorf("project %q: %w", label, ErrNotFound)
}

// RemoveProject removes the first project labelled label.
func (s *Service) RemoveProject(label string) error {
	return s.mutate(func() error {
		for _, r := range s.roots {
			if r.Type.Family() != tree.FamilyService {
				continue
			}
			if p, ok := r.Child(label); ok {
				r.RemoveChild(p)
				return nil
			}
		}
		return fmt.Errorf("project %q: %w", label, ErrNotFound)
	})
}

// Destinations lists the deploy destinations of every project.
func (s *Service) Destinations() []network.Destination {
	var out []network.Destination
	for _, p := range s.Projects() {
		out = append(out, network.DeployDestinations(p)...)
	}
	return out
}

// FindDestination returns the destination labelled label.
func (s *Service) FindDestination(label string) (network.Destination, error) {
	for _, d := range s.Destinations() {
		if d.Label == label {
			return d, nil
		}
	}
	return network.Destination{}, fmt.Errorf("destination %q: %w", label, ErrNotFound)
}
