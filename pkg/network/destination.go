package network

import (
	"context"
	"fmt"

	"github.com/trufflesuite/vscode-ext-sub002/pkg/models"
	"github.com/trufflesuite/vscode-ext-sub002/pkg/tree"
)

// Destination is a network node a project can be deployed to.
type Destination struct {
	Label     string
	Detail    string
	NetworkID tree.NetworkID
	Node      *tree.Item
}

// DeployDestinations lists the network nodes of project. Labels have the
// form prefix_project_node.
func DeployDestinations(project *tree.Item) []Destination {
	var out []Destination
	for _, node := range project.Children() {
		if node.Type.Family() != tree.FamilyNetworkNode {
			continue
		}
		d := Destination{
			Label:     fmt.Sprintf("%s_%s_%s", node.Type.Prefix(), project.Label, node.Label),
			NetworkID: NetworkID(node),
			Node:      node,
		}
		if u, ok := URL(node); ok {
			d.Detail = u.String()
		}
		out = append(out, d)
	}
	return out
}

// ProjectRPCAddress returns the RPC address of the first node of project,
// or an empty string when it has none.
func (r *Resolver) ProjectRPCAddress(ctx context.Context, project *tree.Item) string {
	children := project.Children()
	if len(children) == 0 {
		return ""
	}
	return r.RPCAddress(ctx, children[0])
}

// Network resolves the truffle network for d, named after the destination.
func (d Destination) Network(ctx context.Context, r *Resolver) (*models.TruffleNetwork, error) {
	n, err := r.TruffleNetwork(ctx, d.Node)
	if err != nil || n == nil {
		return nil, err
	}
	n.Name = d.Label
	return n, nil
}
