package keys

import (
	"context"
	"fmt"

	"github.com/trufflesuite/vscode-ext-sub002/pkg/tree"
)

// Provider fetches the access key spliced into an endpoint's RPC address.
type Provider interface {
	AccessKey(ctx context.Context, item *tree.Item) (string, error)
}

// Router dispatches to the provider responsible for the item's kind.
type Router struct {
	Azure  Provider
	Infura Provider
}

func (r *Router) AccessKey(ctx context.Context, item *tree.Item) (string, error) {
	var p Provider
	switch item.Type {
	case tree.TypeAzureBlockchainNetworkNode, tree.TypeAzureConsortium, tree.TypeTransactionNode:
		p = r.Azure
	case tree.TypeInfuraNetworkNode:
		p = r.Infura
	}
	if p == nil {
		return "", fmt.Errorf("no access key provider for %s %q", item.Type, item.Label)
	}
	return p.AccessKey(ctx, item)
}

// InfuraKeys resolves the project id of the Infura project holding a node.
type InfuraKeys struct{}

func (InfuraKeys) AccessKey(_ context.Context, item *tree.Item) (string, error) {
	project, ok := item.Ancestor(tree.FamilyProject)
	if !ok || project.Type != tree.TypeInfuraProject {
		return "", fmt.Errorf("infura network %q is not attached to an infura project", item.Label)
	}
	p, ok := project.Payload.(*tree.InfuraProject)
	if !ok || p.ProjectID == "" {
		return "", fmt.Errorf("infura project %q has no project id", project.Label)
	}
	return p.ProjectID, nil
}
