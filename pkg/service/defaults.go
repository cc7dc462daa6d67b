package service

import "github.com/trufflesuite/vscode-ext-sub002/pkg/tree"

var defaultServices = []struct {
	kind  tree.ItemType
	label string
}{
	{tree.TypeAzureBlockchainService, "Azure Blockchain Service"},
	{tree.TypeLocalService, "Ganache Service"},
	{tree.TypeInfuraService, "Infura Service"},
	{tree.TypeBDMService, "Blockchain Data Manager"},
	{tree.TypeGenericService, "Other Services"},
	{tree.TypeDashboardService, "Truffle Dashboard"},
	{tree.TypeQuorumService, "Quorum Service"},
}

// withDefaults orders roots as default services, then the consortium group,
// then anything else. Missing entries are created empty.
func withDefaults(roots []*tree.Item) []*tree.Item {
	used := make(map[*tree.Item]bool, len(roots))
	out := make([]*tree.Item, 0, len(defaultServices)+1+len(roots))

	take := func(match func(*tree.Item) bool, create func() *tree.Item) {
		for _, r := range roots {
			if !used[r] && match(r) {
				used[r] = true
				out = append(out, r)
				return
			}
		}
		out = append(out, create())
	}

	for _, d := range defaultServices {
		d := d
		take(func(r *tree.Item) bool { return r.Type == d.kind }, func() *tree.Item {
			return tree.NewItem(d.kind, d.label, "", nil)
		})
	}
	take(isConsortiumGroup, func() *tree.Item {
		return tree.NewGroup(ConsortiumsLabel, "")
	})

	for _, r := range roots {
		if !used[r] {
			out = append(out, r)
		}
	}
	return out
}

func isConsortiumGroup(i *tree.Item) bool {
	return i.Type == tree.TypeGroup && i.Label == ConsortiumsLabel
}
