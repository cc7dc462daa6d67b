package service

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/trufflesuite/vscode-ext-sub002/pkg/network"
	"github.com/trufflesuite/vscode-ext-sub002/pkg/tree"
)

var (
	serviceStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	projectStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("15"))
	nodeStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	detailStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	hintStyle    = lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color("240"))

	titleCaser = cases.Title(language.English)
)

// hints are shown under a service that has no projects yet.
var hints = map[tree.ItemType]*tree.Item{
	tree.TypeLocalService:           tree.NewCommand("Create a new network", "network", "create-local"),
	tree.TypeInfuraService:          tree.NewCommand("Connect to an Infura project", "network", "connect-infura"),
	tree.TypeAzureBlockchainService: tree.NewCommand("Connect to an Azure Blockchain Service project", "network", "connect-azure"),
	tree.TypeBDMService:             tree.NewCommand("Connect to a Blockchain Data Manager", "network", "connect-bdm"),
	tree.TypeGenericService:         tree.NewCommand("Connect to a network", "network", "connect-generic"),
	tree.TypeDashboardService:       tree.NewCommand("Connect to a Truffle Dashboard", "network", "connect-dashboard"),
	tree.TypeQuorumService:          tree.NewCommand("Connect to a Quorum network", "network", "connect-quorum"),
}

// KindName is the display name of an item kind.
func KindName(t tree.ItemType) string {
	return titleCaser.String(t.String())
}

// Render writes the tree as an indented outline.
func (s *Service) Render(w io.Writer) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, r := range s.roots {
		if err := renderItem(w, r, 0); err != nil {
			return err
		}
		if r.Type.Family() == tree.FamilyService && r.Len() == 0 {
			if hint, ok := hints[r.Type]; ok {
				if err := renderItem(w, hint, 1); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

func renderItem(w io.Writer, item *tree.Item, depth int) error {
	indent := strings.Repeat("  ", depth)
	var line string
	switch {
	case item.Type.Family() == tree.FamilyService || item.Type == tree.TypeGroup:
		line = serviceStyle.Render(item.Label)
	case item.Type.Family() == tree.FamilyProject:
		line = "◆ " + projectStyle.Render(item.Label) + " " + detailStyle.Render(KindName(item.Type))
	case item.Type == tree.TypeCommand:
		line = "+ " + hintStyle.Render(item.Label)
		if c, ok := item.Payload.(*tree.Command); ok {
			line += " " + detailStyle.Render(strings.TrimSpace("tnet "+c.Name+" "+strings.Join(c.Args, " ")))
		}
	case item.Type == tree.TypeInfo:
		line = "i " + hintStyle.Render(item.Description)
	default:
		line = "• " + nodeStyle.Render(item.Label)
		if u, ok := network.URL(item); ok {
			line += " " + detailStyle.Render(u.String())
		}
		if item.Type.Family() == tree.FamilyNetworkNode || item.Type.Family() == tree.FamilyConsortium {
			line += " " + detailStyle.Render("network "+string(network.NetworkID(item)))
		}
	}
	if item.Description != "" && item.Type != tree.TypeInfo {
		line += " " + detailStyle.Render(item.Description)
	}
	if _, err := fmt.Fprintln(w, indent+line); err != nil {
		return err
	}
	for _, c := range item.Children() {
		if err := renderItem(w, c, depth+1); err != nil {
			return err
		}
	}
	return nil
}
