package service

import (
	"fmt"

	"github.com/trufflesuite/vscode-ext-sub002/pkg/tree"
)

// ConsortiumOptions describes a new consortium. The Azure fields are only
// used by Azure consortiums.
type ConsortiumOptions struct {
	Kind           tree.ItemType
	Label          string
	URLs           []string
	SubscriptionID string
	ResourceGroup  string
	MemberName     string
}

// CreateConsortium adds a consortium to the Consortiums group.
func (s *Service) CreateConsortium(opts ConsortiumOptions) (*tree.Item, error) {
	if len(opts.URLs) == 0 {
		return nil, fmt.Errorf("consortium %q needs at least one url", opts.Label)
	}
	if opts.Kind == tree.TypeAzureConsortium && (opts.SubscriptionID == "" || opts.ResourceGroup == "") {
		return nil, fmt.Errorf("azure consortium %q needs a subscription and a resource group", opts.Label)
	}
	c, err := tree.NewConsortium(opts.Kind, opts.Label, opts.URLs...)
	if err != nil {
		return nil, err
	}
	if opts.Kind == tree.TypeAzureConsortium {
		p := c.Payload.(*tree.Consortium)
		p.SubscriptionID = opts.SubscriptionID
		p.ResourceGroup = opts.ResourceGroup
		p.MemberName = opts.MemberName
	}

	err = s.mutate(func() error {
		return s.consortiumGroup().AddChild(c)
	})
	if err != nil {
		return nil, err
	}
	s.Log.WithField("consortium", c.Label).WithField("type", c.Type.String()).Info("consortium added")
	return c, nil
}

// consortiumGroup must be called with the lock held.
func (s *Service) consortiumGroup() *tree.Item {
	for _, r := range s.roots {
		if isConsortiumGroup(r) {
			return r
		}
	}
	g := tree.NewGroup(ConsortiumsLabel, "")
	g.SetObserver(s.observe)
	s.roots = append(s.roots, g)
	return g
}

// Consortiums returns the consortiums in creation order.
func (s *Service) Consortiums() []*tree.Item {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.consortiumGroup().Children()
}

// Consortium returns the consortium labelled label.
func (s *Service) Consortium(label string) (*tree.Item, error) {
	for _, c := range s.Consortiums() {
		if c.Label == label {
			return c, nil
		}
	}
	return nil, fmt.Errorf("consortium %q: %w", label, ErrNotFound)
}

// RemoveConsortium removes the consortium labelled label.
func (s *Service) RemoveConsortium(label string) error {
	return s.mutate(func() error {
		g := s.consortiumGroup()
		c, ok := g.Child(label)
		if !ok {
			return fmt.Errorf("consortium %q: %w", label, ErrNotFound)
		}
		g.RemoveChild(c)
		return nil
	})
}
