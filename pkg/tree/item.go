package tree

import (
	"encoding/json"
	"fmt"
)

// Observer is notified after a structural change below the item it is set on.
type Observer func(changed *Item)

// DuplicateChildError is returned when a child label is already used by a sibling.
type DuplicateChildError struct {
	Parent string
	Label  string
}

func (e *DuplicateChildError) Error() string {
	return fmt.Sprintf("%q already contains a child labelled %q", e.Parent, e.Label)
}

// Item is a single node of the network tree. Children are owned by their
// parent; the parent link is a back reference only. Items are not safe for
// concurrent mutation; callers serialise access.
type Item struct {
	Type        ItemType
	Label       string
	Description string
	Payload     Payload

	parent   *Item
	children []*Item
	observer Observer
}

// NewItem creates a detached item.
func NewItem(t ItemType, label, description string, payload Payload) *Item {
	return &Item{
		Type:        t,
		Label:       label,
		Description: description,
		Payload:     payload,
	}
}

// Parent returns the item holding i as a child, or nil for roots.
func (i *Item) Parent() *Item {
	return i.parent
}

// Children returns a copy of the ordered child list.
func (i *Item) Children() []*Item {
	out := make([]*Item, len(i.children))
	copy(out, i.children)
	return out
}

// Len returns the number of children.
func (i *Item) Len() int {
	return len(i.children)
}

// Child returns the child with the given label.
func (i *Item) Child(label string) (*Item, bool) {
	for _, c := range i.children {
		if c.Label == label {
			return c, true
		}
	}
	return nil, false
}

// SetObserver installs the change callback for this subtree.
func (i *Item) SetObserver(fn Observer) {
	i.observer = fn
}

// AddChild appends child after checking its label is unused among the
// current children. A child attached elsewhere is detached first.
func (i *Item) AddChild(child *Item) error {
	if _, exists := i.Child(child.Label); exists {
		return &DuplicateChildError{Parent: i.Label, Label: child.Label}
	}
	if child.parent != nil {
		child.parent.detach(child)
	}
	child.parent = i
	i.children = append(i.children, child)
	i.notify()
	return nil
}

// RemoveChild removes child by identity. It reports whether child was found.
func (i *Item) RemoveChild(child *Item) bool {
	if !i.detach(child) {
		return false
	}
	i.notify()
	return true
}

// SetChildren replaces every child. The list is rejected unchanged when two
// entries share a label.
func (i *Item) SetChildren(children []*Item) error {
	seen := make(map[string]struct{}, len(children))
	for _, c := range children {
		if _, dup := seen[c.Label]; dup {
			return &DuplicateChildError{Parent: i.Label, Label: c.Label}
		}
		seen[c.Label] = struct{}{}
	}

	for _, old := range i.children {
		old.parent = nil
	}
	next := make([]*Item, 0, len(children))
	for _, c := range children {
		if c.parent != nil && c.parent != i {
			c.parent.detach(c)
		}
		c.parent = i
		next = append(next, c)
	}
	i.children = next
	i.notify()
	return nil
}

func (i *Item) detach(child *Item) bool {
	for idx, c := range i.children {
		if c == child {
			i.children = append(i.children[:idx:idx], i.children[idx+1:]...)
			child.parent = nil
			return true
		}
	}
	return false
}

// notify calls the nearest observer at or above i.
func (i *Item) notify() {
	for n := i; n != nil; n = n.parent {
		if n.observer != nil {
			n.observer(i)
			return
		}
	}
}

// Root walks parent links to the top of the tree.
func (i *Item) Root() *Item {
	n := i
	for n.parent != nil {
		n = n.parent
	}
	return n
}

// Ancestor returns the closest ancestor belonging to family f.
func (i *Item) Ancestor(f Family) (*Item, bool) {
	for n := i.parent; n != nil; n = n.parent {
		if n.Type.Family() == f {
			return n, true
		}
	}
	return nil, false
}

// Walk visits i and its descendants depth first. Returning false from fn
// skips the children of the visited item.
func (i *Item) Walk(fn func(*Item) bool) {
	if !fn(i) {
		return
	}
	for _, c := range i.children {
		c.Walk(fn)
	}
}

// Endpoint returns the endpoint of network nodes and transaction nodes.
func (i *Item) Endpoint() (*Endpoint, bool) {
	switch p := i.Payload.(type) {
	case *Endpoint:
		return p, true
	case *AzureEndpoint:
		return &p.Endpoint, true
	}
	return nil, false
}

// ToJSON returns the persisted shape of the subtree rooted at i. Base fields
// come first; kind-specific payload fields are appended.
func (i *Item) ToJSON() map[string]any {
	children := make([]any, 0, len(i.children))
	for _, c := range i.children {
		children = append(children, c.ToJSON())
	}
	m := map[string]any{
		"itemType": int(i.Type),
		"label":    i.Label,
		"children": children,
	}
	if i.Description != "" {
		m["description"] = i.Description
	}
	if i.Payload != nil {
		i.Payload.appendFields(m)
	}
	return m
}

// MarshalJSON implements json.Marshaler using ToJSON.
func (i *Item) MarshalJSON() ([]byte, error) {
	return json.Marshal(i.ToJSON())
}
