package tree

import (
	"fmt"
	"net/url"
	"sync"
	"time"
)

// NewService creates an empty service item.
func NewService(t ItemType, label string) (*Item, error) {
	if t.Family() != FamilyService {
		return nil, fmt.Errorf("%s is not a service kind", t)
	}
	return NewItem(t, label, "", nil), nil
}

// NewNetworkNode creates a network node whose url defaults to the kind's
// scheme when rawURL has none.
func NewNetworkNode(t ItemType, label, rawURL, networkID string) (*Item, error) {
	if t.Family() != FamilyNetworkNode {
		return nil, fmt.Errorf("%s is not a network node kind", t)
	}
	ep, err := newEndpoint(t, rawURL, networkID)
	if err != nil {
		return nil, err
	}
	switch t {
	case TypeAzureBlockchainNetworkNode, TypeBDMNetworkNode:
		return NewItem(t, label, "", &AzureEndpoint{Endpoint: *ep}), nil
	}
	return NewItem(t, label, "", ep), nil
}

// NewAzureNetworkNode creates an Azure-backed node (Azure Blockchain, BDM or
// transaction node) carrying the resource coordinates used for key lookup.
func NewAzureNetworkNode(t ItemType, label, rawURL, networkID, subscriptionID, resourceGroup, memberName string) (*Item, error) {
	switch t {
	case TypeAzureBlockchainNetworkNode, TypeBDMNetworkNode, TypeTransactionNode:
	default:
		return nil, fmt.Errorf("%s is not an azure network kind", t)
	}
	ep, err := newEndpoint(t, rawURL, networkID)
	if err != nil {
		return nil, err
	}
	return NewItem(t, label, "", &AzureEndpoint{
		Endpoint:       *ep,
		SubscriptionID: subscriptionID,
		ResourceGroup:  resourceGroup,
		MemberName:     memberName,
	}), nil
}

func newEndpoint(t ItemType, rawURL, networkID string) (*Endpoint, error) {
	u, err := ParseURL(rawURL, t.DefaultScheme())
	if err != nil {
		return nil, err
	}
	id, err := ParseNetworkID(networkID)
	if err != nil {
		return nil, err
	}
	return &Endpoint{URL: u, NetworkID: id}, nil
}

// NewConsortium creates a consortium. The id is derived from the creation time
// and must be restored from persisted state afterwards when reloading.
func NewConsortium(t ItemType, label string, rawURLs ...string) (*Item, error) {
	if t.Family() != FamilyConsortium {
		return nil, fmt.Errorf("%s is not a consortium kind", t)
	}
	urls, err := ParseURLs(t, rawURLs)
	if err != nil {
		return nil, err
	}
	return NewItem(t, label, "", &Consortium{
		ConsortiumID: nextConsortiumID(),
		URLs:         urls,
		azure:        t == TypeAzureConsortium,
	}), nil
}

// ParseURLs parses every raw url with the default scheme of t.
func ParseURLs(t ItemType, raw []string) ([]*url.URL, error) {
	urls := make([]*url.URL, 0, len(raw))
	for _, r := range raw {
		u, err := ParseURL(r, t.DefaultScheme())
		if err != nil {
			return nil, err
		}
		urls = append(urls, u)
	}
	return urls, nil
}

var consortiumIDs struct {
	sync.Mutex
	last int64
}

// nextConsortiumID returns a millisecond timestamp, bumped when two
// consortiums are created within the same millisecond.
func nextConsortiumID() int64 {
	consortiumIDs.Lock()
	defer consortiumIDs.Unlock()

	id := time.Now().UnixMilli()
	if id <= consortiumIDs.last {
		id = consortiumIDs.last + 1
	}
	consortiumIDs.last = id
	return id
}

// NewCommand creates a command item bound to an invocation descriptor.
func NewCommand(label, name string, args ...string) *Item {
	return NewItem(TypeCommand, label, "", &Command{Name: name, Args: args})
}

// NewInfo creates an informational leaf.
func NewInfo(label, description string) *Item {
	return NewItem(TypeInfo, label, description, nil)
}

// NewGroup creates a grouping item.
func NewGroup(label, description string) *Item {
	return NewItem(TypeGroup, label, description, nil)
}

// NewNullable creates the placeholder item.
func NewNullable() *Item {
	return NewItem(TypeNullable, "", "", nil)
}
