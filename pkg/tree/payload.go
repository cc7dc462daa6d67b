package tree

import "net/url"

// Payload carries the kind-specific fields of an Item. The set of payloads is
// closed; every implementation lives in this package.
type Payload interface {
	appendFields(m map[string]any)
}

// Endpoint is the payload of local, generic, dashboard, infura and quorum
// network nodes.
type Endpoint struct {
	URL       *url.URL
	NetworkID NetworkID
}

func (e *Endpoint) appendFields(m map[string]any) {
	if e.URL != nil {
		m["url"] = e.URL.String()
	}
	m["networkId"] = string(e.NetworkID)
}

// AzureEndpoint is an endpoint backed by an Azure resource. Used by Azure
// Blockchain and BDM network nodes and by transaction nodes.
type AzureEndpoint struct {
	Endpoint
	SubscriptionID string
	ResourceGroup  string
	MemberName     string
}

func (e *AzureEndpoint) appendFields(m map[string]any) {
	e.Endpoint.appendFields(m)
	m["subscriptionId"] = e.SubscriptionID
	m["resourceGroup"] = e.ResourceGroup
	m["memberName"] = e.MemberName
}

// PortProject is the payload of local and dashboard projects.
type PortProject struct {
	Port int
}

func (p *PortProject) appendFields(m map[string]any) {
	m["port"] = p.Port
}

// AzureProject is the payload of an Azure Blockchain Service project.
type AzureProject struct {
	SubscriptionID string
	ResourceGroup  string
	MemberNames    []string
}

func (p *AzureProject) appendFields(m map[string]any) {
	m["subscriptionId"] = p.SubscriptionID
	m["resourceGroup"] = p.ResourceGroup
	names := make([]string, len(p.MemberNames))
	copy(names, p.MemberNames)
	m["memberNames"] = names
}

// InfuraProject is the payload of an Infura project.
type InfuraProject struct {
	ProjectID string
}

func (p *InfuraProject) appendFields(m map[string]any) {
	m["projectId"] = p.ProjectID
}

// BDMProject is the payload of a Blockchain Data Manager project.
type BDMProject struct {
	SubscriptionID string
	ResourceGroup  string
}

func (p *BDMProject) appendFields(m map[string]any) {
	m["subscriptionId"] = p.SubscriptionID
	m["resourceGroup"] = p.ResourceGroup
}

// Consortium is the payload of every consortium kind. The Azure fields are
// only set for Azure consortiums, and are always written for them, even when
// empty, because reloading an Azure consortium requires them.
type Consortium struct {
	ConsortiumID   int64
	URLs           []*url.URL
	SubscriptionID string
	ResourceGroup  string
	MemberName     string

	azure bool
}

func (c *Consortium) appendFields(m map[string]any) {
	urls := make([]string, 0, len(c.URLs))
	for _, u := range c.URLs {
		urls = append(urls, u.String())
	}
	m["urls"] = urls
	m["consortiumId"] = c.ConsortiumID
	if c.azure || c.SubscriptionID != "" {
		m["subscriptionId"] = c.SubscriptionID
		m["resourceGroup"] = c.ResourceGroup
		m["memberName"] = c.MemberName
	}
}

// Command is an invocation descriptor attached to a command item.
type Command struct {
	Name string
	Args []string
}

func (c *Command) appendFields(m map[string]any) {
	args := make([]string, len(c.Args))
	copy(args, c.Args)
	m["command"] = c.Name
	m["args"] = args
}
