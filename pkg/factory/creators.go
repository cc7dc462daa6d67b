package factory

import (
	"fmt"

	"github.com/mitchellh/mapstructure"

	"github.com/trufflesuite/vscode-ext-sub002/pkg/tree"
)

// fields is the union of every persisted item field.
type fields struct {
	Label          string   `mapstructure:"label"`
	Description    string   `mapstructure:"description"`
	URL            string   `mapstructure:"url"`
	NetworkID      string   `mapstructure:"networkId"`
	Port           int      `mapstructure:"port"`
	SubscriptionID string   `mapstructure:"subscriptionId"`
	ResourceGroup  string   `mapstructure:"resourceGroup"`
	MemberName     string   `mapstructure:"memberName"`
	MemberNames    []string `mapstructure:"memberNames"`
	ProjectID      string   `mapstructure:"projectId"`
	URLs           []string `mapstructure:"urls"`
	ConsortiumID   int64    `mapstructure:"consortiumId"`
	Command        string   `mapstructure:"command"`
	Args           []string `mapstructure:"args"`
}

func decode(obj Object) (*fields, error) {
	var f fields
	if err := mapstructure.Decode(obj, &f); err != nil {
		return nil, fmt.Errorf("decode fields: %w", err)
	}
	return &f, nil
}

var (
	label          = Field{Name: "label", Type: FieldString}
	url            = Field{Name: "url", Type: FieldString}
	networkID      = Field{Name: "networkId", Type: FieldString}
	port           = Field{Name: "port", Type: FieldNumber}
	subscriptionID = Field{Name: "subscriptionId", Type: FieldString}
	resourceGroup  = Field{Name: "resourceGroup", Type: FieldString}
	memberName     = Field{Name: "memberName", Type: FieldString}
	memberNames    = Field{Name: "memberNames", Type: FieldArray}
	projectID      = Field{Name: "projectId", Type: FieldString}
	urls           = Field{Name: "urls", Type: FieldArray}
	consortiumID   = Field{Name: "consortiumId", Type: FieldNumber}
	command        = Field{Name: "command", Type: FieldString}
	args           = Field{Name: "args", Type: FieldArray}
)

type registration struct {
	itemType tree.ItemType
	creator  Creator
}

func defaultCreators() []registration {
	return []registration{
		{tree.TypeCommand, commandCreator()},
		{tree.TypeNullable, plainCreator(tree.TypeNullable)},
		{tree.TypeInfo, plainCreator(tree.TypeInfo)},
		{tree.TypeGroup, plainCreator(tree.TypeGroup)},
		{tree.TypeMember, plainCreator(tree.TypeMember)},
		{tree.TypeTransactionNode, azureNodeCreator(tree.TypeTransactionNode)},

		{tree.TypeAzureBlockchainService, plainCreator(tree.TypeAzureBlockchainService)},
		{tree.TypeLocalService, plainCreator(tree.TypeLocalService)},
		{tree.TypeInfuraService, plainCreator(tree.TypeInfuraService)},
		{tree.TypeBDMService, plainCreator(tree.TypeBDMService)},
		{tree.TypeGenericService, plainCreator(tree.TypeGenericService)},
		{tree.TypeDashboardService, plainCreator(tree.TypeDashboardService)},
		{tree.TypeQuorumService, plainCreator(tree.TypeQuorumService)},

		{tree.TypeAzureBlockchainProject, azureProjectCreator()},
		{tree.TypeLocalProject, portProjectCreator(tree.TypeLocalProject)},
		{tree.TypeInfuraProject, infuraProjectCreator()},
		{tree.TypeBDMProject, bdmProjectCreator()},
		{tree.TypeGenericProject, plainCreator(tree.TypeGenericProject)},
		{tree.TypeDashboardProject, portProjectCreator(tree.TypeDashboardProject)},
		{tree.TypeQuorumProject, plainCreator(tree.TypeQuorumProject)},

		{tree.TypeAzureBlockchainNetworkNode, azureNodeCreator(tree.TypeAzureBlockchainNetworkNode)},
		{tree.TypeLocalNetworkNode, nodeCreator(tree.TypeLocalNetworkNode)},
		{tree.TypeInfuraNetworkNode, nodeCreator(tree.TypeInfuraNetworkNode)},
		{tree.TypeBDMNetworkNode, azureNodeCreator(tree.TypeBDMNetworkNode)},
		{tree.TypeGenericNetworkNode, nodeCreator(tree.TypeGenericNetworkNode)},
		{tree.TypeDashboardNetworkNode, nodeCreator(tree.TypeDashboardNetworkNode)},
		{tree.TypeQuorumNetworkNode, nodeCreator(tree.TypeQuorumNetworkNode)},

		{tree.TypeAzureConsortium, consortiumCreator(tree.TypeAzureConsortium, subscriptionID, resourceGroup, memberName)},
		{tree.TypeLocalConsortium, consortiumCreator(tree.TypeLocalConsortium)},
		{tree.TypeMainNetConsortium, consortiumCreator(tree.TypeMainNetConsortium)},
		{tree.TypeTestNetConsortium, consortiumCreator(tree.TypeTestNetConsortium)},
	}
}

// plainCreator handles kinds without payload: services, groups, info items.
func plainCreator(t tree.ItemType) Creator {
	return Creator{
		Required: []Field{label},
		Build: func(obj Object) (*tree.Item, error) {
			f, err := decode(obj)
			if err != nil {
				return nil, err
			}
			return tree.NewItem(t, f.Label, f.Description, nil), nil
		},
	}
}

func commandCreator() Creator {
	return Creator{
		Required: []Field{label, command, args},
		Build: func(obj Object) (*tree.Item, error) {
			f, err := decode(obj)
			if err != nil {
				return nil, err
			}
			item := tree.NewCommand(f.Label, f.Command, f.Args...)
			item.Description = f.Description
			return item, nil
		},
	}
}

func portProjectCreator(t tree.ItemType) Creator {
	return Creator{
		Required: []Field{label, port},
		Build: func(obj Object) (*tree.Item, error) {
			f, err := decode(obj)
			if err != nil {
				return nil, err
			}
			return tree.NewItem(t, f.Label, f.Description, &tree.PortProject{Port: f.Port}), nil
		},
	}
}

func azureProjectCreator() Creator {
	return Creator{
		Required: []Field{label, subscriptionID, resourceGroup, memberNames},
		Build: func(obj Object) (*tree.Item, error) {
			f, err := decode(obj)
			if err != nil {
				return nil, err
			}
			return tree.NewItem(tree.TypeAzureBlockchainProject, f.Label, f.Description, &tree.AzureProject{
				SubscriptionID: f.SubscriptionID,
				ResourceGroup:  f.ResourceGroup,
				MemberNames:    f.MemberNames,
			}), nil
		},
	}
}

func infuraProjectCreator() Creator {
	return Creator{
		Required: []Field{label, projectID},
		Build: func(obj Object) (*tree.Item, error) {
			f, err := decode(obj)
			if err != nil {
				return nil, err
			}
			return tree.NewItem(tree.TypeInfuraProject, f.Label, f.Description, &tree.InfuraProject{ProjectID: f.ProjectID}), nil
		},
	}
}

func bdmProjectCreator() Creator {
	return Creator{
		Required: []Field{label, subscriptionID, resourceGroup},
		Build: func(obj Object) (*tree.Item, error) {
			f, err := decode(obj)
			if err != nil {
				return nil, err
			}
			return tree.NewItem(tree.TypeBDMProject, f.Label, f.Description, &tree.BDMProject{
				SubscriptionID: f.SubscriptionID,
				ResourceGroup:  f.ResourceGroup,
			}), nil
		},
	}
}

func nodeCreator(t tree.ItemType) Creator {
	return Creator{
		Required: []Field{label, url, networkID},
		Build: func(obj Object) (*tree.Item, error) {
			f, err := decode(obj)
			if err != nil {
				return nil, err
			}
			item, err := tree.NewNetworkNode(t, f.Label, f.URL, f.NetworkID)
			if err != nil {
				return nil, err
			}
			item.Description = f.Description
			return item, nil
		},
	}
}

func azureNodeCreator(t tree.ItemType) Creator {
	return Creator{
		Required: []Field{label, url, networkID, subscriptionID, resourceGroup, memberName},
		Build: func(obj Object) (*tree.Item, error) {
			f, err := decode(obj)
			if err != nil {
				return nil, err
			}
			item, err := tree.NewAzureNetworkNode(t, f.Label, f.URL, f.NetworkID, f.SubscriptionID, f.ResourceGroup, f.MemberName)
			if err != nil {
				return nil, err
			}
			item.Description = f.Description
			return item, nil
		},
	}
}

// consortiumCreator builds the consortium from its name and urls, then
// restores the persisted identity.
func consortiumCreator(t tree.ItemType, extra ...Field) Creator {
	return Creator{
		Required: append([]Field{label, urls, consortiumID}, extra...),
		Build: func(obj Object) (*tree.Item, error) {
			f, err := decode(obj)
			if err != nil {
				return nil, err
			}
			item, err := tree.NewConsortium(t, f.Label, f.URLs...)
			if err != nil {
				return nil, err
			}
			c := item.Payload.(*tree.Consortium)
			c.ConsortiumID = f.ConsortiumID
			c.SubscriptionID = f.SubscriptionID
			c.ResourceGroup = f.ResourceGroup
			c.MemberName = f.MemberName
			item.Description = f.Description
			return item, nil
		},
	}
}
