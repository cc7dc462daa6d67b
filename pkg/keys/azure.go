package keys

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/trufflesuite/vscode-ext-sub002/pkg/tree"
)

const (
	DefaultAzureEndpoint   = "https://management.azure.com"
	DefaultAzureAPIVersion = "2018-06-01-preview"
)

// AzureClient lists blockchain member and transaction node API keys through
// Azure Resource Manager.
type AzureClient struct {
	Endpoint   string
	APIVersion string
	Token      string
	HTTPClient *http.Client
}

// NewAzureClient returns a client authenticating with a bearer token.
func NewAzureClient(endpoint, token string) *AzureClient {
	if endpoint == "" {
		endpoint = DefaultAzureEndpoint
	}
	return &AzureClient{
		Endpoint:   strings.TrimSuffix(endpoint, "/"),
		APIVersion: DefaultAzureAPIVersion,
		Token:      token,
		HTTPClient: &http.Client{Timeout: 30 * time.Second},
	}
}

type apiKey struct {
	KeyName string `json:"keyName"`
	Value   string `json:"value"`
}

type apiKeyList struct {
	Keys []apiKey `json:"keys"`
}

type armError struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// AccessKey returns the first API key of the member (or transaction node)
// behind item.
func (c *AzureClient) AccessKey(ctx context.Context, item *tree.Item) (string, error) {
	resource, err := c.resourcePath(item)
	if err != nil {
		return "", err
	}
	if c.Token == "" {
		return "", fmt.Errorf("azure access token is not configured")
	}

	u := fmt.Sprintf("%s%s/listApiKeys?api-version=%s", c.Endpoint, resource, url.QueryEscape(c.APIVersion))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+c.Token)
	req.Header.Set("Accept", "application/json")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("list api keys: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", fmt.Errorf("read api keys: %w", err)
	}
	if resp.StatusCode/100 != 2 {
		var ae armError
		if json.Unmarshal(body, &ae) == nil && ae.Error.Message != "" {
			return "", fmt.Errorf("list api keys: %s: %s", ae.Error.Code, ae.Error.Message)
		}
		return "", fmt.Errorf("list api keys: unexpected status %s", resp.Status)
	}

	var list apiKeyList
	if err := json.Unmarshal(body, &list); err != nil {
		return "", fmt.Errorf("decode api keys: %w", err)
	}
	for _, k := range list.Keys {
		if k.Value != "" {
			return k.Value, nil
		}
	}
	return "", fmt.Errorf("no api keys returned for %q", item.Label)
}

func (c *AzureClient) resourcePath(item *tree.Item) (string, error) {
	var sub, rg, member string
	switch p := item.Payload.(type) {
	case *tree.AzureEndpoint:
		sub, rg, member = p.SubscriptionID, p.ResourceGroup, p.MemberName
	case *tree.Consortium:
		sub, rg, member = p.SubscriptionID, p.ResourceGroup, p.MemberName
	default:
		return "", fmt.Errorf("%s %q is not an azure resource", item.Type, item.Label)
	}
	if sub == "" || rg == "" || member == "" {
		return "", fmt.Errorf("%q is missing subscription, resource group or member", item.Label)
	}

	path := fmt.Sprintf("/subscriptions/%s/resourceGroups/%s/providers/Microsoft.Blockchain/blockchainMembers/%s",
		url.PathEscape(sub), url.PathEscape(rg), url.PathEscape(member))
	if item.Type == tree.TypeTransactionNode {
		path += "/transactionNodes/" + url.PathEscape(item.Label)
	}
	return path, nil
}
