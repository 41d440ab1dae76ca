// Package websearch defines the web-search provider settings model and the
// small codec helpers the settings surfaces (TUI, HTTP API) are built on.
package websearch

import "strings"

// Provider identifies the external search backend.
type Provider string

const (
	ProviderTavily  Provider = "tavily"
	ProviderLinkUp  Provider = "linkup"
	ProviderSearXNG Provider = "searxng"
	ProviderJina    Provider = "jina"
)

// DefaultProvider is used when no provider has been configured yet.
const DefaultProvider = ProviderTavily

// Providers lists all supported providers in display order.
var Providers = []Provider{ProviderTavily, ProviderLinkUp, ProviderSearXNG, ProviderJina}

// ParseProvider normalizes a raw provider string, falling back to the default
// for unknown values.
func ParseProvider(raw string) Provider {
	p := Provider(strings.ToLower(strings.TrimSpace(raw)))
	if p.Valid() {
		return p
	}
	return DefaultProvider
}

// Valid reports whether p is a known provider.
func (p Provider) Valid() bool {
	switch p {
	case ProviderTavily, ProviderLinkUp, ProviderSearXNG, ProviderJina:
		return true
	}
	return false
}

// Label returns the human-readable provider name.
func (p Provider) Label() string {
	switch p {
	case ProviderTavily:
		return "Tavily"
	case ProviderLinkUp:
		return "LinkUp"
	case ProviderSearXNG:
		return "SearXNG"
	case ProviderJina:
		return "Jina.ai"
	}
	return string(p)
}

// CredentialField names a provider credential input shown in the panel.
type CredentialField struct {
	Key   string // settings field name, e.g. "tavily_api_key"
	Label string
	URL   bool // true for base-URL fields, false for API keys
}

// CredentialFields returns the credential inputs for a provider. SearXNG is
// the only provider configured by base URL instead of an API key.
func CredentialFields(p Provider) []CredentialField {
	switch p {
	case ProviderTavily:
		return []CredentialField{{Key: "tavily_api_key", Label: "Tavily API Key"}}
	case ProviderLinkUp:
		return []CredentialField{{Key: "linkup_api_key", Label: "LinkUp API Key"}}
	case ProviderJina:
		return []CredentialField{{Key: "jina_api_key", Label: "Jina API Key"}}
	case ProviderSearXNG:
		return []CredentialField{{Key: "searxng_base_url", Label: "SearXNG Base URL", URL: true}}
	}
	return nil
}

// DepthOptions returns the search-depth choices for a provider, or nil when
// the provider has no depth control (SearXNG).
func DepthOptions(p Provider) []Option {
	switch p {
	case ProviderTavily:
		return []Option{
			{Value: DepthStandard, Label: "Basic (1 credit)"},
			{Value: DepthAdvanced, Label: "Advanced (2 credits)"},
		}
	case ProviderLinkUp:
		return []Option{
			{Value: DepthStandard, Label: "Fast"},
			{Value: DepthAdvanced, Label: "Deep"},
		}
	case ProviderJina:
		return []Option{
			{Value: DepthStandard, Label: "Fast"},
			{Value: DepthAdvanced, Label: "Enhanced + grounding"},
		}
	}
	return nil
}
