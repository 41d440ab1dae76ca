package websearch

import (
	"strconv"
	"strings"
)

// Search depth values shared by all depth-capable providers.
const (
	DepthStandard = "standard"
	DepthAdvanced = "advanced"
)

// Max-results display range and default.
const (
	MinResults        = 1
	MaxResults        = 20
	DefaultMaxResults = 5
)

// Settings is the search section of the draft settings object. Field names
// and encodings are the wire format and must not change: multi-selects are
// comma-joined strings, max_results is a numeric string.
type Settings struct {
	Provider          string `json:"provider,omitempty" mapstructure:"provider"`
	TavilyAPIKey      string `json:"tavily_api_key,omitempty" mapstructure:"tavily_api_key"`
	LinkUpAPIKey      string `json:"linkup_api_key,omitempty" mapstructure:"linkup_api_key"`
	JinaAPIKey        string `json:"jina_api_key,omitempty" mapstructure:"jina_api_key"`
	SearXNGBaseURL    string `json:"searxng_base_url,omitempty" mapstructure:"searxng_base_url"`
	SearXNGCategories string `json:"searxng_categories,omitempty" mapstructure:"searxng_categories"`
	SourcePreferences string `json:"source_preferences,omitempty" mapstructure:"source_preferences"`
	SearchDateRange   string `json:"search_date_range,omitempty" mapstructure:"search_date_range"`
	MaxResults        string `json:"max_results,omitempty" mapstructure:"max_results"`
	SearchDepth       string `json:"search_depth,omitempty" mapstructure:"search_depth"`
}

// DefaultSettings returns the settings used before the user configures search.
func DefaultSettings() Settings {
	return Settings{
		Provider:    string(DefaultProvider),
		MaxResults:  strconv.Itoa(DefaultMaxResults),
		SearchDepth: DepthStandard,
	}
}

// Normalize returns a copy of s with every field coerced into its valid
// range: the provider falls back to the default, max_results is clamped,
// depth is pinned to standard/advanced, and selections are round-tripped
// through the codec so stray whitespace and empty tokens are dropped. Field
// order inside selections is preserved.
func Normalize(s Settings) Settings {
	out := s
	out.Provider = string(ParseProvider(s.Provider))
	out.MaxResults = ClampMaxResults(s.MaxResults)
	out.SearchDepth = normalizeDepth(s.SearchDepth)
	out.SearchDateRange = normalizeDateRange(s.SearchDateRange)
	if strings.TrimSpace(s.SearXNGCategories) != "" {
		out.SearXNGCategories = EncodeSelection(DecodeSelection(s.SearXNGCategories, DefaultCategories()))
	}
	if strings.TrimSpace(s.SourcePreferences) != "" {
		out.SourcePreferences = EncodeSelection(DecodeSelection(s.SourcePreferences, DefaultSourcePreferences()))
	}
	return out
}

// ClampMaxResults parses a numeric string and clamps it into
// [MinResults, MaxResults]. Parse failures substitute the default.
func ClampMaxResults(raw string) string {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		n = DefaultMaxResults
	}
	if n < MinResults {
		n = MinResults
	}
	if n > MaxResults {
		n = MaxResults
	}
	return strconv.Itoa(n)
}

func normalizeDepth(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case DepthAdvanced:
		return DepthAdvanced
	default:
		return DepthStandard
	}
}

func normalizeDateRange(raw string) string {
	v := strings.ToLower(strings.TrimSpace(raw))
	for _, opt := range DateRangeOptions() {
		if v == opt.Value {
			return v
		}
	}
	return ""
}
