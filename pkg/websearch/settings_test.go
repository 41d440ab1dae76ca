package websearch

import (
	"strconv"
	"testing"
)

func TestClampMaxResults(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"5", "5"},
		{"1", "1"},
		{"20", "20"},
		{"25", "20"},
		{"0", "1"},
		{"-3", "1"},
		{"abc", "5"},
		{"", "5"},
		{" 12 ", "12"},
		{"3.7", "5"},
	}
	for _, tc := range cases {
		if got := ClampMaxResults(tc.in); got != tc.want {
			t.Fatalf("ClampMaxResults(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestClampMaxResultsAlwaysInRange(t *testing.T) {
	inputs := []string{"", "abc", "-100", "0", "1", "19", "20", "21", "9999", "NaN", "7e3"}
	for _, in := range inputs {
		n, err := strconv.Atoi(ClampMaxResults(in))
		if err != nil {
			t.Fatalf("ClampMaxResults(%q) returned non-numeric %q", in, ClampMaxResults(in))
		}
		if n < MinResults || n > MaxResults {
			t.Fatalf("ClampMaxResults(%q) = %d out of [%d,%d]", in, n, MinResults, MaxResults)
		}
	}
}

func TestParseProvider(t *testing.T) {
	cases := map[string]Provider{
		"tavily":  ProviderTavily,
		"LinkUp":  ProviderLinkUp,
		" jina ":  ProviderJina,
		"searxng": ProviderSearXNG,
		"bing":    DefaultProvider,
		"":        DefaultProvider,
	}
	for in, want := range cases {
		if got := ParseProvider(in); got != want {
			t.Fatalf("ParseProvider(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestCredentialFieldsPerProvider(t *testing.T) {
	cases := map[Provider]string{
		ProviderTavily:  "tavily_api_key",
		ProviderLinkUp:  "linkup_api_key",
		ProviderJina:    "jina_api_key",
		ProviderSearXNG: "searxng_base_url",
	}
	for p, key := range cases {
		fields := CredentialFields(p)
		if len(fields) != 1 || fields[0].Key != key {
			t.Fatalf("CredentialFields(%s) = %+v, want single field %q", p, fields, key)
		}
	}
	if !CredentialFields(ProviderSearXNG)[0].URL {
		t.Fatalf("searxng credential should be a URL field")
	}
}

func TestDepthOptionsPerProvider(t *testing.T) {
	cases := map[Provider][2]string{
		ProviderTavily: {"Basic (1 credit)", "Advanced (2 credits)"},
		ProviderLinkUp: {"Fast", "Deep"},
		ProviderJina:   {"Fast", "Enhanced + grounding"},
	}
	for p, labels := range cases {
		opts := DepthOptions(p)
		if len(opts) != 2 {
			t.Fatalf("DepthOptions(%s) = %+v, want 2 options", p, opts)
		}
		if opts[0].Value != DepthStandard || opts[1].Value != DepthAdvanced {
			t.Fatalf("DepthOptions(%s) values = %+v", p, opts)
		}
		if opts[0].Label != labels[0] || opts[1].Label != labels[1] {
			t.Fatalf("DepthOptions(%s) labels = %+v, want %v", p, opts, labels)
		}
	}
	if DepthOptions(ProviderSearXNG) != nil {
		t.Fatalf("searxng should have no depth options")
	}
}

func TestNormalize(t *testing.T) {
	in := Settings{
		Provider:          "bing",
		MaxResults:        "25",
		SearchDepth:       "TURBO",
		SearchDateRange:   "fortnight",
		SearXNGCategories: " general ,  images ,",
		SourcePreferences: "",
		TavilyAPIKey:      "tvly-secret",
	}
	got := Normalize(in)

	if got.Provider != string(ProviderTavily) {
		t.Fatalf("unknown provider should fall back, got %q", got.Provider)
	}
	if got.MaxResults != "20" {
		t.Fatalf("expected max_results clamped to 20, got %q", got.MaxResults)
	}
	if got.SearchDepth != DepthStandard {
		t.Fatalf("expected depth normalized to standard, got %q", got.SearchDepth)
	}
	if got.SearchDateRange != "" {
		t.Fatalf("expected unknown date range cleared, got %q", got.SearchDateRange)
	}
	if got.SearXNGCategories != "general,images" {
		t.Fatalf("expected categories re-encoded, got %q", got.SearXNGCategories)
	}
	// Unset selections stay unset on the wire; defaults are a decode-time concern.
	if got.SourcePreferences != "" {
		t.Fatalf("expected empty source_preferences untouched, got %q", got.SourcePreferences)
	}
	if got.TavilyAPIKey != "tvly-secret" {
		t.Fatalf("credentials must pass through, got %q", got.TavilyAPIKey)
	}
}

func TestDefaultSettings(t *testing.T) {
	s := DefaultSettings()
	if s.Provider != "tavily" || s.MaxResults != "5" || s.SearchDepth != DepthStandard {
		t.Fatalf("unexpected defaults: %+v", s)
	}
}
