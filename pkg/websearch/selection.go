package websearch

import (
	"fmt"
	"strings"
)

// Option pairs a stored value with its display label.
type Option struct {
	Value string
	Label string
}

// CategoryOptions lists the SearXNG result categories.
func CategoryOptions() []Option {
	return []Option{
		{Value: "general", Label: "General"},
		{Value: "images", Label: "Images"},
		{Value: "videos", Label: "Videos"},
		{Value: "news", Label: "News"},
		{Value: "map", Label: "Maps"},
		{Value: "music", Label: "Music"},
		{Value: "it", Label: "IT"},
		{Value: "science", Label: "Science"},
		{Value: "files", Label: "Files"},
		{Value: "social media", Label: "Social Media"},
	}
}

// SourceOptions lists the source-type preferences used to bias query
// construction.
func SourceOptions() []Option {
	return []Option{
		{Value: "academic", Label: "Academic Papers"},
		{Value: "news", Label: "News Articles"},
		{Value: "blogs", Label: "Blogs"},
		{Value: "government", Label: "Government Sources"},
		{Value: "documentation", Label: "Documentation"},
	}
}

// DateRangeOptions lists the supported recency filters. The empty value means
// no date restriction.
func DateRangeOptions() []Option {
	return []Option{
		{Value: "", Label: "Any time"},
		{Value: "day", Label: "Past day"},
		{Value: "week", Label: "Past week"},
		{Value: "month", Label: "Past month"},
		{Value: "year", Label: "Past year"},
	}
}

// DefaultCategories is the fallback when no SearXNG category is selected.
func DefaultCategories() []string { return []string{"general"} }

// DefaultSourcePreferences is the fallback when no source preference is
// selected.
func DefaultSourcePreferences() []string { return []string{"academic"} }

// DecodeSelection decodes a comma-joined selection string. Empty or absent
// input yields the default set. Tokens are trimmed and empty tokens dropped;
// order is the stored order.
func DecodeSelection(raw string, def []string) []string {
	if strings.TrimSpace(raw) == "" {
		return append([]string(nil), def...)
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if v := strings.TrimSpace(p); v != "" {
			out = append(out, v)
		}
	}
	if len(out) == 0 {
		return append([]string(nil), def...)
	}
	return out
}

// EncodeSelection joins a selection back into the comma-separated wire form,
// preserving array order.
func EncodeSelection(values []string) string {
	return strings.Join(values, ",")
}

// ToggleSelection adds or removes value from current. Additions append at the
// end, never sorted. Removing the last element substitutes the default set so
// a selection is never empty.
func ToggleSelection(current []string, value string, checked bool, def []string) []string {
	if checked {
		for _, v := range current {
			if v == value {
				return append([]string(nil), current...)
			}
		}
		out := append([]string(nil), current...)
		return append(out, value)
	}
	out := make([]string, 0, len(current))
	for _, v := range current {
		if v != value {
			out = append(out, v)
		}
	}
	if len(out) == 0 {
		return append([]string(nil), def...)
	}
	return out
}

// SelectionLabel renders the summary label for a multi-select control:
// placeholder when nothing is selected, the option's label (or the raw code
// when unknown) for a single selection, and "{n} selected" otherwise.
func SelectionLabel(values []string, options []Option, placeholder string) string {
	switch len(values) {
	case 0:
		return placeholder
	case 1:
		for _, opt := range options {
			if opt.Value == values[0] {
				return opt.Label
			}
		}
		return values[0]
	default:
		return fmt.Sprintf("%d selected", len(values))
	}
}

// Selected reports whether value is part of the selection.
func Selected(values []string, value string) bool {
	for _, v := range values {
		if v == value {
			return true
		}
	}
	return false
}
