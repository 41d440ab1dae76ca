package websearch

import (
	"reflect"
	"testing"
)

func TestDecodeSelectionDefaults(t *testing.T) {
	got := DecodeSelection("", DefaultSourcePreferences())
	if !reflect.DeepEqual(got, []string{"academic"}) {
		t.Fatalf("expected default [academic], got %v", got)
	}

	got = DecodeSelection("  , ,", DefaultCategories())
	if !reflect.DeepEqual(got, []string{"general"}) {
		t.Fatalf("expected default [general] for blank tokens, got %v", got)
	}
}

func TestDecodeSelectionTrimsAndKeepsOrder(t *testing.T) {
	got := DecodeSelection("general, images", DefaultCategories())
	if !reflect.DeepEqual(got, []string{"general", "images"}) {
		t.Fatalf("expected [general images], got %v", got)
	}

	// Toggle order is stored order, never sorted.
	got = DecodeSelection("science,general,it", DefaultCategories())
	if !reflect.DeepEqual(got, []string{"science", "general", "it"}) {
		t.Fatalf("expected insertion order preserved, got %v", got)
	}
}

func TestSelectionRoundTrip(t *testing.T) {
	sets := [][]string{
		{"general"},
		{"general", "images"},
		{"news", "academic", "blogs"},
		{"social media", "it"},
	}
	for _, s := range sets {
		got := DecodeSelection(EncodeSelection(s), nil)
		if !reflect.DeepEqual(got, s) {
			t.Fatalf("round trip of %v produced %v", s, got)
		}
	}
}

func TestToggleSelectionAppendsAtEnd(t *testing.T) {
	cur := []string{"general"}
	cur = ToggleSelection(cur, "images", true, DefaultCategories())
	if !reflect.DeepEqual(cur, []string{"general", "images"}) {
		t.Fatalf("expected append at end, got %v", cur)
	}

	// Toggling an already selected value is a no-op.
	cur = ToggleSelection(cur, "general", true, DefaultCategories())
	if !reflect.DeepEqual(cur, []string{"general", "images"}) {
		t.Fatalf("expected no duplicate, got %v", cur)
	}
}

func TestToggleSelectionLastRemovalFallsBack(t *testing.T) {
	cur := DecodeSelection("general, images", DefaultCategories())

	cur = ToggleSelection(cur, "general", false, DefaultCategories())
	if !reflect.DeepEqual(cur, []string{"images"}) {
		t.Fatalf("expected [images] after unchecking general, got %v", cur)
	}

	cur = ToggleSelection(cur, "images", false, DefaultCategories())
	if !reflect.DeepEqual(cur, []string{"general"}) {
		t.Fatalf("expected default [general] after removing last, got %v", cur)
	}
}

func TestToggleSelectionDoesNotMutateInput(t *testing.T) {
	cur := []string{"general", "images"}
	_ = ToggleSelection(cur, "images", false, DefaultCategories())
	if !reflect.DeepEqual(cur, []string{"general", "images"}) {
		t.Fatalf("input slice mutated: %v", cur)
	}
}

func TestSelectionLabel(t *testing.T) {
	opts := SourceOptions()

	if got := SelectionLabel(nil, opts, "Select sources"); got != "Select sources" {
		t.Fatalf("expected placeholder, got %q", got)
	}
	if got := SelectionLabel([]string{"academic"}, opts, ""); got != "Academic Papers" {
		t.Fatalf("expected option label, got %q", got)
	}
	if got := SelectionLabel([]string{"mystery"}, opts, ""); got != "mystery" {
		t.Fatalf("expected raw code for unknown value, got %q", got)
	}
	if got := SelectionLabel([]string{"academic", "news", "blogs"}, opts, ""); got != "3 selected" {
		t.Fatalf("expected count label, got %q", got)
	}
}

func TestUnsetSourcePreferencesScenario(t *testing.T) {
	values := DecodeSelection("", DefaultSourcePreferences())
	if !reflect.DeepEqual(values, []string{"academic"}) {
		t.Fatalf("expected [academic], got %v", values)
	}
	if got := SelectionLabel(values, SourceOptions(), "Select sources"); got != "Academic Papers" {
		t.Fatalf("expected Academic Papers label, got %q", got)
	}
}
