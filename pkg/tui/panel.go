// Package tui implements the terminal settings panel for web-search
// providers. The panel owns no settings state of its own: every committed
// edit is sent to the draft store as a merge-patch and the next render is
// derived from the returned snapshot.
package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"scout/pkg/draft"
	"scout/pkg/websearch"
)

type rowKind int

const (
	rowRadio rowKind = iota
	rowText
	rowNumber
	rowMulti
)

// row is a single navigable control. The row list is a pure function of the
// selected provider.
type row struct {
	kind    rowKind
	key     string // settings field name, e.g. "tavily_api_key"
	label   string
	options []websearch.Option // radio and multi rows
	defs    []string           // multi rows: fallback selection
	secret  bool               // mask the value when rendering
}

type snapshotMsg struct {
	snap draft.Snapshot
	ok   bool
	err  error
}

type updateMsg draft.Snapshot

// Panel is the Bubble Tea model for the search settings panel.
type Panel struct {
	ctx   context.Context
	store draft.Store

	snap   *draft.Snapshot
	rows   []row
	cursor int

	// option cursor inside a focused multi-select row
	optCursor int

	editing bool
	input   textinput.Model

	updates <-chan draft.Snapshot

	width  int
	height int
	err    error
}

// New creates a settings panel bound to a draft store. updates may be nil;
// when set, externally applied patches re-render the panel.
func New(ctx context.Context, store draft.Store, updates <-chan draft.Snapshot) Panel {
	input := textinput.New()
	input.Prompt = "> "
	input.CharLimit = 256

	return Panel{
		ctx:     ctx,
		store:   store,
		input:   input,
		updates: updates,
	}
}

// Init loads the initial snapshot.
func (p Panel) Init() tea.Cmd {
	cmds := []tea.Cmd{p.loadSnapshot()}
	if p.updates != nil {
		cmds = append(cmds, p.waitForUpdate())
	}
	return tea.Batch(cmds...)
}

func (p Panel) loadSnapshot() tea.Cmd {
	return func() tea.Msg {
		snap, ok, err := p.store.Get(p.ctx)
		return snapshotMsg{snap: snap, ok: ok, err: err}
	}
}

func (p Panel) waitForUpdate() tea.Cmd {
	updates := p.updates
	return func() tea.Msg {
		snap, ok := <-updates
		if !ok {
			return nil
		}
		return updateMsg(snap)
	}
}

// patchField issues a merge-patch for a single field. It is a no-op while no
// snapshot is loaded.
func (p Panel) patchField(key, value string) tea.Cmd {
	if p.snap == nil {
		return nil
	}
	next := withField(p.snap.Search, key, value)
	store, ctx := p.store, p.ctx
	return func() tea.Msg {
		snap, err := store.Apply(ctx, draft.Patch{Search: &next})
		return snapshotMsg{snap: snap, ok: true, err: err}
	}
}

// Update handles input and snapshot messages.
func (p Panel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		p.width = msg.Width
		p.height = msg.Height
		return p, nil

	case snapshotMsg:
		if msg.err != nil {
			p.err = msg.err
			return p, nil
		}
		p.err = nil
		if msg.ok {
			snap := msg.snap
			p.snap = &snap
		} else if def, ok := p.store.(interface{ DefaultSnapshot() draft.Snapshot }); ok {
			// Nothing saved yet: edit from the defaults.
			snap := def.DefaultSnapshot()
			p.snap = &snap
		}
		p.rebuildRows()
		return p, nil

	case updateMsg:
		snap := draft.Snapshot(msg)
		p.snap = &snap
		p.rebuildRows()
		return p, p.waitForUpdate()

	case tea.KeyMsg:
		if p.editing {
			return p.updateEditing(msg)
		}
		return p.updateNavigation(msg)
	}

	return p, nil
}

func (p Panel) updateNavigation(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q", "esc":
		return p, tea.Quit
	}

	// All other interactions are no-ops until a snapshot is loaded.
	if p.snap == nil || len(p.rows) == 0 {
		return p, nil
	}

	switch msg.String() {
	case "up", "k":
		if p.cursor > 0 {
			p.cursor--
			p.optCursor = 0
		}

	case "down", "j":
		if p.cursor < len(p.rows)-1 {
			p.cursor++
			p.optCursor = 0
		}

	case "left", "h":
		return p.adjust(-1)

	case "right", "l":
		return p.adjust(1)

	case " ":
		r := p.rows[p.cursor]
		if r.kind == rowMulti {
			return p, p.toggleOption(r)
		}

	case "enter":
		r := p.rows[p.cursor]
		if r.kind == rowText || r.kind == rowNumber {
			p.editing = true
			p.input.SetValue(p.fieldValue(r.key))
			p.input.CursorEnd()
			p.input.Focus()
			return p, textinput.Blink
		}
	}

	return p, nil
}

func (p Panel) updateEditing(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		r := p.rows[p.cursor]
		value := strings.TrimSpace(p.input.Value())
		if r.kind == rowNumber {
			value = websearch.ClampMaxResults(value)
		}
		p.editing = false
		p.input.Blur()
		return p, p.patchField(r.key, value)

	case "esc":
		p.editing = false
		p.input.Blur()
		return p, nil
	}

	var cmd tea.Cmd
	p.input, cmd = p.input.Update(msg)
	return p, cmd
}

// adjust moves a radio selection or the option cursor of a multi-select.
func (p Panel) adjust(delta int) (tea.Model, tea.Cmd) {
	r := p.rows[p.cursor]

	switch r.kind {
	case rowRadio:
		current := p.fieldValue(r.key)
		idx := 0
		for i, opt := range r.options {
			if opt.Value == current {
				idx = i
				break
			}
		}
		next := idx + delta
		if next < 0 || next >= len(r.options) || next == idx {
			return p, nil
		}
		return p, p.patchField(r.key, r.options[next].Value)

	case rowMulti:
		next := p.optCursor + delta
		if next >= 0 && next < len(r.options) {
			p.optCursor = next
		}
	}

	return p, nil
}

func (p Panel) toggleOption(r row) tea.Cmd {
	if p.optCursor >= len(r.options) {
		return nil
	}
	opt := r.options[p.optCursor]
	current := websearch.DecodeSelection(p.fieldValue(r.key), r.defs)
	checked := !websearch.Selected(current, opt.Value)
	toggled := websearch.ToggleSelection(current, opt.Value, checked, r.defs)
	return p.patchField(r.key, websearch.EncodeSelection(toggled))
}

// rebuildRows derives the control list from the selected provider.
func (p *Panel) rebuildRows() {
	if p.snap == nil {
		p.rows = nil
		return
	}

	provider := websearch.ParseProvider(p.snap.Search.Provider)

	providerOpts := make([]websearch.Option, 0, len(websearch.Providers))
	for _, pr := range websearch.Providers {
		providerOpts = append(providerOpts, websearch.Option{Value: string(pr), Label: pr.Label()})
	}

	rows := []row{
		{kind: rowRadio, key: "provider", label: "Provider", options: providerOpts},
	}

	for _, cred := range websearch.CredentialFields(provider) {
		rows = append(rows, row{
			kind:   rowText,
			key:    cred.Key,
			label:  cred.Label,
			secret: !cred.URL,
		})
	}

	if provider == websearch.ProviderSearXNG {
		rows = append(rows, row{
			kind:    rowMulti,
			key:     "searxng_categories",
			label:   "Categories",
			options: websearch.CategoryOptions(),
			defs:    websearch.DefaultCategories(),
		})
	}

	rows = append(rows,
		row{
			kind:    rowMulti,
			key:     "source_preferences",
			label:   "Source Preferences",
			options: websearch.SourceOptions(),
			defs:    websearch.DefaultSourcePreferences(),
		},
		row{
			kind:    rowRadio,
			key:     "search_date_range",
			label:   "Date Range",
			options: websearch.DateRangeOptions(),
		},
		row{
			kind:  rowNumber,
			key:   "max_results",
			label: fmt.Sprintf("Max Results (%d-%d)", websearch.MinResults, websearch.MaxResults),
		},
	)

	if depths := websearch.DepthOptions(provider); depths != nil {
		rows = append(rows, row{
			kind:    rowRadio,
			key:     "search_depth",
			label:   "Search Depth",
			options: depths,
		})
	}

	p.rows = rows
	if p.cursor >= len(rows) {
		p.cursor = len(rows) - 1
	}
	if p.optCursor != 0 && (p.rows[p.cursor].kind != rowMulti || p.optCursor >= len(p.rows[p.cursor].options)) {
		p.optCursor = 0
	}
}

func (p Panel) fieldValue(key string) string {
	if p.snap == nil {
		return ""
	}
	return fieldValue(p.snap.Search, key)
}

func fieldValue(s websearch.Settings, key string) string {
	switch key {
	case "provider":
		return s.Provider
	case "tavily_api_key":
		return s.TavilyAPIKey
	case "linkup_api_key":
		return s.LinkUpAPIKey
	case "jina_api_key":
		return s.JinaAPIKey
	case "searxng_base_url":
		return s.SearXNGBaseURL
	case "searxng_categories":
		return s.SearXNGCategories
	case "source_preferences":
		return s.SourcePreferences
	case "search_date_range":
		return s.SearchDateRange
	case "max_results":
		return s.MaxResults
	case "search_depth":
		return s.SearchDepth
	}
	return ""
}

func withField(s websearch.Settings, key, value string) websearch.Settings {
	out := s
	switch key {
	case "provider":
		out.Provider = value
	case "tavily_api_key":
		out.TavilyAPIKey = value
	case "linkup_api_key":
		out.LinkUpAPIKey = value
	case "jina_api_key":
		out.JinaAPIKey = value
	case "searxng_base_url":
		out.SearXNGBaseURL = value
	case "searxng_categories":
		out.SearXNGCategories = value
	case "source_preferences":
		out.SourcePreferences = value
	case "search_date_range":
		out.SearchDateRange = value
	case "max_results":
		out.MaxResults = value
	case "search_depth":
		out.SearchDepth = value
	}
	return out
}
