// Package draft holds the in-memory, not-yet-persisted settings being edited
// and persists them through a state.KV backend. Edits arrive as merge-patches:
// a nil section leaves the stored section untouched.
package draft

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"scout/pkg/state"
	"scout/pkg/websearch"
)

const storeKey = "draft:settings"

// Snapshot is the current draft settings.
type Snapshot struct {
	Search    websearch.Settings `json:"search"`
	UpdatedAt time.Time          `json:"updated_at,omitempty"`
}

// Patch is a merge-patch against the draft. Nil sections are left untouched.
type Patch struct {
	Search *websearch.Settings `json:"search,omitempty"`
}

// Store is the draft-settings contract consumed by the settings surfaces.
type Store interface {
	// Get returns the current snapshot. ok is false before the draft has
	// been initialized.
	Get(ctx context.Context) (Snapshot, bool, error)

	// Apply merges a patch into the draft and returns the updated snapshot.
	Apply(ctx context.Context, p Patch) (Snapshot, error)
}

// Manager implements Store over a KV backend and fans out updated snapshots
// to subscribers.
type Manager struct {
	kv state.KV

	mu   sync.Mutex
	subs map[chan Snapshot]struct{}

	// seed is used when a patch arrives before any snapshot exists.
	seed Snapshot
}

// New creates a draft manager. seed provides the search defaults used to
// bootstrap an empty store.
func New(kv state.KV, seed websearch.Settings) *Manager {
	return &Manager{
		kv:   kv,
		subs: make(map[chan Snapshot]struct{}),
		seed: Snapshot{Search: websearch.Normalize(seed)},
	}
}

// DefaultSnapshot returns the snapshot used before any settings are saved.
func (m *Manager) DefaultSnapshot() Snapshot {
	return m.seed
}

// Get returns the current snapshot.
func (m *Manager) Get(ctx context.Context) (Snapshot, bool, error) {
	raw, ok, err := m.kv.Get(ctx, storeKey)
	if err != nil || !ok {
		return Snapshot{}, false, err
	}

	snap, err := decodeSnapshot(raw)
	if err != nil {
		return Snapshot{}, false, err
	}
	return snap, true, nil
}

// Apply merges a patch into the draft, normalizing the search section, and
// notifies subscribers. Applying to an uninitialized store bootstraps from
// the seed snapshot.
func (m *Manager) Apply(ctx context.Context, p Patch) (Snapshot, error) {
	current, ok, err := m.Get(ctx)
	if err != nil {
		return Snapshot{}, err
	}
	if !ok {
		current = m.seed
	}

	if p.Search != nil {
		current.Search = websearch.Normalize(*p.Search)
	}
	current.UpdatedAt = time.Now().UTC()

	if err := m.kv.Set(ctx, storeKey, current); err != nil {
		return Snapshot{}, fmt.Errorf("saving draft settings: %w", err)
	}

	m.notify(current)
	return current, nil
}

// Reset clears the draft back to an uninitialized state.
func (m *Manager) Reset(ctx context.Context) error {
	return m.kv.Delete(ctx, storeKey)
}

// Subscribe returns a channel receiving each updated snapshot and a cancel
// function. Slow subscribers drop intermediate snapshots instead of blocking
// the writer.
func (m *Manager) Subscribe() (<-chan Snapshot, func()) {
	ch := make(chan Snapshot, 1)

	m.mu.Lock()
	m.subs[ch] = struct{}{}
	m.mu.Unlock()

	cancel := func() {
		m.mu.Lock()
		if _, ok := m.subs[ch]; ok {
			delete(m.subs, ch)
			close(ch)
		}
		m.mu.Unlock()
	}
	return ch, cancel
}

func (m *Manager) notify(snap Snapshot) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for ch := range m.subs {
		select {
		case ch <- snap:
		default:
			// Replace the stale pending snapshot with the latest.
			select {
			case <-ch:
			default:
			}
			select {
			case ch <- snap:
			default:
			}
		}
	}
}

func decodeSnapshot(v interface{}) (Snapshot, error) {
	if v == nil {
		return Snapshot{}, nil
	}

	data, err := json.Marshal(v)
	if err != nil {
		return Snapshot{}, fmt.Errorf("marshal draft snapshot: %w", err)
	}

	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return Snapshot{}, fmt.Errorf("unmarshal draft snapshot: %w", err)
	}
	return snap, nil
}
