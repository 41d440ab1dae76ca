package state

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"scout/pkg/logger"
)

func newTestLogger(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.New(&logger.Config{Level: logger.LevelError, Development: true})
	if err != nil {
		t.Fatalf("creating test logger: %v", err)
	}
	return log
}

func newTestFileStore(t *testing.T) *FileStore {
	t.Helper()
	s, err := NewFileStore(newTestLogger(t), &FileStoreConfig{
		FilePath: filepath.Join(t.TempDir(), "state.json"),
	})
	if err != nil {
		t.Fatalf("creating file store: %v", err)
	}
	return s
}

func TestFileStoreSetGet(t *testing.T) {
	s := newTestFileStore(t)
	defer s.Close()
	ctx := context.Background()

	if err := s.Set(ctx, "draft:settings", map[string]interface{}{"provider": "tavily"}); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	v, ok, err := s.Get(ctx, "draft:settings")
	if err != nil || !ok {
		t.Fatalf("Get failed: ok=%v err=%v", ok, err)
	}
	m, ok := v.(map[string]interface{})
	if !ok || m["provider"] != "tavily" {
		t.Fatalf("unexpected value: %v", v)
	}

	_, ok, err = s.Get(ctx, "missing")
	if err != nil || ok {
		t.Fatalf("missing key should be (nil, false, nil), got ok=%v err=%v", ok, err)
	}
}

func TestFileStorePersistsAcrossReopen(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "state.json")
	log := newTestLogger(t)
	ctx := context.Background()

	s, err := NewFileStore(log, &FileStoreConfig{FilePath: path})
	if err != nil {
		t.Fatalf("creating file store: %v", err)
	}
	if err := s.Set(ctx, "k", "v"); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	s2, err := NewFileStore(log, &FileStoreConfig{FilePath: path})
	if err != nil {
		t.Fatalf("reopening file store: %v", err)
	}
	defer s2.Close()

	v, ok, err := s2.Get(ctx, "k")
	if err != nil || !ok || v != "v" {
		t.Fatalf("expected persisted value, got %v ok=%v err=%v", v, ok, err)
	}

	// No temp file should be left behind.
	if _, err := os.Stat(path + ".tmp"); !os.IsNotExist(err) {
		t.Fatalf("temp file left behind: %v", err)
	}
}

func TestFileStoreDeleteAndKeys(t *testing.T) {
	s := newTestFileStore(t)
	defer s.Close()
	ctx := context.Background()

	for _, k := range []string{"a", "b"} {
		if err := s.Set(ctx, k, k); err != nil {
			t.Fatalf("Set %s failed: %v", k, err)
		}
	}
	keys, err := s.Keys(ctx)
	if err != nil || len(keys) != 2 {
		t.Fatalf("expected 2 keys, got %v err=%v", keys, err)
	}

	if err := s.Delete(ctx, "a"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	ok, err := s.Exists(ctx, "a")
	if err != nil || ok {
		t.Fatalf("key a should be gone, ok=%v err=%v", ok, err)
	}
}

func TestFileStoreUpdateFunc(t *testing.T) {
	s := newTestFileStore(t)
	defer s.Close()
	ctx := context.Background()

	err := s.UpdateFunc(ctx, "counter", func(current interface{}) interface{} {
		if current == nil {
			return float64(1)
		}
		return current.(float64) + 1
	})
	if err != nil {
		t.Fatalf("UpdateFunc failed: %v", err)
	}
	err = s.UpdateFunc(ctx, "counter", func(current interface{}) interface{} {
		return current.(float64) + 1
	})
	if err != nil {
		t.Fatalf("UpdateFunc failed: %v", err)
	}

	v, ok, err := s.Get(ctx, "counter")
	if err != nil || !ok || v.(float64) != 2 {
		t.Fatalf("expected counter 2, got %v ok=%v err=%v", v, ok, err)
	}
}
