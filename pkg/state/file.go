package state

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"go.uber.org/zap"

	"scout/pkg/fileutil"
	"scout/pkg/logger"
)

// FileStore is a file-backed key-value store. Saves go through a temp file
// plus rename so a crash never leaves a half-written state file.
type FileStore struct {
	log      *logger.Logger
	filePath string
	data     map[string]interface{}
	mu       sync.RWMutex

	autoSave      bool
	saveInterval  time.Duration
	saveTicker    *time.Ticker
	stopSave      chan struct{}
	pendingWrites bool
}

// FileStoreConfig configures the file store.
type FileStoreConfig struct {
	FilePath     string
	AutoSave     bool
	SaveInterval time.Duration // default 5s
}

// NewFileStore creates a new file-based state store, loading any existing
// state file.
func NewFileStore(log *logger.Logger, cfg *FileStoreConfig) (*FileStore, error) {
	if cfg.SaveInterval == 0 {
		cfg.SaveInterval = 5 * time.Second
	}

	if err := os.MkdirAll(filepath.Dir(cfg.FilePath), 0755); err != nil {
		return nil, fmt.Errorf("creating state directory: %w", err)
	}

	s := &FileStore{
		log:          log,
		filePath:     cfg.FilePath,
		data:         make(map[string]interface{}),
		autoSave:     cfg.AutoSave,
		saveInterval: cfg.SaveInterval,
		stopSave:     make(chan struct{}),
	}

	if err := s.load(); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("loading state: %w", err)
	}

	if s.autoSave {
		s.startAutoSave()
	}

	return s, nil
}

// Get retrieves a value from the store.
func (s *FileStore) Get(ctx context.Context, key string) (interface{}, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	value, exists := s.data[key]
	return value, exists, nil
}

// Set stores a value.
func (s *FileStore) Set(ctx context.Context, key string, value interface{}) error {
	s.mu.Lock()
	s.data[key] = value
	s.pendingWrites = true
	s.mu.Unlock()

	if !s.autoSave {
		return s.save()
	}
	return nil
}

// Delete removes a value.
func (s *FileStore) Delete(ctx context.Context, key string) error {
	s.mu.Lock()
	delete(s.data, key)
	s.pendingWrites = true
	s.mu.Unlock()

	if !s.autoSave {
		return s.save()
	}
	return nil
}

// Keys returns all keys in the store.
func (s *FileStore) Keys(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	keys := make([]string, 0, len(s.data))
	for k := range s.data {
		keys = append(keys, k)
	}
	return keys, nil
}

// Exists checks if a key exists.
func (s *FileStore) Exists(ctx context.Context, key string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, exists := s.data[key]
	return exists, nil
}

// UpdateFunc atomically updates a value using a function.
func (s *FileStore) UpdateFunc(ctx context.Context, key string, updateFn func(current interface{}) interface{}) error {
	s.mu.Lock()
	s.data[key] = updateFn(s.data[key])
	s.pendingWrites = true
	s.mu.Unlock()

	if !s.autoSave {
		return s.save()
	}
	return nil
}

// Close stops auto-save and performs a final save.
func (s *FileStore) Close() error {
	if s.autoSave && s.saveTicker != nil {
		s.saveTicker.Stop()
		close(s.stopSave)
	}
	return s.save()
}

func (s *FileStore) load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.filePath)
	if err != nil {
		return err
	}

	if err := json.Unmarshal(data, &s.data); err != nil {
		return fmt.Errorf("unmarshaling state: %w", err)
	}

	s.log.Debug("Loaded state", zap.String("file", s.filePath), zap.Int("keys", len(s.data)))
	return nil
}

func (s *FileStore) save() error {
	s.mu.RLock()
	if !s.pendingWrites && s.autoSave {
		s.mu.RUnlock()
		return nil
	}
	data, err := json.MarshalIndent(s.data, "", "  ")
	s.mu.RUnlock()

	if err != nil {
		return fmt.Errorf("marshaling state: %w", err)
	}

	if err := fileutil.WriteFileAtomic(s.filePath, data, 0644); err != nil {
		return fmt.Errorf("writing state file: %w", err)
	}

	s.mu.Lock()
	s.pendingWrites = false
	s.mu.Unlock()

	return nil
}

func (s *FileStore) startAutoSave() {
	s.saveTicker = time.NewTicker(s.saveInterval)

	go func() {
		for {
			select {
			case <-s.saveTicker.C:
				if err := s.save(); err != nil {
					s.log.Error("Auto-save failed", zap.Error(err))
				}
			case <-s.stopSave:
				return
			}
		}
	}()
}
