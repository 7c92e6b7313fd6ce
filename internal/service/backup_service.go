package service

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"silabas/internal/storage"
)

// Backup is the on-disk snapshot format: every logical key in the namespace
// with its raw stored value.
type Backup struct {
	ExportedAt time.Time         `json:"exportedAt"`
	Entries    map[string]string `json:"entries"`
}

// BackupService exports and imports the whole storage namespace as JSON.
type BackupService struct {
	store storage.Store
}

func NewBackupService(store storage.Store) *BackupService {
	return &BackupService{store: store}
}

// Export writes a snapshot of every stored key to path.
func (s *BackupService) Export(ctx context.Context, path string) error {
	keys, err := s.store.Keys(ctx)
	if err != nil {
		return fmt.Errorf("listing keys: %w", err)
	}

	backup := Backup{
		ExportedAt: time.Now(),
		Entries:    make(map[string]string, len(keys)),
	}
	for _, key := range keys {
		value, ok, err := s.store.Get(ctx, key)
		if err != nil {
			return fmt.Errorf("reading %q: %w", key, err)
		}
		if ok {
			backup.Entries[key] = value
		}
	}

	data, err := json.MarshalIndent(backup, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding backup: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

// Import loads a snapshot from path into the store. With clear set the
// namespace is wiped first; otherwise existing keys are overwritten and
// keys absent from the snapshot are left alone.
func (s *BackupService) Import(ctx context.Context, path string, clear bool) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("reading %s: %w", path, err)
	}

	var backup Backup
	if err := json.Unmarshal(data, &backup); err != nil {
		return 0, fmt.Errorf("decoding backup: %w", err)
	}

	if clear {
		if err := s.store.Clear(ctx); err != nil {
			return 0, fmt.Errorf("clearing store: %w", err)
		}
	}

	for key, value := range backup.Entries {
		if err := s.store.Set(ctx, key, value); err != nil {
			return 0, fmt.Errorf("restoring %q: %w", key, err)
		}
	}
	return len(backup.Entries), nil
}
