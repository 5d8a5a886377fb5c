package vocab

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sync"
)

// ReplicaStore is the replication boundary: a key/value view of the compact
// records shared between devices. The concrete transport (browser sync
// storage, a file, a test double) is the collaborator's concern.
type ReplicaStore interface {
	Read(ctx context.Context) (map[string]CompactRecord, error)
	Write(ctx context.Context, records map[string]CompactRecord) error
}

// FileReplica stores the replica map as a JSON file. Useful when the sync
// channel is a synced directory rather than browser storage.
type FileReplica struct {
	path string
	mu   sync.Mutex
}

// NewFileReplica creates a file-backed replica store at path.
func NewFileReplica(path string) *FileReplica {
	return &FileReplica{path: path}
}

func (f *FileReplica) Read(ctx context.Context) (map[string]CompactRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	data, err := os.ReadFile(f.path)
	if os.IsNotExist(err) {
		return map[string]CompactRecord{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read replica %s: %w", f.path, err)
	}
	records := map[string]CompactRecord{}
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("parse replica %s: %w", f.path, err)
	}
	return records, nil
}

func (f *FileReplica) Write(ctx context.Context, records map[string]CompactRecord) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	data, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("encode replica: %w", err)
	}
	tmp := f.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write replica %s: %w", f.path, err)
	}
	return os.Rename(tmp, f.path)
}

// MemReplica is an in-memory ReplicaStore for tests and offline runs.
type MemReplica struct {
	mu      sync.Mutex
	records map[string]CompactRecord
}

// NewMemReplica creates an empty in-memory replica store.
func NewMemReplica() *MemReplica {
	return &MemReplica{records: map[string]CompactRecord{}}
}

func (m *MemReplica) Read(ctx context.Context) (map[string]CompactRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make(map[string]CompactRecord, len(m.records))
	for k, v := range m.records {
		out[k] = v
	}
	return out, nil
}

func (m *MemReplica) Write(ctx context.Context, records map[string]CompactRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.records = make(map[string]CompactRecord, len(records))
	for k, v := range records {
		m.records[k] = v
	}
	return nil
}
