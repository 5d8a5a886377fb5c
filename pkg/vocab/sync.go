package vocab

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"go.uber.org/zap"
)

// Syncer moves compact records across the replication boundary in both
// directions. Run PullAll once at startup, before serving lookups, so local
// saves never merge against a half-applied replica state.
type Syncer struct {
	store   *Store
	replica ReplicaStore
	log     *zap.Logger
}

// NewSyncer wires a store to its replication boundary.
func NewSyncer(store *Store, replica ReplicaStore, log *zap.Logger) *Syncer {
	if log == nil {
		log = zap.NewNop()
	}
	return &Syncer{store: store, replica: replica, log: log}
}

// PushLocal projects one freshly saved entry into the replica. A quota
// overflow drops the write with a warning and is not an error: the local
// store remains authoritative. Transport failures are returned so the caller
// can warn and continue with its local result.
func (s *Syncer) PushLocal(ctx context.Context, e *Entry) error {
	err := s.push(ctx, e)
	if errors.Is(err, ErrQuotaExceeded) {
		s.log.Warn("replica quota exceeded, outbound write withheld",
			zap.String("word", e.ID), zap.Int("budget", MaxReplicaBytes))
		return nil
	}
	return err
}

func (s *Syncer) push(ctx context.Context, e *Entry) error {
	records, err := s.replica.Read(ctx)
	if err != nil {
		return fmt.Errorf("read replica: %w", err)
	}

	out := Compact(e)
	// Outbound merge rule: never regress a counter another device already
	// advanced further, and keep the earliest first-seen timestamp.
	if existing, ok := records[e.ID]; ok {
		if existing.LookupCount > out.LookupCount {
			out.LookupCount = existing.LookupCount
		}
		if existing.FirstSeenAt > 0 && existing.FirstSeenAt < out.FirstSeenAt {
			out.FirstSeenAt = existing.FirstSeenAt
		}
	}
	records[e.ID] = out

	payload, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("encode replica: %w", err)
	}
	if len(payload) > MaxReplicaBytes {
		return ErrQuotaExceeded
	}
	if err := s.replica.Write(ctx, records); err != nil {
		return fmt.Errorf("write replica: %w", err)
	}
	return nil
}

// PullAll merges every replicated compact record into the authoritative
// store and returns how many records were applied. Transport failure is
// non-fatal to the caller's session; it is reported so startup can log it.
func (s *Syncer) PullAll(ctx context.Context) (int, error) {
	records, err := s.replica.Read(ctx)
	if err != nil {
		return 0, fmt.Errorf("read replica: %w", err)
	}
	merged := 0
	for _, rec := range records {
		if err := s.store.MergeRemote(ctx, rec); err != nil {
			s.log.Warn("skipping unmergeable replica record",
				zap.String("word", rec.Word), zap.Error(err))
			continue
		}
		merged++
	}
	if merged > 0 {
		s.log.Info("replica merged into local store", zap.Int("records", merged))
	}
	return merged, nil
}
