package pricing

import "sync/atomic"

// Snapshot is an immutable view of the comparable-sales table. Readers hold
// on to a snapshot for the duration of an operation, so a concurrent reload
// never exposes a partially updated table.
type Snapshot struct {
	records []ComparableRecord
}

func NewSnapshot(records []ComparableRecord) *Snapshot {
	return &Snapshot{records: records}
}

// Records returns the records in source order. Callers must not modify the
// returned slice.
func (s *Snapshot) Records() []ComparableRecord {
	return s.records
}

func (s *Snapshot) Len() int {
	return len(s.records)
}

// Store holds the current snapshot. Replace swaps it atomically, so reads
// and reloads need no coordination.
type Store struct {
	current atomic.Pointer[Snapshot]
}

func NewStore(snap *Snapshot) *Store {
	if snap == nil {
		snap = NewSnapshot(nil)
	}
	s := &Store{}
	s.current.Store(snap)
	return s
}

func (s *Store) Snapshot() *Snapshot {
	return s.current.Load()
}

func (s *Store) Replace(snap *Snapshot) {
	if snap == nil {
		snap = NewSnapshot(nil)
	}
	s.current.Store(snap)
}
