package repository

import (
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
)

var (
	// ErrNotFound is returned when a record id is not present in a collection.
	ErrNotFound = errors.New("record not found")
	// ErrDuplicateID is returned when creating a record whose id is already taken.
	ErrDuplicateID = errors.New("duplicate record id")
	// ErrDuplicateKey is returned when a write would give two records the same unique key.
	ErrDuplicateKey = errors.New("duplicate unique key")
)

// Record is the constraint satisfied by pointers to storable entities.
type Record[T any] interface {
	*T
	GetID() string
	SetID(string)
	Stamp(time.Time)
	Clone() T
}

// Dataset is the shared write lock and version counter of a family of
// collections. Every published mutation increments the version exactly once.
type Dataset struct {
	mu      sync.RWMutex
	version atomic.Uint64
}

// NewDataset constructs an empty dataset at version 0.
func NewDataset() *Dataset {
	return &Dataset{}
}

// Version returns the number of mutations published so far.
func (d *Dataset) Version() uint64 {
	return d.version.Load()
}

// Collection is an in-memory copy-on-write list of records. Writers build a
// new slice under the dataset lock and publish it atomically; readers load the
// current slice without locking and never observe a partial write.
type Collection[T any, P Record[T]] struct {
	dataset *Dataset
	items   atomic.Pointer[[]T]
	now     func() time.Time
	newID   func() string
	key     func(P) string
}

// NewCollection constructs an empty collection bound to the dataset. When key
// is non-nil, non-empty keys must be unique across the collection.
func NewCollection[T any, P Record[T]](dataset *Dataset, key func(P) string) *Collection[T, P] {
	c := &Collection[T, P]{
		dataset: dataset,
		now:     func() time.Time { return time.Now().UTC() },
		newID:   uuid.NewString,
		key:     key,
	}
	empty := make([]T, 0)
	c.items.Store(&empty)
	return c
}

// Snapshot returns the currently published slice. The slice and the records
// in it are shared and must be treated as read-only.
func (c *Collection[T, P]) Snapshot() []T {
	return *c.items.Load()
}

// Len returns the number of records.
func (c *Collection[T, P]) Len() int {
	return len(c.Snapshot())
}

// Get returns a copy of the record with the given id.
func (c *Collection[T, P]) Get(id string) (T, error) {
	items := c.Snapshot()
	if idx := indexOf[T, P](items, id); idx >= 0 {
		return P(&items[idx]).Clone(), nil
	}
	var zero T
	return zero, ErrNotFound
}

// Create appends a record, assigning an id when it has none.
func (c *Collection[T, P]) Create(item T) (T, error) {
	rec := P(&item).Clone()
	if P(&rec).GetID() == "" {
		P(&rec).SetID(c.newID())
	}
	err := c.mutate(func(cur []T) ([]T, error) {
		if indexOf[T, P](cur, P(&rec).GetID()) >= 0 {
			return nil, ErrDuplicateID
		}
		P(&rec).Stamp(c.now())
		next := make([]T, len(cur), len(cur)+1)
		copy(next, cur)
		next = append(next, rec)
		if err := c.checkKeys(next); err != nil {
			return nil, err
		}
		return next, nil
	})
	if err != nil {
		var zero T
		return zero, err
	}
	return P(&rec).Clone(), nil
}

// Update applies patch to a copy of the record and publishes the result. The
// record id cannot be changed by the patch. A patch error aborts the update.
func (c *Collection[T, P]) Update(id string, patch func(P) error) (T, error) {
	updated, err := c.BulkUpdate([]string{id}, patch)
	if err != nil {
		var zero T
		return zero, err
	}
	return updated[0], nil
}

// BulkUpdate patches every listed record. If any id is missing or any patch
// fails nothing is published.
func (c *Collection[T, P]) BulkUpdate(ids []string, patch func(P) error) ([]T, error) {
	ids = uniqueIDs(ids)
	out := make([]T, 0, len(ids))
	err := c.mutate(func(cur []T) ([]T, error) {
		positions := positionsOf[T, P](cur)
		next := make([]T, len(cur))
		copy(next, cur)
		now := c.now()
		for _, id := range ids {
			idx, ok := positions[id]
			if !ok {
				return nil, ErrNotFound
			}
			rec := P(&next[idx]).Clone()
			if err := patch(P(&rec)); err != nil {
				return nil, err
			}
			P(&rec).SetID(id)
			P(&rec).Stamp(now)
			next[idx] = rec
		}
		if err := c.checkKeys(next); err != nil {
			return nil, err
		}
		for _, id := range ids {
			out = append(out, P(&next[positions[id]]).Clone())
		}
		return next, nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Delete removes the record with the given id.
func (c *Collection[T, P]) Delete(id string) error {
	_, err := c.BulkDelete([]string{id})
	return err
}

// BulkDelete removes every listed record. Duplicate ids are counted once. If
// any id is missing nothing is removed.
func (c *Collection[T, P]) BulkDelete(ids []string) (int, error) {
	removed := 0
	err := c.mutate(func(cur []T) ([]T, error) {
		positions := positionsOf[T, P](cur)
		drop := make(map[string]struct{}, len(ids))
		for _, id := range ids {
			if _, ok := positions[id]; !ok {
				return nil, ErrNotFound
			}
			drop[id] = struct{}{}
		}
		next := make([]T, 0, len(cur)-len(drop))
		for i := range cur {
			if _, ok := drop[P(&cur[i]).GetID()]; ok {
				continue
			}
			next = append(next, cur[i])
		}
		removed = len(drop)
		return next, nil
	})
	return removed, err
}

// Replace swaps the whole collection for copies of items.
func (c *Collection[T, P]) Replace(items []T) {
	_ = c.mutate(func([]T) ([]T, error) {
		return c.prepare(items), nil
	})
}

func (c *Collection[T, P]) prepare(items []T) []T {
	now := c.now()
	next := make([]T, 0, len(items))
	for i := range items {
		rec := P(&items[i]).Clone()
		if P(&rec).GetID() == "" {
			P(&rec).SetID(c.newID())
		}
		P(&rec).Stamp(now)
		next = append(next, rec)
	}
	return next
}

func (c *Collection[T, P]) mutate(build func(cur []T) ([]T, error)) error {
	c.dataset.mu.Lock()
	defer c.dataset.mu.Unlock()
	next, err := build(c.Snapshot())
	if err != nil {
		return err
	}
	c.items.Store(&next)
	c.dataset.version.Add(1)
	return nil
}

// publish stores next without taking the dataset lock or bumping the
// version; the caller holds the lock.
func (c *Collection[T, P]) publish(next []T) {
	c.items.Store(&next)
}

func (c *Collection[T, P]) checkBatch(items []T) error {
	seen := make(map[string]struct{}, len(items))
	for i := range items {
		id := P(&items[i]).GetID()
		if _, ok := seen[id]; ok {
			return ErrDuplicateID
		}
		seen[id] = struct{}{}
	}
	return c.checkKeys(items)
}

func (c *Collection[T, P]) checkKeys(items []T) error {
	if c.key == nil {
		return nil
	}
	seen := make(map[string]struct{}, len(items))
	for i := range items {
		k := c.key(P(&items[i]))
		if k == "" {
			continue
		}
		if _, ok := seen[k]; ok {
			return ErrDuplicateKey
		}
		seen[k] = struct{}{}
	}
	return nil
}

func indexOf[T any, P Record[T]](items []T, id string) int {
	for i := range items {
		if P(&items[i]).GetID() == id {
			return i
		}
	}
	return -1
}

func positionsOf[T any, P Record[T]](items []T) map[string]int {
	out := make(map[string]int, len(items))
	for i := range items {
		out[P(&items[i]).GetID()] = i
	}
	return out
}

func uniqueIDs(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
