package localstore

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/igwlord/nebula/internal/domain"
)

// recordRepository implements domain.RecordRepository over the key-value
// store. Each collection is one entry holding a JSON array of records.
type recordRepository struct {
	store *Store
}

// NewRecordRepository creates the guest-mode record repository.
func NewRecordRepository(store *Store) domain.RecordRepository {
	return &recordRepository{store: store}
}

func collectionKey(kind domain.Kind) string {
	return keyPrefix + string(kind)
}

func (r *recordRepository) readAll(kind domain.Kind) ([]*domain.Record, error) {
	raw, ok, err := r.store.get(collectionKey(kind))
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}
	var records []*domain.Record
	if err := json.Unmarshal(raw, &records); err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", kind, err)
	}
	return records, nil
}

func (r *recordRepository) writeAll(kind domain.Kind, records []*domain.Record) error {
	raw, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", kind, err)
	}
	return r.store.put(collectionKey(kind), raw)
}

func sortByOrder(records []*domain.Record) {
	sort.SliceStable(records, func(i, j int) bool {
		if records[i].Order != records[j].Order {
			return records[i].Order < records[j].Order
		}
		return records[i].ID < records[j].ID
	})
}

// List is a synchronous read of the stored collection. Records with an
// absent date never match a windowed read.
func (r *recordRepository) List(_ context.Context, _ string, kind domain.Kind, window *domain.MonthWindow) ([]*domain.Record, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	return r.list(kind, window)
}

func (r *recordRepository) list(kind domain.Kind, window *domain.MonthWindow) ([]*domain.Record, error) {
	all, err := r.readAll(kind)
	if err != nil {
		return nil, err
	}
	if window != nil {
		filtered := all[:0]
		for _, rec := range all {
			if window.Contains(rec.Date) {
				filtered = append(filtered, rec)
			}
		}
		all = filtered
	}
	sortByOrder(all)
	return all, nil
}

// Watch delivers an immediate snapshot and then a fresh one after every
// mutation made through this store. The local backend has no cross-process
// push; changes written by another process stay invisible until this
// session mutates the collection.
func (r *recordRepository) Watch(ctx context.Context, _ string, kind domain.Kind, window *domain.MonthWindow) (<-chan []*domain.Record, error) {
	out := make(chan []*domain.Record, 1)
	signal, cancel := r.store.subscribe(collectionKey(kind))

	go func() {
		defer close(out)
		defer cancel()
		for {
			records, err := r.List(ctx, "", kind, window)
			if err != nil {
				records = nil
			}
			select {
			case out <- records:
			case <-ctx.Done():
				return
			}
			select {
			case <-signal:
			case <-ctx.Done():
				return
			}
		}
	}()
	return out, nil
}

// Create appends the record with order = max(existing)+1 computed over the
// full stored list, then rewrites the entry.
func (r *recordRepository) Create(_ context.Context, _ string, kind domain.Kind, rec *domain.Record) (string, error) {
	r.store.mu.Lock()
	all, err := r.readAll(kind)
	if err != nil {
		r.store.mu.Unlock()
		return "", err
	}

	maxOrder := -1
	for _, existing := range all {
		if existing.Order > maxOrder {
			maxOrder = existing.Order
		}
	}
	rec.ID = newID()
	rec.Order = maxOrder + 1
	all = append(all, rec)

	if err := r.writeAll(kind, all); err != nil {
		r.store.mu.Unlock()
		return "", err
	}
	r.store.mu.Unlock()

	r.store.notify(collectionKey(kind))
	return rec.ID, nil
}

// CreateBatch appends the records as one synchronous rewrite, assigning
// ids where missing.
func (r *recordRepository) CreateBatch(_ context.Context, _ string, kind domain.Kind, recs []*domain.Record) error {
	if len(recs) == 0 {
		return nil
	}
	r.store.mu.Lock()
	all, err := r.readAll(kind)
	if err != nil {
		r.store.mu.Unlock()
		return err
	}
	for _, rec := range recs {
		if rec.ID == "" {
			rec.ID = newID()
		}
		all = append(all, rec)
	}
	if err := r.writeAll(kind, all); err != nil {
		r.store.mu.Unlock()
		return err
	}
	r.store.mu.Unlock()

	r.store.notify(collectionKey(kind))
	return nil
}

// Update merges the mutable fields into the stored record, preserving id
// and order. Returns domain.ErrNotFound for a missing id.
func (r *recordRepository) Update(_ context.Context, _ string, kind domain.Kind, id string, rec *domain.Record) error {
	r.store.mu.Lock()
	all, err := r.readAll(kind)
	if err != nil {
		r.store.mu.Unlock()
		return err
	}

	found := false
	for _, existing := range all {
		if existing.ID != id {
			continue
		}
		order := existing.Order
		*existing = *rec
		existing.ID = id
		existing.Order = order
		found = true
		break
	}
	if !found {
		r.store.mu.Unlock()
		return domain.ErrNotFound
	}
	if err := r.writeAll(kind, all); err != nil {
		r.store.mu.Unlock()
		return err
	}
	r.store.mu.Unlock()

	r.store.notify(collectionKey(kind))
	return nil
}

// Delete removes the record and renumbers the survivors to 0..n-1.
func (r *recordRepository) Delete(_ context.Context, _ string, kind domain.Kind, id string) error {
	r.store.mu.Lock()
	all, err := r.readAll(kind)
	if err != nil {
		r.store.mu.Unlock()
		return err
	}

	kept := all[:0]
	found := false
	for _, existing := range all {
		if existing.ID == id {
			found = true
			continue
		}
		kept = append(kept, existing)
	}
	if !found {
		r.store.mu.Unlock()
		return domain.ErrNotFound
	}

	sortByOrder(kept)
	for i, rec := range kept {
		rec.Order = i
	}
	if err := r.writeAll(kind, kept); err != nil {
		r.store.mu.Unlock()
		return err
	}
	r.store.mu.Unlock()

	r.store.notify(collectionKey(kind))
	return nil
}

// BatchReorder rewrites the whole list with order = index per id. Records
// not mentioned in orderedIDs keep their relative order after the
// mentioned ones. A single synchronous rewrite makes this trivially
// atomic.
func (r *recordRepository) BatchReorder(_ context.Context, _ string, kind domain.Kind, orderedIDs []string) error {
	r.store.mu.Lock()
	all, err := r.readAll(kind)
	if err != nil {
		r.store.mu.Unlock()
		return err
	}

	index := make(map[string]int, len(orderedIDs))
	for i, id := range orderedIDs {
		index[id] = i
	}
	byID := make(map[string]bool, len(all))
	for _, rec := range all {
		byID[rec.ID] = true
	}
	for _, id := range orderedIDs {
		if !byID[id] {
			r.store.mu.Unlock()
			return fmt.Errorf("reorder target %s: %w", id, domain.ErrNotFound)
		}
	}

	sortByOrder(all)
	sort.SliceStable(all, func(i, j int) bool {
		ri, iOK := index[all[i].ID]
		rj, jOK := index[all[j].ID]
		switch {
		case iOK && jOK:
			return ri < rj
		case iOK:
			return true
		case jOK:
			return false
		default:
			return false
		}
	})
	for i, rec := range all {
		rec.Order = i
	}

	if err := r.writeAll(kind, all); err != nil {
		r.store.mu.Unlock()
		return err
	}
	r.store.mu.Unlock()

	r.store.notify(collectionKey(kind))
	return nil
}
