package domain

import "context"

// RecordRepository is the backend adapter contract shared by the remote
// multi-user store and the local guest-mode store. Every method is scoped
// to one owner identity and one collection kind; scopes are never mixed.
type RecordRepository interface {
	// List returns the owner's records for the kind, ordered by the manual
	// order field. A non-nil window restricts the result to records whose
	// date falls inside it; records with an absent date are excluded from
	// windowed results.
	List(ctx context.Context, owner string, kind Kind, window *MonthWindow) ([]*Record, error)

	// Watch delivers full ordered snapshots on the returned channel: one
	// immediately, then one after every change to the underlying collection
	// (including changes made by concurrent sessions where the backend
	// supports push). The channel is closed when ctx is canceled.
	Watch(ctx context.Context, owner string, kind Kind, window *MonthWindow) (<-chan []*Record, error)

	// Create persists a new record and returns its assigned id. The order
	// field is set to max(existing order)+1 computed over the FULL
	// collection, not a filtered view.
	Create(ctx context.Context, owner string, kind Kind, rec *Record) (string, error)

	// CreateBatch persists several pre-built records in a single batch,
	// assigning ids to records that lack one. Orders are taken as given.
	CreateBatch(ctx context.Context, owner string, kind Kind, recs []*Record) error

	// Update replaces the mutable fields of an existing record, preserving
	// its id and order. Returns ErrNotFound when the id is absent.
	Update(ctx context.Context, owner string, kind Kind, id string, rec *Record) error

	// Delete removes a record and renumbers the survivors to 0..n-1 so the
	// order set stays dense. Returns ErrNotFound when the id is absent.
	Delete(ctx context.Context, owner string, kind Kind, id string) error

	// BatchReorder assigns order = index for each id in the given sequence,
	// atomically: either every record gets its new order or none do.
	BatchReorder(ctx context.Context, owner string, kind Kind, orderedIDs []string) error
}

// SettingsRepository persists the singleton settings document per owner.
type SettingsRepository interface {
	// Load returns the owner's settings, or ErrNotFound when none were
	// saved yet.
	Load(ctx context.Context, owner string) (*Settings, error)

	// Save writes the full settings document, creating it if needed.
	Save(ctx context.Context, owner string, s *Settings) error
}
