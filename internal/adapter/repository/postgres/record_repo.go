package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/igwlord/nebula/internal/domain"
)

const defaultWriteTimeout = 10 * time.Second

// recordRepository implements domain.RecordRepository against the shared
// multi-user document store. One row per record, scoped by
// (project, owner, collection).
type recordRepository struct {
	db           *DB
	project      string
	writeTimeout time.Duration
}

// NewRecordRepository creates a record repository scoped to one project.
func NewRecordRepository(db *DB, project string) domain.RecordRepository {
	return &recordRepository{db: db, project: project, writeTimeout: defaultWriteTimeout}
}

const recordColumns = `id, description, amount, category, inv_type,
	target_amount, current_amount, monthly_payment, paid_amount, record_date, ord`

// List retrieves the owner's records for the kind, ordered by the manual
// order field. A windowed query excludes rows with a NULL date by
// construction of the range predicate.
func (r *recordRepository) List(ctx context.Context, owner string, kind domain.Kind, window *domain.MonthWindow) ([]*domain.Record, error) {
	query := `
		SELECT ` + recordColumns + `
		FROM records
		WHERE project = $1 AND owner_id = $2 AND collection = $3
	`
	args := []interface{}{r.project, owner, string(kind)}
	if window != nil {
		query += ` AND record_date >= $4 AND record_date <= $5`
		args = append(args, window.Start, window.End)
	}
	query += ` ORDER BY ord, id`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list records: %w", err)
	}
	defer rows.Close()

	var records []*domain.Record
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read record rows: %w", err)
	}
	return records, nil
}

func scanRecord(rows *sql.Rows) (*domain.Record, error) {
	var rec domain.Record
	var date sql.NullTime
	if err := rows.Scan(
		&rec.ID,
		&rec.Description,
		&rec.Amount,
		&rec.Category,
		&rec.Type,
		&rec.TargetAmount,
		&rec.CurrentAmount,
		&rec.MonthlyPayment,
		&rec.PaidAmount,
		&date,
		&rec.Order,
	); err != nil {
		return nil, fmt.Errorf("failed to scan record: %w", err)
	}
	if date.Valid {
		rec.Date = date.Time
	}
	return &rec, nil
}

// Create inserts the record with ord = max(existing)+1 computed over the
// full collection inside the insert itself, so concurrent creates and
// filtered views cannot corrupt the ordering.
func (r *recordRepository) Create(ctx context.Context, owner string, kind domain.Kind, rec *domain.Record) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, r.writeTimeout)
	defer cancel()

	id := uuid.New().String()
	query := `
		INSERT INTO records (id, project, owner_id, collection, description, amount, category,
			inv_type, target_amount, current_amount, monthly_payment, paid_amount, record_date, ord)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13,
			(SELECT COALESCE(MAX(ord), -1) + 1 FROM records
			 WHERE project = $2 AND owner_id = $3 AND collection = $4))
		RETURNING ord
	`
	var ord int
	err := r.db.QueryRowContext(ctx, query,
		id, r.project, owner, string(kind),
		rec.Description, rec.Amount, rec.Category, rec.Type,
		rec.TargetAmount, rec.CurrentAmount, rec.MonthlyPayment, rec.PaidAmount,
		nullDate(rec.Date),
	).Scan(&ord)
	if err != nil {
		return "", fmt.Errorf("failed to create record: %w", err)
	}
	rec.ID = id
	rec.Order = ord
	return id, nil
}

// CreateBatch inserts the records in a single transaction, assigning ids
// where missing. Used by the carry-forward operation.
func (r *recordRepository) CreateBatch(ctx context.Context, owner string, kind domain.Kind, recs []*domain.Record) error {
	if len(recs) == 0 {
		return nil
	}
	ctx, cancel := context.WithTimeout(ctx, r.writeTimeout)
	defer cancel()

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin batch insert: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO records (id, project, owner_id, collection, description, amount, category,
			inv_type, target_amount, current_amount, monthly_payment, paid_amount, record_date, ord)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare batch insert: %w", err)
	}
	defer stmt.Close()

	for _, rec := range recs {
		if rec.ID == "" {
			rec.ID = uuid.New().String()
		}
		if _, err := stmt.ExecContext(ctx,
			rec.ID, r.project, owner, string(kind),
			rec.Description, rec.Amount, rec.Category, rec.Type,
			rec.TargetAmount, rec.CurrentAmount, rec.MonthlyPayment, rec.PaidAmount,
			nullDate(rec.Date), rec.Order,
		); err != nil {
			return fmt.Errorf("failed to insert record %s: %w", rec.ID, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit batch insert: %w", err)
	}
	return nil
}

// Update replaces the mutable fields of the record; id and ord are
// preserved. Returns domain.ErrNotFound when the id is absent from the
// owner's collection.
func (r *recordRepository) Update(ctx context.Context, owner string, kind domain.Kind, id string, rec *domain.Record) error {
	ctx, cancel := context.WithTimeout(ctx, r.writeTimeout)
	defer cancel()

	res, err := r.db.ExecContext(ctx, `
		UPDATE records
		SET description = $5, amount = $6, category = $7, inv_type = $8,
			target_amount = $9, current_amount = $10, monthly_payment = $11,
			paid_amount = $12, record_date = $13
		WHERE project = $1 AND owner_id = $2 AND collection = $3 AND id = $4
	`,
		r.project, owner, string(kind), id,
		rec.Description, rec.Amount, rec.Category, rec.Type,
		rec.TargetAmount, rec.CurrentAmount, rec.MonthlyPayment, rec.PaidAmount,
		nullDate(rec.Date),
	)
	if err != nil {
		return fmt.Errorf("failed to update record: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read update result: %w", err)
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete removes the record and renumbers the survivors to 0..n-1 in the
// same transaction, keeping the order set dense.
func (r *recordRepository) Delete(ctx context.Context, owner string, kind domain.Kind, id string) error {
	ctx, cancel := context.WithTimeout(ctx, r.writeTimeout)
	defer cancel()

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin delete: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `
		DELETE FROM records
		WHERE project = $1 AND owner_id = $2 AND collection = $3 AND id = $4
	`, r.project, owner, string(kind), id)
	if err != nil {
		return fmt.Errorf("failed to delete record: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read delete result: %w", err)
	}
	if n == 0 {
		return domain.ErrNotFound
	}

	if err := renumber(ctx, tx, r.project, owner, string(kind)); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit delete: %w", err)
	}
	return nil
}

func renumber(ctx context.Context, tx *sql.Tx, project, owner, collection string) error {
	_, err := tx.ExecContext(ctx, `
		WITH ranked AS (
			SELECT id, ROW_NUMBER() OVER (ORDER BY ord, id) - 1 AS new_ord
			FROM records
			WHERE project = $1 AND owner_id = $2 AND collection = $3
		)
		UPDATE records r
		SET ord = ranked.new_ord
		FROM ranked
		WHERE r.id = ranked.id AND r.ord <> ranked.new_ord
	`, project, owner, collection)
	if err != nil {
		return fmt.Errorf("failed to renumber records: %w", err)
	}
	return nil
}

// BatchReorder assigns ord = index for each id, all-or-nothing: a single
// missing id rolls the whole transaction back.
func (r *recordRepository) BatchReorder(ctx context.Context, owner string, kind domain.Kind, orderedIDs []string) error {
	ctx, cancel := context.WithTimeout(ctx, r.writeTimeout)
	defer cancel()

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin reorder: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		UPDATE records SET ord = $5
		WHERE project = $1 AND owner_id = $2 AND collection = $3 AND id = $4
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare reorder: %w", err)
	}
	defer stmt.Close()

	for i, id := range orderedIDs {
		res, err := stmt.ExecContext(ctx, r.project, owner, string(kind), id, i)
		if err != nil {
			return fmt.Errorf("failed to reorder record %s: %w", id, err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("failed to read reorder result: %w", err)
		}
		if n == 0 {
			return fmt.Errorf("reorder target %s: %w", id, domain.ErrNotFound)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit reorder: %w", err)
	}
	return nil
}

func nullDate(t time.Time) sql.NullTime {
	if t.IsZero() {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: t, Valid: true}
}
