package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/sakif/reminder/internal/apperror"
	"github.com/sakif/reminder/internal/model"
	"github.com/sakif/reminder/internal/repository"
)

// Compile-time check that *DB satisfies the repository contract.
var _ repository.ReminderRepository = (*DB)(nil)

// List returns every reminder in id order.
func (db *DB) List(ctx context.Context) ([]model.Reminder, error) {
	rows, err := db.conn.QueryContext(ctx,
		`SELECT id, text, email FROM reminders ORDER BY id ASC`,
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing reminders: %w", err)
	}
	defer rows.Close()

	reminders := make([]model.Reminder, 0)
	for rows.Next() {
		var r model.Reminder
		if err := rows.Scan(&r.ID, &r.Text, &r.Email); err != nil {
			return nil, fmt.Errorf("sqlite: scanning reminder row: %w", err)
		}
		reminders = append(reminders, r)
	}

	// rows.Err catches failures that happened during iteration.
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating reminders: %w", err)
	}

	return reminders, nil
}

// GetByID returns the reminder with the given id, or an ErrNotFound error.
func (db *DB) GetByID(ctx context.Context, id int64) (*model.Reminder, error) {
	var r model.Reminder
	err := db.conn.QueryRowContext(ctx,
		`SELECT id, text, email FROM reminders WHERE id = ?`,
		id,
	).Scan(&r.ID, &r.Text, &r.Email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperror.NotFound("reminder", id)
		}
		return nil, fmt.Errorf("sqlite: getting reminder %d: %w", id, err)
	}
	return &r, nil
}

// Create inserts the reminder and stores the assigned id on it.
//
// The reminder is validated again here so no caller can persist an invalid
// email, even one that built the struct by hand.
func (db *DB) Create(ctx context.Context, reminder *model.Reminder) error {
	if err := reminder.Validate(); err != nil {
		return err
	}
	id, err := insert(ctx, db.conn, reminder)
	if err != nil {
		return fmt.Errorf("sqlite: creating reminder: %w", err)
	}
	reminder.ID = id
	return nil
}

// CreateBatch inserts all reminders inside one transaction. IDs are only
// written back to the structs after the commit succeeds.
func (db *DB) CreateBatch(ctx context.Context, reminders []*model.Reminder) error {
	for _, r := range reminders {
		if err := r.Validate(); err != nil {
			return err
		}
	}

	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("sqlite: beginning batch: %w", err)
	}
	// Rollback after a successful Commit is a no-op returning sql.ErrTxDone.
	defer tx.Rollback()

	ids := make([]int64, len(reminders))
	for i, r := range reminders {
		id, err := insert(ctx, tx, r)
		if err != nil {
			return fmt.Errorf("sqlite: inserting batch reminder %d: %w", i, err)
		}
		ids[i] = id
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("sqlite: committing batch: %w", err)
	}

	for i, r := range reminders {
		r.ID = ids[i]
	}
	return nil
}

// Delete removes one reminder. RowsAffected distinguishes a miss from a hit
// without a separate SELECT.
func (db *DB) Delete(ctx context.Context, id int64) error {
	result, err := db.conn.ExecContext(ctx,
		`DELETE FROM reminders WHERE id = ?`,
		id,
	)
	if err != nil {
		return fmt.Errorf("sqlite: deleting reminder %d: %w", id, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("sqlite: checking rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return apperror.NotFound("reminder", id)
	}
	return nil
}

// DeleteAll removes every reminder in a single statement.
func (db *DB) DeleteAll(ctx context.Context) (int64, error) {
	result, err := db.conn.ExecContext(ctx, `DELETE FROM reminders`)
	if err != nil {
		return 0, fmt.Errorf("sqlite: deleting all reminders: %w", err)
	}

	n, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("sqlite: checking rows affected: %w", err)
	}
	return n, nil
}

// execer is satisfied by both *sql.DB and *sql.Tx.
type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func insert(ctx context.Context, e execer, r *model.Reminder) (int64, error) {
	result, err := e.ExecContext(ctx,
		`INSERT INTO reminders (text, email) VALUES (?, ?)`,
		r.Text,
		r.Email,
	)
	if err != nil {
		return 0, err
	}
	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("reading inserted id: %w", err)
	}
	return id, nil
}
