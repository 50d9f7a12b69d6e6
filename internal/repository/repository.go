// Package repository declares the storage contracts the service layer
// depends on. Implementations live in subpackages (see repository/sqlite).
package repository

import (
	"context"

	"github.com/sakif/reminder/internal/model"
)

// ReminderRepository persists Reminder records.
//
// Create and CreateBatch assign IDs in place. GetByID and Delete return an
// apperror.ErrNotFound error for an unknown id.
type ReminderRepository interface {
	List(ctx context.Context) ([]model.Reminder, error)
	GetByID(ctx context.Context, id int64) (*model.Reminder, error)
	Create(ctx context.Context, reminder *model.Reminder) error
	// CreateBatch inserts all reminders in a single transaction: either all
	// of them are stored or none is.
	CreateBatch(ctx context.Context, reminders []*model.Reminder) error
	Delete(ctx context.Context, id int64) error
	// DeleteAll removes every reminder and reports how many were removed.
	DeleteAll(ctx context.Context) (int64, error)
}
