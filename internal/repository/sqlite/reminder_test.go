package sqlite

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sakif/reminder/internal/apperror"
	"github.com/sakif/reminder/internal/model"
)

// newTestDB opens a fresh in-memory database that is closed when the test
// finishes.
func newTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := New(":memory:")
	require.NoError(t, err, "failed to create test db")
	t.Cleanup(func() { db.Close() })
	return db
}

func createTestReminder(t *testing.T, db *DB, text, email string) *model.Reminder {
	t.Helper()
	r, err := model.NewReminder(text, email)
	require.NoError(t, err)
	require.NoError(t, db.Create(context.Background(), r))
	return r
}

// =========================================================================
// CREATE
// =========================================================================

func TestCreate_AssignsID(t *testing.T) {
	db := newTestDB(t)

	r := createTestReminder(t, db, "Buy milk", "a@b.com")

	assert.NotZero(t, r.ID)
}

func TestCreate_RoundTripsThroughList(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	created := createTestReminder(t, db, "Buy milk", "a@b.com")

	all, err := db.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, *created, all[0])
}

func TestCreate_EmptyTextIsStored(t *testing.T) {
	db := newTestDB(t)

	created := createTestReminder(t, db, "", "a@b.com")

	found, err := db.GetByID(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, "", found.Text)
}

func TestCreate_RejectsInvalidEmail(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	// Built by hand, bypassing NewReminder.
	err := db.Create(ctx, &model.Reminder{Text: "x", Email: "not-an-email"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperror.ErrInvalidInput))

	all, err := db.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestCreate_IDsIncrease(t *testing.T) {
	db := newTestDB(t)

	first := createTestReminder(t, db, "one", "a@b.com")
	second := createTestReminder(t, db, "two", "a@b.com")

	assert.Greater(t, second.ID, first.ID)
}

// =========================================================================
// CREATE BATCH
// =========================================================================

func TestCreateBatch(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	batch := []*model.Reminder{
		{Text: "one", Email: "a@gmx.de"},
		{Text: "two", Email: "b@yahoo.com"},
		{Text: "three", Email: "c@web.com"},
	}
	require.NoError(t, db.CreateBatch(ctx, batch))

	for _, r := range batch {
		assert.NotZero(t, r.ID)
	}

	all, err := db.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	for i, r := range all {
		assert.Equal(t, *batch[i], r)
	}
}

func TestCreateBatch_InvalidEntryStoresNothing(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	batch := []*model.Reminder{
		{Text: "one", Email: "a@gmx.de"},
		{Text: "two", Email: "broken"},
	}
	err := db.CreateBatch(ctx, batch)
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperror.ErrInvalidInput))
	assert.Zero(t, batch[0].ID)

	all, err := db.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestCreateBatch_Empty(t *testing.T) {
	db := newTestDB(t)
	assert.NoError(t, db.CreateBatch(context.Background(), nil))
}

func TestCreateBatch_CancelledContextStoresNothing(t *testing.T) {
	db := newTestDB(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := db.CreateBatch(ctx, []*model.Reminder{{Text: "one", Email: "a@gmx.de"}})
	require.Error(t, err)

	all, err := db.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, all)
}

// =========================================================================
// LIST / GET
// =========================================================================

func TestList_Empty(t *testing.T) {
	db := newTestDB(t)

	all, err := db.List(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, all)
	assert.Empty(t, all)
}

func TestList_OrderedByID(t *testing.T) {
	db := newTestDB(t)

	createTestReminder(t, db, "first", "a@b.com")
	createTestReminder(t, db, "second", "a@b.com")
	createTestReminder(t, db, "third", "a@b.com")

	all, err := db.List(context.Background())
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "first", all[0].Text)
	assert.Equal(t, "second", all[1].Text)
	assert.Equal(t, "third", all[2].Text)
	assert.Less(t, all[0].ID, all[1].ID)
	assert.Less(t, all[1].ID, all[2].ID)
}

func TestGetByID_NotFound(t *testing.T) {
	db := newTestDB(t)

	_, err := db.GetByID(context.Background(), 999)
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperror.ErrNotFound))
}

// =========================================================================
// DELETE
// =========================================================================

func TestDelete_RemovesOnlyThatRecord(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	keep1 := createTestReminder(t, db, "keep 1", "a@b.com")
	gone := createTestReminder(t, db, "delete me", "a@b.com")
	keep2 := createTestReminder(t, db, "keep 2", "a@b.com")

	require.NoError(t, db.Delete(ctx, gone.ID))

	all, err := db.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []model.Reminder{*keep1, *keep2}, all)

	_, err = db.GetByID(ctx, gone.ID)
	assert.True(t, errors.Is(err, apperror.ErrNotFound))
}

func TestDelete_NotFound(t *testing.T) {
	db := newTestDB(t)

	err := db.Delete(context.Background(), 12345)
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperror.ErrNotFound))
}

func TestDeleteAll(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	createTestReminder(t, db, "one", "a@b.com")
	createTestReminder(t, db, "two", "a@b.com")

	n, err := db.DeleteAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	all, err := db.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestDeleteAll_EmptyStore(t *testing.T) {
	db := newTestDB(t)

	n, err := db.DeleteAll(context.Background())
	require.NoError(t, err)
	assert.Zero(t, n)
}

// =========================================================================
// SCHEMA
// =========================================================================

func TestReset_DropsDataAndRestartsIDs(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	createTestReminder(t, db, "one", "a@b.com")
	createTestReminder(t, db, "two", "a@b.com")

	require.NoError(t, db.Reset(ctx))

	all, err := db.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)

	fresh := createTestReminder(t, db, "after reset", "a@b.com")
	assert.Equal(t, int64(1), fresh.ID)
}

func TestNew_FileDatabasePersists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reminder.db")
	ctx := context.Background()

	db, err := New(path)
	require.NoError(t, err)
	created := createTestReminder(t, db, "persist me", "a@b.com")
	require.NoError(t, db.Close())

	reopened, err := New(path)
	require.NoError(t, err)
	t.Cleanup(func() { reopened.Close() })

	assert.Equal(t, path, reopened.Path())
	found, err := reopened.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "persist me", found.Text)
}

func TestPing(t *testing.T) {
	db := newTestDB(t)
	assert.NoError(t, db.Ping(context.Background()))
}
