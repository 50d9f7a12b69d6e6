// Package service contains the business logic layer of the application.
//
// THE THREE LAYERS:
//
//	Handler (HTTP)        → parses forms, sets flash messages, redirects
//	Service (business)    → validates input, calls the repository, logs events
//	Repository (storage)  → SQL
//
// ReminderService takes a repository.ReminderRepository interface, so tests
// pass an in-memory mock and main passes *sqlite.DB.
package service

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/sakif/reminder/internal/apperror"
	"github.com/sakif/reminder/internal/model"
	"github.com/sakif/reminder/internal/repository"
	"github.com/sakif/reminder/internal/seed"
)

// AddInput is the form of the add endpoint. Both fields are required; an
// empty one turns the request into a no-op.
type AddInput struct {
	Email string
	Text  string
}

// Complete reports whether both fields were supplied.
func (in AddInput) Complete() bool {
	return in.Email != "" && in.Text != ""
}

// DeleteInput is the form of the delete endpoint. ReminderID is the raw form
// value; it is parsed by ID.
type DeleteInput struct {
	ReminderID string
}

// ID parses ReminderID. An empty, non-numeric or non-positive value cannot
// name a stored reminder and is reported as ErrNotFound.
func (in DeleteInput) ID() (int64, error) {
	raw := strings.TrimSpace(in.ReminderID)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, apperror.NotFound("reminder", in.ReminderID)
	}
	return id, nil
}

// ReminderGenerator produces unsaved reminders for Seed.
type ReminderGenerator interface {
	Reminders(n int) ([]*model.Reminder, error)
}

// ReminderService implements the reminder operations independently of HTTP.
type ReminderService struct {
	repo      repository.ReminderRepository
	generator ReminderGenerator
	logger    *slog.Logger
}

// NewReminderService wires a service. A nil generator falls back to a
// randomly seeded seed.Generator.
func NewReminderService(repo repository.ReminderRepository, generator ReminderGenerator, logger *slog.Logger) *ReminderService {
	if generator == nil {
		generator = seed.New(0)
	}
	return &ReminderService{
		repo:      repo,
		generator: generator,
		logger:    logger,
	}
}

// List returns every stored reminder in id order.
func (s *ReminderService) List(ctx context.Context) ([]model.Reminder, error) {
	reminders, err := s.repo.List(ctx)
	if err != nil {
		s.logger.Error("failed to list reminders", slog.String("error", err.Error()))
		return nil, fmt.Errorf("listing reminders: %w", err)
	}
	return reminders, nil
}

// Create validates and stores a reminder.
//
// RESULTS:
//   - (reminder, nil) → stored, reminder.ID is set
//   - (nil, err)      → err matches apperror.ErrInvalidInput for a bad email,
//     anything else is a storage failure
//   - (nil, nil)      → a field was missing; nothing happened
func (s *ReminderService) Create(ctx context.Context, in AddInput) (*model.Reminder, error) {
	if !in.Complete() {
		s.logger.Debug("add ignored: missing field",
			slog.Bool("hasEmail", in.Email != ""),
			slog.Bool("hasText", in.Text != ""),
		)
		return nil, nil
	}

	reminder, err := model.NewReminder(in.Text, in.Email)
	if err != nil {
		s.logger.Info("reminder rejected",
			slog.String("email", in.Email),
			slog.String("reason", err.Error()),
		)
		return nil, err
	}

	if err := s.repo.Create(ctx, reminder); err != nil {
		s.logger.Error("failed to create reminder",
			slog.String("email", in.Email),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("creating reminder: %w", err)
	}

	s.logger.Info("reminder created",
		slog.Int64("id", reminder.ID),
		slog.String("reminder", reminder.String()),
	)
	return reminder, nil
}

// Seed generates seed.DefaultCount fake reminders and stores them in one
// transaction.
func (s *ReminderService) Seed(ctx context.Context) ([]model.Reminder, error) {
	batch, err := s.generator.Reminders(seed.DefaultCount)
	if err != nil {
		return nil, fmt.Errorf("generating reminders: %w", err)
	}

	if err := s.repo.CreateBatch(ctx, batch); err != nil {
		s.logger.Error("failed to seed reminders", slog.String("error", err.Error()))
		return nil, fmt.Errorf("seeding reminders: %w", err)
	}

	out := make([]model.Reminder, len(batch))
	for i, r := range batch {
		out[i] = *r
	}

	s.logger.Info("reminders seeded", slog.Int("count", len(out)))
	return out, nil
}

// Delete looks up the reminder named by in and removes it. Any input that
// does not match a stored reminder, including a missing or malformed id,
// returns an apperror.ErrNotFound error.
func (s *ReminderService) Delete(ctx context.Context, in DeleteInput) (int64, error) {
	id, err := in.ID()
	if err != nil {
		return 0, err
	}

	reminder, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return 0, err
	}

	// A concurrent delete between the lookup and here still ends in ErrNotFound.
	if err := s.repo.Delete(ctx, id); err != nil {
		return 0, err
	}

	s.logger.Info("reminder deleted",
		slog.Int64("id", id),
		slog.String("reminder", reminder.String()),
	)
	return id, nil
}

// DeleteAll removes every reminder and reports how many were removed.
func (s *ReminderService) DeleteAll(ctx context.Context) (int64, error) {
	n, err := s.repo.DeleteAll(ctx)
	if err != nil {
		s.logger.Error("failed to delete reminders", slog.String("error", err.Error()))
		return 0, fmt.Errorf("deleting all reminders: %w", err)
	}

	s.logger.Info("all reminders deleted", slog.Int64("count", n))
	return n, nil
}
