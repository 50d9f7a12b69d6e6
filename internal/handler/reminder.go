// Package handler contains the HTTP handlers of the reminder application.
//
// HANDLER RESPONSIBILITIES:
//  1. Parse form fields into a typed input struct
//  2. Call the service
//  3. Turn the outcome into a flash message and redirect to the listing
//
// Handlers never talk to the database directly and never let a domain error
// escape as a 500: every expected failure becomes a flash message.
package handler

import (
	"errors"
	"fmt"
	"html/template"
	"io/fs"
	"log/slog"
	"net/http"

	"github.com/sakif/reminder/internal/apperror"
	"github.com/sakif/reminder/internal/flash"
	"github.com/sakif/reminder/internal/model"
	"github.com/sakif/reminder/internal/service"
)

const pageTitle = "Reminders"

// ReminderHandler serves the listing page and the four mutating endpoints.
type ReminderHandler struct {
	reminders *service.ReminderService
	flashes   *flash.Store
	templates *template.Template
	logger    *slog.Logger
}

// NewReminderHandler parses the page templates once; they are reused on
// every request.
func NewReminderHandler(
	reminders *service.ReminderService,
	flashes *flash.Store,
	templates fs.FS,
	logger *slog.Logger,
) (*ReminderHandler, error) {
	tmpl, err := pageTemplates(templates)
	if err != nil {
		return nil, fmt.Errorf("parsing templates: %w", err)
	}
	return &ReminderHandler{
		reminders: reminders,
		flashes:   flashes,
		templates: tmpl,
		logger:    logger,
	}, nil
}

// listPage is the data passed to the templates.
type listPage struct {
	Title     string
	Reminders []model.Reminder
	Flashes   []flash.Message
}

// HandleList renders every reminder plus any pending flash messages.
//
// HTTP: GET /
func (h *ReminderHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	reminders, err := h.reminders.List(r.Context())
	if err != nil {
		// Flashes stay pending so they are shown once storage recovers.
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	render(w, h.logger, h.templates, listPage{
		Title:     pageTitle,
		Reminders: reminders,
		Flashes:   h.flashes.Pop(w, r),
	})
}

// addForm reads the add endpoint's fields from the request body. Missing
// fields are empty strings; the query string is ignored, so a plain link
// cannot create a reminder.
func addForm(r *http.Request) service.AddInput {
	return service.AddInput{
		Email: r.PostFormValue("email"),
		Text:  r.PostFormValue("text"),
	}
}

// deleteForm reads the delete endpoint's fields from the request body.
func deleteForm(r *http.Request) service.DeleteInput {
	return service.DeleteInput{ReminderID: r.PostFormValue("reminder_id")}
}

// HandleAdd creates a reminder from the email and text fields.
//
// HTTP: GET|POST /add/   form: email, text
//
// A request missing either field is ignored without a message.
func (h *ReminderHandler) HandleAdd(w http.ResponseWriter, r *http.Request) {
	reminder, err := h.reminders.Create(r.Context(), addForm(r))
	switch {
	case err != nil && errors.Is(err, apperror.ErrInvalidInput):
		h.flashes.Add(w, r, flash.CategoryError, err.Error())
	case err != nil:
		h.flashes.Add(w, r, flash.CategoryError, "Could not add reminder")
	case reminder != nil:
		h.flashes.Add(w, r, flash.CategoryMessage, fmt.Sprintf("Added reminder with id: %d", reminder.ID))
	}
	redirectHome(w, r)
}

// HandleAddSome stores a batch of generated reminders.
//
// HTTP: GET|POST /add/some/
func (h *ReminderHandler) HandleAddSome(w http.ResponseWriter, r *http.Request) {
	if _, err := h.reminders.Seed(r.Context()); err != nil {
		h.flashes.Add(w, r, flash.CategoryError, "Could not add reminders")
	} else {
		h.flashes.Add(w, r, flash.CategoryMessage, "Added some reminders")
	}
	redirectHome(w, r)
}

// HandleDelete removes the reminder named by reminder_id.
//
// HTTP: GET|POST /delete/   form: reminder_id
//
// A missing, malformed or unknown id is reported as not found.
func (h *ReminderHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	in := deleteForm(r)
	id, err := h.reminders.Delete(r.Context(), in)
	switch {
	case err != nil && errors.Is(err, apperror.ErrNotFound):
		h.flashes.Add(w, r, flash.CategoryError, "Could not find reminder with id: "+in.ReminderID)
	case err != nil:
		h.logger.Error("failed to delete reminder",
			slog.String("reminderID", in.ReminderID),
			slog.String("error", err.Error()),
		)
		h.flashes.Add(w, r, flash.CategoryError, "Could not delete reminder with id: "+in.ReminderID)
	default:
		h.flashes.Add(w, r, flash.CategoryMessage, fmt.Sprintf("Deleted reminder with id: %d", id))
	}
	redirectHome(w, r)
}

// HandleDeleteAll removes every reminder.
//
// HTTP: GET|POST /delete/all/
func (h *ReminderHandler) HandleDeleteAll(w http.ResponseWriter, r *http.Request) {
	if _, err := h.reminders.DeleteAll(r.Context()); err != nil {
		h.flashes.Add(w, r, flash.CategoryError, "Could not delete reminders")
	} else {
		h.flashes.Add(w, r, flash.CategoryMessage, "Deleted all reminders")
	}
	redirectHome(w, r)
}
