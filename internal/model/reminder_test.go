package model

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sakif/reminder/internal/apperror"
)

func TestNewReminder_ValidEmails(t *testing.T) {
	tests := []struct {
		name  string
		email string
	}{
		{"simple", "a@b.com"},
		{"two letter tld", "user@example.de"},
		{"underscores and digits", "john_doe42@mail_1.org"},
		{"long tld", "someone@domain.museum"},
		{"trailing content after valid prefix", "a@b.com, c@d.com"},
		{"subdomain matches on first label", "a@mail.example.com"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := NewReminder("text", tt.email)
			require.NoError(t, err)
			assert.Equal(t, tt.email, r.Email)
			assert.Equal(t, "text", r.Text)
			assert.Zero(t, r.ID, "ID is assigned by storage")
		})
	}
}

func TestNewReminder_InvalidEmails(t *testing.T) {
	tests := []struct {
		name  string
		email string
	}{
		{"empty", ""},
		{"no at sign", "not-an-email"},
		{"no domain dot", "a@b"},
		{"one letter tld", "a@b.c"},
		{"empty local part", "@b.com"},
		{"dash in local part before at", "first-last@b.com"},
		{"dot in local part", "first.last@b.com"},
		{"leading space", " a@b.com"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := NewReminder("text", tt.email)
			require.Error(t, err)
			assert.Nil(t, r)
			assert.True(t, errors.Is(err, apperror.ErrInvalidInput))
			assert.True(t, errors.Is(err, apperror.ErrDatabase))
			assert.Equal(t, tt.email+" is not a valid email address.", err.Error())
		})
	}
}

func TestValidate_LongEmailShortenedInMessage(t *testing.T) {
	email := strings.Repeat("é", MaxEmailLength+50)

	_, err := NewReminder("text", email)
	require.Error(t, err)
	assert.Equal(t, strings.Repeat("é", MaxEmailLength)+"... is not a valid email address.", err.Error())

	exact := strings.Repeat("x", MaxEmailLength)
	_, err = NewReminder("text", exact)
	assert.Equal(t, exact+" is not a valid email address.", err.Error())
}

func TestNewReminder_EmptyTextAccepted(t *testing.T) {
	r, err := NewReminder("", "a@b.com")
	require.NoError(t, err)
	assert.Empty(t, r.Text)
}

func TestValidate_FieldIsEmail(t *testing.T) {
	err := (&Reminder{Email: "nope"}).Validate()

	var dbErr *apperror.DatabaseError
	require.True(t, errors.As(err, &dbErr))
	assert.Equal(t, "email", dbErr.Field)
}

func TestString(t *testing.T) {
	short := Reminder{Text: "Buy milk", Email: "a@b.com"}
	assert.Equal(t, "<Reminder for: a@b.com> (Buy milk...)", short.String())

	long := Reminder{Text: "abcdefghijklmnopqrstuvwxyz0123", Email: "a@b.com"}
	assert.Equal(t, "<Reminder for: a@b.com> (abcdefghijklmnopqrstuvwx...)", long.String())

	// Truncation counts runes, not bytes.
	multi := Reminder{Text: "ääääääääääääääääääääääääää", Email: "a@b.com"}
	assert.Equal(t, "<Reminder for: a@b.com> (ääääääääääääääääääääääää...)", multi.String())
}
