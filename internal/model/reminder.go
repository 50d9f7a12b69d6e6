// Package model defines the data structures used throughout the application.
package model

import (
	"fmt"
	"regexp"

	"github.com/sakif/reminder/internal/apperror"
)

// emailPattern accepts word characters, an @, word characters, a dot and a
// top-level domain of at least two word characters. It is anchored at the
// start only: anything following a valid prefix is accepted.
var emailPattern = regexp.MustCompile(`^\w+@\w+\.\w{2,}`)

// MaxEmailLength is the declared width of the email column. Longer values
// are cut to this many characters when echoed back in an error message.
const MaxEmailLength = 120

// Reminder is a message associated with a recipient email address.
//
// Reminders are never updated in place. They are created through
// NewReminder, which guarantees the email is well formed, and removed by id
// or all at once.
type Reminder struct {
	ID    int64  `json:"id"`
	Text  string `json:"text"`
	Email string `json:"email"`
}

// NewReminder validates email and returns an unsaved Reminder. The ID is
// assigned by storage on insert.
//
// text is not validated; an empty string is a valid reminder text.
func NewReminder(text, email string) (*Reminder, error) {
	r := &Reminder{Text: text, Email: email}
	if err := r.Validate(); err != nil {
		return nil, err
	}
	return r, nil
}

// Validate reports an apperror.ErrInvalidInput error when the email does not
// look like an address.
func (r *Reminder) Validate() error {
	if !ValidEmail(r.Email) {
		return apperror.InvalidInput("email", shorten(r.Email, MaxEmailLength)+" is not a valid email address.")
	}
	return nil
}

// shorten cuts s to max runes, marking the cut with "...".
func shorten(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max]) + "..."
}

// ValidEmail reports whether s matches the accepted email shape.
func ValidEmail(s string) bool {
	return emailPattern.MatchString(s)
}

// String renders a short description for logs, e.g.
// "<Reminder for: a@b.com> (Buy milk...)".
func (r Reminder) String() string {
	short := []rune(r.Text)
	if len(short) > 24 {
		short = short[:24]
	}
	return fmt.Sprintf("<Reminder for: %s> (%s...)", r.Email, string(short))
}
