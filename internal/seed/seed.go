// Package seed generates plausible fake reminders for demos and manual
// testing.
package seed

import (
	"regexp"
	"strings"

	"github.com/brianvoe/gofakeit/v7"

	"github.com/sakif/reminder/internal/model"
)

// DefaultCount is the number of reminders a seed run creates.
const DefaultCount = 5

// Domains are assigned round-robin: the i-th reminder gets Domains[i].
var Domains = []string{"gmx.de", "yahoo.com", "web.com", "gmail.com", "twisted.org"}

// nonWord strips everything the email pattern would reject in a local part,
// e.g. the apostrophe in "O'Hara".
var nonWord = regexp.MustCompile(`\W+`)

// Generator produces fake reminders. The underlying faker is locked, so one
// Generator may serve concurrent requests.
type Generator struct {
	faker *gofakeit.Faker
}

// New returns a Generator. A seed of 0 draws a random seed; any other value
// makes the output reproducible.
func New(seed uint64) *Generator {
	return &Generator{faker: gofakeit.New(seed)}
}

// Reminders builds n validated reminders. Nothing is stored.
func (g *Generator) Reminders(n int) ([]*model.Reminder, error) {
	out := make([]*model.Reminder, 0, n)
	for i := 0; i < n; i++ {
		r, err := model.NewReminder(g.text(), g.email(i))
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, nil
}

// email turns a fake full name into "janedoe@<domain>".
func (g *Generator) email(i int) string {
	local := strings.ToLower(nonWord.ReplaceAllString(g.faker.Name(), ""))
	if local == "" {
		local = "user"
	}
	return local + "@" + Domains[i%len(Domains)]
}

func (g *Generator) text() string {
	return g.faker.Paragraph(1, 3, 12, " ")
}
