// Package flash implements one-shot user feedback messages carried in a
// signed cookie.
//
// FLOW:
//  1. A mutating handler calls Add, which appends a message to the pending
//     list and writes it back as a cookie.
//  2. It redirects to the listing page.
//  3. The listing handler calls Pop, which returns the pending messages and
//     deletes the cookie, so each message is shown exactly once.
//
// COOKIE FORMAT:
// The cookie value is an HS256 JWT whose payload holds the messages. The
// signature stops clients from injecting arbitrary text into the page; the
// exp claim bounds how long an unshown message survives.
package flash

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/xid"
)

// Category is the kind of a message. Templates style errors differently.
type Category string

const (
	CategoryMessage Category = "message"
	CategoryError   Category = "error"
)

const (
	// CookieName is the name of the cookie holding pending messages.
	CookieName = "flash"

	issuer = "reminder"

	// maxCookieBytes keeps the cookie under the 4 KiB browsers guarantee.
	maxCookieBytes = 3800
)

// Message is a single pending flash message.
type Message struct {
	Category Category `json:"c"`
	Text     string   `json:"t"`
}

// IsError reports whether the message belongs to CategoryError.
func (m Message) IsError() bool {
	return m.Category == CategoryError
}

type claims struct {
	Messages []Message `json:"msgs"`
	jwt.RegisteredClaims
}

// Store reads and writes flash cookies.
type Store struct {
	secret []byte
	ttl    time.Duration
	secure bool
	logger *slog.Logger
	now    func() time.Time
}

// NewStore creates a Store signing with secret. Messages not shown within
// ttl are discarded. The secret must be at least 16 bytes.
func NewStore(secret string, ttl time.Duration, logger *slog.Logger) (*Store, error) {
	if len(secret) < 16 {
		return nil, errors.New("flash: secret must be at least 16 characters")
	}
	if ttl <= 0 {
		return nil, errors.New("flash: ttl must be positive")
	}
	return &Store{
		secret: []byte(secret),
		ttl:    ttl,
		logger: logger,
		now:    time.Now,
	}, nil
}

// SetSecure marks cookies Secure, for deployments served over HTTPS only.
func (s *Store) SetSecure(secure bool) {
	s.secure = secure
}

// Add queues a message for the next page render. Messages already pending
// on the request are kept.
func (s *Store) Add(w http.ResponseWriter, r *http.Request, category Category, text string) {
	pending := s.read(r)
	pending = append(pending, Message{Category: category, Text: text})

	token, err := s.encode(pending)
	for err == nil && len(token) > maxCookieBytes && len(pending) > 1 {
		// Drop the oldest messages first.
		pending = pending[1:]
		token, err = s.encode(pending)
	}
	if err != nil {
		s.logger.Error("flash: encoding cookie", slog.String("error", err.Error()))
		return
	}
	if len(token) > maxCookieBytes {
		s.logger.Warn("flash: message too large, dropped", slog.Int("bytes", len(token)))
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(s.ttl.Seconds()),
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// Pop returns the pending messages, oldest first, and clears the cookie. It
// returns nil when nothing is pending or the cookie is invalid.
func (s *Store) Pop(w http.ResponseWriter, r *http.Request) []Message {
	if _, err := r.Cookie(CookieName); err != nil {
		return nil
	}

	messages := s.read(r)
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: http.SameSiteLaxMode,
	})
	return messages
}

// read decodes the request's flash cookie. A missing, expired or forged
// cookie yields no messages.
func (s *Store) read(r *http.Request) []Message {
	c, err := r.Cookie(CookieName)
	if err != nil || c.Value == "" {
		return nil
	}
	messages, err := s.decode(c.Value)
	if err != nil {
		s.logger.Debug("flash: ignoring cookie", slog.String("error", err.Error()))
		return nil
	}
	return messages
}

func (s *Store) encode(messages []Message) (string, error) {
	now := s.now()
	c := claims{
		Messages: messages,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        xid.New().String(),
			Issuer:    issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, c).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("flash: signing cookie: %w", err)
	}
	return signed, nil
}

// decode verifies the signature, algorithm, issuer and expiry before
// trusting the payload.
func (s *Store) decode(value string) ([]Message, error) {
	token, err := jwt.ParseWithClaims(
		value,
		&claims{},
		func(token *jwt.Token) (any, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("flash: unexpected signing method: %v", token.Header["alg"])
			}
			return s.secret, nil
		},
		jwt.WithValidMethods([]string{"HS256"}),
		jwt.WithIssuer(issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, errors.New("flash: cookie expired")
		}
		return nil, fmt.Errorf("flash: invalid cookie: %w", err)
	}

	c, ok := token.Claims.(*claims)
	if !ok || !token.Valid {
		return nil, errors.New("flash: invalid cookie claims")
	}
	return c.Messages, nil
}
