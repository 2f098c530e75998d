// Package session keeps each chat user's rolling conversation history.
package session

import (
	"context"
	"errors"
	"time"

	"tailortalk/models"
)

const (
	DefaultTTL           = time.Hour
	DefaultHistoryLimit  = 6
	DefaultSweepInterval = time.Hour
)

// ErrSessionNotFound is returned by Get for unknown or expired ids.
var ErrSessionNotFound = errors.New("session not found")

// Store owns every session. Implementations are safe for concurrent use and
// hand out copies, never their own records.
type Store interface {
	// Get returns a copy of the session.
	Get(ctx context.Context, id string) (*models.Session, error)
	// Upsert creates the session if it is absent, appends lines and keeps the
	// newest HistoryLimit entries, all in one step.
	Upsert(ctx context.Context, id string, lines ...string) (*models.Session, error)
	// Sweep deletes sessions created more than TTL before now and reports how many went.
	Sweep(ctx context.Context, now time.Time) (int, error)
}

// Options configure a Store. Zero values fall back to the defaults.
type Options struct {
	// TTL is measured from creation. Activity does not extend it.
	TTL          time.Duration
	HistoryLimit int
	Now          func() time.Time
}

func (o Options) withDefaults() Options {
	if o.TTL <= 0 {
		o.TTL = DefaultTTL
	}
	if o.HistoryLimit <= 0 {
		o.HistoryLimit = DefaultHistoryLimit
	}
	if o.Now == nil {
		o.Now = time.Now
	}
	return o
}

// appendTruncated appends lines and drops the oldest entries beyond limit.
func appendTruncated(history []string, lines []string, limit int) []string {
	history = append(history, lines...)
	if len(history) > limit {
		history = append([]string(nil), history[len(history)-limit:]...)
	}
	return history
}

func newSession(id string, now time.Time) *models.Session {
	return &models.Session{ID: id, History: []string{}, CreatedAt: now}
}
