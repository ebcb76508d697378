// Package editing tracks per-field save state while an operator edits
// site text overrides in the dashboard. Each field moves through a small
// state machine so the UI can show exactly which edits are unsaved, in
// flight, committed, or rejected.
package editing

import (
	"context"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/atelier3d/site-backend/internal/models"
	"github.com/atelier3d/site-backend/internal/sitetext"
)

// FieldState names a position in the per-field state machine.
type FieldState string

// Field states. Clean fields hold no staged edit; Saved persists until
// the field is edited again.
const (
	StateClean  FieldState = "clean"
	StateDirty  FieldState = "dirty"
	StateSaving FieldState = "saving"
	StateSaved  FieldState = "saved"
	StateFailed FieldState = "failed"
)

// fieldEntry tracks one override key inside a session.
type fieldEntry struct {
	state       FieldState
	value       string
	description string
	seq         uint64 // bumped on every Stage
	lastError   string
}

// FieldView is the externally visible state of one field.
type FieldView struct {
	Key   string     `json:"key"`
	State FieldState `json:"state"`
	Value string     `json:"value"`
	Error string     `json:"error,omitempty"`
}

// Session stages edits for one operator before they are committed one
// field at a time.
type Session struct {
	mu      sync.Mutex
	db      *gorm.DB
	owner   string // username recorded as updated_by on commit
	fields  map[string]*fieldEntry
	touched time.Time
}

// NewSession creates an empty editing session for an operator.
func NewSession(conn *gorm.DB, owner string) *Session {
	return &Session{
		db:      conn,
		owner:   owner,
		fields:  make(map[string]*fieldEntry),
		touched: time.Now(),
	}
}

// Stage records a local edit for a key and marks the field dirty. Staging
// is allowed while a save for the same key is in flight; the in-flight
// save will then complete without claiming the newer edit as saved.
func (s *Session) Stage(key, value, description string) FieldState {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touched = time.Now()

	entry, ok := s.fields[key]
	if !ok {
		entry = &fieldEntry{}
		s.fields[key] = entry
	}
	entry.value = value
	entry.description = description
	entry.seq++
	entry.lastError = ""
	if entry.state != StateSaving {
		entry.state = StateDirty
	}
	return StateDirty
}

// State returns the current state of a key. Unknown keys are Clean.
func (s *Session) State(key string) FieldState {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, ok := s.fields[key]
	if !ok {
		return StateClean
	}
	return entry.state
}

// Snapshot returns the visible state of every tracked field.
func (s *Session) Snapshot() []FieldView {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]FieldView, 0, len(s.fields))
	for key, entry := range s.fields {
		out = append(out, FieldView{
			Key:   key,
			State: entry.state,
			Value: entry.value,
			Error: entry.lastError,
		})
	}
	return out
}

// Save commits the staged value for a key with an idempotent upsert.
// Success transitions Saving to Saved unless a newer edit was staged
// while the write was in flight, in which case the field stays Dirty.
// A rejected write transitions to Failed and keeps the staged value so
// the operator can retry.
func (s *Session) Save(ctx context.Context, key string) (FieldState, error) {
	s.mu.Lock()
	entry, ok := s.fields[key]
	if !ok || entry.state == StateClean {
		s.mu.Unlock()
		return StateClean, ErrNothingStaged
	}
	entry.state = StateSaving
	staged := models.SiteText{
		Key:         key,
		Value:       entry.value,
		Description: entry.description,
		UpdatedBy:   s.owner,
	}
	seq := entry.seq
	s.mu.Unlock()

	errSave := sitetext.Upsert(ctx, s.db, staged)
	if errSave == nil {
		// Committed rows feed the public snapshot, same as the direct
		// admin write paths.
		if errRefresh := sitetext.RefreshSnapshot(ctx, s.db); errRefresh != nil {
			log.WithError(errRefresh).Warn("editing: refresh site text snapshot failed")
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.touched = time.Now()

	if errSave != nil {
		entry.state = StateFailed
		entry.lastError = errSave.Error()
		return StateFailed, errSave
	}
	if entry.seq != seq {
		// A newer edit arrived while saving; it is still unsaved.
		entry.state = StateDirty
		return StateDirty, nil
	}
	entry.state = StateSaved
	entry.lastError = ""
	return StateSaved, nil
}

// idle reports how long ago the session was last used.
func (s *Session) idle(now time.Time) time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return now.Sub(s.touched)
}
