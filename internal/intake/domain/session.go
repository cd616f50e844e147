// Package domain holds the intake wizard session: the state an agent builds
// up on the doorstep before booking an appointment.
package domain

import (
	"slices"
	"time"

	"salesdesk_backend/internal/shared/profile"

	"github.com/google/uuid"
)

// DefaultMonthlyPrice is the keypad value of a fresh session.
const DefaultMonthlyPrice = "0"

// Session is one agent's in-progress intake.
type Session struct {
	ID                uuid.UUID        `json:"id"`
	Customer          profile.Customer `json:"customer"`
	Provider          profile.Provider `json:"provider"`
	SelectedPackageID string           `json:"selectedPackageId,omitempty"`
	SelectedAddons    []string         `json:"selectedAddons"`
	PainPoints        []string         `json:"painPoints"`
	ScheduledFor      time.Time        `json:"scheduledFor"`
	MonthlyPrice      string           `json:"monthlyPrice"`
	CreatedAt         time.Time        `json:"createdAt"`
	UpdatedAt         time.Time        `json:"updatedAt"`
	// Version counts saves. Stores reject a save whose version is stale.
	Version int64 `json:"version"`
}

// NewSession starts an empty session scheduled for now.
func NewSession(now time.Time) *Session {
	now = now.UTC()
	return &Session{
		ID:             uuid.New(),
		SelectedAddons: []string{},
		PainPoints:     []string{},
		ScheduledFor:   now,
		MonthlyPrice:   DefaultMonthlyPrice,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
}

// Reset clears everything captured so far but keeps the ID, so the agent's
// client can carry on with the same session.
func (s *Session) Reset(now time.Time) {
	now = now.UTC()
	s.Customer = profile.Customer{}
	s.Provider = profile.Provider{}
	s.SelectedPackageID = ""
	s.SelectedAddons = []string{}
	s.PainPoints = []string{}
	s.ScheduledFor = now
	s.MonthlyPrice = DefaultMonthlyPrice
	s.UpdatedAt = now
}

// Touch bumps UpdatedAt.
func (s *Session) Touch(now time.Time) {
	s.UpdatedAt = now.UTC()
}

// ToggleAddon adds id when absent and removes it otherwise. It reports
// whether the add-on is now selected.
func (s *Session) ToggleAddon(id string) bool {
	var selected bool
	s.SelectedAddons, selected = toggle(s.SelectedAddons, id)
	return selected
}

// TogglePainPoint adds id when absent and removes it otherwise.
func (s *Session) TogglePainPoint(id string) bool {
	var selected bool
	s.PainPoints, selected = toggle(s.PainPoints, id)
	return selected
}

func toggle(list []string, id string) ([]string, bool) {
	if i := slices.Index(list, id); i >= 0 {
		return slices.Delete(slices.Clone(list), i, i+1), false
	}
	return append(slices.Clone(list), id), true
}
