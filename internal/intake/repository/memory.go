package repository

import (
	"context"
	"sync"
	"time"

	"salesdesk_backend/internal/intake/domain"
	"salesdesk_backend/platform/apperr"

	"github.com/google/uuid"
)

type memoryEntry struct {
	session   domain.Session
	expiresAt time.Time
}

// MemoryStore is a process-local Store with the same expiry rules as Redis.
type MemoryStore struct {
	mu      sync.Mutex
	entries map[uuid.UUID]memoryEntry
	ttl     time.Duration
	now     func() time.Time
}

// NewMemoryStore creates an empty store. A non-positive ttl uses DefaultTTL.
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &MemoryStore{entries: make(map[uuid.UUID]memoryEntry), ttl: ttl, now: time.Now}
}

// WithClock overrides the time source used for expiry.
func (s *MemoryStore) WithClock(now func() time.Time) *MemoryStore {
	s.now = now
	return s
}

func (s *MemoryStore) Get(_ context.Context, id uuid.UUID) (*domain.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, ok := s.entries[id]
	if !ok {
		return nil, apperr.NotFound(sessionNotFoundMsg)
	}
	if !s.now().Before(entry.expiresAt) {
		delete(s.entries, id)
		return nil, apperr.NotFound(sessionNotFoundMsg)
	}
	session := cloneSession(entry.session)
	return &session, nil
}

func (s *MemoryStore) Save(_ context.Context, session *domain.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	s.sweep(now)

	var stored int64
	if entry, ok := s.entries[session.ID]; ok {
		stored = entry.session.Version
	}
	if stored != session.Version {
		return apperr.Conflict(sessionConflictMsg)
	}

	session.Version++
	s.entries[session.ID] = memoryEntry{
		session:   cloneSession(*session),
		expiresAt: now.Add(s.ttl),
	}
	return nil
}

// sweep drops expired entries. Callers hold mu.
func (s *MemoryStore) sweep(now time.Time) {
	for id, entry := range s.entries {
		if !now.Before(entry.expiresAt) {
			delete(s.entries, id)
		}
	}
}

// Len reports how many sessions are held, expired ones included.
func (s *MemoryStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

func (s *MemoryStore) Delete(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.entries[id]; !ok {
		return apperr.NotFound(sessionNotFoundMsg)
	}
	delete(s.entries, id)
	return nil
}

func cloneSession(in domain.Session) domain.Session {
	out := in
	out.SelectedAddons = append([]string{}, in.SelectedAddons...)
	out.PainPoints = append([]string{}, in.PainPoints...)
	out.Provider.Products.TVPackages = append([]string(nil), in.Provider.Products.TVPackages...)
	if in.Provider.ContractEnd != nil {
		end := *in.Provider.ContractEnd
		out.Provider.ContractEnd = &end
	}
	return out
}

var _ Store = (*MemoryStore)(nil)
