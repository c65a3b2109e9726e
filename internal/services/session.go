// internal/services/session.go
package services

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/javajoker/library-shop/internal/models"
)

// OperationKind names an in-flight slot. A session runs at most one operation per kind.
type OperationKind string

const (
	OperationSearch OperationKind = "search"
	OperationChat   OperationKind = "chat"
)

// WelcomeMessage opens every chat transcript.
const WelcomeMessage = "Hello! I'm the shop's Digital Librarian. Are you looking for a specific book, a gift, or something special for yourself?"

// Session is the state of one shopper. All fields are guarded by mu.
type Session struct {
	ID        string
	CreatedAt time.Time

	mu         sync.Mutex
	lastSeen   time.Time
	cart       *models.Cart
	transcript []models.ChatMessage
	lastSearch *models.SearchResult
	inflight   map[OperationKind]*slot
	seq        uint64
}

type slot struct {
	token  uint64
	cancel context.CancelFunc
}

func newSession(now time.Time) *Session {
	return &Session{
		ID:         uuid.New().String(),
		CreatedAt:  now,
		lastSeen:   now,
		cart:       models.NewCart(),
		transcript: []models.ChatMessage{newMessage(models.RoleModel, WelcomeMessage, nil, now)},
		inflight:   make(map[OperationKind]*slot),
	}
}

func newMessage(role models.Role, text string, relatedIDs []string, now time.Time) models.ChatMessage {
	return models.ChatMessage{
		ID:                uuid.New().String(),
		Role:              role,
		Text:              text,
		RelatedProductIDs: relatedIDs,
		CreatedAt:         now,
	}
}

func (s *Session) touch(now time.Time) {
	s.mu.Lock()
	s.lastSeen = now
	s.mu.Unlock()
}

func (s *Session) expired(now time.Time, ttl time.Duration) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return now.Sub(s.lastSeen) > ttl && len(s.inflight) == 0
}

// begin opens the slot for kind, cancelling whatever operation currently holds it.
// The returned context must be released with the returned cancel func.
func (s *Session) begin(ctx context.Context, kind OperationKind) (context.Context, uint64, context.CancelFunc) {
	opCtx, cancel := context.WithCancel(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()

	if prev, ok := s.inflight[kind]; ok {
		prev.cancel()
	}
	s.seq++
	s.inflight[kind] = &slot{token: s.seq, cancel: cancel}
	return opCtx, s.seq, cancel
}

// complete runs commit under the session lock if token still holds the slot for kind,
// then frees the slot. It reports false when the operation was superseded.
func (s *Session) complete(kind OperationKind, token uint64, commit func()) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, ok := s.inflight[kind]
	if !ok || current.token != token {
		return false
	}
	delete(s.inflight, kind)
	commit()
	return true
}

// InFlight reports whether an operation of kind is running.
func (s *Session) InFlight(kind OperationKind) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.inflight[kind]
	return ok
}

// cancelAll aborts every running operation. Used when a session is evicted.
func (s *Session) cancelAll() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for kind, op := range s.inflight {
		op.cancel()
		delete(s.inflight, kind)
	}
}
