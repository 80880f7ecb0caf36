package wizard

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/lnpeers/tplbot/internal/domain"
)

// MessageRef points at a message the wizard owns in a chat.
type MessageRef struct {
	ChatID    int64
	MessageID int
}

// Draft holds the creation-flow fields. A Draft exists only while a
// creation flow is in progress; browsing sessions carry a nil Draft, so
// no creation field can leak across re-entries to the list.
type Draft struct {
	Type        domain.OrderType
	Currency    string
	FiatAmount  []float64
	PriceMargin int
	HasMargin   bool
	Method      string
	Sats        int64
	Err         string

	Status     *MessageRef
	StatusText string
	PromptID   int

	// updating is the single-flight guard for status edits.
	updating atomic.Bool
}

// Session is the transient per-conversation state owned by the engine.
type Session struct {
	mu sync.Mutex

	User          *domain.User
	ChatID        int64
	State         State
	ListMessageID int
	Draft         *Draft
	UpdatedAt     time.Time
}

func (s *Session) touch() {
	s.UpdatedAt = time.Now().UTC()
}

func (s *Session) beginDraft() {
	s.Draft = &Draft{}
}

func (s *Session) resetDraft() {
	s.Draft = nil
}

// Store keeps active wizard sessions keyed by Telegram user id.
type Store struct {
	mu       sync.RWMutex
	sessions map[int64]*Session
}

// NewStore creates an empty session store.
func NewStore() *Store {
	return &Store{sessions: make(map[int64]*Session)}
}

// Get returns the session for a user, if one is active.
func (s *Store) Get(userID int64) (*Session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sess, ok := s.sessions[userID]
	return sess, ok
}

// Put registers (or replaces) the session for its user.
func (s *Store) Put(sess *Session) {
	if sess == nil || sess.User == nil {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[sess.User.TelegramID] = sess
}

// Delete removes the session for a user.
func (s *Store) Delete(userID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, userID)
}

// Len returns the number of active sessions.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// StateCounts returns the number of active sessions per state.
func (s *Store) StateCounts() map[State]int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	counts := make(map[State]int, len(s.sessions))
	for _, sess := range s.sessions {
		counts[sess.State]++
	}
	return counts
}

// Sweep drops sessions without activity for at least ttl and returns
// how many were removed.
func (s *Store) Sweep(ttl time.Duration) int {
	cutoff := time.Now().UTC().Add(-ttl)

	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for id, sess := range s.sessions {
		if sess.UpdatedAt.Before(cutoff) {
			delete(s.sessions, id)
			removed++
		}
	}

	return removed
}

// RunJanitor evicts stale sessions on a schedule until ctx is cancelled.
func (s *Store) RunJanitor(ctx context.Context, interval, ttl time.Duration, log *slog.Logger) {
	if log == nil {
		log = slog.Default()
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Info("session janitor stopped")
			return
		case <-ticker.C:
			if removed := s.Sweep(ttl); removed > 0 {
				log.Info("evicted stale wizard sessions", slog.Int("count", removed))
			}
		}
	}
}
