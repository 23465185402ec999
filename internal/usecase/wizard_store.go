package usecase

import (
	"context"
	"sync"
	"time"

	"cowork-booking/internal/wizard"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// wizardSession is one visitor's wizard. Every field is guarded by mu.
type wizardSession struct {
	mu sync.Mutex

	id    uuid.UUID
	state wizard.State

	// generation increases on every mutation. A reply from an external call
	// is only applied if the generation is still the one it was issued at.
	generation uint64
	checking   bool
	submitting bool

	idempotencyKey string
	outcome        *wizard.Outcome
	expiresAt      time.Time
}

func (s *wizardSession) bump() uint64 {
	s.generation++
	return s.generation
}

func (s *wizardSession) completed() bool {
	return s.outcome != nil
}

// WizardStore keeps wizard sessions in memory and forgets them after ttl of
// inactivity.
type WizardStore struct {
	mu       sync.RWMutex
	sessions map[uuid.UUID]*wizardSession
	ttl      time.Duration
	now      func() time.Time
	log      *zap.Logger
}

func NewWizardStore(ttl time.Duration, log *zap.Logger) *WizardStore {
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &WizardStore{
		sessions: make(map[uuid.UUID]*wizardSession),
		ttl:      ttl,
		now:      time.Now,
		log:      log.With(zap.String("component", "wizard_store")),
	}
}

func (s *WizardStore) create(state wizard.State) *wizardSession {
	sess := &wizardSession{
		id:        uuid.New(),
		state:     state,
		expiresAt: s.now().Add(s.ttl),
	}

	s.mu.Lock()
	s.sessions[sess.id] = sess
	s.mu.Unlock()

	return sess
}

// get returns a live session and extends its lifetime.
func (s *WizardStore) get(id uuid.UUID) (*wizardSession, bool) {
	s.mu.RLock()
	sess, ok := s.sessions[id]
	s.mu.RUnlock()
	if !ok {
		return nil, false
	}

	now := s.now()
	sess.mu.Lock()
	defer sess.mu.Unlock()
	if now.After(sess.expiresAt) {
		return nil, false
	}
	sess.expiresAt = now.Add(s.ttl)
	return sess, true
}

func (s *WizardStore) delete(id uuid.UUID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.sessions[id]; !ok {
		return false
	}
	delete(s.sessions, id)
	return true
}

// Len reports how many sessions are held, expired ones included.
func (s *WizardStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// Sweep drops expired sessions and returns how many were removed.
func (s *WizardStore) Sweep() int {
	now := s.now()

	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for id, sess := range s.sessions {
		sess.mu.Lock()
		expired := now.After(sess.expiresAt)
		sess.mu.Unlock()

		if expired {
			delete(s.sessions, id)
			removed++
		}
	}
	return removed
}

// Run sweeps every interval until ctx is cancelled.
func (s *WizardStore) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	s.log.Info("Wizard sweeper started", zap.Duration("interval", interval))

	for {
		select {
		case <-ctx.Done():
			s.log.Info("Wizard sweeper stopped")
			return
		case <-ticker.C:
			if n := s.Sweep(); n > 0 {
				s.log.Info("Expired wizards removed",
					zap.Int("removed", n),
					zap.Int("remaining", s.Len()),
				)
			}
		}
	}
}
