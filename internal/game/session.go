// internal/game/session.go
package game

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/LeonLav77/photoroullete-backend/internal/models"
)

// Session holds the authoritative in-play state for one playthrough: the
// roster snapshot taken at game start, the ordered image pool, and the rounds
// played so far. Round order is fixed at creation time (pool entry N-1 seeds
// round N) and never reshuffled.
//
// A disconnected player's roster entry stays put; they simply accrue default
// zero-score answers for the remaining rounds.
type Session struct {
	ID        uuid.UUID
	Code      string
	Players   []*models.Player
	Pool      []models.ImageAssignment
	Rounds    []*models.Round
	CreatedAt time.Time

	// CurrentRound is the 1-based number of the most recently started round.
	// It only increases.
	CurrentRound int
	Completed    bool

	// answersOpen is true only while the current round's answer window is
	// running. Submissions outside the window are dropped, not queued.
	answersOpen bool

	// roundTimer is the handle of the pending window-close callback. stopped
	// is the explicit teardown signal; current policy never sets it once a
	// window opens (the window runs to completion even if every player
	// disconnects), but the handle and flag exist so teardown-on-empty can be
	// added without redesign.
	roundTimer *time.Timer
	stopped    bool

	Mu sync.Mutex
}

func newSession(code string, players []*models.Player, pool []models.ImageAssignment) *Session {
	id, _ := uuid.NewRandom()
	roster := make([]*models.Player, len(players))
	copy(roster, players)
	return &Session{
		ID:        id,
		Code:      code,
		Players:   roster,
		Pool:      pool,
		Rounds:    []*models.Round{},
		CreatedAt: time.Now(),
	}
}

// Stop cancels any pending round timer and marks the session torn down.
// Subsequent timer callbacks and round starts become no-ops.
func (s *Session) Stop() {
	s.Mu.Lock()
	defer s.Mu.Unlock()
	s.stopped = true
	if s.roundTimer != nil {
		s.roundTimer.Stop()
		s.roundTimer = nil
	}
}

// playerByIDUnsafe returns the roster entry for a connection id, or nil.
// Assumes the session lock is held.
func (s *Session) playerByIDUnsafe(connectionID string) *models.Player {
	for _, p := range s.Players {
		if p.ConnectionID == connectionID {
			return p
		}
	}
	return nil
}

// currentRoundUnsafe returns the most recently started round, or nil before
// round 1. Assumes the session lock is held.
func (s *Session) currentRoundUnsafe() *models.Round {
	if len(s.Rounds) == 0 {
		return nil
	}
	return s.Rounds[len(s.Rounds)-1]
}
