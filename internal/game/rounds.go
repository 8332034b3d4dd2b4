// internal/game/rounds.go
package game

import (
	"context"
	"time"

	"github.com/LeonLav77/photoroullete-backend/internal/messaging"
	"github.com/LeonLav77/photoroullete-backend/internal/models"
)

// startRound opens round number's answer window, or ends the game when the
// configured round count is exhausted. The round broadcast carries the image
// and duration only; the owning player is not revealed until the window
// closes.
func (m *Manager) startRound(s *Session, number int) {
	if number > m.cfg.Rounds {
		m.endGame(s)
		return
	}

	s.Mu.Lock()
	if s.stopped || s.Completed {
		s.Mu.Unlock()
		return
	}
	entry := s.Pool[number-1]
	round := &models.Round{
		Number:        number,
		Image:         entry.Image,
		Duration:      m.cfg.RoundSeconds,
		CorrectAnswer: entry.OwnerID,
		Answers:       []*models.Answer{},
	}
	s.Rounds = append(s.Rounds, round)
	s.CurrentRound = number
	s.answersOpen = true
	s.roundTimer = time.AfterFunc(time.Duration(round.Duration)*time.Second, func() {
		m.closeRound(s, number)
	})
	s.Mu.Unlock()

	m.messenger.ToGroup(s.Code, messaging.EventRoundStarted, map[string]interface{}{
		"number":   round.Number,
		"image":    round.Image,
		"duration": round.Duration,
	})
	m.logAction(s, "", "round_started", map[string]interface{}{"number": number})
	m.log.Infof("[%s] round %d started", s.Code, number)
}

// closeRound fires once, when round number's window expires: reveal the
// owner, pause for the reveal, default every missing answer, score, broadcast
// the accumulated leaderboard, pause again, then advance. The guards make a
// stale or duplicate callback a no-op. The two pauses run on this timer
// goroutine only, so other lobbies never wait on them, and round N+1 cannot
// start before round N has fully closed.
func (m *Manager) closeRound(s *Session, number int) {
	s.Mu.Lock()
	if s.stopped || s.Completed || s.CurrentRound != number || !s.answersOpen {
		s.Mu.Unlock()
		return
	}
	s.answersOpen = false
	round := s.currentRoundUnsafe()
	owner := s.playerByIDUnsafe(round.CorrectAnswer)
	s.Mu.Unlock()

	m.messenger.ToGroup(s.Code, messaging.EventCorrectAnswer, owner)
	time.Sleep(m.cfg.RevealDelay)

	s.Mu.Lock()
	for _, p := range s.Players {
		if round.AnswerFor(p.ConnectionID) == nil {
			round.Answers = append(round.Answers, &models.Answer{
				Player:        p.ConnectionID,
				PlayersAnswer: models.NoAnswerText,
			})
			m.log.Infof("[%s] %s didn't answer round %d, scored 0 points", s.Code, p.ConnectionID, number)
		}
	}
	for _, a := range round.Answers {
		a.Score = scoreAnswer(a, round)
	}
	board := leaderboard(s.Rounds)
	s.Mu.Unlock()

	m.messenger.ToGroup(s.Code, messaging.EventRoundEnded, board)
	m.logAction(s, "", "round_ended", map[string]interface{}{"number": number})
	time.Sleep(m.cfg.AdvanceDelay)

	m.startRound(s, number+1)
}

// endGame broadcasts the terminal leaderboard and hands the finished session
// to the persistence collaborator. On hand-off failure the session is
// retained in memory so a retry or manual recovery stays possible; only a
// successful save (or the absence of an archiver) evicts it.
func (m *Manager) endGame(s *Session) {
	s.Mu.Lock()
	if s.Completed {
		s.Mu.Unlock()
		return
	}
	s.Completed = true
	board := leaderboard(s.Rounds)
	rec := &models.GameRecord{
		ID:         s.ID,
		Code:       s.Code,
		Players:    s.Players,
		Rounds:     s.Rounds,
		CreatedAt:  s.CreatedAt,
		FinishedAt: time.Now(),
	}
	s.Mu.Unlock()

	m.log.Infof("[%s] game over", s.Code)
	m.messenger.ToGroup(s.Code, messaging.EventGameOver, board)
	m.logAction(s, "", "game_over", map[string]interface{}{"rounds": len(rec.Rounds)})

	if m.archive != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := m.archive.SaveFinishedGame(ctx, rec); err != nil {
			m.log.Errorf("[%s] failed to persist finished game %s: %v (session retained)", s.Code, s.ID, err)
			return
		}
		m.log.Infof("[%s] game %s persisted", s.Code, s.ID)
	}
	m.store.DeleteSession(s.Code)
}
