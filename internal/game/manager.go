// internal/game/manager.go
package game

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/LeonLav77/photoroullete-backend/internal/cache"
	"github.com/LeonLav77/photoroullete-backend/internal/lobby"
	"github.com/LeonLav77/photoroullete-backend/internal/messaging"
	"github.com/LeonLav77/photoroullete-backend/internal/models"
)

// Archiver is the persistence collaborator: it receives the full snapshot of
// a finished game. A nil Archiver means finished games are simply evicted.
type Archiver interface {
	SaveFinishedGame(ctx context.Context, rec *models.GameRecord) error
}

// Manager drives the in-play half of the engine: image assignment and
// collection, the round state machine, scoring, and the game-over hand-off.
// It is constructed once at process start with every dependency injected.
type Manager struct {
	cfg       Config
	store     *Store
	lobbies   *lobby.Registry
	messenger messaging.Messenger
	archive   Archiver
	log       *logrus.Logger
}

// NewManager wires a game manager around the shared lobby registry and
// messaging capability. archive may be nil when no database is configured.
func NewManager(cfg Config, lobbies *lobby.Registry, messenger messaging.Messenger, archive Archiver, log *logrus.Logger) *Manager {
	return &Manager{
		cfg:       cfg,
		store:     NewStore(),
		lobbies:   lobbies,
		messenger: messenger,
		archive:   archive,
		log:       log,
	}
}

// CollectImages stores a batch of turned-over images for a lobby. When the
// pool reaches the configured round count the game session materializes and
// GameStarted fires; otherwise the group gets a progress update. Batches for
// unknown lobbies are logged no-ops: malformed or late messages must not
// crash the session.
func (m *Manager) CollectImages(code, connectionID string, images []string) {
	if len(images) == 0 {
		m.log.Warnf("[%s] no images received from %s", code, connectionID)
		return
	}
	if _, ok := m.lobbies.Get(code); !ok {
		m.log.Warnf("[%s] images from %s for unknown lobby, dropping", code, connectionID)
		return
	}

	count := m.store.AddImages(code, connectionID, images)
	m.log.Infof("[%s] total images stored: %d/%d", code, count, m.cfg.Rounds)

	if count >= m.cfg.Rounds {
		m.startGame(code)
		return
	}
	m.messenger.ToGroup(code, messaging.EventImageUploadProgress, map[string]interface{}{
		"received": count,
		"total":    m.cfg.Rounds,
	})
}

// startGame snapshots the lobby roster and the first R pool entries into a
// session. If a concurrent batch already materialized one, this is a no-op.
func (m *Manager) startGame(code string) {
	l, ok := m.lobbies.Get(code)
	if !ok {
		m.log.Warnf("[%s] lobby vanished before game start", code)
		return
	}
	l.Mu.Lock()
	players := make([]*models.Player, len(l.Players))
	copy(players, l.Players)
	l.Mu.Unlock()

	session := newSession(code, players, m.store.PoolEntries(code, m.cfg.Rounds))
	if !m.store.AddSessionIfAbsent(session) {
		return
	}

	m.log.Infof("[%s] all images received, game %s started", code, session.ID)
	m.messenger.ToGroup(code, messaging.EventGameStarted, code)
	m.logAction(session, "", "game_started", map[string]interface{}{"players": len(players)})
}

// HandlePlayerReady marks the sender ready. When this call completes the set
// (an actual transition, and now everyone is ready), round 1 starts.
func (m *Manager) HandlePlayerReady(code, connectionID string) {
	if !m.lobbies.SetReady(code, connectionID) {
		return
	}
	if !m.lobbies.AllReady(code) {
		return
	}
	session, ok := m.store.GetSession(code)
	if !ok {
		m.log.Warnf("[%s] all players ready but no session exists", code)
		return
	}
	m.log.Infof("[%s] all players ready", code)
	m.startRound(session, 1)
}

// SubmitAnswer records the sender's answer for the current round,
// first-write-wins. Answers outside an open window, from unknown lobbies, or
// from connections not on the roster are dropped.
func (m *Manager) SubmitAnswer(code, connectionID, answer string, timeRemaining int) {
	session, ok := m.store.GetSession(code)
	if !ok {
		m.log.Warnf("[%s] game not found for saving answer", code)
		return
	}

	session.Mu.Lock()
	defer session.Mu.Unlock()

	round := session.currentRoundUnsafe()
	if round == nil || !session.answersOpen {
		m.log.Debugf("[%s] answer from %s outside an open window, dropping", code, connectionID)
		return
	}
	if session.playerByIDUnsafe(connectionID) == nil {
		m.log.Warnf("[%s] answer from non-roster connection %s, dropping", code, connectionID)
		return
	}
	if round.AnswerFor(connectionID) != nil {
		m.log.Debugf("[%s] %s already has an answer for round %d", code, connectionID, round.Number)
		return
	}

	round.Answers = append(round.Answers, &models.Answer{
		Player:        connectionID,
		PlayersAnswer: answer,
		TimeRemaining: timeRemaining,
	})
	m.log.Infof("[%s] answer saved for %s", code, connectionID)
}

// logAction pushes a record onto the history queue, off the hot path. A
// disabled queue makes this a no-op.
func (m *Manager) logAction(s *Session, actorID, actionType string, payload map[string]interface{}) {
	if !cache.Enabled() {
		return
	}
	rec := cache.GameActionRecord{
		GameID:        s.ID,
		LobbyCode:     s.Code,
		ActorID:       actorID,
		ActionType:    actionType,
		ActionPayload: payload,
		Timestamp:     time.Now().Unix(),
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := cache.PublishGameAction(ctx, rec); err != nil {
			m.log.Warnf("[%s] failed to publish %s action: %v", rec.LobbyCode, actionType, err)
		}
	}()
}
