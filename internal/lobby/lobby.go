// internal/lobby/lobby.go
package lobby

import (
	"sync"
	"time"

	"github.com/LeonLav77/photoroullete-backend/internal/models"
)

// Capacity is the maximum number of players in one lobby.
const Capacity = 4

// Lobby is an ephemeral pre-game grouping of players sharing a join code.
// Methods with the Unsafe suffix assume the caller holds Mu.
type Lobby struct {
	Code      string
	Players   []*models.Player
	Active    bool
	CreatedAt time.Time

	Mu sync.Mutex
}

func newLobby(code string) *Lobby {
	return &Lobby{
		Code:      code,
		Players:   []*models.Player{},
		Active:    true,
		CreatedAt: time.Now(),
	}
}

// IsFullUnsafe reports whether the lobby is at capacity.
func (l *Lobby) IsFullUnsafe() bool {
	return len(l.Players) >= Capacity
}

// PlayerUnsafe returns the seat for a connection id, or nil.
func (l *Lobby) PlayerUnsafe(connectionID string) *models.Player {
	for _, p := range l.Players {
		if p.ConnectionID == connectionID {
			return p
		}
	}
	return nil
}

// AddPlayerUnsafe appends a seat to the member list.
func (l *Lobby) AddPlayerUnsafe(p *models.Player) {
	l.Players = append(l.Players, p)
}

// RemovePlayerUnsafe drops the seat for a connection id, reporting whether it
// was present.
func (l *Lobby) RemovePlayerUnsafe(connectionID string) bool {
	for i, p := range l.Players {
		if p.ConnectionID == connectionID {
			l.Players = append(l.Players[:i], l.Players[i+1:]...)
			return true
		}
	}
	return false
}

// MarkReadyUnsafe flips a player's ready flag. It returns true only when this
// call transitioned the player from not-ready to ready, so the caller can
// gate the all-ready check on an actual transition.
func (l *Lobby) MarkReadyUnsafe(connectionID string) bool {
	p := l.PlayerUnsafe(connectionID)
	if p == nil || p.IsReady {
		return false
	}
	p.IsReady = true
	return true
}

// AllReadyUnsafe reports whether every player is ready. An empty lobby is
// never "all ready".
func (l *Lobby) AllReadyUnsafe() bool {
	if len(l.Players) == 0 {
		return false
	}
	for _, p := range l.Players {
		if !p.IsReady {
			return false
		}
	}
	return true
}

// StatePayloadUnsafe builds the full lobby-state snapshot. Both the join
// broadcast and requestLobbyState replies go through this one builder so the
// two paths serialize identically.
func (l *Lobby) StatePayloadUnsafe() map[string]interface{} {
	ids := make([]string, 0, len(l.Players))
	names := make([]map[string]string, 0, len(l.Players))
	images := make(map[string][]string, len(l.Players))
	for _, p := range l.Players {
		ids = append(ids, p.ConnectionID)
		names = append(names, map[string]string{"id": p.ConnectionID, "name": p.Name})
		images[p.ConnectionID] = p.Images
	}
	return map[string]interface{}{
		"code":         l.Code,
		"players":      ids,
		"playerNames":  names,
		"playerImages": images,
	}
}
