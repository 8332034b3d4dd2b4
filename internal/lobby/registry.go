// internal/lobby/registry.go
package lobby

import (
	"math/rand"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/LeonLav77/photoroullete-backend/internal/connection"
	"github.com/LeonLav77/photoroullete-backend/internal/messaging"
	"github.com/LeonLav77/photoroullete-backend/internal/models"
)

const (
	codeLetters = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	codeLength  = 5
)

// Registry owns all active lobbies, keyed by join code. It is constructed
// once at process start and injected everywhere a lobby is resolved; handlers
// never build their own lookup.
type Registry struct {
	mu      sync.Mutex
	lobbies map[string]*Lobby

	connections *connection.Registry
	messenger   messaging.Messenger
	log         *logrus.Logger
}

// NewRegistry initializes an empty lobby registry. The connection registry is
// consulted at join time; the messenger delivers the named events of the join
// and state paths.
func NewRegistry(connections *connection.Registry, messenger messaging.Messenger, log *logrus.Logger) *Registry {
	return &Registry{
		lobbies:     make(map[string]*Lobby),
		connections: connections,
		messenger:   messenger,
		log:         log,
	}
}

// generateCodeUnsafe rolls a random 5-letter code, re-rolling until it does
// not collide with any active lobby. A reused code would let a stray client
// join an unrelated session, so collision handling is correctness, not
// cosmetics. Assumes the registry lock is held.
func (r *Registry) generateCodeUnsafe() string {
	for {
		b := make([]byte, codeLength)
		for i := range b {
			b[i] = codeLetters[rand.Intn(len(codeLetters))]
		}
		code := string(b)
		if _, exists := r.lobbies[code]; !exists {
			return code
		}
		r.log.Warnf("lobby code collision on %s, re-rolling", code)
	}
}

// CreateLobby allocates a lobby under a fresh unique code and replies with
// LobbyCreated to the caller only. The code is not broadcast.
func (r *Registry) CreateLobby(connectionID string) *Lobby {
	r.mu.Lock()
	code := r.generateCodeUnsafe()
	l := newLobby(code)
	r.lobbies[code] = l
	r.mu.Unlock()

	r.log.Infof("[%s] lobby created by %s", code, connectionID)
	r.messenger.ToConnection(connectionID, messaging.EventLobbyCreated, code)
	return l
}

// JoinLobby attempts to seat a connection in a lobby. Failures (unknown code,
// already seated, full lobby, missing name or images) are surfaced to the
// caller only, as named events. On success the connection joins the lobby's broadcast group
// and the whole group receives a fresh lobby-state snapshot.
func (r *Registry) JoinLobby(code, connectionID string) {
	l, ok := r.Get(code)
	if !ok {
		r.messenger.ToConnection(connectionID, messaging.EventLobbyNotFound, code)
		return
	}

	// A connection holds at most one seat across all lobbies.
	if len(r.CodesForConnection(connectionID)) > 0 {
		r.messenger.ToConnection(connectionID, messaging.EventError, "You are already in a lobby")
		return
	}

	l.Mu.Lock()
	if l.PlayerUnsafe(connectionID) != nil {
		l.Mu.Unlock()
		r.messenger.ToConnection(connectionID, messaging.EventError, "You are already in a lobby")
		return
	}
	if l.IsFullUnsafe() {
		l.Mu.Unlock()
		r.messenger.ToConnection(connectionID, messaging.EventLobbyFull, code)
		return
	}
	if !r.connections.HasName(connectionID) {
		l.Mu.Unlock()
		r.messenger.ToConnection(connectionID, messaging.EventError, "Please set your name first")
		return
	}
	if !r.connections.HasImages(connectionID) {
		l.Mu.Unlock()
		r.messenger.ToConnection(connectionID, messaging.EventError, "Please prepare images first")
		return
	}

	player := models.NewPlayer(connectionID, r.connections.GetName(connectionID), r.connections.GetImages(connectionID))
	l.AddPlayerUnsafe(player)
	state := l.StatePayloadUnsafe()
	l.Mu.Unlock()

	r.messenger.AddToGroup(connectionID, code)
	r.messenger.ToConnection(connectionID, messaging.EventLobbyJoined, code)
	r.messenger.ToGroup(code, messaging.EventLobbyState, state)
	r.log.Infof("[%s] %s (%s) joined", code, player.Name, connectionID)
}

// RequestLobbyState replies to the caller with the current snapshot, built by
// the same payload builder the join broadcast uses.
func (r *Registry) RequestLobbyState(code, connectionID string) {
	l, ok := r.Get(code)
	if !ok {
		r.messenger.ToConnection(connectionID, messaging.EventLobbyNotFound, code)
		return
	}
	l.Mu.Lock()
	state := l.StatePayloadUnsafe()
	l.Mu.Unlock()
	r.messenger.ToConnection(connectionID, messaging.EventLobbyState, state)
}

// Get resolves a lobby by code.
func (r *Registry) Get(code string) (*Lobby, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	l, ok := r.lobbies[code]
	return l, ok
}

// RemovePlayer drops a connection's seat from a lobby, reporting whether the
// lobby is now empty.
func (r *Registry) RemovePlayer(code, connectionID string) (empty bool) {
	l, ok := r.Get(code)
	if !ok {
		return false
	}
	l.Mu.Lock()
	defer l.Mu.Unlock()
	l.RemovePlayerUnsafe(connectionID)
	return len(l.Players) == 0
}

// RemoveLobby destroys a lobby record.
func (r *Registry) RemoveLobby(code string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.lobbies, code)
}

// CodesForConnection returns every lobby code whose member list contains the
// connection. Used by disconnect cleanup.
func (r *Registry) CodesForConnection(connectionID string) []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	var codes []string
	for code, l := range r.lobbies {
		l.Mu.Lock()
		if l.PlayerUnsafe(connectionID) != nil {
			codes = append(codes, code)
		}
		l.Mu.Unlock()
	}
	return codes
}

// SetReady marks a player ready, returning true only when this call made the
// transition. Repeated calls and unknown lobbies/players return false.
func (r *Registry) SetReady(code, connectionID string) bool {
	l, ok := r.Get(code)
	if !ok {
		return false
	}
	l.Mu.Lock()
	defer l.Mu.Unlock()
	return l.MarkReadyUnsafe(connectionID)
}

// AllReady reports whether every player in the lobby is ready; false for
// unknown or empty lobbies.
func (r *Registry) AllReady(code string) bool {
	l, ok := r.Get(code)
	if !ok {
		return false
	}
	l.Mu.Lock()
	defer l.Mu.Unlock()
	return l.AllReadyUnsafe()
}
