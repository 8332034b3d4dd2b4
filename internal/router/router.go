// internal/router/router.go
package router

import (
	"github.com/sirupsen/logrus"

	"github.com/LeonLav77/photoroullete-backend/internal/connection"
	"github.com/LeonLav77/photoroullete-backend/internal/game"
	"github.com/LeonLav77/photoroullete-backend/internal/lobby"
	"github.com/LeonLav77/photoroullete-backend/internal/messaging"
)

// Router maps inbound command envelopes to component calls. It holds no state
// of its own and does no business logic; it exists so the transport surface
// stays one function per connection while the components remain testable
// without a live socket.
type Router struct {
	connections *connection.Registry
	lobbies     *lobby.Registry
	games       *game.Manager
	messenger   messaging.Messenger
	log         *logrus.Logger
}

// New wires a router over the shared registries.
func New(connections *connection.Registry, lobbies *lobby.Registry, games *game.Manager, messenger messaging.Messenger, log *logrus.Logger) *Router {
	return &Router{
		connections: connections,
		lobbies:     lobbies,
		games:       games,
		messenger:   messenger,
		log:         log,
	}
}

// Dispatch parses one raw inbound message from a connection and routes it to
// exactly one handler. Unknown types are ignored; malformed envelopes are
// logged and dropped.
func (rt *Router) Dispatch(connectionID string, raw []byte) {
	switch cmd := ParseCommand(raw).(type) {
	case SetName:
		rt.connections.SetName(connectionID, cmd.Name)
	case PreparedImages:
		rt.connections.SetImages(connectionID, cmd.Images)
	case CreateLobby:
		rt.lobbies.CreateLobby(connectionID)
	case JoinLobby:
		rt.lobbies.JoinLobby(cmd.LobbyCode, connectionID)
	case RequestLobbyState:
		rt.lobbies.RequestLobbyState(cmd.LobbyCode, connectionID)
	case StartGame:
		rt.games.PrepareGame(cmd.LobbyCode)
	case TurnOverImages:
		rt.games.CollectImages(cmd.LobbyCode, connectionID, cmd.Images)
	case SubmitAnswer:
		rt.games.SubmitAnswer(cmd.LobbyCode, connectionID, cmd.Answer, cmd.TimeRemaining)
	case PlayerReady:
		rt.games.HandlePlayerReady(cmd.LobbyCode, connectionID)
	case Malformed:
		rt.log.Warnf("malformed %q command from %s: %v", cmd.Type, connectionID, cmd.Err)
	case Unknown:
		rt.log.Debugf("ignoring unknown command type %q from %s", cmd.Type, connectionID)
	}
}

// Disconnect cleans up after a dropped connection: every lobby it belonged to
// loses its seat (with lobby teardown when the last seat empties), surviving
// members learn who left, and the pre-lobby registry entry is cleared. An
// already-started game session keeps the player's roster entry; they accrue
// default answers for the remaining rounds.
func (rt *Router) Disconnect(connectionID string) {
	for _, code := range rt.lobbies.CodesForConnection(connectionID) {
		empty := rt.lobbies.RemovePlayer(code, connectionID)
		if empty {
			rt.lobbies.RemoveLobby(code)
			rt.log.Infof("[%s] last player left, lobby removed", code)
		} else {
			rt.messenger.ToGroup(code, messaging.EventPlayerLeft, connectionID)
		}
		rt.messenger.RemoveFromGroup(connectionID, code)
	}
	rt.connections.Clear(connectionID)
}
