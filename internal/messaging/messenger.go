// internal/messaging/messenger.go
package messaging

// Messenger is the capability the core uses to reach connected clients. The
// transport gateway implements it; the core never touches raw network frames.
// Sends are fire-and-forget: a slow or gone client is the transport's problem,
// never the session engine's.
type Messenger interface {
	// ToConnection delivers a named event to a single connection.
	ToConnection(connectionID, event string, data interface{})
	// ToGroup delivers a named event to every connection in a named group.
	ToGroup(group, event string, data interface{})
	// ToAll delivers a named event to every connected client.
	ToAll(event string, data interface{})
	// AddToGroup subscribes a connection to a named group.
	AddToGroup(connectionID, group string)
	// RemoveFromGroup unsubscribes a connection from a named group.
	RemoveFromGroup(connectionID, group string)
}

// Outbound event names. The group for a lobby's events is the lobby code.
const (
	EventUserConnected       = "UserConnected"
	EventLobbyCreated        = "LobbyCreated"
	EventLobbyNotFound       = "LobbyNotFound"
	EventLobbyFull           = "LobbyFull"
	EventError               = "Error"
	EventLobbyJoined         = "LobbyJoined"
	EventLobbyState          = "LobbyState"
	EventRequestImages       = "RequestImages"
	EventImageUploadProgress = "ImageUploadProgress"
	EventGameStarted         = "GameStarted"
	EventRoundStarted        = "RoundStarted"
	EventCorrectAnswer       = "CorrectAnswer"
	EventRoundEnded          = "RoundEnded"
	EventGameOver            = "GameOver"
	EventPlayerLeft          = "PlayerLeft"
)
