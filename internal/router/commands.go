// internal/router/commands.go
package router

import (
	"encoding/json"
	"fmt"
)

// Command is the tagged union of everything a client can ask for. Each
// variant carries exactly the fields its handler needs; parsing failures
// surface as a Malformed variant instead of nil-propagating lookups.
type Command interface{ isCommand() }

// SetName registers the sender's display name.
type SetName struct {
	Name string `json:"name"`
}

// PreparedImages registers the sender's candidate image set.
type PreparedImages struct {
	Images []string `json:"images"`
}

// CreateLobby allocates a lobby for the sender.
type CreateLobby struct{}

// JoinLobby seats the sender in an existing lobby.
type JoinLobby struct {
	LobbyCode string `json:"lobbyCode"`
}

// RequestLobbyState asks for the current snapshot of a lobby.
type RequestLobbyState struct {
	LobbyCode string `json:"lobbyCode"`
}

// StartGame begins the image-request phase for a lobby.
type StartGame struct {
	LobbyCode string `json:"lobbyCode"`
}

// TurnOverImages submits the sender's revealed images.
type TurnOverImages struct {
	LobbyCode string   `json:"lobbyCode"`
	Images    []string `json:"images"`
}

// SubmitAnswer records the sender's answer for the current round.
type SubmitAnswer struct {
	LobbyCode     string `json:"lobbyCode"`
	Answer        string `json:"answer"`
	TimeRemaining int    `json:"timeRemaining"`
}

// PlayerReady marks the sender ready; the last transition starts round 1.
type PlayerReady struct {
	LobbyCode string `json:"lobbyCode"`
}

// Unknown is an envelope whose type the engine does not recognize. Ignored
// without an error response.
type Unknown struct {
	Type string
}

// Malformed is an envelope that could not be parsed into its variant.
type Malformed struct {
	Type string
	Err  error
}

func (SetName) isCommand()           {}
func (PreparedImages) isCommand()    {}
func (CreateLobby) isCommand()       {}
func (JoinLobby) isCommand()         {}
func (RequestLobbyState) isCommand() {}
func (StartGame) isCommand()         {}
func (TurnOverImages) isCommand()    {}
func (SubmitAnswer) isCommand()      {}
func (PlayerReady) isCommand()       {}
func (Unknown) isCommand()           {}
func (Malformed) isCommand()         {}

type envelope struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

// unmarshalData decodes an envelope's data field into the given variant.
func unmarshalData(env envelope, dst interface{}) error {
	if len(env.Data) == 0 {
		return fmt.Errorf("missing data")
	}
	if err := json.Unmarshal(env.Data, dst); err != nil {
		return fmt.Errorf("invalid data: %w", err)
	}
	return nil
}

func missingField(name string) error {
	return fmt.Errorf("missing required field %q", name)
}

// ParseCommand decodes one inbound `{type, data}` envelope into its command
// variant.
func ParseCommand(raw []byte) Command {
	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return Malformed{Err: fmt.Errorf("invalid envelope: %w", err)}
	}

	switch env.Type {
	case "setName":
		var cmd SetName
		if err := unmarshalData(env, &cmd); err != nil {
			return Malformed{Type: env.Type, Err: err}
		}
		if cmd.Name == "" {
			return Malformed{Type: env.Type, Err: missingField("name")}
		}
		return cmd

	case "preparedImages":
		var cmd PreparedImages
		if err := unmarshalData(env, &cmd); err != nil {
			return Malformed{Type: env.Type, Err: err}
		}
		return cmd

	case "createLobby":
		return CreateLobby{}

	case "joinLobby":
		var cmd JoinLobby
		if err := unmarshalData(env, &cmd); err != nil {
			return Malformed{Type: env.Type, Err: err}
		}
		if cmd.LobbyCode == "" {
			return Malformed{Type: env.Type, Err: missingField("lobbyCode")}
		}
		return cmd

	case "requestLobbyState":
		var cmd RequestLobbyState
		if err := unmarshalData(env, &cmd); err != nil {
			return Malformed{Type: env.Type, Err: err}
		}
		if cmd.LobbyCode == "" {
			return Malformed{Type: env.Type, Err: missingField("lobbyCode")}
		}
		return cmd

	case "startGame":
		var cmd StartGame
		if err := unmarshalData(env, &cmd); err != nil {
			return Malformed{Type: env.Type, Err: err}
		}
		if cmd.LobbyCode == "" {
			return Malformed{Type: env.Type, Err: missingField("lobbyCode")}
		}
		return cmd

	case "turnOverImages":
		var cmd TurnOverImages
		if err := unmarshalData(env, &cmd); err != nil {
			return Malformed{Type: env.Type, Err: err}
		}
		if cmd.LobbyCode == "" {
			return Malformed{Type: env.Type, Err: missingField("lobbyCode")}
		}
		return cmd

	case "submitAnswer":
		var cmd SubmitAnswer
		if err := unmarshalData(env, &cmd); err != nil {
			return Malformed{Type: env.Type, Err: err}
		}
		if cmd.LobbyCode == "" {
			return Malformed{Type: env.Type, Err: missingField("lobbyCode")}
		}
		return cmd

	case "playerReady":
		var cmd PlayerReady
		if err := unmarshalData(env, &cmd); err != nil {
			return Malformed{Type: env.Type, Err: err}
		}
		if cmd.LobbyCode == "" {
			return Malformed{Type: env.Type, Err: missingField("lobbyCode")}
		}
		return cmd

	default:
		return Unknown{Type: env.Type}
	}
}
