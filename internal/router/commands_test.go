package router

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCommandVariants(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want Command
	}{
		{
			name: "setName",
			raw:  `{"type":"setName","data":{"name":"Ana"}}`,
			want: SetName{Name: "Ana"},
		},
		{
			name: "preparedImages",
			raw:  `{"type":"preparedImages","data":{"images":["a","b"]}}`,
			want: PreparedImages{Images: []string{"a", "b"}},
		},
		{
			name: "createLobby needs no data",
			raw:  `{"type":"createLobby"}`,
			want: CreateLobby{},
		},
		{
			name: "joinLobby",
			raw:  `{"type":"joinLobby","data":{"lobbyCode":"ABCDE"}}`,
			want: JoinLobby{LobbyCode: "ABCDE"},
		},
		{
			name: "requestLobbyState",
			raw:  `{"type":"requestLobbyState","data":{"lobbyCode":"ABCDE"}}`,
			want: RequestLobbyState{LobbyCode: "ABCDE"},
		},
		{
			name: "startGame",
			raw:  `{"type":"startGame","data":{"lobbyCode":"ABCDE"}}`,
			want: StartGame{LobbyCode: "ABCDE"},
		},
		{
			name: "turnOverImages",
			raw:  `{"type":"turnOverImages","data":{"lobbyCode":"ABCDE","images":["x"]}}`,
			want: TurnOverImages{LobbyCode: "ABCDE", Images: []string{"x"}},
		},
		{
			name: "submitAnswer",
			raw:  `{"type":"submitAnswer","data":{"lobbyCode":"ABCDE","answer":"conn-2","timeRemaining":3200}}`,
			want: SubmitAnswer{LobbyCode: "ABCDE", Answer: "conn-2", TimeRemaining: 3200},
		},
		{
			name: "playerReady",
			raw:  `{"type":"playerReady","data":{"lobbyCode":"ABCDE"}}`,
			want: PlayerReady{LobbyCode: "ABCDE"},
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, ParseCommand([]byte(tc.raw)))
		})
	}
}

func TestParseCommandUnknownType(t *testing.T) {
	cmd := ParseCommand([]byte(`{"type":"dance","data":{}}`))
	assert.Equal(t, Unknown{Type: "dance"}, cmd)
}

func TestParseCommandInvalidEnvelope(t *testing.T) {
	cmd := ParseCommand([]byte(`not json`))
	m, ok := cmd.(Malformed)
	require.True(t, ok)
	assert.Error(t, m.Err)
}

func TestParseCommandMissingRequiredFields(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"setName without name", `{"type":"setName","data":{}}`},
		{"setName without data", `{"type":"setName"}`},
		{"joinLobby without lobbyCode", `{"type":"joinLobby","data":{}}`},
		{"startGame without lobbyCode", `{"type":"startGame","data":{"lobbyCode":""}}`},
		{"submitAnswer without data", `{"type":"submitAnswer"}`},
		{"playerReady with wrong data shape", `{"type":"playerReady","data":"ABCDE"}`},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cmd := ParseCommand([]byte(tc.raw))
			m, ok := cmd.(Malformed)
			require.True(t, ok, "expected Malformed, got %T", cmd)
			assert.Error(t, m.Err)
		})
	}
}
