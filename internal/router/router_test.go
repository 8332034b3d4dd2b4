package router

import (
	"sync"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LeonLav77/photoroullete-backend/internal/connection"
	"github.com/LeonLav77/photoroullete-backend/internal/game"
	"github.com/LeonLav77/photoroullete-backend/internal/lobby"
	"github.com/LeonLav77/photoroullete-backend/internal/messaging"
)

type sentEvent struct {
	Target string
	Event  string
	Data   interface{}
}

type fakeMessenger struct {
	mu         sync.Mutex
	unicasts   []sentEvent
	groupcasts []sentEvent
	removed    []sentEvent
}

func (f *fakeMessenger) ToConnection(connectionID, event string, data interface{}) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.unicasts = append(f.unicasts, sentEvent{Target: connectionID, Event: event, Data: data})
}

func (f *fakeMessenger) ToGroup(group, event string, data interface{}) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.groupcasts = append(f.groupcasts, sentEvent{Target: group, Event: event, Data: data})
}

func (f *fakeMessenger) ToAll(event string, data interface{}) {}

func (f *fakeMessenger) AddToGroup(connectionID, group string) {}

func (f *fakeMessenger) RemoveFromGroup(connectionID, group string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.removed = append(f.removed, sentEvent{Target: group, Data: connectionID})
}

var _ messaging.Messenger = (*fakeMessenger)(nil)

func newTestRouter() (*Router, *connection.Registry, *lobby.Registry, *fakeMessenger) {
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	conns := connection.NewRegistry()
	fm := &fakeMessenger{}
	lobbies := lobby.NewRegistry(conns, fm, logger)
	games := game.NewManager(game.DefaultConfig(), lobbies, fm, nil, logger)
	return New(conns, lobbies, games, fm, logger), conns, lobbies, fm
}

func TestDispatchSetNameAndImages(t *testing.T) {
	rt, conns, _, _ := newTestRouter()

	rt.Dispatch("conn-1", []byte(`{"type":"setName","data":{"name":"Ana"}}`))
	rt.Dispatch("conn-1", []byte(`{"type":"preparedImages","data":{"images":["a","b"]}}`))

	assert.Equal(t, "Ana", conns.GetName("conn-1"))
	assert.Equal(t, []string{"a", "b"}, conns.GetImages("conn-1"))
}

func TestDispatchLobbyLifecycle(t *testing.T) {
	rt, conns, lobbies, fm := newTestRouter()
	conns.SetName("conn-1", "Ana")
	conns.SetImages("conn-1", []string{"a"})

	rt.Dispatch("conn-1", []byte(`{"type":"createLobby"}`))

	fm.mu.Lock()
	var code string
	for _, e := range fm.unicasts {
		if e.Event == messaging.EventLobbyCreated {
			code = e.Data.(string)
		}
	}
	fm.mu.Unlock()
	require.NotEmpty(t, code)

	rt.Dispatch("conn-1", []byte(`{"type":"joinLobby","data":{"lobbyCode":"`+code+`"}}`))

	l, ok := lobbies.Get(code)
	require.True(t, ok)
	l.Mu.Lock()
	defer l.Mu.Unlock()
	require.Len(t, l.Players, 1)
	assert.Equal(t, "conn-1", l.Players[0].ConnectionID)
}

func TestDispatchIgnoresMalformedAndUnknown(t *testing.T) {
	rt, conns, _, _ := newTestRouter()

	rt.Dispatch("conn-1", []byte(`garbage`))
	rt.Dispatch("conn-1", []byte(`{"type":"dance"}`))
	rt.Dispatch("conn-1", []byte(`{"type":"setName","data":{}}`))

	assert.False(t, conns.HasName("conn-1"))
}

func TestDisconnectNotifiesSurvivorsAndClearsState(t *testing.T) {
	rt, conns, lobbies, fm := newTestRouter()
	for _, id := range []string{"conn-1", "conn-2"} {
		conns.SetName(id, id)
		conns.SetImages(id, []string{id + "-img"})
	}
	l := lobbies.CreateLobby("conn-1")
	lobbies.JoinLobby(l.Code, "conn-1")
	lobbies.JoinLobby(l.Code, "conn-2")

	rt.Disconnect("conn-1")

	fm.mu.Lock()
	var left []sentEvent
	for _, e := range fm.groupcasts {
		if e.Event == messaging.EventPlayerLeft {
			left = append(left, e)
		}
	}
	fm.mu.Unlock()
	require.Len(t, left, 1)
	assert.Equal(t, l.Code, left[0].Target)
	assert.Equal(t, "conn-1", left[0].Data)

	assert.False(t, conns.HasName("conn-1"))
	assert.Empty(t, lobbies.CodesForConnection("conn-1"))

	_, ok := lobbies.Get(l.Code)
	assert.True(t, ok, "lobby survives while other players remain")
}

func TestDisconnectLastPlayerRemovesLobby(t *testing.T) {
	rt, conns, lobbies, fm := newTestRouter()
	conns.SetName("conn-1", "Ana")
	conns.SetImages("conn-1", []string{"a"})
	l := lobbies.CreateLobby("conn-1")
	lobbies.JoinLobby(l.Code, "conn-1")

	rt.Disconnect("conn-1")

	_, ok := lobbies.Get(l.Code)
	assert.False(t, ok)

	fm.mu.Lock()
	defer fm.mu.Unlock()
	for _, e := range fm.groupcasts {
		assert.NotEqual(t, messaging.EventPlayerLeft, e.Event, "no one left to notify")
	}
	require.Len(t, fm.removed, 1)
	assert.Equal(t, l.Code, fm.removed[0].Target)
}

func TestDisconnectWithoutLobbyIsHarmless(t *testing.T) {
	rt, conns, _, _ := newTestRouter()
	conns.SetName("conn-1", "Ana")

	rt.Disconnect("conn-1")

	assert.False(t, conns.HasName("conn-1"))
}
