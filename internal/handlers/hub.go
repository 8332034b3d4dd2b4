// internal/handlers/hub.go
package handlers

import (
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/LeonLav77/photoroullete-backend/internal/messaging"
)

// outMessage is the outbound wire envelope: a named event plus its payload.
type outMessage struct {
	Type string      `json:"type"`
	Data interface{} `json:"data"`
}

// client is one connected socket's presence in the hub.
type client struct {
	id      string
	outChan chan outMessage

	mu     sync.Mutex
	closed bool
}

// write pushes a message onto the client's out channel non-blockingly. A full
// or already-closed channel drops the message; the write pump owns actual
// delivery. The closed flag is checked under the client lock so a send can
// never race closeOut onto a closed channel.
func (c *client) write(msg outMessage, log *logrus.Logger) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		log.Warnf("out channel for connection %s closed, dropped %q", c.id, msg.Type)
		return
	}
	select {
	case c.outChan <- msg:
	default:
		log.Warnf("out channel for connection %s full, dropped %q", c.id, msg.Type)
	}
}

// closeOut closes the out channel exactly once so the write pump stops.
func (c *client) closeOut() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.closed = true
	close(c.outChan)
}

// Hub tracks every live connection and the named groups they belong to. It is
// the transport-side implementation of the messaging capability the core
// consumes; the lobby code doubles as the group name.
type Hub struct {
	mu      sync.Mutex
	clients map[string]*client
	groups  map[string]map[string]struct{}
	log     *logrus.Logger
}

var _ messaging.Messenger = (*Hub)(nil)

// NewHub initializes an empty connection hub.
func NewHub(log *logrus.Logger) *Hub {
	return &Hub{
		clients: make(map[string]*client),
		groups:  make(map[string]map[string]struct{}),
		log:     log,
	}
}

// Register adds a connection and returns its client handle for the pumps.
func (h *Hub) Register(connectionID string) *client {
	c := &client{id: connectionID, outChan: make(chan outMessage, 16)}
	h.mu.Lock()
	h.clients[connectionID] = c
	h.mu.Unlock()
	return c
}

// Unregister drops a connection from the hub and every group, and closes its
// out channel so the write pump stops.
func (h *Hub) Unregister(connectionID string) {
	h.mu.Lock()
	c, ok := h.clients[connectionID]
	delete(h.clients, connectionID)
	for name, members := range h.groups {
		delete(members, connectionID)
		if len(members) == 0 {
			delete(h.groups, name)
		}
	}
	h.mu.Unlock()
	if ok {
		c.closeOut()
	}
}

// ToConnection sends a named event to a single connection. Unknown
// connections are ignored.
func (h *Hub) ToConnection(connectionID, event string, data interface{}) {
	h.mu.Lock()
	c, ok := h.clients[connectionID]
	h.mu.Unlock()
	if !ok {
		return
	}
	c.write(outMessage{Type: event, Data: data}, h.log)
}

// ToGroup sends a named event to every member of a group.
func (h *Hub) ToGroup(group, event string, data interface{}) {
	h.mu.Lock()
	members := make([]*client, 0, len(h.groups[group]))
	for id := range h.groups[group] {
		if c, ok := h.clients[id]; ok {
			members = append(members, c)
		}
	}
	h.mu.Unlock()
	for _, c := range members {
		c.write(outMessage{Type: event, Data: data}, h.log)
	}
}

// ToAll sends a named event to every connected client.
func (h *Hub) ToAll(event string, data interface{}) {
	h.mu.Lock()
	all := make([]*client, 0, len(h.clients))
	for _, c := range h.clients {
		all = append(all, c)
	}
	h.mu.Unlock()
	for _, c := range all {
		c.write(outMessage{Type: event, Data: data}, h.log)
	}
}

// AddToGroup subscribes a connection to a named group.
func (h *Hub) AddToGroup(connectionID, group string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	members, ok := h.groups[group]
	if !ok {
		members = make(map[string]struct{})
		h.groups[group] = members
	}
	members[connectionID] = struct{}{}
}

// RemoveFromGroup unsubscribes a connection from a named group.
func (h *Hub) RemoveFromGroup(connectionID, group string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	members, ok := h.groups[group]
	if !ok {
		return
	}
	delete(members, connectionID)
	if len(members) == 0 {
		delete(h.groups, group)
	}
}
