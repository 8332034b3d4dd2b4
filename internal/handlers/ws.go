// internal/handlers/ws.go
package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/coder/websocket"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/LeonLav77/photoroullete-backend/internal/messaging"
	"github.com/LeonLav77/photoroullete-backend/internal/router"
)

// Custom WebSocket close codes used by the gateway.
const (
	BadSubprotocolError = 3000 // Client connected with an unsupported subprotocol.
)

// WSHandler upgrades the HTTP connection, assigns the socket its connection
// id, registers it with the hub, and runs the read/write pumps. Every parsed
// frame goes straight to the router; the gateway itself knows nothing about
// lobbies or rounds.
func WSHandler(logger *logrus.Logger, hub *Hub, rt *router.Router) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c, err := websocket.Accept(w, r, &websocket.AcceptOptions{
			Subprotocols:   []string{"roulette"},
			OriginPatterns: []string{"*"}, // Adjust in production.
		})
		if err != nil {
			logger.Warnf("websocket accept error: %v", err)
			return
		}
		defer c.Close(websocket.StatusInternalError, "handler finished")

		if c.Subprotocol() != "roulette" {
			c.Close(BadSubprotocolError, "client must speak the roulette subprotocol")
			return
		}

		connectionID := uuid.NewString()
		client := hub.Register(connectionID)
		logger.Infof("connection %s established from %s", connectionID, r.RemoteAddr)

		// Everyone learns the newcomer's connection id; the client uses it as
		// its own identity for the rest of the session.
		hub.ToAll(messaging.EventUserConnected, connectionID)

		ctx, cancel := context.WithCancel(r.Context())
		defer cancel()
		go writePump(ctx, c, client, logger)

		readPump(ctx, c, connectionID, rt, logger)

		logger.Infof("connection %s closed, cleaning up", connectionID)
		rt.Disconnect(connectionID)
		hub.Unregister(connectionID)
	}
}

// readPump feeds inbound frames to the router until the socket dies.
func readPump(ctx context.Context, c *websocket.Conn, connectionID string, rt *router.Router, logger *logrus.Logger) {
	for {
		typ, msg, err := c.Read(ctx)
		if err != nil {
			closeStatus := websocket.CloseStatus(err)
			if closeStatus == websocket.StatusNormalClosure || closeStatus == websocket.StatusGoingAway {
				logger.Infof("websocket closed normally for %s", connectionID)
			} else if !strings.Contains(err.Error(), "context canceled") {
				logger.Warnf("read error for %s: %v", connectionID, err)
			}
			return
		}
		if typ != websocket.MessageText {
			logger.Warnf("non-text message type %d from %s, ignoring", typ, connectionID)
			continue
		}
		rt.Dispatch(connectionID, msg)
	}
}

// writePump drains the client's out channel onto the socket and keeps the
// connection alive with periodic pings.
func writePump(ctx context.Context, c *websocket.Conn, cl *client, logger *logrus.Logger) {
	ticker := time.NewTicker(30 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-cl.outChan:
			if !ok {
				return
			}
			data, err := json.Marshal(msg)
			if err != nil {
				logger.Warnf("failed to marshal outgoing %q for %s: %v", msg.Type, cl.id, err)
				continue
			}
			writeCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
			err = c.Write(writeCtx, websocket.MessageText, data)
			cancel()
			if err != nil {
				logger.Warnf("failed to write to websocket for %s: %v", cl.id, err)
				return
			}
		case <-ticker.C:
			pingCtx, cancel := context.WithTimeout(ctx, 15*time.Second)
			err := c.Ping(pingCtx)
			cancel()
			if err != nil {
				logger.Warnf("ping failed for %s: %v, assuming disconnect", cl.id, err)
				return
			}
		}
	}
}
