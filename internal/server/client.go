package server

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"github.com/dirkkok101/roguelike-sub009/internal/engine"
	"github.com/dirkkok101/roguelike-sub009/pkg/api"
	"github.com/dirkkok101/roguelike-sub009/pkg/logger"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 4096

	saveTimeout = 5 * time.Second
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// Client bridges one websocket connection and its game session.
type Client struct {
	Game      *engine.GameService
	Conn      *websocket.Conn
	Send      chan api.ServerResponse
	SessionID string
}

func NewClient(game *engine.GameService, conn *websocket.Conn) *Client {
	return &Client{
		Game: game,
		Conn: conn,
		Send: make(chan api.ServerResponse, 256),
	}
}

// initPayload is the optional body of the handshake command.
type initPayload struct {
	Seed string `json:"seed,omitempty"`
}

// readPump reads client commands until the connection drops.
func (c *Client) readPump() {
	defer func() {
		c.Game.Hub.Unregister(c.SessionID)
		if err := c.Conn.Close(); err != nil {
			logger.Log.WithError(err).Warn("failed to close websocket connection")
		}
		if c.SessionID != "" {
			// The session outlives the socket: persist it so the player
			// can resume, but keep it loaded for quick reconnects.
			ctx, cancel := context.WithTimeout(context.Background(), saveTimeout)
			defer cancel()
			if err := c.Game.SaveSession(ctx, c.SessionID); err != nil {
				logger.Log.WithField("session_id", c.SessionID).WithError(err).Warn("Save on disconnect failed")
			}
			logger.Log.WithField("session_id", c.SessionID).Info("Client disconnected")
		}
	}()

	c.Conn.SetReadLimit(maxMessageSize)
	if err := c.Conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
		logger.Log.WithError(err).Warn("failed to set read deadline")
	}
	c.Conn.SetPongHandler(func(string) error {
		if err := c.Conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
			logger.Log.WithError(err).Warn("failed to set pong read deadline")
		}
		return nil
	})

	// 1. HANDSHAKE
	loginCmd, err := c.readCommand()
	if err != nil {
		logger.Log.WithError(err).Warn("Handshake failed")
		return
	}

	sess, err := c.resolveSession(loginCmd)
	if err != nil {
		logger.Log.WithError(err).Warn("Session setup failed")
		return
	}
	c.SessionID = sess.ID

	logger.Log.WithFields(logrus.Fields{
		"session_id": c.SessionID,
		"seed":       sess.Seed,
	}).Info("Client logged in")

	// 2. SUBSCRIBE
	gameUpdates := c.Game.Hub.Register(c.SessionID)
	go func() {
		for msg := range gameUpdates {
			c.Send <- msg
		}
		close(c.Send)
	}()

	// First full render.
	c.dispatch(api.ClientCommand{Action: "INIT"})

	// 3. COMMAND LOOP
	for {
		cmd, err := c.readCommand()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				logger.Log.Errorf("WS Error: %v", err)
			}
			break
		}
		c.dispatch(cmd)
	}
}

// readCommand reads one frame and checks it against the wire schema
// before decoding. A frame that fails the schema never reaches the game.
func (c *Client) readCommand() (api.ClientCommand, error) {
	var cmd api.ClientCommand

	_, raw, err := c.Conn.ReadMessage()
	if err != nil {
		return cmd, err
	}
	if err := api.ValidateCommandShape(raw); err != nil {
		return cmd, err
	}
	err = json.Unmarshal(raw, &cmd)
	return cmd, err
}

// resolveSession turns the handshake into a session: an existing token
// reconnects or resumes from storage, no token starts a fresh game.
func (c *Client) resolveSession(login api.ClientCommand) (*engine.Session, error) {
	if login.Token != "" {
		if sess := c.Game.Get(login.Token); sess != nil {
			return sess, nil
		}

		ctx, cancel := context.WithTimeout(context.Background(), saveTimeout)
		defer cancel()
		if sess, err := c.Game.LoadSession(ctx, login.Token); err == nil {
			return sess, nil
		}
		logger.Log.WithField("session_id", login.Token).Info("Unknown session token, starting a new game")
	}

	var p initPayload
	if len(login.Payload) > 0 {
		if err := json.Unmarshal(login.Payload, &p); err != nil {
			return nil, err
		}
	}
	return c.Game.CreateSession(p.Seed), nil
}

// dispatch runs one command and pushes the refreshed state to the hub.
// Rejected commands produce an error frame instead of a state update.
func (c *Client) dispatch(cmd api.ClientCommand) {
	resp, err := c.Game.HandleClientCommand(c.SessionID, cmd)
	if err != nil {
		logger.Log.WithFields(logrus.Fields{
			"session_id": c.SessionID,
			"action":     cmd.Action,
		}).WithError(err).Warn("Command rejected")

		c.Game.Hub.SendTo(c.SessionID, api.ServerResponse{
			Type: "ERROR",
			Logs: []api.LogEntry{{Text: err.Error(), Type: "ERROR"}},
		})
		return
	}
	c.Game.Hub.SendTo(c.SessionID, *resp)
}

// writePump pushes updates to the client and keeps the connection alive.
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		if err := c.Conn.Close(); err != nil {
			logger.Log.WithError(err).Warn("failed to close websocket connection in writePump")
		}
	}()

	for {
		select {
		case message, ok := <-c.Send:
			if err := c.Conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				logger.Log.WithError(err).Warn("failed to set write deadline")
			}
			if !ok {
				if err := c.Conn.WriteMessage(websocket.CloseMessage, []byte{}); err != nil {
					logger.Log.WithError(err).Debug("write close message failed")
				}
				return
			}
			if err := c.Conn.WriteJSON(message); err != nil {
				logger.Log.WithError(err).Debug("write json message failed")
				return
			}

		case <-ticker.C:
			if err := c.Conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				logger.Log.WithError(err).Warn("failed to set ping write deadline")
			}
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				logger.Log.WithError(err).Debug("ping failed")
				return
			}
		}
	}
}
