package server

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/gorilla/websocket"
	"github.com/minaorangina/maumau/game"
	"github.com/minaorangina/maumau/protocol"
	"github.com/minaorangina/maumau/store"
	"github.com/sirupsen/logrus"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 1024
	sendBuffer     = 8
)

// client is the websocket connection of one human player
type client struct {
	gameID   string
	playerID string
	conn     *websocket.Conn
	send     chan []byte
	store    store.GameStore
	logger   logrus.FieldLogger
}

func newClient(gameID, playerID string, conn *websocket.Conn, str store.GameStore, logger logrus.FieldLogger) *client {
	return &client{
		gameID:   gameID,
		playerID: playerID,
		conn:     conn,
		send:     make(chan []byte, sendBuffer),
		store:    str,
		logger: logger.WithFields(logrus.Fields{
			"game":   gameID,
			"player": playerID,
		}),
	}
}

// readPump applies each inbound message to the game and queues the reply.
// It owns the send channel and closes it on exit.
func (c *client) readPump() {
	defer close(c.send)

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.logger.WithError(err).Warn("websocket closed")
			}
			return
		}
		c.queue(c.handle(data))
	}
}

func (c *client) handle(data []byte) protocol.OutboundMessage {
	var reply protocol.OutboundMessage
	err := c.store.WithGame(c.gameID, func(s *game.Session) error {
		player, _ := s.PlayerIndex(c.playerID)

		var msg protocol.InboundMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			reply = s.BuildErrorMessage(player, fmt.Errorf("%w: %v", ErrBadMessage, err))
			return nil
		}
		// a connection only ever speaks for its own player
		msg.PlayerID = c.playerID

		var err error
		reply, err = s.Receive(msg)
		if err != nil {
			c.logger.WithError(err).WithField("command", msg.Command.String()).Debug("message rejected")
		}
		return nil
	})
	if err != nil {
		reply = protocol.OutboundMessage{
			GameID:   c.gameID,
			PlayerID: c.playerID,
			Command:  protocol.Error,
			Error:    err.Error(),
		}
	}
	return reply
}

func (c *client) queue(msg protocol.OutboundMessage) {
	data, err := json.Marshal(msg)
	if err != nil {
		c.logger.WithError(err).Error("could not encode message")
		return
	}
	c.send <- data
}

// writePump is the only writer on the connection
func (c *client) writePump() {
	ticker := time.NewTicker(pingPeriod)

	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case msg, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
