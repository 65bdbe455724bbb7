package collab

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/coder/websocket"
)

const (
	writeWait  = 10 * time.Second
	pingPeriod = 30 * time.Second
	maxMsgSize = 64 * 1024
	sendBuffer = 256
)

// typeMalformed tags a frame that did not decode, so the room can answer
// it with an error. It never goes over the wire.
const typeMalformed = "malformed"

// Client is one websocket connection attached to a room.
type Client struct {
	hub  *Hub
	room *Room
	conn *websocket.Conn
	// send is closed by the room when the client leaves.
	send chan []byte
	log  *slog.Logger

	Subject   string
	SessionID string
	ClientID  string
}

func NewClient(hub *Hub, conn *websocket.Conn, subject, sessionID, clientID string) *Client {
	return &Client{
		hub:       hub,
		conn:      conn,
		send:      make(chan []byte, sendBuffer),
		log:       hub.log.With("client", clientID, "session", sessionID),
		Subject:   subject,
		SessionID: sessionID,
		ClientID:  clientID,
	}
}

// ReadPump forwards inbound frames to the room until the connection
// closes, then unregisters the client.
func (c *Client) ReadPump(ctx context.Context) {
	defer func() {
		c.hub.Unregister(c)
		c.conn.Close(websocket.StatusNormalClosure, "")
	}()
	c.conn.SetReadLimit(maxMsgSize)

	for {
		typ, data, err := c.conn.Read(ctx)
		if err != nil {
			switch websocket.CloseStatus(err) {
			case websocket.StatusNormalClosure, websocket.StatusGoingAway:
			default:
				c.log.Debug("read failed", "error", err)
			}
			return
		}
		c.hub.dispatch(c, c.inbound(typ, data))
	}
}

// inbound decodes one frame and stamps it with the connection's identity.
// Clients cannot spoof the fields set here.
func (c *Client) inbound(typ websocket.MessageType, data []byte) *Message {
	msg := &Message{}
	if typ != websocket.MessageText || json.Unmarshal(data, msg) != nil || msg.Type == "" {
		c.log.Warn("malformed frame", "bytes", len(data))
		msg = &Message{Type: typeMalformed}
	}
	msg.Subject = c.Subject
	msg.ClientID = c.ClientID
	msg.SessionID = c.SessionID
	return msg
}

// WritePump drains the send queue onto the connection and keeps it alive
// with pings.
func (c *Client) WritePump(ctx context.Context) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close(websocket.StatusNormalClosure, "")
	}()

	for {
		select {
		case frame, ok := <-c.send:
			if !ok {
				return
			}
			if err := c.write(ctx, frame); err != nil {
				c.log.Debug("write failed", "error", err)
				return
			}

		case <-ticker.C:
			pingCtx, cancel := context.WithTimeout(ctx, writeWait)
			err := c.conn.Ping(pingCtx)
			cancel()
			if err != nil {
				return
			}

		case <-ctx.Done():
			return
		}
	}
}

func (c *Client) write(ctx context.Context, frame []byte) error {
	ctx, cancel := context.WithTimeout(ctx, writeWait)
	defer cancel()
	return c.conn.Write(ctx, websocket.MessageText, frame)
}

// Send encodes msg and queues it. Only the owning room calls Send.
func (c *Client) Send(msg *Message) {
	frame, err := json.Marshal(msg)
	if err != nil {
		c.log.Error("marshal message", "type", msg.Type, "error", err)
		return
	}
	c.enqueue(frame)
}

// enqueue never blocks the room: a slow client loses frames instead.
// Render frames carry the full scene, so the next one repairs the gap.
func (c *Client) enqueue(frame []byte) {
	select {
	case c.send <- frame:
	default:
		c.log.Warn("send buffer full, dropping frame")
	}
}
