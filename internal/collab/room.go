package collab

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/inamate/vecdraw/internal/editor"
	"github.com/inamate/vecdraw/internal/engine"
	"github.com/inamate/vecdraw/internal/geom"
	"github.com/inamate/vecdraw/internal/widget"
)

var (
	ErrMalformed      = errors.New("malformed message")
	ErrUnknownMessage = errors.New("unknown message type")
	ErrBadPayload     = errors.New("invalid payload")
	ErrNoStore        = errors.New("no scene store configured")
)

const storeTimeout = 10 * time.Second

type roomEventKind int

const (
	evJoin roomEventKind = iota
	evLeave
	evMessage
	evStop
)

type roomEvent struct {
	kind   roomEventKind
	client *Client
	msg    *Message
}

// Room is one editing session shared by its clients. A single goroutine
// (run) owns the session, the client set and the presence state.
type Room struct {
	id       string
	session  *engine.Session
	store    SceneStore
	clients  map[string]*Client // clientID -> client
	presence *PresenceManager
	blink    time.Duration
	seq      int64

	events chan roomEvent
	done   chan struct{}

	// guarded by Hub.mu
	members int

	log *slog.Logger
}

func newRoom(id string, session *engine.Session, store SceneStore, blink time.Duration, logger *slog.Logger) *Room {
	return &Room{
		id:       id,
		session:  session,
		store:    store,
		clients:  make(map[string]*Client),
		presence: NewPresenceManager(),
		blink:    blink,
		events:   make(chan roomEvent, 256),
		done:     make(chan struct{}),
		log:      logger.With("session", id),
	}
}

// post queues ev. It reports false once the room has stopped.
func (r *Room) post(ev roomEvent) bool {
	select {
	case r.events <- ev:
		return true
	case <-r.done:
		return false
	}
}

func (r *Room) run(ctx context.Context) {
	defer close(r.done)

	ticker := time.NewTicker(r.blink)
	defer ticker.Stop()

	for {
		select {
		case ev := <-r.events:
			switch ev.kind {
			case evJoin:
				r.join(ev.client)
			case evLeave:
				r.leave(ev.client)
			case evMessage:
				r.handle(ctx, ev.client, ev.msg)
			case evStop:
				r.closeAll()
				return
			}

		case <-ticker.C:
			if r.session.TimerEnabled() {
				r.session.Handle(editor.Key(editor.EventTick))
				r.broadcastRender()
			}

		case <-ctx.Done():
			r.closeAll()
			return
		}
	}
}

func (r *Room) join(c *Client) {
	r.clients[c.ClientID] = c
	r.presence.Join(c.ClientID, c.Subject)

	c.Send(newMessage(TypeWelcome, WelcomePayload{ClientID: c.ClientID, SessionID: r.id}))
	c.Send(r.presence.StateMessage())
	c.Send(r.renderMessage())

	r.broadcast(newMessage(TypePresenceJoin, PresenceJoinPayload{
		ClientID: c.ClientID,
		Subject:  c.Subject,
	}), c.ClientID)

	r.log.Info("client joined", "client", c.ClientID, "subject", c.Subject)
}

func (r *Room) leave(c *Client) {
	if _, ok := r.clients[c.ClientID]; !ok {
		return
	}
	delete(r.clients, c.ClientID)
	close(c.send)
	r.presence.Remove(c.ClientID)

	r.broadcast(newMessage(TypePresenceLeave, PresenceLeavePayload{ClientID: c.ClientID}), "")
	r.log.Info("client left", "client", c.ClientID)
}

func (r *Room) closeAll() {
	for id, c := range r.clients {
		close(c.send)
		delete(r.clients, id)
	}
}

func (r *Room) handle(ctx context.Context, sender *Client, msg *Message) {
	if msg.Type == TypePresenceUpdate {
		r.handlePresenceUpdate(sender, msg)
		return
	}

	if err := r.apply(ctx, msg); err != nil {
		r.log.Warn("message rejected", "type", msg.Type, "client", sender.ClientID, "error", err)
		sender.Send(newMessage(TypeError, ErrorPayload{Message: err.Error(), Request: msg.Type}))
		return
	}
	if msg.Type == TypeSceneSave {
		sender.Send(&Message{Type: TypeSceneSaved, Payload: msg.Payload})
	}
	r.broadcastRender()
}

func (r *Room) handlePresenceUpdate(sender *Client, msg *Message) {
	var p CursorPos
	if err := json.Unmarshal(msg.Payload, &p); err != nil {
		r.log.Warn("invalid presence payload", "error", err)
		return
	}
	presence := r.presence.Move(sender.ClientID, p.X, p.Y)
	if presence == nil {
		return
	}
	out := newMessage(TypePresenceUpdate, presence)
	out.ClientID = sender.ClientID
	r.broadcast(out, sender.ClientID)
}

var pointerEvents = map[string]editor.EventType{
	TypePointerPress:   editor.EventPress,
	TypePointerRelease: editor.EventRelease,
	TypePointerMove:    editor.EventMove,
}

var keyEvents = map[string]editor.EventType{
	TypeKeyEscape:    editor.EventEscape,
	TypeKeyEnter:     editor.EventEnter,
	TypeKeyBackspace: editor.EventBackspace,
	TypeKeyDelete:    editor.EventDelete,
	TypeTick:         editor.EventTick,
}

// apply translates one client message into session calls.
func (r *Room) apply(ctx context.Context, msg *Message) error {
	s := r.session

	if t, ok := pointerEvents[msg.Type]; ok {
		var p PointerPayload
		if err := decode(msg, &p); err != nil {
			return err
		}
		ev := editor.Event{Type: t, Button: editor.Button(p.Button)}
		if p.X != nil && p.Y != nil {
			ev.Pos = &geom.Point{X: *p.X, Y: *p.Y}
		}
		s.Handle(ev)
		return nil
	}
	if t, ok := keyEvents[msg.Type]; ok {
		s.Handle(editor.Key(t))
		return nil
	}

	switch msg.Type {
	case typeMalformed:
		return ErrMalformed

	case TypeKeyRune:
		var p RunePayload
		if err := decode(msg, &p); err != nil {
			return err
		}
		for _, ch := range p.Text {
			s.Handle(editor.Rune(ch))
		}

	case TypeModeSet:
		var p ModePayload
		if err := decode(msg, &p); err != nil {
			return err
		}
		return s.SetMode(widget.ParseDrawMode(p.Mode))

	case TypeKindSelect:
		var p KindPayload
		if err := decode(msg, &p); err != nil {
			return err
		}
		kind, err := widget.ParseKind(p.Kind)
		if err != nil {
			return err
		}
		s.SetKind(kind)

	case TypeStyleSet:
		var p StylePayload
		if err := decode(msg, &p); err != nil {
			return err
		}
		color, _ := geom.ParseColor(p.Color)
		s.SetStyle(editor.Style{Color: color, Width: p.Width, VertexCount: p.PolyPoints})

	case TypeSelectAt:
		var p PointerPayload
		if err := decode(msg, &p); err != nil {
			return err
		}
		if p.X == nil || p.Y == nil {
			s.Deselect()
			return nil
		}
		s.SelectAt(geom.Point{X: *p.X, Y: *p.Y})

	case TypeSelectID:
		var p SelectIDPayload
		if err := decode(msg, &p); err != nil {
			return err
		}
		if p.ID == "" {
			s.Deselect()
			return nil
		}
		return s.Select(p.ID)

	case TypeSceneClear:
		s.Clear()

	case TypeSceneSave, TypeSceneLoad:
		return r.applyStore(ctx, msg)

	default:
		return fmt.Errorf("%q: %w", msg.Type, ErrUnknownMessage)
	}
	return nil
}

func (r *Room) applyStore(ctx context.Context, msg *Message) error {
	if r.store == nil {
		return ErrNoStore
	}
	var p ScenePayload
	if err := decode(msg, &p); err != nil {
		return err
	}
	if p.Name == "" {
		p.Name = r.id
	}

	ctx, cancel := context.WithTimeout(ctx, storeTimeout)
	defer cancel()

	if msg.Type == TypeSceneSave {
		if err := r.store.Save(ctx, p.Name, r.session.Export()); err != nil {
			return fmt.Errorf("save %s: %w", p.Name, err)
		}
		r.log.Info("scene saved", "name", p.Name)
		return nil
	}

	records, err := r.store.Load(ctx, p.Name)
	if err != nil {
		return fmt.Errorf("load %s: %w", p.Name, err)
	}
	return r.session.Load(records)
}

func decode(msg *Message, v any) error {
	if len(msg.Payload) == 0 {
		return fmt.Errorf("%s: %w: empty", msg.Type, ErrBadPayload)
	}
	if err := json.Unmarshal(msg.Payload, v); err != nil {
		return fmt.Errorf("%s: %w: %w", msg.Type, ErrBadPayload, err)
	}
	return nil
}

func (r *Room) renderMessage() *Message {
	r.seq++
	payload := RenderPayload{
		Commands: r.session.Render(),
		Mode:     r.session.Mode().String(),
		Kind:     r.session.Kind().String(),
		Timer:    r.session.TimerEnabled(),
		Widgets:  len(r.session.Widgets()),
	}
	if target := r.session.Target(); target != nil {
		payload.TargetID = widget.IDOf(target)
	}
	msg := newMessage(TypeRender, payload)
	msg.SessionID = r.id
	msg.Seq = r.seq
	return msg
}

func (r *Room) broadcastRender() {
	r.broadcast(r.renderMessage(), "")
}

func (r *Room) broadcast(msg *Message, excludeClientID string) {
	frame, err := json.Marshal(msg)
	if err != nil {
		r.log.Error("marshal broadcast", "type", msg.Type, "error", err)
		return
	}
	for id, c := range r.clients {
		if id != excludeClientID {
			c.enqueue(frame)
		}
	}
}
