package collab

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/inamate/vecdraw/internal/document"
	"github.com/inamate/vecdraw/internal/engine"
)

var ErrHubStopped = errors.New("hub stopped")

const defaultBlink = 500 * time.Millisecond

// SceneStore persists scenes for scene.save and scene.load.
type SceneStore interface {
	Save(ctx context.Context, name string, records []document.ExportRecord) error
	Load(ctx context.Context, name string) ([]document.ExportRecord, error)
}

type Options struct {
	Store SceneStore
	// Blink is the caret tick period while text entry is active.
	Blink  time.Duration
	Logger *slog.Logger
	// Session is the template for new room sessions. ID and Logger are
	// set per room.
	Session engine.Options
}

type Hub struct {
	mu      sync.Mutex
	rooms   map[string]*Room // sessionID -> room
	stopped bool

	opts Options
	ctx  context.Context
	stop context.CancelFunc
	wg   sync.WaitGroup
	log  *slog.Logger
}

func NewHub(opts Options) *Hub {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Blink <= 0 {
		opts.Blink = defaultBlink
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Hub{
		rooms: make(map[string]*Room),
		opts:  opts,
		ctx:   ctx,
		stop:  cancel,
		log:   opts.Logger,
	}
}

// Register adds client to the room of its session, starting the room if
// it is the first member.
func (h *Hub) Register(client *Client) error {
	h.mu.Lock()
	if h.stopped {
		h.mu.Unlock()
		return ErrHubStopped
	}
	room, ok := h.rooms[client.SessionID]
	if !ok {
		sessionOpts := h.opts.Session
		sessionOpts.ID = client.SessionID
		sessionOpts.Logger = h.log
		room = newRoom(client.SessionID, engine.NewSession(sessionOpts), h.opts.Store, h.opts.Blink, h.log)
		h.rooms[client.SessionID] = room

		h.wg.Add(1)
		go func() {
			defer h.wg.Done()
			room.run(h.ctx)
		}()
		h.log.Info("room started", "session", client.SessionID)
	}
	room.members++
	client.room = room
	h.mu.Unlock()

	if !room.post(roomEvent{kind: evJoin, client: client}) {
		return ErrHubStopped
	}
	return nil
}

// Unregister removes client from its room and stops the room when it was
// the last member.
func (h *Hub) Unregister(client *Client) {
	room := client.room
	if room == nil {
		return
	}

	h.mu.Lock()
	room.members--
	empty := room.members == 0
	if empty && h.rooms[room.id] == room {
		delete(h.rooms, room.id)
	}
	h.mu.Unlock()

	room.post(roomEvent{kind: evLeave, client: client})
	if empty {
		room.post(roomEvent{kind: evStop})
		h.log.Info("room stopped", "session", room.id)
	}
}

// Rooms returns the number of running rooms.
func (h *Hub) Rooms() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.rooms)
}

// Stop shuts every room down and waits for them to exit.
func (h *Hub) Stop() {
	h.mu.Lock()
	h.stopped = true
	rooms := make([]*Room, 0, len(h.rooms))
	for _, r := range h.rooms {
		rooms = append(rooms, r)
	}
	h.rooms = make(map[string]*Room)
	h.mu.Unlock()

	for _, r := range rooms {
		r.post(roomEvent{kind: evStop})
	}
	h.stop()
	h.wg.Wait()
}

func (h *Hub) dispatch(sender *Client, msg *Message) {
	if sender.room == nil {
		return
	}
	if !sender.room.post(roomEvent{kind: evMessage, client: sender, msg: msg}) {
		h.log.Debug("message for stopped room", "session", sender.SessionID, "type", msg.Type)
	}
}
