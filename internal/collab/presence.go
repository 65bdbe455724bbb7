package collab

// PresenceManager tracks the last cursor position of every client in a
// room. It is owned by the room goroutine.
type PresenceManager struct {
	presences map[string]*PresencePayload // clientID -> presence
}

func NewPresenceManager() *PresenceManager {
	return &PresenceManager{
		presences: make(map[string]*PresencePayload),
	}
}

func (pm *PresenceManager) Join(clientID, subject string) {
	pm.presences[clientID] = &PresencePayload{Subject: subject}
}

// Move records a cursor position and returns the updated presence, nil
// for unknown clients.
func (pm *PresenceManager) Move(clientID string, x, y float64) *PresencePayload {
	p, ok := pm.presences[clientID]
	if !ok {
		return nil
	}
	p.Cursor = &CursorPos{X: x, Y: y}
	return p
}

func (pm *PresenceManager) Remove(clientID string) {
	delete(pm.presences, clientID)
}

func (pm *PresenceManager) Len() int { return len(pm.presences) }

func (pm *PresenceManager) StateMessage() *Message {
	all := make(map[string]*PresencePayload, len(pm.presences))
	for k, v := range pm.presences {
		copied := *v
		all[k] = &copied
	}
	return newMessage(TypePresenceState, PresenceStatePayload{Presences: all})
}
