package ws

import (
	"encoding/json"
	"log"
	"sort"
	"sync"

	"github.com/gorilla/websocket"

	"collablearn/internal/models"
	"collablearn/internal/observability"
)

// client is one live websocket connection. Writes to the underlying
// connection are serialized through writeMu; gorilla/websocket allows only
// one concurrent writer.
type client struct {
	conn    *websocket.Conn
	info    ConnInfo
	writeMu sync.Mutex
}

func (c *client) writeEvent(event models.ServerEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	return c.conn.WriteMessage(websocket.TextMessage, payload)
}

// Hub maintains active websocket connections, their room memberships and
// the advisory online-presence map. All state is process-local and lost on
// restart; presence is best-effort, not authoritative.
type Hub struct {
	rooms   map[string]map[*client]bool
	joined  map[*client]map[string]bool
	online  map[int]*client
	userIDs map[*client]int
	mu      sync.RWMutex
}

// NewHub creates an empty hub.
func NewHub() *Hub {
	return &Hub{
		rooms:   make(map[string]map[*client]bool),
		joined:  make(map[*client]map[string]bool),
		online:  make(map[int]*client),
		userIDs: make(map[*client]int),
	}
}

// MarkOnline tracks the connection as the live one for the user, evicting
// any prior entry (duplicate tab or reconnect), and returns a snapshot of
// all online user ids. The caller broadcasts the status change separately.
func (h *Hub) MarkOnline(userID int, c *client) []int {
	h.mu.Lock()
	if prior, ok := h.online[userID]; ok && prior != c {
		delete(h.userIDs, prior)
	}
	h.online[userID] = c
	h.userIDs[c] = userID

	ids := make([]int, 0, len(h.online))
	for id := range h.online {
		ids = append(ids, id)
	}
	h.mu.Unlock()

	sort.Ints(ids)
	return ids
}

// MarkOffline removes the presence entry associated with the connection and
// reports the user id that went offline. A connection evicted by a newer one
// yields ok=false, so a late disconnect never knocks the fresh entry out.
func (h *Hub) MarkOffline(c *client) (int, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()

	userID, ok := h.userIDs[c]
	if !ok {
		return 0, false
	}
	delete(h.userIDs, c)
	if h.online[userID] == c {
		delete(h.online, userID)
	}
	return userID, true
}

// IsOnline reports whether any connection is tracked for the user.
func (h *Hub) IsOnline(userID int) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	_, ok := h.online[userID]
	return ok
}

// JoinRoom adds the connection to a chat room. Rejoining is idempotent and
// a connection may belong to multiple rooms.
func (h *Hub) JoinRoom(chatID string, c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.rooms[chatID]; !ok {
		h.rooms[chatID] = make(map[*client]bool)
	}
	h.rooms[chatID][c] = true
	if _, ok := h.joined[c]; !ok {
		h.joined[c] = make(map[string]bool)
	}
	h.joined[c][chatID] = true
}

// LeaveRoom removes the connection from a chat room.
func (h *Hub) LeaveRoom(chatID string, c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.removeFromRoom(chatID, c)
}

// Disconnect tears down every trace of the connection: room memberships and
// the presence entry. It returns the user id that went offline, if any.
func (h *Hub) Disconnect(c *client) (int, bool) {
	h.mu.Lock()
	for chatID := range h.joined[c] {
		h.removeFromRoom(chatID, c)
	}
	delete(h.joined, c)
	h.mu.Unlock()

	return h.MarkOffline(c)
}

// removeFromRoom must be called with h.mu held.
func (h *Hub) removeFromRoom(chatID string, c *client) {
	if conns, ok := h.rooms[chatID]; ok {
		delete(conns, c)
		if len(conns) == 0 {
			delete(h.rooms, chatID)
		}
	}
	if rooms, ok := h.joined[c]; ok {
		delete(rooms, chatID)
	}
}

// RelayToRoom delivers an event to every member of the room except the
// sender, who already rendered its own copy locally.
func (h *Hub) RelayToRoom(chatID string, sender *client, event models.ServerEvent) {
	h.mu.RLock()
	members := make([]*client, 0, len(h.rooms[chatID]))
	for member := range h.rooms[chatID] {
		if member != sender {
			members = append(members, member)
		}
	}
	h.mu.RUnlock()

	for _, member := range members {
		if err := member.writeEvent(event); err != nil {
			log.Printf("websocket write error: %v", err)
			h.dropClient(member)
		}
	}
}

// BroadcastStatus fans a presence delta out to every connected client
// except the one it concerns. Fire-and-forget.
func (h *Hub) BroadcastStatus(userID int, isOnline bool, except *client) {
	h.mu.RLock()
	targets := make([]*client, 0, len(h.userIDs))
	for c := range h.userIDs {
		if c != except {
			targets = append(targets, c)
		}
	}
	h.mu.RUnlock()

	event := models.ServerEvent{
		Type:     models.EventUserStatusChange,
		UserID:   userID,
		IsOnline: &isOnline,
	}
	for _, target := range targets {
		if err := target.writeEvent(event); err != nil {
			log.Printf("websocket write error: %v", err)
			h.dropClient(target)
		}
	}
}

func (h *Hub) dropClient(c *client) {
	c.conn.Close()
	if userID, ok := h.Disconnect(c); ok {
		observability.IncWSEvent("ws_error")
		h.BroadcastStatus(userID, false, c)
	}
}
