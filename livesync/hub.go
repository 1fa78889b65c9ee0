package livesync

import (
	"sync"
)

// Client is one websocket subscriber to a single trip.
type Client struct {
	Send chan []byte
	Trip string
}

type broadcastMsg struct {
	Trip string
	Data []byte
}

// Hub fans whole-trip snapshots out to every subscriber of a trip.
// Rooms are keyed by trip id; a slow client is dropped rather than
// allowed to block the rest.
type Hub struct {
	rooms      map[string]map[*Client]bool
	register   chan *Client
	unregister chan *Client
	broadcast  chan broadcastMsg
	done       chan struct{}
	mu         sync.Mutex
}

func NewHub() *Hub {
	return &Hub{
		rooms:      make(map[string]map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan broadcastMsg),
		done:       make(chan struct{}),
	}
}

func (h *Hub) Run() {
	for {
		select {
		case <-h.done:
			h.mu.Lock()
			for trip, conns := range h.rooms {
				for c := range conns {
					close(c.Send)
				}
				delete(h.rooms, trip)
			}
			h.mu.Unlock()
			return

		case c := <-h.register:
			h.mu.Lock()
			if h.rooms[c.Trip] == nil {
				h.rooms[c.Trip] = make(map[*Client]bool)
			}
			h.rooms[c.Trip][c] = true
			h.mu.Unlock()

		case c := <-h.unregister:
			h.mu.Lock()
			if conns := h.rooms[c.Trip]; conns != nil && conns[c] {
				delete(conns, c)
				close(c.Send)
			}
			h.mu.Unlock()

		case m := <-h.broadcast:
			h.mu.Lock()
			for c := range h.rooms[m.Trip] {
				select {
				case c.Send <- m.Data:
				default:
					close(c.Send)
					delete(h.rooms[m.Trip], c)
				}
			}
			h.mu.Unlock()
		}
	}
}

func (h *Hub) Stop() {
	close(h.done)
}

// Broadcast queues a snapshot for every subscriber of one trip.
func (h *Hub) Broadcast(tripID string, data []byte) {
	h.broadcast <- broadcastMsg{Trip: tripID, Data: data}
}

func (h *Hub) Register(c *Client) {
	h.register <- c
}

func (h *Hub) Unregister(c *Client) {
	h.unregister <- c
}
