package livesync

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/julienschmidt/httprouter"

	"tripbook/models"
	"tripbook/trips"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// LoadFunc fetches the current snapshot of one trip.
type LoadFunc func(ctx context.Context, id string) (*models.TripBooklet, error)

// SnapshotPusher returns a change handler that loads a changed trip and
// broadcasts its JSON snapshot to the trip's room. A trip that vanished
// is pushed as null, mirroring what document subscribers receive.
func SnapshotPusher(hub *Hub, load LoadFunc) func(tripID string) {
	return func(tripID string) {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		trip, err := load(ctx, tripID)
		if errors.Is(err, trips.ErrTripNotFound) {
			// push null so clients clear their view
			hub.Broadcast(tripID, []byte("null"))
			return
		}
		if err != nil {
			log.Printf("[livesync] Failed to load trip %s: %v", tripID, err)
			return
		}

		data, err := json.Marshal(trip)
		if err != nil {
			log.Printf("[livesync] Failed to marshal trip %s: %v", tripID, err)
			return
		}
		hub.Broadcast(tripID, data)
	}
}

// WsHandler upgrades GET /ws/trips/:id and streams snapshots of that
// trip until the client disconnects.
func WsHandler(hub *Hub, load LoadFunc) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		tripID := ps.ByName("id")

		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			log.Println("[livesync] Upgrade failed:", err)
			return
		}

		client := &Client{
			Send: make(chan []byte, 16),
			Trip: tripID,
		}

		// queue the initial snapshot before the hub can reach the channel,
		// so the client does not wait for the next write
		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		if trip, err := load(ctx, tripID); err == nil {
			if data, err := json.Marshal(trip); err == nil {
				client.Send <- data
			}
		}
		cancel()

		hub.Register(client)

		go writePump(conn, client)
		go readPump(conn, hub, client)
	}
}

func writePump(conn *websocket.Conn, client *Client) {
	defer conn.Close()
	for data := range client.Send {
		conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
		if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
			return
		}
	}
	conn.WriteMessage(websocket.CloseMessage, []byte{})
}

func readPump(conn *websocket.Conn, hub *Hub, client *Client) {
	defer func() {
		hub.Unregister(client)
		conn.Close()
	}()
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}
