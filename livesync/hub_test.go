package livesync

import (
	"testing"
	"time"
)

func TestHubRegisterBroadcastUnregister(t *testing.T) {
	hub := NewHub()
	go hub.Run()
	defer hub.Stop()

	client := &Client{
		Send: make(chan []byte, 10),
		Trip: "trip-1",
	}
	hub.Register(client)

	data := []byte(`{"meta":{"title":"Hokkaido"}}`)
	hub.Broadcast("trip-1", data)

	select {
	case got := <-client.Send:
		if string(got) != string(data) {
			t.Fatalf("expected %s, got %s", data, got)
		}
	case <-time.After(1 * time.Second):
		t.Fatal("timeout waiting for snapshot")
	}

	hub.Unregister(client)
}

func TestHubBroadcastIsScopedToTrip(t *testing.T) {
	hub := NewHub()
	go hub.Run()
	defer hub.Stop()

	other := &Client{
		Send: make(chan []byte, 10),
		Trip: "trip-2",
	}
	hub.Register(other)

	hub.Broadcast("trip-1", []byte("null"))

	select {
	case got := <-other.Send:
		t.Fatalf("client on another trip received %s", got)
	case <-time.After(100 * time.Millisecond):
	}
}
