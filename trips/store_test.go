package trips

import (
	"testing"

	"tripbook/models"
)

func TestSubscribeDeliversSnapshots(t *testing.T) {
	store := NewMongoStore(nil)

	var got []*models.TripBooklet
	unsubscribe := store.Subscribe("trip-1", func(trip *models.TripBooklet) {
		got = append(got, trip)
	})

	trip := &models.TripBooklet{Meta: models.TripMeta{Title: "Hokkaido"}}
	store.dispatchSnapshot("trip-1", trip)
	store.dispatchSnapshot("trip-1", nil) // trip removed

	if len(got) != 2 {
		t.Fatalf("expected 2 deliveries, got %d", len(got))
	}
	if got[0] == nil || got[0].Meta.Title != "Hokkaido" {
		t.Fatalf("first delivery wrong: %+v", got[0])
	}
	if got[1] != nil {
		t.Fatal("removed trip must be delivered as nil")
	}

	unsubscribe()
	store.dispatchSnapshot("trip-1", trip)
	if len(got) != 2 {
		t.Fatal("unsubscribed callback still invoked")
	}
}

func TestSubscribeIsScopedToTrip(t *testing.T) {
	store := NewMongoStore(nil)

	calls := 0
	store.Subscribe("trip-2", func(*models.TripBooklet) { calls++ })

	store.dispatchSnapshot("trip-1", &models.TripBooklet{})
	if calls != 0 {
		t.Fatal("subscriber of another trip was notified")
	}
}
