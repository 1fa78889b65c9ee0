package mq

import (
	"context"
	"log"

	"tripbook/rdx"
)

const tripUpdatesChannel = "trip-updates"

// EmitTripChanged publishes a trip id to Redis after a successful write
// so every process can refresh its subscribers. Delivery is best-effort;
// a failed publish only costs a push, the write itself already landed.
func EmitTripChanged(tripID string) {
	if err := rdx.Conn.Publish(context.Background(), tripUpdatesChannel, tripID).Err(); err != nil {
		log.Printf("[Emit] Failed to publish trip change for %s: %v", tripID, err)
	}
}

// StartTripChangeWorker consumes the trip-updates channel and fans each
// changed trip id out to the given handlers (store dispatch, live hub).
func StartTripChangeWorker(handlers ...func(tripID string)) {
	ctx := context.Background()
	sub := rdx.Conn.Subscribe(ctx, tripUpdatesChannel)
	ch := sub.Channel()

	log.Println("[TripChangeWorker] Listening for trip updates...")

	for msg := range ch {
		for _, h := range handlers {
			h(msg.Payload)
		}
	}
}
