package trips

import (
	"context"
	"fmt"
	"sync"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"tripbook/models"
)

// Store is the document-store surface the mutation service runs against.
// Trip documents are read and written whole; UpdateDays is the one
// partial write, conditional on the revision the caller loaded.
type Store interface {
	Load(ctx context.Context, id string) (*models.TripBooklet, error)
	Save(ctx context.Context, id string, trip *models.TripBooklet) error
	UpdateDays(ctx context.Context, id string, days []models.Day, expectedRevision int64) error
	List(ctx context.Context) ([]TripRecord, error)
	Subscribe(id string, fn func(*models.TripBooklet)) func()
}

// TripRecord pairs a trip document with its store key for listings.
type TripRecord struct {
	ID   string             `json:"id"`
	Data models.TripBooklet `json:"data"`
}

// MongoStore keeps whole trip documents in a single collection, keyed by
// _id. After every successful write a change notification goes out over
// the emitter; the change worker calls Dispatch to refresh subscribers.
type MongoStore struct {
	coll *mongo.Collection

	mu   sync.Mutex
	subs map[string]map[int]func(*models.TripBooklet)
	next int

	// emit publishes a change notification after a successful write.
	// Wired to mq.EmitTripChanged in main; nil in tests.
	emit func(tripID string)
}

func NewMongoStore(coll *mongo.Collection) *MongoStore {
	return &MongoStore{
		coll: coll,
		subs: make(map[string]map[int]func(*models.TripBooklet)),
	}
}

// SetEmitter installs the change publisher called after each write.
func (s *MongoStore) SetEmitter(emit func(tripID string)) {
	s.emit = emit
}

func (s *MongoStore) Load(ctx context.Context, id string) (*models.TripBooklet, error) {
	var trip models.TripBooklet
	err := s.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&trip)
	if err == mongo.ErrNoDocuments {
		return nil, ErrTripNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("loading trip %s: %w", id, err)
	}
	return &trip, nil
}

func (s *MongoStore) Save(ctx context.Context, id string, trip *models.TripBooklet) error {
	opts := options.Replace().SetUpsert(true)
	_, err := s.coll.ReplaceOne(ctx, bson.M{"_id": id}, trip, opts)
	if err != nil {
		return fmt.Errorf("saving trip %s: %w", id, err)
	}
	s.notify(id)
	return nil
}

// UpdateDays writes only the days field, guarded by the revision the
// caller read. A concurrent writer bumps the revision and the condition
// misses; the caller is expected to re-load and retry.
func (s *MongoStore) UpdateDays(ctx context.Context, id string, days []models.Day, expectedRevision int64) error {
	filter := bson.M{"_id": id}
	if expectedRevision == 0 {
		filter["revision"] = bson.M{"$in": bson.A{int64(0), nil}}
	} else {
		filter["revision"] = expectedRevision
	}
	update := bson.M{
		"$set": bson.M{"days": days},
		"$inc": bson.M{"revision": 1},
	}

	res, err := s.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("updating trip %s days: %w", id, err)
	}
	if res.MatchedCount == 0 {
		// Distinguish a missing trip from a raced revision.
		n, err := s.coll.CountDocuments(ctx, bson.M{"_id": id})
		if err != nil {
			return fmt.Errorf("updating trip %s days: %w", id, err)
		}
		if n == 0 {
			return ErrTripNotFound
		}
		return errRevisionConflict
	}
	s.notify(id)
	return nil
}

func (s *MongoStore) List(ctx context.Context) ([]TripRecord, error) {
	cursor, err := s.coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("listing trips: %w", err)
	}
	defer cursor.Close(ctx)

	records := []TripRecord{}
	for cursor.Next(ctx) {
		var raw struct {
			ID string `bson:"_id"`
		}
		if err := cursor.Decode(&raw); err != nil {
			continue
		}
		var trip models.TripBooklet
		if err := cursor.Decode(&trip); err != nil {
			continue
		}
		records = append(records, TripRecord{ID: raw.ID, Data: trip})
	}
	return records, nil
}

// Subscribe registers fn for whole-document snapshots of one trip. Each
// delivery is a fresh snapshot (nil when the trip has been removed); the
// returned function unsubscribes.
func (s *MongoStore) Subscribe(id string, fn func(*models.TripBooklet)) func() {
	s.mu.Lock()
	if s.subs[id] == nil {
		s.subs[id] = make(map[int]func(*models.TripBooklet))
	}
	token := s.next
	s.next++
	s.subs[id][token] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.subs[id], token)
		s.mu.Unlock()
	}
}

func (s *MongoStore) notify(id string) {
	if s.emit != nil {
		s.emit(id)
	}
}

// Dispatch delivers the current snapshot of a changed trip to its local
// subscribers; a removed trip is delivered as nil. Called from the
// change-feed worker.
func (s *MongoStore) Dispatch(ctx context.Context, id string) {
	trip, err := s.Load(ctx, id)
	if err != nil && err != ErrTripNotFound {
		return
	}
	s.dispatchSnapshot(id, trip)
}

// Snapshots overwrite whatever the subscriber held before; ordering
// against in-flight writes is last-write-wins.
func (s *MongoStore) dispatchSnapshot(id string, trip *models.TripBooklet) {
	s.mu.Lock()
	fns := make([]func(*models.TripBooklet), 0, len(s.subs[id]))
	for _, fn := range s.subs[id] {
		fns = append(fns, fn)
	}
	s.mu.Unlock()

	for _, fn := range fns {
		fn(trip)
	}
}
