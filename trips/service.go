package trips

import (
	"context"
	"sort"

	"tripbook/models"
	"tripbook/utils"
)

// Service owns every structural change to a trip's days. Each call loads
// the current document, mutates it in memory, and writes back only the
// days field; nothing is cached across calls. Writes are conditional on
// the loaded revision and retried a few times when a concurrent writer
// got there first.
type Service struct {
	store       Store
	maxAttempts int
}

func NewService(store Store) *Service {
	return &Service{store: store, maxAttempts: 3}
}

// AddEvent appends an event to a day and re-sorts the day by time.
// Events created here get a synthetic id; imported events without one
// keep working through (title,time) matching.
func (s *Service) AddEvent(ctx context.Context, tripID, dayID string, event models.Event) error {
	if event.ID == "" {
		event.ID = utils.GetUUID()
	}
	return s.mutateDay(ctx, tripID, dayID, func(day *models.Day) error {
		day.Events = append(day.Events, event)
		sortEvents(day.Events)
		return nil
	})
}

// UpdateEvent replaces the whole contents of one event. The target is
// located by the updated event's id when it carries one, then by exact
// (originalTitle, originalTime) when originalTime is given, then by the
// first event whose title alone matches.
func (s *Service) UpdateEvent(ctx context.Context, tripID, dayID string, updated models.Event, originalTitle, originalTime string) error {
	return s.mutateDay(ctx, tripID, dayID, func(day *models.Day) error {
		idx := -1
		if updated.ID != "" {
			idx = indexOf(day.Events, func(e models.Event) bool { return e.ID == updated.ID })
		}
		if idx == -1 && originalTime != "" {
			idx = indexOf(day.Events, func(e models.Event) bool {
				return e.Title == originalTitle && e.Time == originalTime
			})
		}
		if idx == -1 {
			idx = indexOf(day.Events, func(e models.Event) bool { return e.Title == originalTitle })
		}
		if idx == -1 {
			return ErrEventNotFound
		}

		if updated.ID == "" {
			updated.ID = day.Events[idx].ID
		}
		day.Events[idx] = updated
		sortEvents(day.Events)
		return nil
	})
}

// DeleteEvent removes every event whose (title,time) pair matches
// exactly. Zero matches is not an error; the write still happens.
// Booked events are not protected here — that courtesy lives in the UI.
func (s *Service) DeleteEvent(ctx context.Context, tripID, dayID, title, time string) error {
	return s.mutateDay(ctx, tripID, dayID, func(day *models.Day) error {
		kept := day.Events[:0]
		for _, e := range day.Events {
			if e.Title == title && e.Time == time {
				continue
			}
			kept = append(kept, e)
		}
		day.Events = kept
		return nil
	})
}

// mutateDay runs the load → mutate → conditional-write loop shared by
// all three intents.
func (s *Service) mutateDay(ctx context.Context, tripID, dayID string, mutate func(*models.Day) error) error {
	for attempt := 0; attempt < s.maxAttempts; attempt++ {
		trip, err := s.store.Load(ctx, tripID)
		if err != nil {
			return err
		}

		dayIdx := -1
		for i := range trip.Days {
			if trip.Days[i].ID == dayID {
				dayIdx = i
				break
			}
		}
		if dayIdx == -1 {
			return ErrDayNotFound
		}

		if err := mutate(&trip.Days[dayIdx]); err != nil {
			return err
		}

		err = s.store.UpdateDays(ctx, tripID, scrubDays(trip.Days), trip.Revision)
		if err == errRevisionConflict {
			continue
		}
		return err
	}
	return ErrConflictExceeded
}

// sortEvents orders a day's timeline ascending by its time string.
// Callers supply zero-padded HH:MM; the free sentinel sorts by its
// literal text. The sort is stable so equal times keep their order.
func sortEvents(events []models.Event) {
	sort.SliceStable(events, func(i, j int) bool {
		return events[i].Time < events[j].Time
	})
}

func indexOf(events []models.Event, match func(models.Event) bool) int {
	for i, e := range events {
		if match(e) {
			return i
		}
	}
	return -1
}
