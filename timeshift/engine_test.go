package timeshift

import (
	"errors"
	"testing"
)

// memKV is the engine's store for tests.
type memKV struct {
	data    map[string]string
	failSet error
	sets    int
}

func newMemKV() *memKV {
	return &memKV{data: make(map[string]string)}
}

func (m *memKV) Get(key, def string) string {
	if v, ok := m.data[key]; ok {
		return v
	}
	return def
}

func (m *memKV) Set(key, value string) error {
	m.sets++
	if m.failSet != nil {
		return m.failSet
	}
	m.data[key] = value
	return nil
}

func seededEngine(kv KV) *Engine {
	e := NewEngine(kv)
	times := []string{"08:00", "09:30", "11:00", "12:15", "14:00", "16:45"}
	for i, tm := range times {
		e.StoreOriginalTime("day-1", i, tm)
	}
	return e
}

func TestOriginalTimeIsWriteOnce(t *testing.T) {
	e := NewEngine(newMemKV())

	e.StoreOriginalTime("day-1", 0, "08:00")
	e.StoreOriginalTime("day-1", 0, "09:00") // later render, must be ignored

	got, ok := e.GetOriginalTime("day-1", 0)
	if !ok || got != "08:00" {
		t.Fatalf("expected first capture to win, got (%q,%v)", got, ok)
	}

	if _, ok := e.GetOriginalTime("day-1", 99); ok {
		t.Fatal("unobserved index should not be found")
	}
}

func TestAdjustedTimeUsesMostRecentApplicableRecord(t *testing.T) {
	e := seededEngine(newMemKV())

	e.AdjustTimes("day-1", 2, 30)

	if got, _ := e.GetAdjustedTime("day-1", 5); got != "17:15" {
		t.Fatalf("index 5: expected 17:15, got %q", got)
	}
	if got, _ := e.GetAdjustedTime("day-1", 1); got != "09:30" {
		t.Fatalf("index 1 before the record must stay original, got %q", got)
	}

	e.AdjustTimes("day-1", 5, -10)

	// deltas do not accumulate: index 5 uses -10 alone
	if got, _ := e.GetAdjustedTime("day-1", 5); got != "16:35" {
		t.Fatalf("index 5 after second record: expected 16:35, got %q", got)
	}
	if got, _ := e.GetAdjustedTime("day-1", 4); got != "14:30" {
		t.Fatalf("index 4 still uses +30, got %q", got)
	}
	if got, _ := e.GetAdjustedTime("day-1", 1); got != "09:30" {
		t.Fatalf("index 1 still unaffected, got %q", got)
	}
}

func TestResetTimesRemovesFromIndexOnward(t *testing.T) {
	e := seededEngine(newMemKV())
	e.AdjustTimes("day-1", 2, 30)
	e.AdjustTimes("day-1", 5, -10)

	e.ResetTimes("day-1", 3)

	// the startIndex=2 record survives; index 5 falls back to it
	if got, _ := e.GetAdjustedTime("day-1", 5); got != "17:15" {
		t.Fatalf("index 5 should fall back to +30, got %q", got)
	}
	if !e.IsAdjusted("day-1", 5) {
		t.Fatal("record at 2 still in force")
	}

	e.ResetTimes("day-1", 0)
	if got, _ := e.GetAdjustedTime("day-1", 5); got != "16:45" {
		t.Fatalf("full reset should restore original, got %q", got)
	}
	if e.IsAdjusted("day-1", 0) {
		t.Fatal("nothing should be adjusted after full reset")
	}
}

func TestFreeSentinelPassesThrough(t *testing.T) {
	e := NewEngine(newMemKV())
	e.StoreOriginalTime("day-1", 0, "09:00")
	e.StoreOriginalTime("day-1", 1, FreeTime)

	e.AdjustTimes("day-1", 0, 45)

	if got, _ := e.GetAdjustedTime("day-1", 1); got != FreeTime {
		t.Fatalf("free sentinel must never shift, got %q", got)
	}
}

func TestMalformedTimePassesThrough(t *testing.T) {
	e := NewEngine(newMemKV())
	e.StoreOriginalTime("day-1", 0, "whenever")

	e.AdjustTimes("day-1", 0, 45)

	if got, ok := e.GetAdjustedTime("day-1", 0); !ok || got != "whenever" {
		t.Fatalf("unparseable time must pass through, got (%q,%v)", got, ok)
	}
}

func TestZeroDeltaReturnsOriginalButCountsAsAdjusted(t *testing.T) {
	e := seededEngine(newMemKV())
	e.AdjustTimes("day-1", 1, 0)

	if got, _ := e.GetAdjustedTime("day-1", 3); got != "12:15" {
		t.Fatalf("zero delta leaves original, got %q", got)
	}
	if !e.IsAdjusted("day-1", 3) {
		t.Fatal("a zero-delta record is still a record")
	}
}

func TestAdjustmentsPersistAcrossEngines(t *testing.T) {
	kv := newMemKV()

	e1 := seededEngine(kv)
	e1.AdjustTimes("day-1", 2, 30)

	// a fresh engine on the same store sees the overlay
	e2 := seededEngine(kv)
	if got, _ := e2.GetAdjustedTime("day-1", 4); got != "14:30" {
		t.Fatalf("expected persisted +30 to apply, got %q", got)
	}
}

func TestPersistFailureIsSwallowedButObserved(t *testing.T) {
	kv := newMemKV()
	kv.failSet = errors.New("store down")

	e := seededEngine(kv)
	var observed error
	e.OnPersistError = func(err error) { observed = err }

	e.AdjustTimes("day-1", 2, 30)

	// change still applies in memory
	if got, _ := e.GetAdjustedTime("day-1", 4); got != "14:30" {
		t.Fatalf("in-memory adjustment lost, got %q", got)
	}
	if observed == nil {
		t.Fatal("persist failure was not reported")
	}
}

func TestAdjustWritesThroughImmediately(t *testing.T) {
	kv := newMemKV()
	e := seededEngine(kv)

	e.AdjustTimes("day-1", 2, 30)
	if kv.sets != 1 {
		t.Fatalf("expected one write-through save, got %d", kv.sets)
	}
	e.ResetTimes("day-1", 0)
	if kv.sets != 2 {
		t.Fatalf("expected reset to persist, got %d saves", kv.sets)
	}
}
