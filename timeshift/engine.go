package timeshift

import (
	"encoding/json"
	"fmt"
	"log"
	"sync"
)

// KV is the small keyed store the engine persists into. Get returns def
// when the key is absent.
type KV interface {
	Get(key, def string) string
	Set(key, value string) error
}

const storageKey = "timeAdjustments"

// A day holds a small bounded number of events; resets scan up to here.
const maxItemsPerPage = 100

// Engine computes display times for timeline entries without touching
// the stored event data. It keeps a write-once capture of each entry's
// original time and a sparse overlay of (page, startIndex) → minute
// deltas. The effective delta for an index is the delta of the record
// with the highest startIndex at or below it — deltas do not sum.
//
// Overlay records are persisted write-through; a failed save degrades
// to in-memory-only and is reported through the error hook.
type Engine struct {
	mu            sync.Mutex
	adjustments   map[string]int
	originalTimes map[string]string
	kv            KV

	// OnPersistError observes swallowed persistence failures. Optional.
	OnPersistError func(error)
}

func NewEngine(kv KV) *Engine {
	e := &Engine{
		adjustments:   make(map[string]int),
		originalTimes: make(map[string]string),
		kv:            kv,
	}
	e.loadAdjustments()
	return e
}

func key(pageID string, index int) string {
	return fmt.Sprintf("%s-%d", pageID, index)
}

func (e *Engine) loadAdjustments() {
	stored := e.kv.Get(storageKey, "{}")
	var data map[string]int
	if err := json.Unmarshal([]byte(stored), &data); err != nil {
		log.Printf("[timeshift] Ignoring corrupt adjustment table: %v", err)
		return
	}
	for k, v := range data {
		e.adjustments[k] = v
	}
}

// saveAdjustments persists the full table. Best-effort: a failure keeps
// the in-memory state authoritative until the next save.
func (e *Engine) saveAdjustments() {
	data, err := json.Marshal(e.adjustments)
	if err == nil {
		err = e.kv.Set(storageKey, string(data))
	}
	if err != nil {
		log.Printf("[timeshift] Failed to persist adjustments: %v", err)
		if e.OnPersistError != nil {
			e.OnPersistError(err)
		}
	}
}

// StoreOriginalTime captures the original time of one entry. The first
// capture wins; repeated renders never overwrite it.
func (e *Engine) StoreOriginalTime(pageID string, index int, originalTime string) {
	e.mu.Lock()
	defer e.mu.Unlock()

	k := key(pageID, index)
	if _, ok := e.originalTimes[k]; !ok {
		e.originalTimes[k] = originalTime
	}
}

// GetOriginalTime returns the captured time, or ok=false when the entry
// has never been observed.
func (e *Engine) GetOriginalTime(pageID string, index int) (string, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	t, ok := e.originalTimes[key(pageID, index)]
	return t, ok
}

// AdjustTimes shifts every entry from startIndex onward by delayMinutes
// (negative pulls the schedule earlier). The record overwrites any
// previous record at the same position and is persisted immediately.
func (e *Engine) AdjustTimes(pageID string, startIndex, delayMinutes int) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.adjustments[key(pageID, startIndex)] = delayMinutes
	e.saveAdjustments()
}

// GetAdjustedTime resolves the display time for one entry: the original
// time shifted by the most recent applicable record. The free sentinel
// and unparseable times pass through unchanged.
func (e *Engine) GetAdjustedTime(pageID string, index int) (string, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	// most recent record at or before this index wins; no accumulation
	adjustment := 0
	for i := 0; i <= index; i++ {
		if delta, ok := e.adjustments[key(pageID, i)]; ok {
			adjustment = delta
		}
	}

	original, ok := e.originalTimes[key(pageID, index)]
	if adjustment == 0 {
		return original, ok
	}
	if !ok || original == FreeTime {
		return original, ok
	}

	originalMinutes, parsed := TimeToMinutes(original)
	if !parsed {
		log.Printf("[timeshift] Invalid time %q on page %s; leaving unadjusted", original, pageID)
		return original, true
	}

	return MinutesToTime(originalMinutes + adjustment), true
}

// ResetTimes removes every record at or after startIndex for the page
// and persists the shrunken table.
func (e *Engine) ResetTimes(pageID string, startIndex int) {
	e.mu.Lock()
	defer e.mu.Unlock()

	for i := startIndex; i < maxItemsPerPage; i++ {
		delete(e.adjustments, key(pageID, i))
	}
	e.saveAdjustments()
}

// IsAdjusted reports whether any override is in force at or before the
// index, regardless of whether its resolved delta happens to be zero.
func (e *Engine) IsAdjusted(pageID string, index int) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	for i := 0; i <= index; i++ {
		if _, ok := e.adjustments[key(pageID, i)]; ok {
			return true
		}
	}
	return false
}
