package timeshift

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/julienschmidt/httprouter"

	"tripbook/models"
	"tripbook/trips"
	"tripbook/utils"
)

// Handler serves the schedule-shift endpoints for one engine. The day
// id from the path is the page key; originals are captured from the
// stored document before resolving, so a fresh process still answers
// correctly.
type Handler struct {
	engine *Engine
	store  trips.Store
}

func NewHandler(engine *Engine, store trips.Store) *Handler {
	return &Handler{engine: engine, store: store}
}

// seedOriginals captures the stored time of every event in the day.
// Captures are write-once, so re-seeding after adjustments is harmless.
func (h *Handler) seedOriginals(ctx context.Context, tripID, dayID string) error {
	trip, err := h.store.Load(ctx, tripID)
	if err != nil {
		return err
	}
	for i := range trip.Days {
		if trip.Days[i].ID != dayID {
			continue
		}
		for idx, event := range trip.Days[i].Events {
			h.engine.StoreOriginalTime(dayID, idx, event.Time)
		}
		return nil
	}
	return trips.ErrDayNotFound
}

// GET /api/trips/:id/days/:dayid/times
func (h *Handler) GetTimes(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	tripID := ps.ByName("id")
	dayID := ps.ByName("dayid")

	trip, err := h.store.Load(ctx, tripID)
	if err != nil {
		h.fail(w, err)
		return
	}

	var day *models.Day
	for i := range trip.Days {
		if trip.Days[i].ID == dayID {
			day = &trip.Days[i]
			break
		}
	}
	if day == nil {
		h.fail(w, trips.ErrDayNotFound)
		return
	}

	type entry struct {
		Index    int    `json:"index"`
		Time     string `json:"time"`
		Adjusted bool   `json:"adjusted"`
	}
	entries := make([]entry, 0, len(day.Events))
	for idx, event := range day.Events {
		h.engine.StoreOriginalTime(dayID, idx, event.Time)
		display, _ := h.engine.GetAdjustedTime(dayID, idx)
		entries = append(entries, entry{
			Index:    idx,
			Time:     display,
			Adjusted: h.engine.IsAdjusted(dayID, idx),
		})
	}

	utils.RespondWithJSON(w, http.StatusOK, entries)
}

// GET /api/trips/:id/days/:dayid/times/:index
func (h *Handler) GetTime(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	index, err := strconv.Atoi(ps.ByName("index"))
	if err != nil || index < 0 {
		http.Error(w, "Invalid index", http.StatusBadRequest)
		return
	}

	tripID := ps.ByName("id")
	dayID := ps.ByName("dayid")
	if err := h.seedOriginals(ctx, tripID, dayID); err != nil {
		h.fail(w, err)
		return
	}

	display, ok := h.engine.GetAdjustedTime(dayID, index)
	if !ok {
		utils.RespondWithError(w, http.StatusNotFound, "no event at index")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"time":     display,
		"adjusted": h.engine.IsAdjusted(dayID, index),
	})
}

// POST /api/trips/:id/days/:dayid/times/adjust
func (h *Handler) AdjustTimes(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var payload struct {
		StartIndex   int `json:"startIndex"`
		DelayMinutes int `json:"delayMinutes"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	if payload.StartIndex < 0 {
		http.Error(w, "Invalid startIndex", http.StatusBadRequest)
		return
	}

	h.engine.AdjustTimes(ps.ByName("dayid"), payload.StartIndex, payload.DelayMinutes)
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"message": "Times adjusted"})
}

// POST /api/trips/:id/days/:dayid/times/reset
func (h *Handler) ResetTimes(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var payload struct {
		StartIndex int `json:"startIndex"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	if payload.StartIndex < 0 {
		http.Error(w, "Invalid startIndex", http.StatusBadRequest)
		return
	}

	h.engine.ResetTimes(ps.ByName("dayid"), payload.StartIndex)
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"message": "Times reset"})
}

func (h *Handler) fail(w http.ResponseWriter, err error) {
	if trips.NotFound(err) {
		utils.RespondWithError(w, http.StatusNotFound, err.Error())
		return
	}
	utils.RespondWithError(w, http.StatusInternalServerError, "Internal Server Error")
}
