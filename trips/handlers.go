package trips

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/julienschmidt/httprouter"

	"tripbook/models"
	"tripbook/utils"
)

// Handler exposes the trip document store and the mutation service over
// HTTP. Construct it in main and hand it to the route registration.
type Handler struct {
	store Store
	svc   *Service
}

func NewHandler(store Store, svc *Service) *Handler {
	return &Handler{store: store, svc: svc}
}

// GET /api/trips
func (h *Handler) GetTrips(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	records, err := h.store.List(ctx)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Error fetching trips")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, records)
}

// POST /api/trips
func (h *Handler) CreateTrip(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var trip models.TripBooklet
	if err := json.NewDecoder(r.Body).Decode(&trip); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	tripID := utils.GenerateRandomString(13)
	trip.Days = scrubDays(trip.Days)
	if err := h.store.Save(ctx, tripID, &trip); err != nil {
		http.Error(w, "Error creating trip", http.StatusInternalServerError)
		return
	}

	utils.RespondWithJSON(w, http.StatusCreated, utils.M{"id": tripID})
}

// GET /api/trips/:id
func (h *Handler) GetTrip(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	trip, err := h.store.Load(ctx, ps.ByName("id"))
	if err != nil {
		h.fail(w, err, "Error fetching trip")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, trip)
}

// PUT /api/trips/:id
func (h *Handler) SaveTrip(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var trip models.TripBooklet
	if err := json.NewDecoder(r.Body).Decode(&trip); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	trip.Days = scrubDays(trip.Days)
	if err := h.store.Save(ctx, ps.ByName("id"), &trip); err != nil {
		http.Error(w, "Error saving trip", http.StatusInternalServerError)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"message": "Trip saved"})
}

// POST /api/trips/:id/days/:dayid/events
func (h *Handler) AddEvent(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var event models.Event
	if err := json.NewDecoder(r.Body).Decode(&event); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if err := h.svc.AddEvent(ctx, ps.ByName("id"), ps.ByName("dayid"), event); err != nil {
		h.fail(w, err, "Error adding event")
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, utils.M{"message": "Event added"})
}

// PUT /api/trips/:id/days/:dayid/events
func (h *Handler) UpdateEvent(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var payload struct {
		Event         models.Event `json:"event"`
		OriginalTitle string       `json:"originalTitle"`
		OriginalTime  string       `json:"originalTime"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	err := h.svc.UpdateEvent(ctx, ps.ByName("id"), ps.ByName("dayid"), payload.Event, payload.OriginalTitle, payload.OriginalTime)
	if err != nil {
		h.fail(w, err, "Error updating event")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"message": "Event updated"})
}

// DELETE /api/trips/:id/days/:dayid/events?title=...&time=...
func (h *Handler) DeleteEvent(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	query := r.URL.Query()
	title := query.Get("title")
	eventTime := query.Get("time")
	if title == "" {
		http.Error(w, "title is required", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if err := h.svc.DeleteEvent(ctx, ps.ByName("id"), ps.ByName("dayid"), title, eventTime); err != nil {
		h.fail(w, err, "Error deleting event")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"message": "Event deleted"})
}

func (h *Handler) fail(w http.ResponseWriter, err error, fallback string) {
	switch {
	case NotFound(err):
		utils.RespondWithError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, ErrConflictExceeded):
		utils.RespondWithError(w, http.StatusConflict, err.Error())
	default:
		utils.RespondWithError(w, http.StatusInternalServerError, fallback)
	}
}
