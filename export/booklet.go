package export

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/julienschmidt/httprouter"
	"github.com/phpdave11/gofpdf"
	qrcode "github.com/skip2/go-qrcode"

	"tripbook/trips"
	"tripbook/utils"
)

// Handler renders downloadable exports of a trip: a printable PDF
// summary of the booklet and a QR code pointing at the shared trip URL.
type Handler struct {
	store trips.Store
}

func NewHandler(store trips.Store) *Handler {
	return &Handler{store: store}
}

// GET /api/trips/:id/booklet.pdf
func (h *Handler) BookletPDF(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	tripID := ps.ByName("id")
	trip, err := h.store.Load(ctx, tripID)
	if err != nil {
		if trips.NotFound(err) {
			http.Error(w, "Trip not found", http.StatusNotFound)
			return
		}
		http.Error(w, "Error fetching trip", http.StatusInternalServerError)
		return
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Arial", "B", 18)
	pdf.Cell(0, 12, trip.Meta.Title)
	pdf.Ln(10)
	pdf.SetFont("Arial", "", 12)
	pdf.Cell(0, 8, trip.Meta.Subtitle)
	pdf.Ln(8)
	pdf.Cell(0, 8, trip.Meta.DateRange)
	pdf.Ln(12)

	for _, day := range trip.Days {
		pdf.SetFont("Arial", "B", 14)
		pdf.Cell(0, 10, fmt.Sprintf("%s (%s) - %s", day.Date, day.Weekday, day.Location))
		pdf.Ln(9)

		pdf.SetFont("Arial", "", 11)
		for _, event := range day.Events {
			pdf.Cell(22, 7, event.Time)
			pdf.Cell(0, 7, event.Title)
			pdf.Ln(6)
		}

		if acc, ok := trip.Accommodations[day.AccommodationID]; ok {
			if loc, ok := trip.Locations[acc.LocationID]; ok {
				pdf.SetFont("Arial", "I", 10)
				pdf.Cell(0, 7, "Stay: "+loc.Name)
				pdf.Ln(6)
			}
		}
		pdf.Ln(4)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		http.Error(w, "Failed to generate PDF", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", tripID+".pdf"))
	w.Write(buf.Bytes())
}

// GET /api/trips/:id/qr
func (h *Handler) ShareQR(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	tripID := ps.ByName("id")
	if _, err := h.store.Load(ctx, tripID); err != nil {
		if trips.NotFound(err) {
			utils.RespondWithError(w, http.StatusNotFound, "Trip not found")
			return
		}
		utils.RespondWithError(w, http.StatusInternalServerError, "Error fetching trip")
		return
	}

	base := os.Getenv("PUBLIC_BASE_URL")
	if base == "" {
		base = "http://localhost:8080"
	}

	png, err := qrcode.Encode(base+"/"+tripID, qrcode.Medium, 256)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to generate QR code")
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Write(png)
}
