package routes

import (
	"github.com/julienschmidt/httprouter"

	"tripbook/export"
	"tripbook/livesync"
	"tripbook/middleware"
	"tripbook/ratelim"
	"tripbook/timeshift"
	"tripbook/trips"
)

func AddTripRoutes(router *httprouter.Router, rl *ratelim.RateLimiter, h *trips.Handler) {
	router.GET("/api/trips", h.GetTrips)
	router.POST("/api/trips", rl.Limit(middleware.Authenticate(h.CreateTrip)))
	router.GET("/api/trips/:id", h.GetTrip)
	router.PUT("/api/trips/:id", middleware.Authenticate(h.SaveTrip))

	router.POST("/api/trips/:id/days/:dayid/events", middleware.Authenticate(h.AddEvent))
	router.PUT("/api/trips/:id/days/:dayid/events", middleware.Authenticate(h.UpdateEvent))
	router.DELETE("/api/trips/:id/days/:dayid/events", middleware.Authenticate(h.DeleteEvent))
}

func AddTimeshiftRoutes(router *httprouter.Router, h *timeshift.Handler) {
	router.GET("/api/trips/:id/days/:dayid/times", h.GetTimes)
	router.GET("/api/trips/:id/days/:dayid/times/:index", h.GetTime)
	router.POST("/api/trips/:id/days/:dayid/times/adjust", middleware.Authenticate(h.AdjustTimes))
	router.POST("/api/trips/:id/days/:dayid/times/reset", middleware.Authenticate(h.ResetTimes))
}

func AddExportRoutes(router *httprouter.Router, rl *ratelim.RateLimiter, h *export.Handler) {
	router.GET("/api/trips/:id/booklet.pdf", rl.Limit(h.BookletPDF))
	router.GET("/api/trips/:id/qr", rl.Limit(h.ShareQR))
}

func AddLiveRoutes(router *httprouter.Router, hub *livesync.Hub, load livesync.LoadFunc) {
	router.GET("/ws/trips/:id", livesync.WsHandler(hub, load))
}
