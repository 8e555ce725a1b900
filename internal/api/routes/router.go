package routes

import (
	"net/http"

	"github.com/rs/zerolog"

	"github.com/clinova/shift-scheduler/internal/api/handlers"
	"github.com/clinova/shift-scheduler/internal/api/middleware"
)

// Router holds all route handlers
type Router struct {
	mux *http.ServeMux

	professionalHandler *handlers.ProfessionalHandler
	scheduleHandler     *handlers.ScheduleHandler
	appointmentHandler  *handlers.AppointmentHandler

	allowedOrigins []string
	logger         zerolog.Logger
}

// NewRouter creates a new router
func NewRouter(
	professionalHandler *handlers.ProfessionalHandler,
	scheduleHandler *handlers.ScheduleHandler,
	appointmentHandler *handlers.AppointmentHandler,
	allowedOrigins []string,
	logger zerolog.Logger,
) *Router {
	return &Router{
		mux:                 http.NewServeMux(),
		professionalHandler: professionalHandler,
		scheduleHandler:     scheduleHandler,
		appointmentHandler:  appointmentHandler,
		allowedOrigins:      allowedOrigins,
		logger:              logger,
	}
}

// SetupRoutes configures all application routes
func (r *Router) SetupRoutes() http.Handler {
	// Health check endpoint
	r.mux.HandleFunc("GET /health", func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			return
		}
	})

	// Professional directory endpoints
	r.mux.HandleFunc("GET /api/professionals", r.professionalHandler.ListProfessionals)
	r.mux.HandleFunc("GET /api/professionals/{id}", r.professionalHandler.GetProfessional)

	// Schedule endpoints
	r.mux.HandleFunc("GET /api/schedule/monthly", r.scheduleHandler.GetMonthlyView)
	r.mux.HandleFunc("GET /api/schedule/statistics", r.scheduleHandler.GetStatistics)

	// Shift endpoints
	r.mux.HandleFunc("POST /api/shifts/assign", r.scheduleHandler.AssignShifts)
	r.mux.HandleFunc("POST /api/shifts/generate-monthly", r.scheduleHandler.GenerateMonthlyShifts)
	r.mux.HandleFunc("GET /api/shifts/{id}", r.scheduleHandler.GetShift)
	r.mux.HandleFunc("POST /api/shifts/{id}/reassign", r.scheduleHandler.ReassignShift)
	r.mux.HandleFunc("GET /api/reassignments", r.scheduleHandler.ListReassignments)

	// Appointment endpoints
	r.mux.HandleFunc("GET /api/appointments", r.appointmentHandler.ListAppointments)
	r.mux.HandleFunc("POST /api/appointments", r.appointmentHandler.BookAppointment)
	r.mux.HandleFunc("POST /api/appointments/bulk-cancel", r.appointmentHandler.BulkCancel)
	r.mux.HandleFunc("POST /api/appointments/bulk-reassign", r.appointmentHandler.BulkReassign)
	r.mux.HandleFunc("GET /api/appointments/select", r.appointmentHandler.SelectForProfessional)

	// Apply middleware in reverse order (last middleware wraps first)
	// CORS wraps everything so headers are set even on early returns.
	var handler http.Handler = r.mux
	handler = middleware.LoggingMiddleware(r.logger)(handler)
	handler = middleware.CORSMiddleware(r.allowedOrigins)(handler)

	return handler
}
