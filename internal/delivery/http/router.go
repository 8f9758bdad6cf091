package http

import (
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"

	"eventregistry/internal/delivery/http/controllers"
)

// NewRouter initializes the HTTP router with all application routes
func NewRouter(eventController *controllers.EventController, registrationController *controllers.RegistrationController) *http.ServeMux {
	mux := http.NewServeMux()

	// Events
	mux.HandleFunc("POST /events", eventController.CreateEvent)
	mux.HandleFunc("GET /events/upcoming", eventController.ListUpcomingEvents)
	mux.HandleFunc("GET /events/{eventID}", eventController.GetEventDetails)
	mux.HandleFunc("GET /events/{eventID}/stats", eventController.GetEventStats)

	// Registrations
	mux.HandleFunc("POST /events/{eventID}/registrations", registrationController.RegisterUser)
	mux.HandleFunc("DELETE /events/{eventID}/registrations/{userID}", registrationController.CancelRegistration)

	// Health
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	// Swagger
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	return mux
}
