package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/campus-buzz/campus-events-api/internal/auth"
	"github.com/campus-buzz/campus-events-api/internal/config"
	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

func RegisterRoutes(r *chi.Mux, cfg *config.Config, authHandler *auth.AuthHandler,
	eventsHandler *EventsHandler, registrationHandler *RegistrationHandler,
	adminHandler *AdminHandler, apiKeyHandler *APIKeyHandler) huma.API {

	r.Use(requestLogger)
	r.Use(recoverer)
	if cfg.EnableCORS {
		r.Use(corsMiddleware)
	}

	r.NotFound(func(w http.ResponseWriter, req *http.Request) {
		writeError(w, http.StatusNotFound, "Route not found")
	})

	// Initialize Huma API
	apiConfig := huma.DefaultConfig("Campus Buzz API", "1.0.0")
	apiConfig.Components.SecuritySchemes = map[string]*huma.SecurityScheme{
		"bearerAuth": {
			Type:         "http",
			Scheme:       "bearer",
			BearerFormat: "JWT",
		},
		"apiKeyAuth": {
			Type: "apiKey",
			In:   "header",
			Name: "X-API-Key",
		},
	}
	api := humachi.New(r, apiConfig)

	r.Get("/health", func(w http.ResponseWriter, req *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{
			"status":  "OK",
			"message": "Campus Buzz API is running",
		})
	})

	// Auth routes
	huma.Post(api, "/auth/register", authHandler.HandleSignup, created)
	huma.Post(api, "/auth/login", authHandler.HandleLogin)

	// Public event catalog
	huma.Get(api, "/events", eventsHandler.HandleList)
	huma.Get(api, "/events/{id}", eventsHandler.HandleGet)

	// Authenticated routes
	huma.Post(api, "/events", eventsHandler.HandleCreate, created, secured)
	huma.Post(api, "/events/{id}/register", registrationHandler.HandleRegister, created, secured)
	huma.Post(api, "/events/{id}/feedback", eventsHandler.HandleFeedback, created, secured)
	huma.Get(api, "/user/registrations", registrationHandler.HandleMyRegistrations, secured)

	// Admin routes
	huma.Get(api, "/admin/events/{id}/registrations", adminHandler.HandleEventRegistrations, secured)
	huma.Get(api, "/admin/dashboard", adminHandler.HandleDashboard, secured)
	huma.Post(api, "/admin/apikeys", apiKeyHandler.HandleCreate, created, secured)
	huma.Get(api, "/admin/apikeys", apiKeyHandler.HandleList, secured)
	huma.Delete(api, "/admin/apikeys/{id}", apiKeyHandler.HandleDelete, secured)

	return api
}

func created(o *huma.Operation) {
	o.DefaultStatus = http.StatusCreated
}

func secured(o *huma.Operation) {
	o.Security = []map[string][]string{{"bearerAuth": {}}, {"apiKeyAuth": {}}}
}

func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}

func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(sw, r)
		log.Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", sw.status).
			Dur("duration", time.Since(start)).
			Msg("request")
	})
}

func recoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				log.Error().Interface("panic", rec).Str("path", r.URL.Path).Msg("handler panicked")
				writeError(w, http.StatusInternalServerError, "Something went wrong!")
			}
		}()
		next.ServeHTTP(w, r)
	})
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Authorization, Content-Type, X-API-Key")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}
