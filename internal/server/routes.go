package server

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"ranch-booking/internal/models"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// RegisterRoutes sets up the router with all endpoints.
func (s *Server) RegisterRoutes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   s.cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	}))
	r.Use(rateLimitMiddleware) // Apply rate limiting middleware
	r.Get("/health", s.healthHandler)

	// Public endpoints
	r.Post("/api/login", s.LoginHandler)
	r.Post("/api/bookings", s.CreateBookingHandler)
	r.Get("/api/images", s.ListImagesHandler)

	// Admin endpoints
	r.Group(func(r chi.Router) {
		r.Use(s.requireAdmin)
		r.Get("/api/bookings", s.GetAllBookingsHandler)
		r.Patch("/api/bookings/{id}", s.UpdateBookingStatusHandler)
		r.Delete("/api/bookings/{id}", s.DeleteBookingHandler)
		r.Post("/api/upload", s.UploadImageHandler)
		r.Delete("/api/images/{filename}", s.DeleteImageHandler)
	})

	// Uploaded gallery images are served straight from disk.
	assets := http.StripPrefix("/uploads/", http.FileServer(http.Dir(s.gallery.Dir())))
	r.Get("/uploads/*", assets.ServeHTTP)

	return r
}

// healthHandler provides health information.
func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.db.Health())
}

// LoginHandler exchanges admin credentials for a bearer token.
func (s *Server) LoginHandler(w http.ResponseWriter, r *http.Request) {
	var creds struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	token, err := s.auth.Login(creds.Username, creds.Password)
	if err != nil {
		writeError(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"token": token})
}

// CreateBookingHandler handles booking creation. It is public: visitors
// submit reservation requests here. Any caller-supplied id, status, or
// timestamps are discarded. A request authenticated as the admin records a
// manual (walk-in) booking, which starts out approved instead of pending.
func (s *Server) CreateBookingHandler(w http.ResponseWriter, r *http.Request) {
	var booking models.Booking
	if err := json.NewDecoder(r.Body).Decode(&booking); err != nil {
		log.Printf("Invalid booking data: %v", err)
		writeError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	booking.Status = models.StatusPending
	if token := bearerToken(r); token != "" {
		if _, err := s.auth.Verify(token); err == nil {
			booking.Status = models.StatusApproved
		}
	}

	if err := s.db.CreateBooking(&booking); err != nil {
		log.Printf("Error creating booking: %v", err)
		writeError(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"message": "Booking received",
		"booking": booking,
	})
}

// GetAllBookingsHandler retrieves all bookings. Status filtering is a
// client-side concern.
func (s *Server) GetAllBookingsHandler(w http.ResponseWriter, r *http.Request) {
	bookings, err := s.db.GetAllBookings()
	if err != nil {
		log.Printf("Error retrieving bookings: %v", err)
		writeError(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}
	if bookings == nil {
		bookings = []models.Booking{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"bookings": bookings})
}

// UpdateBookingStatusHandler transitions a booking between pending,
// approved, and denied. Approval and denial notify the guest by email in
// the background; the response never waits on the mail server.
func (s *Server) UpdateBookingStatusHandler(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var body struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	if !models.ValidStatus(body.Status) {
		writeError(w, http.StatusBadRequest, "Invalid status")
		return
	}

	booking, err := s.db.UpdateBookingStatus(id, body.Status)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Booking not found")
			return
		}
		log.Printf("Error updating booking %s: %v", id, err)
		writeError(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"message": "Status updated",
		"booking": booking,
	})

	if body.Status == models.StatusApproved || body.Status == models.StatusDenied {
		b := *booking
		go func() {
			if err := s.notifier.SendStatusNotification(b, b.Status); err != nil {
				log.Printf("Background email failed, but booking was updated: %v", err)
			}
		}()
	}
}

// DeleteBookingHandler removes a booking permanently. Deleting an unknown
// id still succeeds.
func (s *Server) DeleteBookingHandler(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := s.db.DeleteBooking(id); err != nil {
		log.Printf("Error deleting booking %s: %v", id, err)
		writeError(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Booking deleted"})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("Error encoding response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
