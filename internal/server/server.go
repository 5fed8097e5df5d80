package server

import (
	"net/http"
	"time"

	"ranch-booking/internal/auth"
	"ranch-booking/internal/config"
	"ranch-booking/internal/database"
	"ranch-booking/internal/gallery"
	"ranch-booking/internal/models"
)

// Notifier delivers booking status emails. Satisfied by *mailer.Mailer.
type Notifier interface {
	SendStatusNotification(booking models.Booking, status string) error
}

// Server holds the handler dependencies.
type Server struct {
	cfg      *config.Config
	db       database.Service
	auth     *auth.Manager
	gallery  *gallery.Store
	notifier Notifier
}

// New wires the dependencies into an http.Server ready to serve.
func New(cfg *config.Config, db database.Service, authMgr *auth.Manager, store *gallery.Store, notifier Notifier) *http.Server {
	s := &Server{
		cfg:      cfg,
		db:       db,
		auth:     authMgr,
		gallery:  store,
		notifier: notifier,
	}

	return &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      s.RegisterRoutes(),
		IdleTimeout:  time.Minute,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}
}
