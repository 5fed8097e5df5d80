package database

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"time"

	"ranch-booking/internal/models"

	"github.com/google/uuid"
)

// Service represents a service that persists the booking collection.
type Service interface {
	// Health returns a map of health status information.
	// The keys and values in the map are service-specific.
	Health() map[string]string

	// Close releases the underlying storage.
	// It returns an error if the storage cannot be released.
	Close() error

	CreateBooking(booking *models.Booking) error
	GetAllBookings() ([]models.Booking, error)
	UpdateBookingStatus(id, status string) (*models.Booking, error)
	DeleteBooking(id string) error
}

// service stores the whole collection as a single JSON array on disk.
// Every mutation is a read-modify-write of the entire file; the mutex keeps
// at most one writer in that cycle at a time, so concurrent updates cannot
// clobber each other.
type service struct {
	mu   sync.Mutex
	path string
}

// New opens (or creates) the flat-file store at path.
func New(path string) (Service, error) {
	s := &service{path: path}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		if err := s.write([]models.Booking{}); err != nil {
			return nil, fmt.Errorf("initializing datastore %s: %w", path, err)
		}
	}
	return s, nil
}

// Health checks the health of the datastore by reading the collection.
func (s *service) Health() map[string]string {
	s.mu.Lock()
	defer s.mu.Unlock()

	stats := make(map[string]string)
	stats["path"] = s.path

	bookings, err := s.read()
	if err != nil {
		stats["status"] = "down"
		stats["error"] = fmt.Sprintf("datastore unreadable: %v", err)
		return stats
	}

	stats["status"] = "up"
	stats["message"] = "It's healthy"
	stats["bookings"] = strconv.Itoa(len(bookings))
	return stats
}

// Close logs the disconnect. The file store holds no open handles between
// operations, so there is nothing else to release.
func (s *service) Close() error {
	log.Printf("Closed datastore: %s", s.path)
	return nil
}

func (s *service) CreateBooking(booking *models.Booking) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	bookings, err := s.read()
	if err != nil {
		return err
	}

	booking.ID = uuid.NewString()
	booking.CreatedAt = time.Now().UTC().Format(time.RFC3339)
	booking.UpdatedAt = ""
	if !models.ValidStatus(booking.Status) {
		booking.Status = models.StatusPending
	}

	bookings = append(bookings, *booking)
	return s.write(bookings)
}

func (s *service) GetAllBookings() ([]models.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.read()
}

func (s *service) UpdateBookingStatus(id, status string) (*models.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	bookings, err := s.read()
	if err != nil {
		return nil, err
	}

	for i := range bookings {
		if bookings[i].ID != id {
			continue
		}
		bookings[i].Status = status
		bookings[i].UpdatedAt = time.Now().UTC().Format(time.RFC3339)
		if err := s.write(bookings); err != nil {
			return nil, err
		}
		updated := bookings[i]
		return &updated, nil
	}
	return nil, models.ErrNotFound
}

// DeleteBooking removes the booking with the given id. Deleting an id that
// does not exist is a no-op, matching filter-based removal semantics.
func (s *service) DeleteBooking(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	bookings, err := s.read()
	if err != nil {
		return err
	}

	kept := bookings[:0]
	for _, b := range bookings {
		if b.ID != id {
			kept = append(kept, b)
		}
	}
	return s.write(kept)
}

func (s *service) read() ([]models.Booking, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return []models.Booking{}, nil
		}
		return nil, fmt.Errorf("reading datastore: %w", err)
	}
	var bookings []models.Booking
	if err := json.Unmarshal(data, &bookings); err != nil {
		return nil, fmt.Errorf("decoding datastore: %w", err)
	}
	return bookings, nil
}

// write replaces the collection on disk. The JSON goes to a temp file in the
// same directory first and is renamed over the target, so a failed write
// leaves the previous state untouched.
func (s *service) write(bookings []models.Booking) error {
	data, err := json.MarshalIndent(bookings, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding datastore: %w", err)
	}

	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("writing datastore: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("writing datastore: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("writing datastore: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("writing datastore: %w", err)
	}
	return nil
}
