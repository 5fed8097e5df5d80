package database

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"ranch-booking/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) (Service, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "bookings.json")
	s, err := New(path)
	require.NoError(t, err)
	return s, path
}

func sampleBooking() *models.Booking {
	return &models.Booking{
		PackageType: "Trophy Whitetail",
		StartDate:   "2026-10-01",
		EndDate:     "2026-10-04",
		NumHunters:  2,
		FirstName:   "Jane",
		LastName:    "Doe",
		Email:       "jane@example.com",
		Phone:       "555-1234",
	}
}

func TestNewCreatesEmptyCollection(t *testing.T) {
	s, path := newTestStore(t)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.JSONEq(t, "[]", string(data))

	bookings, err := s.GetAllBookings()
	require.NoError(t, err)
	assert.Empty(t, bookings)
}

func TestCreateBookingAssignsIDAndPendingStatus(t *testing.T) {
	s, _ := newTestStore(t)

	booking := sampleBooking()
	booking.ID = "caller-supplied"
	booking.Status = "shipped" // not a known status

	require.NoError(t, s.CreateBooking(booking))

	assert.NotEmpty(t, booking.ID)
	assert.NotEqual(t, "caller-supplied", booking.ID)
	assert.Equal(t, models.StatusPending, booking.Status)
	assert.NotEmpty(t, booking.CreatedAt)

	_, err := time.Parse(time.RFC3339, booking.CreatedAt)
	assert.NoError(t, err, "createdAt should be RFC3339")
}

func TestCreateBookingKeepsValidStatus(t *testing.T) {
	s, _ := newTestStore(t)

	booking := sampleBooking()
	booking.Status = models.StatusApproved

	require.NoError(t, s.CreateBooking(booking))
	assert.Equal(t, models.StatusApproved, booking.Status)
}

func TestCreateBookingUniqueIDs(t *testing.T) {
	s, _ := newTestStore(t)

	first := sampleBooking()
	second := sampleBooking()
	require.NoError(t, s.CreateBooking(first))
	require.NoError(t, s.CreateBooking(second))

	assert.NotEqual(t, first.ID, second.ID)

	bookings, err := s.GetAllBookings()
	require.NoError(t, err)
	assert.Len(t, bookings, 2)
}

func TestUpdateBookingStatus(t *testing.T) {
	s, path := newTestStore(t)

	booking := sampleBooking()
	require.NoError(t, s.CreateBooking(booking))

	updated, err := s.UpdateBookingStatus(booking.ID, models.StatusApproved)
	require.NoError(t, err)
	assert.Equal(t, models.StatusApproved, updated.Status)
	require.NotEmpty(t, updated.UpdatedAt)

	createdAt, err := time.Parse(time.RFC3339, booking.CreatedAt)
	require.NoError(t, err)
	updatedAt, err := time.Parse(time.RFC3339, updated.UpdatedAt)
	require.NoError(t, err)
	assert.False(t, updatedAt.Before(createdAt), "updatedAt should not precede createdAt")

	// The change survives reopening the store.
	reopened, err := New(path)
	require.NoError(t, err)
	bookings, err := reopened.GetAllBookings()
	require.NoError(t, err)
	require.Len(t, bookings, 1)
	assert.Equal(t, models.StatusApproved, bookings[0].Status)
}

func TestUpdateBookingStatusUnknownID(t *testing.T) {
	s, _ := newTestStore(t)

	booking := sampleBooking()
	require.NoError(t, s.CreateBooking(booking))

	_, err := s.UpdateBookingStatus("no-such-id", models.StatusApproved)
	assert.ErrorIs(t, err, models.ErrNotFound)

	// Collection untouched.
	bookings, err := s.GetAllBookings()
	require.NoError(t, err)
	require.Len(t, bookings, 1)
	assert.Equal(t, models.StatusPending, bookings[0].Status)
}

func TestDeleteBookingIsIdempotent(t *testing.T) {
	s, _ := newTestStore(t)

	keep := sampleBooking()
	remove := sampleBooking()
	require.NoError(t, s.CreateBooking(keep))
	require.NoError(t, s.CreateBooking(remove))

	require.NoError(t, s.DeleteBooking(remove.ID))

	bookings, err := s.GetAllBookings()
	require.NoError(t, err)
	require.Len(t, bookings, 1)
	assert.Equal(t, keep.ID, bookings[0].ID)

	// Deleting the same id again is a no-op.
	require.NoError(t, s.DeleteBooking(remove.ID))
	bookings, err = s.GetAllBookings()
	require.NoError(t, err)
	assert.Len(t, bookings, 1)
}

func TestConcurrentCreatesDoNotLoseWrites(t *testing.T) {
	s, _ := newTestStore(t)

	const n = 20
	done := make(chan error, n)
	for i := 0; i < n; i++ {
		go func() {
			done <- s.CreateBooking(sampleBooking())
		}()
	}
	for i := 0; i < n; i++ {
		require.NoError(t, <-done)
	}

	bookings, err := s.GetAllBookings()
	require.NoError(t, err)
	assert.Len(t, bookings, n)
}

func TestHealth(t *testing.T) {
	s, path := newTestStore(t)
	require.NoError(t, s.CreateBooking(sampleBooking()))

	stats := s.Health()
	assert.Equal(t, "up", stats["status"])
	assert.Equal(t, path, stats["path"])
	assert.Equal(t, "1", stats["bookings"])
}
