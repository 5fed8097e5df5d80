package mailer

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"ranch-booking/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testBooking() models.Booking {
	return models.Booking{
		ID:          "b-1",
		PackageType: "Trophy Whitetail",
		StartDate:   "2026-10-01",
		EndDate:     "2026-10-04",
		FirstName:   "Jane",
		Email:       "jane@example.com",
	}
}

func TestSendStatusNotification(t *testing.T) {
	var got email
	var authz string

	// Mock mail API endpoint
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authz = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	m := New("test-key", "11 Rock Ranch <bookings@example.com>")
	m.endpoint = server.URL

	err := m.SendStatusNotification(testBooking(), models.StatusApproved)
	require.NoError(t, err)

	assert.Equal(t, "Bearer test-key", authz)
	assert.Equal(t, "11 Rock Ranch <bookings@example.com>", got.From)
	assert.Equal(t, "jane@example.com", got.To)
	assert.Equal(t, "Booking APPROVED - 11 Rock Ranch", got.Subject)
	assert.Contains(t, got.Html, "Jane")
	assert.Contains(t, got.Html, "Trophy Whitetail")
	assert.Contains(t, got.Html, "approved")
	assert.Contains(t, got.Html, "2026-10-01 to 2026-10-04")
}

func TestSendStatusNotificationAPIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
	}))
	defer server.Close()

	m := New("test-key", "bookings@example.com")
	m.endpoint = server.URL

	err := m.SendStatusNotification(testBooking(), models.StatusDenied)
	assert.Error(t, err)
}

func TestSendStatusNotificationWithoutAPIKey(t *testing.T) {
	requests := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
	}))
	defer server.Close()

	m := New("", "bookings@example.com")
	m.endpoint = server.URL

	// No key configured: logs a mock email and succeeds without calling out.
	err := m.SendStatusNotification(testBooking(), models.StatusApproved)
	require.NoError(t, err)
	assert.Zero(t, requests)
}
