package mailer

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"ranch-booking/internal/models"
)

const resendAPI = "https://api.resend.com/emails"

// Mailer sends booking status notifications through the Resend HTTP API.
// With no API key configured it logs a mock email instead, so development
// setups work without credentials.
type Mailer struct {
	apiKey   string
	from     string
	endpoint string
	client   *http.Client
}

type email struct {
	From    string `json:"from"`
	To      string `json:"to"`
	Subject string `json:"subject"`
	Html    string `json:"html"`
}

func New(apiKey, from string) *Mailer {
	return &Mailer{
		apiKey:   apiKey,
		from:     from,
		endpoint: resendAPI,
		client:   &http.Client{Timeout: 10 * time.Second},
	}
}

// SendStatusNotification emails the booking contact about an approved or
// denied decision. Best effort: the caller decides what to do with the
// error, and nothing here retries.
func (m *Mailer) SendStatusNotification(booking models.Booking, status string) error {
	subject := fmt.Sprintf("Booking %s - 11 Rock Ranch", strings.ToUpper(status))
	html := fmt.Sprintf(`<h1>11 Rock Ranch</h1>
		<p>Dear %s, your booking for %s has been <b>%s</b>.</p>
		<p>Dates: %s to %s</p>`,
		booking.FirstName, booking.PackageType, status, booking.StartDate, booking.EndDate)

	if m.apiKey == "" {
		log.Printf("mock email: to=%s subject=%q", booking.Email, subject)
		return nil
	}

	payload, err := json.Marshal(email{
		From:    m.from,
		To:      booking.Email,
		Subject: subject,
		Html:    html,
	})
	if err != nil {
		return fmt.Errorf("encoding email: %w", err)
	}

	req, err := http.NewRequest(http.MethodPost, m.endpoint, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("building email request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+m.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := m.client.Do(req)
	if err != nil {
		return fmt.Errorf("sending email: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("email API error: %s", resp.Status)
	}
	return nil
}
