// Package mailer sends transactional email through the Brevo HTTP API.
package mailer

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Mailer sends a single email. Implementations do not retry.
type Mailer interface {
	Send(to, subject, htmlBody string) error
}

// BrevoMailer posts messages to the Brevo transactional email endpoint.
type BrevoMailer struct {
	url      string
	apiKey   string
	from     string
	fromName string
	client   *http.Client
}

// NewBrevoMailer creates a mailer for the given API endpoint and sender.
func NewBrevoMailer(url, apiKey, from, fromName string) *BrevoMailer {
	return &BrevoMailer{
		url:      url,
		apiKey:   apiKey,
		from:     from,
		fromName: fromName,
		client:   &http.Client{Timeout: 10 * time.Second},
	}
}

type brevoAddress struct {
	Name  string `json:"name,omitempty"`
	Email string `json:"email"`
}

type brevoMessage struct {
	Sender      brevoAddress   `json:"sender"`
	To          []brevoAddress `json:"to"`
	Subject     string         `json:"subject"`
	HTMLContent string         `json:"htmlContent"`
}

// Send posts one message and treats any non-2xx response as failure.
func (m *BrevoMailer) Send(to, subject, htmlBody string) error {
	msg := brevoMessage{
		Sender:      brevoAddress{Name: m.fromName, Email: m.from},
		To:          []brevoAddress{{Email: to}},
		Subject:     subject,
		HTMLContent: htmlBody,
	}

	payload, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("marshal mail payload: %w", err)
	}

	req, err := http.NewRequest(http.MethodPost, m.url, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("build mail request: %w", err)
	}
	req.Header.Set("accept", "application/json")
	req.Header.Set("content-type", "application/json")
	req.Header.Set("api-key", m.apiKey)

	resp, err := m.client.Do(req)
	if err != nil {
		return fmt.Errorf("send mail: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		b, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("brevo returned %d: %s", resp.StatusCode, b)
	}
	return nil
}
