// Package email sends transactional mail through the Brevo HTTP API.
package email

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const (
	defaultBaseURL = "https://api.brevo.com/v3"
	senderName     = "Promosynch"
	senderEmail    = "noreply@promosynch.com"

	confirmationSubject = "Registration confirmed for {{params.parameter}}"
	confirmationHTML    = "<html><body><h1>Your participation to {{params.parameter}} is confirmed!</h1>" +
		"<p>In order to gain access to the event you are required to show a valid ID</p></body></html>"
)

// BrevoMailer sends transactional email via Brevo's smtp/email endpoint.
// A single call, a single failure path: errors propagate to the caller.
type BrevoMailer struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

func NewBrevoMailer(apiKey string) *BrevoMailer {
	return &BrevoMailer{
		apiKey:  apiKey,
		baseURL: defaultBaseURL,
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

// NewBrevoMailerWithBaseURL overrides the API endpoint. Used in tests.
func NewBrevoMailerWithBaseURL(apiKey, baseURL string) *BrevoMailer {
	m := NewBrevoMailer(apiKey)
	m.baseURL = baseURL
	return m
}

type emailAddress struct {
	Name  string `json:"name,omitempty"`
	Email string `json:"email"`
}

type sendEmailRequest struct {
	Subject     string            `json:"subject"`
	HTMLContent string            `json:"htmlContent"`
	Sender      emailAddress      `json:"sender"`
	To          []emailAddress    `json:"to"`
	Params      map[string]string `json:"params,omitempty"`
}

// SendRegistrationConfirmation sends the attendee confirmation mail,
// templated on the happening title.
func (m *BrevoMailer) SendRegistrationConfirmation(ctx context.Context, toEmail, toName, happeningTitle string) error {
	payload := sendEmailRequest{
		Subject:     confirmationSubject,
		HTMLContent: confirmationHTML,
		Sender:      emailAddress{Name: senderName, Email: senderEmail},
		To:          []emailAddress{{Name: toName, Email: toEmail}},
		Params:      map[string]string{"parameter": happeningTitle},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal email payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.baseURL+"/smtp/email", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build email request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("api-key", m.apiKey)

	resp, err := m.client.Do(req)
	if err != nil {
		return fmt.Errorf("send email: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("email provider returned status %d: %s", resp.StatusCode, string(msg))
	}
	return nil
}
