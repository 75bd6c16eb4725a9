package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/jcortes-dev/portfolio-backend/config"
	"github.com/jcortes-dev/portfolio-backend/models"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const resendEndpoint = "https://api.resend.com/emails"

// resendEmailRequest represents the request payload for the Resend API
type resendEmailRequest struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	Text    string   `json:"text"`
}

// resendErrorResponse represents an error response from the Resend API
type resendErrorResponse struct {
	Message string `json:"message"`
}

// Notifier sends the site owner an email whenever the public contact form is
// submitted. It goes through the Resend HTTP API and is a no-op unless
// RESEND_API_KEY is configured.
type Notifier struct {
	apiKey string
	from   string
	to     string
	client *http.Client
	logger zerolog.Logger
}

// NewNotifier builds a Notifier from config. Required keys: RESEND_API_KEY,
// NOTIFY_FROM_EMAIL, NOTIFY_TO_EMAIL.
func NewNotifier(c map[string]string) *Notifier {
	return &Notifier{
		apiKey: config.GetString(c, "RESEND_API_KEY", ""),
		from:   config.GetString(c, "NOTIFY_FROM_EMAIL", ""),
		to:     config.GetString(c, "NOTIFY_TO_EMAIL", ""),
		client: &http.Client{Timeout: 15 * time.Second},
		logger: log.With().Str("service", "notifier").Logger(),
	}
}

// Enabled reports whether the notifier has everything it needs to send.
func (n *Notifier) Enabled() bool {
	return n.apiKey != "" && n.from != "" && n.to != ""
}

// SendContactNotification emails the owner about a new contact submission.
func (n *Notifier) SendContactNotification(submission models.ContactSubmission) error {
	if !n.Enabled() {
		return nil
	}

	sender := submission.FirstName
	if submission.LastName != nil {
		sender = fmt.Sprintf("%s %s", sender, *submission.LastName)
	}

	body := fmt.Sprintf("From: %s <%s>\n\n%s", sender, submission.Email, submission.Message)

	payload := resendEmailRequest{
		From:    n.from,
		To:      []string{n.to},
		Subject: fmt.Sprintf("New contact message from %s", sender),
		Text:    body,
	}

	jsonData, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshaling notification request: %w", err)
	}

	req, err := http.NewRequest(http.MethodPost, resendEndpoint, bytes.NewReader(jsonData))
	if err != nil {
		return fmt.Errorf("building notification request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+n.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("sending notification: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		respBody, _ := io.ReadAll(resp.Body)
		var errResp resendErrorResponse
		if json.Unmarshal(respBody, &errResp) == nil && errResp.Message != "" {
			return fmt.Errorf("resend API returned %d: %s", resp.StatusCode, errResp.Message)
		}
		return fmt.Errorf("resend API returned %d", resp.StatusCode)
	}

	n.logger.Info().Str("to", n.to).Msg("Contact notification sent")
	return nil
}
