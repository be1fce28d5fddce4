package services

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/online-bazar/bazar-backend/config"
)

type Attachment struct {
	Filename string
	Content  []byte
}

type Email struct {
	To          string
	Subject     string
	HTML        string
	Text        string
	Attachments []Attachment
}

// Mailer sends transactional email.
type Mailer interface {
	Send(ctx context.Context, e Email) error
}

const resendBaseURL = "https://api.resend.com"

// ResendMailer sends email through the Resend HTTP API.
type ResendMailer struct {
	client *resty.Client
	from   string
}

type resendAttachment struct {
	Filename string `json:"filename"`
	Content  string `json:"content"`
}

type resendPayload struct {
	From        string             `json:"from"`
	To          []string           `json:"to"`
	Subject     string             `json:"subject"`
	HTML        string             `json:"html,omitempty"`
	Text        string             `json:"text,omitempty"`
	Attachments []resendAttachment `json:"attachments,omitempty"`
}

type resendResponse struct {
	ID string `json:"id"`
}

// NewResendMailer builds a mailer for apiKey. baseURL may be empty.
func NewResendMailer(apiKey, from, baseURL string) *ResendMailer {
	if baseURL == "" {
		baseURL = resendBaseURL
	}
	client := resty.New().
		SetBaseURL(strings.TrimRight(baseURL, "/")).
		SetAuthToken(apiKey).
		SetHeader("Content-Type", "application/json").
		SetTimeout(10 * time.Second).
		SetRetryCount(2).
		SetRetryWaitTime(500 * time.Millisecond).
		AddRetryCondition(func(r *resty.Response, err error) bool {
			return err != nil || r.StatusCode() >= 500
		})
	return &ResendMailer{client: client, from: from}
}

func (m *ResendMailer) Send(ctx context.Context, e Email) error {
	if strings.TrimSpace(e.To) == "" {
		return fmt.Errorf("email has no recipient")
	}

	payload := resendPayload{
		From:    m.from,
		To:      []string{e.To},
		Subject: e.Subject,
		HTML:    e.HTML,
		Text:    e.Text,
	}
	for _, a := range e.Attachments {
		payload.Attachments = append(payload.Attachments, resendAttachment{
			Filename: a.Filename,
			Content:  base64.StdEncoding.EncodeToString(a.Content),
		})
	}

	var out resendResponse
	resp, err := m.client.R().
		SetContext(ctx).
		SetBody(payload).
		SetResult(&out).
		Post("/emails")
	if err != nil {
		config.Log.Error("[resend] failed to send request", "error", err)
		return fmt.Errorf("failed to send request: %w", err)
	}
	if resp.IsError() {
		config.Log.Error("[resend] api returned error", "status", resp.StatusCode(), "body", truncate(resp.String(), 300))
		return fmt.Errorf("resend api error: status %d", resp.StatusCode())
	}

	config.Log.Info("[resend] email sent", "id", out.ID, "subject", e.Subject)
	return nil
}

// LogMailer records email instead of sending it. Used when no provider is
// configured and in tests.
type LogMailer struct {
	mu   sync.Mutex
	sent []Email
	fail error
}

func NewLogMailer() *LogMailer {
	return &LogMailer{}
}

func (m *LogMailer) Send(ctx context.Context, e Email) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail != nil {
		return m.fail
	}
	m.sent = append(m.sent, e)
	config.Log.Info("[mailer] email captured", "subject", e.Subject, "attachments", len(e.Attachments))
	return nil
}

func (m *LogMailer) Sent() []Email {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Email, len(m.sent))
	copy(out, m.sent)
	return out
}

// SetFailure makes subsequent sends fail with err (nil to recover).
func (m *LogMailer) SetFailure(err error) {
	m.mu.Lock()
	m.fail = err
	m.mu.Unlock()
}
