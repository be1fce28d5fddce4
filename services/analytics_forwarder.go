package services

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"regexp"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
	"github.com/online-bazar/bazar-backend/config"
	"github.com/online-bazar/bazar-backend/models"
)

// AnalyticsEvent is a server-side conversion event ready to leave the
// process. Personal fields are already hashed.
type AnalyticsEvent struct {
	EventName      string                      `json:"event_name"`
	EventTime      int64                       `json:"event_time"`
	EventID        string                      `json:"event_id"`
	EventSourceURL string                      `json:"event_source_url,omitempty"`
	ActionSource   string                      `json:"action_source"`
	UserData       AnalyticsEventUser          `json:"user_data"`
	CustomData     *models.AnalyticsCustomData `json:"custom_data,omitempty"`
}

type AnalyticsEventUser struct {
	Email      []string `json:"em,omitempty"`
	Phone      []string `json:"ph,omitempty"`
	ExternalID []string `json:"external_id,omitempty"`
	ClientIP   string   `json:"client_ip_address,omitempty"`
	UserAgent  string   `json:"client_user_agent,omitempty"`
	FBP        string   `json:"fbp,omitempty"`
	FBC        string   `json:"fbc,omitempty"`
}

// RequestMeta is what the HTTP layer knows about the caller.
type RequestMeta struct {
	ClientIP  string
	UserAgent string
	FBP       string
	FBC       string
	UserID    string
}

var sha256Hex = regexp.MustCompile(`^[a-f0-9]{64}$`)

func hashIdentifier(v string) string {
	if v == "" {
		return ""
	}
	if sha256Hex.MatchString(v) {
		return v
	}
	sum := sha256.Sum256([]byte(v))
	return hex.EncodeToString(sum[:])
}

func NormalizeAnalyticsEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// NormalizeAnalyticsPhone keeps digits only and prefixes local Bangladeshi
// mobile numbers with the country code.
func NormalizeAnalyticsPhone(phone string) string {
	var b strings.Builder
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	digits := b.String()
	if len(digits) == 11 && strings.HasPrefix(digits, "01") {
		digits = "88" + digits
	}
	return digits
}

func hashedList(v string) []string {
	if h := hashIdentifier(v); h != "" {
		return []string{h}
	}
	return nil
}

// NewAnalyticsEvent validates a storefront event and enriches it with request
// metadata.
func NewAnalyticsEvent(req models.AnalyticsEventRequest, meta RequestMeta, now time.Time) (AnalyticsEvent, error) {
	if !models.AllowedAnalyticsEvents[req.EventName] {
		return AnalyticsEvent{}, NewValidationError("event_name", "unsupported event")
	}
	eventID := strings.TrimSpace(req.EventID)
	if eventID == "" {
		eventID = uuid.NewString()
	}
	externalID := req.UserData.ExternalID
	if externalID == "" {
		externalID = meta.UserID
	}
	ev := AnalyticsEvent{
		EventName:      req.EventName,
		EventTime:      now.Unix(),
		EventID:        eventID,
		EventSourceURL: req.PageURL,
		ActionSource:   "website",
		UserData: AnalyticsEventUser{
			Email:      hashedList(NormalizeAnalyticsEmail(req.UserData.Email)),
			Phone:      hashedList(NormalizeAnalyticsPhone(req.UserData.Phone)),
			ExternalID: hashedList(externalID),
			ClientIP:   meta.ClientIP,
			UserAgent:  meta.UserAgent,
			FBP:        meta.FBP,
			FBC:        meta.FBC,
		},
		CustomData: req.CustomData,
	}
	if ev.CustomData != nil && ev.CustomData.Value != nil && ev.CustomData.Currency == "" {
		ev.CustomData.Currency = models.Currency
	}
	return ev, nil
}

// PurchaseEvent builds the server-side Purchase for a placed order. The event
// id matches the one the storefront pixel uses so the two are deduplicated.
func PurchaseEvent(order *models.Order, clientIP, userAgent string) AnalyticsEvent {
	value := order.Total
	numItems := 0
	ids := make([]string, 0, len(order.Items))
	for _, it := range order.Items {
		ids = append(ids, it.ItemID.String())
		numItems += it.Quantity
	}
	externalID := ""
	if order.UserID != nil {
		externalID = order.UserID.String()
	}
	return AnalyticsEvent{
		EventName:    "Purchase",
		EventTime:    order.CreatedAt.Unix(),
		EventID:      "purchase-" + order.OrderNumber,
		ActionSource: "website",
		UserData: AnalyticsEventUser{
			Email:      hashedList(NormalizeAnalyticsEmail(order.CustomerEmail)),
			Phone:      hashedList(NormalizeAnalyticsPhone(order.CustomerPhone)),
			ExternalID: hashedList(externalID),
			ClientIP:   clientIP,
			UserAgent:  userAgent,
		},
		CustomData: &models.AnalyticsCustomData{
			Value:       &value,
			Currency:    models.Currency,
			ContentIDs:  ids,
			ContentType: "product",
			NumItems:    &numItems,
		},
	}
}

// Sink delivers a batch of events.
type Sink interface {
	Send(ctx context.Context, events []AnalyticsEvent) error
}

const metaGraphURL = "https://graph.facebook.com"

// MetaSink posts batches to the Meta Conversions API.
type MetaSink struct {
	client      *resty.Client
	pixelID     string
	accessToken string
	testCode    string
	apiVersion  string
}

type metaPayload struct {
	Data          []AnalyticsEvent `json:"data"`
	AccessToken   string           `json:"access_token"`
	TestEventCode string           `json:"test_event_code,omitempty"`
}

type metaResponse struct {
	EventsReceived int    `json:"events_received"`
	FBTraceID      string `json:"fbtrace_id"`
}

func NewMetaSink(pixelID, accessToken, testCode, baseURL string) *MetaSink {
	if baseURL == "" {
		baseURL = metaGraphURL
	}
	client := resty.New().
		SetBaseURL(strings.TrimRight(baseURL, "/")).
		SetTimeout(10 * time.Second).
		SetRetryCount(3).
		SetRetryWaitTime(200 * time.Millisecond).
		SetRetryMaxWaitTime(2 * time.Second).
		AddRetryCondition(func(r *resty.Response, err error) bool {
			return err != nil || r.StatusCode() == 429 || r.StatusCode() >= 500
		})
	return &MetaSink{
		client:      client,
		pixelID:     pixelID,
		accessToken: accessToken,
		testCode:    testCode,
		apiVersion:  "v19.0",
	}
}

func (s *MetaSink) Send(ctx context.Context, events []AnalyticsEvent) error {
	if len(events) == 0 {
		return nil
	}
	var out metaResponse
	resp, err := s.client.R().
		SetContext(ctx).
		SetBody(metaPayload{Data: events, AccessToken: s.accessToken, TestEventCode: s.testCode}).
		SetResult(&out).
		Post(fmt.Sprintf("/%s/%s/events", s.apiVersion, s.pixelID))
	if err != nil {
		return fmt.Errorf("conversions api request: %w", err)
	}
	if resp.IsError() {
		return fmt.Errorf("conversions api error: status %d: %s", resp.StatusCode(), truncate(resp.String(), 200))
	}
	config.Log.Debug("[analytics] batch accepted", "events", out.EventsReceived, "trace", out.FBTraceID)
	return nil
}

// LogSink only logs batches. Used when no pixel is configured.
type LogSink struct{}

func (LogSink) Send(ctx context.Context, events []AnalyticsEvent) error {
	names := make([]string, 0, len(events))
	for _, e := range events {
		names = append(names, e.EventName)
	}
	config.Log.Info("[analytics] events not forwarded", "count", len(events), "events", strings.Join(names, ","))
	return nil
}

type ForwarderOptions struct {
	QueueSize     int
	BatchSize     int
	FlushInterval time.Duration
}

func DefaultForwarderOptions() ForwarderOptions {
	return ForwarderOptions{QueueSize: 1000, BatchSize: 50, FlushInterval: 2 * time.Second}
}

// Forwarder batches analytics events in the background. Enqueue never
// blocks.
type Forwarder struct {
	sink    Sink
	opts    ForwarderOptions
	queue   chan AnalyticsEvent
	stop    chan struct{}
	done    chan struct{}
	once    sync.Once
	started atomic.Bool
	dropped atomic.Int64
	sent    atomic.Int64
}

func NewForwarder(sink Sink, opts ForwarderOptions) *Forwarder {
	def := DefaultForwarderOptions()
	if opts.QueueSize <= 0 {
		opts.QueueSize = def.QueueSize
	}
	if opts.BatchSize <= 0 {
		opts.BatchSize = def.BatchSize
	}
	if opts.FlushInterval <= 0 {
		opts.FlushInterval = def.FlushInterval
	}
	return &Forwarder{
		sink:  sink,
		opts:  opts,
		queue: make(chan AnalyticsEvent, opts.QueueSize),
		stop:  make(chan struct{}),
		done:  make(chan struct{}),
	}
}

func (f *Forwarder) Start() {
	if f.started.Swap(true) {
		return
	}
	go f.run()
}

// Enqueue reports whether the event was accepted.
func (f *Forwarder) Enqueue(ev AnalyticsEvent) bool {
	select {
	case <-f.stop:
		return false
	default:
	}
	select {
	case f.queue <- ev:
		return true
	default:
		f.dropped.Add(1)
		config.Log.Warn("[analytics] queue full, dropping event", "event", ev.EventName)
		return false
	}
}

func (f *Forwarder) Dropped() int64 { return f.dropped.Load() }

func (f *Forwarder) Sent() int64 { return f.sent.Load() }

// Stop flushes what is queued and waits for the worker, or for ctx.
func (f *Forwarder) Stop(ctx context.Context) error {
	f.once.Do(func() { close(f.stop) })
	if !f.started.Load() {
		return nil
	}
	select {
	case <-f.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (f *Forwarder) run() {
	defer close(f.done)
	ticker := time.NewTicker(f.opts.FlushInterval)
	defer ticker.Stop()

	batch := make([]AnalyticsEvent, 0, f.opts.BatchSize)
	flush := func() {
		if len(batch) == 0 {
			return
		}
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := f.sink.Send(ctx, batch); err != nil {
			config.Log.Error("[analytics] failed to forward batch", "events", len(batch), "error", err)
		} else {
			f.sent.Add(int64(len(batch)))
		}
		batch = make([]AnalyticsEvent, 0, f.opts.BatchSize)
	}

	for {
		select {
		case ev := <-f.queue:
			batch = append(batch, ev)
			if len(batch) >= f.opts.BatchSize {
				flush()
			}
		case <-ticker.C:
			flush()
		case <-f.stop:
			for {
				select {
				case ev := <-f.queue:
					batch = append(batch, ev)
					if len(batch) >= f.opts.BatchSize {
						flush()
					}
				default:
					flush()
					return
				}
			}
		}
	}
}
