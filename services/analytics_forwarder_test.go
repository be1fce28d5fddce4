package services

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/online-bazar/bazar-backend/models"
)

func sha(v string) string {
	sum := sha256.Sum256([]byte(v))
	return hex.EncodeToString(sum[:])
}

type recordingSink struct {
	mu      sync.Mutex
	batches [][]AnalyticsEvent
	err     error
}

func (s *recordingSink) Send(_ context.Context, events []AnalyticsEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := make([]AnalyticsEvent, len(events))
	copy(cp, events)
	s.batches = append(s.batches, cp)
	return s.err
}

func (s *recordingSink) total() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, b := range s.batches {
		n += len(b)
	}
	return n
}

func TestNormalizeAnalyticsPhone(t *testing.T) {
	tests := map[string]string{
		"01711-000 000":  "8801711000000",
		"+880 1711000000": "8801711000000",
		"(02) 955-1234":  "029551234",
		"":               "",
	}
	for in, want := range tests {
		if got := NormalizeAnalyticsPhone(in); got != want {
			t.Errorf("NormalizeAnalyticsPhone(%q): want=%q got=%q", in, want, got)
		}
	}
}

func TestNewAnalyticsEventHashesIdentifiers(t *testing.T) {
	value := 1200.0
	req := models.AnalyticsEventRequest{
		EventName:  "AddToCart",
		PageURL:    "https://onlinebazar.com.bd/items/saree",
		UserData:   models.AnalyticsUserData{Email: " Rina@Example.COM ", Phone: "01711000000"},
		CustomData: &models.AnalyticsCustomData{Value: &value},
	}
	now := time.Unix(1_760_000_000, 0)
	ev, err := NewAnalyticsEvent(req, RequestMeta{ClientIP: "203.0.113.9", UserAgent: "UA", UserID: "user-1", FBP: "fb.1.x"}, now)
	if err != nil {
		t.Fatal(err)
	}

	if ev.EventTime != now.Unix() || ev.ActionSource != "website" {
		t.Fatalf("envelope: %+v", ev)
	}
	if _, err := uuid.Parse(ev.EventID); err != nil {
		t.Fatalf("generated event id should be a uuid: %q", ev.EventID)
	}
	if len(ev.UserData.Email) != 1 || ev.UserData.Email[0] != sha("rina@example.com") {
		t.Fatalf("email hash: %v", ev.UserData.Email)
	}
	if ev.UserData.Phone[0] != sha("8801711000000") {
		t.Fatalf("phone hash: %v", ev.UserData.Phone)
	}
	if ev.UserData.ExternalID[0] != sha("user-1") {
		t.Fatalf("external id should fall back to the signed in user")
	}
	if ev.UserData.ClientIP != "203.0.113.9" || ev.UserData.FBP != "fb.1.x" {
		t.Fatalf("request metadata missing: %+v", ev.UserData)
	}
	if ev.CustomData.Currency != models.Currency {
		t.Fatalf("currency should default to %s", models.Currency)
	}
}

func TestNewAnalyticsEventKeepsPrehashedValues(t *testing.T) {
	pre := sha("someone@example.com")
	ev, err := NewAnalyticsEvent(models.AnalyticsEventRequest{
		EventName: "Lead",
		EventID:   "lead-42",
		UserData:  models.AnalyticsUserData{Email: pre},
	}, RequestMeta{}, time.Now())
	if err != nil {
		t.Fatal(err)
	}
	if ev.EventID != "lead-42" || ev.UserData.Email[0] != pre {
		t.Fatalf("got id=%s email=%v", ev.EventID, ev.UserData.Email)
	}
	if ev.UserData.Phone != nil {
		t.Fatalf("empty phone should be omitted")
	}
}

func TestNewAnalyticsEventRejectsUnknownEvent(t *testing.T) {
	_, err := NewAnalyticsEvent(models.AnalyticsEventRequest{EventName: "Hack"}, RequestMeta{}, time.Now())
	var ve *ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("want ValidationError, got %v", err)
	}
}

func TestPurchaseEventDeduplicatesWithPixel(t *testing.T) {
	userID := uuid.New()
	order := &models.Order{
		OrderNumber:   "OB-260101-ABCDEF",
		UserID:        &userID,
		CustomerEmail: "buyer@example.com",
		Total:         1500,
		CreatedAt:     time.Unix(1_760_000_000, 0),
		Items: []models.OrderItem{
			{ItemID: uuid.New(), Quantity: 2},
			{ItemID: uuid.New(), Quantity: 1},
		},
	}
	ev := PurchaseEvent(order, "198.51.100.1", "UA")
	if ev.EventID != "purchase-OB-260101-ABCDEF" || ev.EventName != "Purchase" {
		t.Fatalf("event: %+v", ev)
	}
	if *ev.CustomData.Value != 1500 || *ev.CustomData.NumItems != 3 || len(ev.CustomData.ContentIDs) != 2 {
		t.Fatalf("custom data: %+v", ev.CustomData)
	}
	if ev.UserData.ExternalID[0] != sha(userID.String()) {
		t.Fatalf("external id hash mismatch")
	}
}

func TestForwarderBatchesAndFlushesOnStop(t *testing.T) {
	sink := &recordingSink{}
	f := NewForwarder(sink, ForwarderOptions{QueueSize: 100, BatchSize: 4, FlushInterval: time.Hour})
	f.Start()

	for i := 0; i < 10; i++ {
		if !f.Enqueue(AnalyticsEvent{EventName: "PageView"}) {
			t.Fatalf("enqueue %d rejected", i)
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := f.Stop(ctx); err != nil {
		t.Fatal(err)
	}
	if got := sink.total(); got != 10 {
		t.Fatalf("delivered: want=10 got=%d", got)
	}
	if f.Sent() != 10 {
		t.Fatalf("sent counter: %d", f.Sent())
	}
	for _, b := range sink.batches {
		if len(b) > 4 {
			t.Fatalf("batch larger than BatchSize: %d", len(b))
		}
	}
	if f.Enqueue(AnalyticsEvent{EventName: "PageView"}) {
		t.Fatal("enqueue after stop should be rejected")
	}
}

func TestForwarderDropsWhenQueueFull(t *testing.T) {
	f := NewForwarder(&recordingSink{}, ForwarderOptions{QueueSize: 2, BatchSize: 10, FlushInterval: time.Hour})
	// Not started, so nothing drains the queue.
	f.Enqueue(AnalyticsEvent{})
	f.Enqueue(AnalyticsEvent{})
	if f.Enqueue(AnalyticsEvent{}) {
		t.Fatal("third event should be dropped")
	}
	if f.Dropped() != 1 {
		t.Fatalf("dropped: want=1 got=%d", f.Dropped())
	}
}

func TestForwarderFlushesOnInterval(t *testing.T) {
	sink := &recordingSink{}
	f := NewForwarder(sink, ForwarderOptions{QueueSize: 10, BatchSize: 100, FlushInterval: 20 * time.Millisecond})
	f.Start()
	defer f.Stop(context.Background())

	f.Enqueue(AnalyticsEvent{EventName: "ViewContent"})
	deadline := time.Now().Add(2 * time.Second)
	for sink.total() == 0 {
		if time.Now().After(deadline) {
			t.Fatal("interval flush never happened")
		}
		time.Sleep(10 * time.Millisecond)
	}
}

func TestMetaSinkPostsBatch(t *testing.T) {
	var calls atomic.Int32
	var got metaPayload
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		if r.Method != http.MethodPost || r.URL.Path != "/v19.0/PIXEL/events" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"events_received":2,"fbtrace_id":"abc"}`))
	}))
	defer srv.Close()

	sink := NewMetaSink("PIXEL", "token", "TEST123", srv.URL)
	err := sink.Send(context.Background(), []AnalyticsEvent{{EventName: "PageView"}, {EventName: "Purchase"}})
	if err != nil {
		t.Fatal(err)
	}
	if calls.Load() != 2 {
		t.Fatalf("5xx should be retried, calls=%d", calls.Load())
	}
	if len(got.Data) != 2 || got.AccessToken != "token" || got.TestEventCode != "TEST123" {
		t.Fatalf("payload: %+v", got)
	}
}

func TestMetaSinkReportsClientErrors(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error":{"message":"invalid pixel"}}`))
	}))
	defer srv.Close()

	err := NewMetaSink("PIXEL", "token", "", srv.URL).Send(context.Background(), []AnalyticsEvent{{EventName: "Lead"}})
	if err == nil {
		t.Fatal("want error for 400")
	}
	if calls.Load() != 1 {
		t.Fatalf("4xx must not be retried, calls=%d", calls.Load())
	}
}
