package services

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/online-bazar/bazar-backend/models"
)

func TestResendMailerSend(t *testing.T) {
	var got resendPayload
	var auth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/emails" {
			t.Errorf("path: %s", r.URL.Path)
		}
		auth = r.Header.Get("Authorization")
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":"email_123"}`))
	}))
	defer srv.Close()

	m := NewResendMailer("re_key", "Bazar <shop@example.com>", srv.URL)
	err := m.Send(context.Background(), Email{
		To:          "buyer@example.com",
		Subject:     "Hello",
		HTML:        "<p>hi</p>",
		Attachments: []Attachment{{Filename: "a.pdf", Content: []byte("%PDF")}},
	})
	if err != nil {
		t.Fatal(err)
	}
	if auth != "Bearer re_key" {
		t.Fatalf("auth header: %q", auth)
	}
	if got.From != "Bazar <shop@example.com>" || len(got.To) != 1 || got.To[0] != "buyer@example.com" {
		t.Fatalf("payload: %+v", got)
	}
	if len(got.Attachments) != 1 || got.Attachments[0].Content != base64.StdEncoding.EncodeToString([]byte("%PDF")) {
		t.Fatalf("attachment: %+v", got.Attachments)
	}
}

func TestResendMailerErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		w.Write([]byte(`{"message":"invalid from"}`))
	}))
	defer srv.Close()

	m := NewResendMailer("re_key", "bad", srv.URL)
	if err := m.Send(context.Background(), Email{To: "x@example.com", Subject: "s"}); err == nil {
		t.Fatal("want error for 422")
	}
	if err := m.Send(context.Background(), Email{Subject: "no recipient"}); err == nil {
		t.Fatal("want error without recipient")
	}
}

func TestEmailTemplatesRender(t *testing.T) {
	order := &models.Order{
		OrderNumber:   "OB-260101-XYZ234",
		CustomerName:  "Rafiq <b>",
		CustomerEmail: "rafiq@example.com",
		Status:        models.OrderStatusShipped,
		Subtotal:      1000,
		ShippingFee:   60,
		Total:         1060,
		Items:         []models.OrderItem{{Name: "Nakshi Kantha", Quantity: 1, UnitPrice: 1000, LineTotal: 1000}},
	}

	conf := OrderConfirmationEmail(order)
	if !strings.Contains(conf.HTML, "OB-260101-XYZ234") || !strings.Contains(conf.HTML, "Nakshi Kantha") {
		t.Fatalf("confirmation html missing order data")
	}
	if !strings.Contains(conf.HTML, "৳1060.00") {
		t.Fatalf("confirmation html should format the total")
	}
	if strings.Contains(conf.HTML, "Rafiq <b>") {
		t.Fatalf("customer name must be escaped")
	}

	status := OrderStatusEmail(order)
	if !strings.Contains(status.Subject, "shipped") {
		t.Fatalf("status subject: %s", status.Subject)
	}

	cart := &models.AbandonedCart{CustomerEmail: "c@example.com", Subtotal: 900}
	first := CartReminderEmail(cart, 1, "https://shop/cart/recover/tok")
	second := CartReminderEmail(cart, 2, "https://shop/cart/recover/tok")
	if first.Subject == second.Subject {
		t.Fatalf("follow-up waves should use a different subject")
	}
	if !strings.Contains(first.HTML, "https://shop/cart/recover/tok") {
		t.Fatalf("reminder html should carry the link")
	}
}
