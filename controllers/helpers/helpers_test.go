package helpers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/online-bazar/bazar-backend/models"
	"github.com/online-bazar/bazar-backend/services"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestStatusFor(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"validation", services.NewValidationError("zone", "unknown"), http.StatusBadRequest},
		{"not found", services.ErrNotFound, http.StatusNotFound},
		{"wrapped not found", fmt.Errorf("load item: %w", services.ErrNotFound), http.StatusNotFound},
		{"recovery token", services.ErrRecoveryTokenInvalid, http.StatusNotFound},
		{"empty cart", services.ErrEmptyCart, http.StatusBadRequest},
		{"reason required", services.ErrReasonRequired, http.StatusBadRequest},
		{"credentials", services.ErrInvalidCredentials, http.StatusUnauthorized},
		{"forbidden", services.ErrForbidden, http.StatusForbidden},
		{"banned", services.ErrAccountBanned, http.StatusForbidden},
		{"registration closed", services.ErrRegistrationClosed, http.StatusForbidden},
		{"stock", services.ErrInsufficientStock, http.StatusConflict},
		{"conflict", services.ErrConflict, http.StatusConflict},
		{"email taken", services.ErrEmailTaken, http.StatusConflict},
		{"transition", services.ErrInvalidTransition, http.StatusConflict},
		{"duplicate registration", services.ErrDuplicateRegistration, http.StatusConflict},
		{"duplicate review", services.ErrDuplicateReview, http.StatusConflict},
		{"unavailable", services.ErrItemUnavailable, http.StatusUnprocessableEntity},
		{"coupon", services.ErrCouponInvalid, http.StatusUnprocessableEntity},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := StatusFor(tt.err); got != tt.want {
				t.Fatalf("StatusFor(%v)=%d want %d", tt.err, got, tt.want)
			}
		})
	}
}

func TestRespondErrorHidesInternals(t *testing.T) {
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

	RespondError(c, errors.New("pq: connection refused"), "test", "Failed to load")

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status=%d", rec.Code)
	}
	if strings.Contains(rec.Body.String(), "connection refused") {
		t.Fatalf("internal error leaked: %s", rec.Body.String())
	}
}

func TestRespondErrorValidationFields(t *testing.T) {
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodPost, "/", nil)

	RespondError(c, services.NewValidationError("email", "required"), "test", "Failed")

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status=%d", rec.Code)
	}
	var resp models.ApiResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.Fields["email"] != "required" {
		t.Fatalf("fields=%v", resp.Fields)
	}
}

func TestParseIDParam(t *testing.T) {
	r := gin.New()
	r.GET("/things/:id", func(c *gin.Context) {
		if _, ok := ParseIDParam(c, "id"); ok {
			c.Status(http.StatusNoContent)
		}
	})

	for path, want := range map[string]int{
		"/things/not-a-uuid":                           http.StatusBadRequest,
		"/things/0190d5a4-1c2b-7f00-8000-000000000001": http.StatusNoContent,
	} {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		if rec.Code != want {
			t.Fatalf("%s: status=%d want %d", path, rec.Code, want)
		}
	}
}
