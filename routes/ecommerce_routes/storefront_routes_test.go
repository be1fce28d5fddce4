package ecommerce_routes

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/online-bazar/bazar-backend/controllers/helpers"
	"github.com/online-bazar/bazar-backend/middleware"
	"github.com/online-bazar/bazar-backend/models"
	"github.com/online-bazar/bazar-backend/services"
	"github.com/online-bazar/bazar-backend/testutil"
	"gorm.io/gorm"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newRouter(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	db := testutil.DB(t)
	services.InitMailer(services.NewLogMailer())
	services.InitPayments(nil)
	services.InitForwarder(nil)

	r := gin.New()
	api := r.Group("/api/v1")
	SetupAuthRoutes(api)
	SetupStorefrontRoutes(api)
	SetupCartRoutes(api)
	SetupUserRoutes(api)
	SetupContentRoutes(api)
	return r, db
}

func send(r http.Handler, method, path string, body any, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	for _, ck := range cookies {
		req.AddCookie(ck)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func cookieNamed(rec *httptest.ResponseRecorder, name string) *http.Cookie {
	for _, ck := range rec.Result().Cookies() {
		if ck.Name == name {
			return ck
		}
	}
	return nil
}

func TestRegisterThenLogin(t *testing.T) {
	r, _ := newRouter(t)

	reg := send(r, http.MethodPost, "/api/v1/auth/register", models.RegisterRequest{
		Name: "Rahim Uddin", Email: "Rahim@Example.com", Password: "s3cretpass",
	})
	if reg.Code != http.StatusCreated {
		t.Fatalf("register: %d %s", reg.Code, reg.Body.String())
	}
	if ck := cookieNamed(reg, middleware.AuthCookie); ck == nil || !ck.HttpOnly || ck.Value == "" {
		t.Fatalf("register did not set an HttpOnly auth cookie: %+v", ck)
	}

	dup := send(r, http.MethodPost, "/api/v1/auth/register", models.RegisterRequest{
		Name: "Someone", Email: "rahim@example.com", Password: "anotherpass",
	})
	if dup.Code != http.StatusConflict {
		t.Fatalf("duplicate register: %d", dup.Code)
	}

	bad := send(r, http.MethodPost, "/api/v1/auth/login", models.LoginRequest{Email: "rahim@example.com", Password: "wrong-pass"})
	if bad.Code != http.StatusUnauthorized {
		t.Fatalf("bad login: %d", bad.Code)
	}

	ok := send(r, http.MethodPost, "/api/v1/auth/login", models.LoginRequest{Email: "rahim@example.com", Password: "s3cretpass"})
	if ok.Code != http.StatusOK {
		t.Fatalf("login: %d %s", ok.Code, ok.Body.String())
	}
	auth := cookieNamed(ok, middleware.AuthCookie)
	if auth == nil {
		t.Fatal("login did not set auth cookie")
	}

	me := send(r, http.MethodGet, "/api/v1/user/me", nil, auth)
	if me.Code != http.StatusOK {
		t.Fatalf("me: %d %s", me.Code, me.Body.String())
	}
}

func TestBannedUserCannotLogin(t *testing.T) {
	r, db := newRouter(t)
	hash, _ := services.HashPassword("s3cretpass")
	user := testutil.SeedUser(t, db, "banned@example.com", models.RoleCustomer)
	db.Model(user).Updates(map[string]any{"password_hash": hash, "status": models.UserStatusBanned})

	rec := send(r, http.MethodPost, "/api/v1/auth/login", models.LoginRequest{Email: "banned@example.com", Password: "s3cretpass"})
	if rec.Code != http.StatusForbidden {
		t.Fatalf("status=%d", rec.Code)
	}
	if cookieNamed(rec, middleware.AuthCookie) != nil {
		t.Fatal("banned user received a session")
	}
}

func TestCartActivityIssuesSessionCookie(t *testing.T) {
	r, db := newRouter(t)
	item := testutil.SeedItem(t, db, "Lungi", 450, 10)

	first := send(r, http.MethodPost, "/api/v1/cart/activity", models.CartActivityRequest{
		Items: []models.CartLineInput{{ItemID: item.ID.String(), Quantity: 2}},
	})
	if first.Code != http.StatusOK {
		t.Fatalf("activity: %d %s", first.Code, first.Body.String())
	}
	sid := cookieNamed(first, helpers.CartSessionCookie)
	if sid == nil || !helpers.ValidCartSessionID(sid.Value) {
		t.Fatalf("cart cookie not issued: %+v", sid)
	}

	var carts []models.AbandonedCart
	db.Find(&carts)
	if len(carts) != 1 || carts[0].SessionID != sid.Value || carts[0].Subtotal != 900 {
		t.Fatalf("carts=%+v", carts)
	}

	// Same session, same cart
	again := send(r, http.MethodPost, "/api/v1/cart/activity", models.CartActivityRequest{
		Items: []models.CartLineInput{{ItemID: item.ID.String(), Quantity: 3}},
	}, sid)
	if again.Code != http.StatusOK {
		t.Fatalf("update: %d", again.Code)
	}
	if cookieNamed(again, helpers.CartSessionCookie) != nil {
		t.Fatal("valid session cookie was reissued")
	}
	var count int64
	db.Model(&models.AbandonedCart{}).Count(&count)
	if count != 1 {
		t.Fatalf("carts=%d want 1", count)
	}
}

func TestCartActivityRejectsOversizedInput(t *testing.T) {
	r, db := newRouter(t)
	item := testutil.SeedItem(t, db, "Lungi", 450, 10)
	line := models.CartLineInput{ItemID: item.ID.String(), Quantity: 1}

	phone := send(r, http.MethodPost, "/api/v1/cart/activity", models.CartActivityRequest{
		Items:    []models.CartLineInput{line},
		Customer: &models.CartCustomerInput{Phone: strings.Repeat("9", 51)},
	})
	if phone.Code != http.StatusBadRequest {
		t.Fatalf("oversized phone: %d %s", phone.Code, phone.Body.String())
	}

	many := make([]models.CartLineInput, 201)
	for i := range many {
		many[i] = line
	}
	lines := send(r, http.MethodPost, "/api/v1/cart/activity", models.CartActivityRequest{Items: many})
	if lines.Code != http.StatusBadRequest {
		t.Fatalf("too many lines: %d %s", lines.Code, lines.Body.String())
	}

	var count int64
	db.Model(&models.AbandonedCart{}).Count(&count)
	if count != 0 {
		t.Fatalf("rejected snapshots created %d carts", count)
	}
}

func validOrder(items ...models.CartLineInput) models.CreateOrderRequest {
	return models.CreateOrderRequest{
		CustomerName:    "Karim",
		CustomerEmail:   "karim@example.com",
		CustomerPhone:   "+8801712345678",
		ShippingAddress: models.ShippingAddress{Line1: "House 12, Road 5", City: "Dhaka"},
		Zone:            models.ZoneInsideDhaka,
		PaymentMethod:   models.PaymentMethodCOD,
		Items:           items,
	}
}

func TestCreateOrderErrorMapping(t *testing.T) {
	r, db := newRouter(t)
	inStock := testutil.SeedItem(t, db, "Panjabi", 1200, 1)
	archived := testutil.SeedItem(t, db, "Old Stock", 300, 5, testutil.WithStatus(models.ItemStatusArchived))

	tests := []struct {
		name string
		body any
		want int
	}{
		{"malformed", map[string]string{"zone": "mars"}, http.StatusBadRequest},
		{"empty cart", validOrder(), http.StatusBadRequest},
		{"insufficient stock", validOrder(models.CartLineInput{ItemID: inStock.ID.String(), Quantity: 5}), http.StatusConflict},
		{"unavailable item", validOrder(models.CartLineInput{ItemID: archived.ID.String(), Quantity: 1}), http.StatusUnprocessableEntity},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := send(r, http.MethodPost, "/api/v1/orders", tt.body)
			if rec.Code != tt.want {
				t.Fatalf("status=%d want %d body=%s", rec.Code, tt.want, rec.Body.String())
			}
		})
	}

	var stock int
	db.Model(&models.Item{}).Select("stock").Where("id = ?", inStock.ID).Scan(&stock)
	if stock != 1 {
		t.Fatalf("failed order changed stock to %d", stock)
	}
}

func TestUserRoutesRequireAuth(t *testing.T) {
	r, _ := newRouter(t)
	for _, path := range []string{"/api/v1/user/me", "/api/v1/user/orders"} {
		if rec := send(r, http.MethodGet, path, nil); rec.Code != http.StatusUnauthorized {
			t.Fatalf("%s: status=%d", path, rec.Code)
		}
	}
}
