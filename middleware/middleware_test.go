package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/online-bazar/bazar-backend/config"
	"github.com/online-bazar/bazar-backend/models"
	"github.com/online-bazar/bazar-backend/services"
	"github.com/online-bazar/bazar-backend/testutil"
	"github.com/redis/go-redis/v9"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func tokenFor(t *testing.T, u *models.User) string {
	t.Helper()
	tok, err := services.GenerateToken(u.ID, u.Email, u.Name, u.Role)
	if err != nil {
		t.Fatal(err)
	}
	return tok
}

func whoAmI(c *gin.Context) {
	id, ok := GetUserIDFromContext(c)
	if !ok {
		c.String(http.StatusOK, "guest")
		return
	}
	c.String(http.StatusOK, id.String())
}

func TestAuthMiddleware(t *testing.T) {
	db := testutil.DB(t)
	user := testutil.SeedUser(t, db, "auth@example.com", models.RoleCustomer)
	token := tokenFor(t, user)

	r := gin.New()
	r.GET("/me", AuthMiddleware(), whoAmI)
	r.GET("/maybe", OptionalAuth(), whoAmI)

	tests := []struct {
		name     string
		path     string
		setup    func(*http.Request)
		wantCode int
		wantBody string
	}{
		{name: "missing token", path: "/me", wantCode: http.StatusUnauthorized},
		{name: "bearer", path: "/me", setup: func(r *http.Request) { r.Header.Set("Authorization", "Bearer "+token) }, wantCode: http.StatusOK, wantBody: user.ID.String()},
		{name: "cookie", path: "/me", setup: func(r *http.Request) { r.AddCookie(&http.Cookie{Name: AuthCookie, Value: token}) }, wantCode: http.StatusOK, wantBody: user.ID.String()},
		{name: "garbage", path: "/me", setup: func(r *http.Request) { r.Header.Set("Authorization", "Bearer nope") }, wantCode: http.StatusUnauthorized},
		{name: "wrong scheme", path: "/me", setup: func(r *http.Request) { r.Header.Set("Authorization", "Basic "+token) }, wantCode: http.StatusUnauthorized},
		{name: "optional anonymous", path: "/maybe", wantCode: http.StatusOK, wantBody: "guest"},
		{name: "optional bad token", path: "/maybe", setup: func(r *http.Request) { r.Header.Set("Authorization", "Bearer nope") }, wantCode: http.StatusOK, wantBody: "guest"},
		{name: "optional user", path: "/maybe", setup: func(r *http.Request) { r.Header.Set("Authorization", "Bearer "+token) }, wantCode: http.StatusOK, wantBody: user.ID.String()},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			if tt.setup != nil {
				tt.setup(req)
			}
			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, req)
			if rec.Code != tt.wantCode {
				t.Fatalf("status: got=%d want=%d body=%s", rec.Code, tt.wantCode, rec.Body.String())
			}
			if tt.wantBody != "" && rec.Body.String() != tt.wantBody {
				t.Fatalf("body: got=%q want=%q", rec.Body.String(), tt.wantBody)
			}
		})
	}
}

func TestAdminMiddlewareChecksDatabaseRole(t *testing.T) {
	db := testutil.DB(t)
	admin := testutil.SeedUser(t, db, "admin@example.com", models.RoleAdmin)
	customer := testutil.SeedUser(t, db, "customer@example.com", models.RoleCustomer)
	demoted := testutil.SeedUser(t, db, "demoted@example.com", models.RoleAdmin)
	banned := testutil.SeedUser(t, db, "banned@example.com", models.RoleAdmin)

	// Tokens are minted before the role change to show the DB wins.
	demotedToken := tokenFor(t, demoted)
	if err := db.Model(demoted).Update("role", models.RoleCustomer).Error; err != nil {
		t.Fatal(err)
	}
	if err := db.Model(banned).Update("status", models.UserStatusBanned).Error; err != nil {
		t.Fatal(err)
	}

	r := gin.New()
	r.GET("/admin/ping", AuthMiddleware(), AdminMiddleware(), func(c *gin.Context) {
		c.String(http.StatusOK, c.GetString("adminEmail"))
	})

	tests := []struct {
		name  string
		token string
		want  int
	}{
		{name: "admin", token: tokenFor(t, admin), want: http.StatusOK},
		{name: "customer", token: tokenFor(t, customer), want: http.StatusForbidden},
		{name: "demoted", token: demotedToken, want: http.StatusForbidden},
		{name: "banned", token: tokenFor(t, banned), want: http.StatusForbidden},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/admin/ping", nil)
			req.Header.Set("Authorization", "Bearer "+tt.token)
			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, req)
			if rec.Code != tt.want {
				t.Fatalf("status: got=%d want=%d", rec.Code, tt.want)
			}
		})
	}
}

func TestRateLimiterWithoutRedis(t *testing.T) {
	hits := 0
	r := gin.New()
	r.GET("/x", rateLimiter(func() *redis.Client { return nil }, 1, time.Minute), func(c *gin.Context) {
		hits++
		c.Status(http.StatusNoContent)
	})
	for i := 0; i < 3; i++ {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/x", nil))
		if rec.Code != http.StatusNoContent {
			t.Fatalf("request %d: status %d", i, rec.Code)
		}
	}
	if hits != 3 {
		t.Fatalf("handler hits: want=3 got=%d", hits)
	}
}

func TestRateLimiterFailsOpenWhenRedisIsDown(t *testing.T) {
	rdb := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 100 * time.Millisecond,
		MaxRetries:  -1,
	})
	t.Cleanup(func() { _ = rdb.Close() })

	r := gin.New()
	r.GET("/x", rateLimiter(func() *redis.Client { return rdb }, 1, time.Minute), func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/x", nil))
	if rec.Code != http.StatusNoContent {
		t.Fatalf("status: got=%d want=%d", rec.Code, http.StatusNoContent)
	}
}

func TestExtractResourceType(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"/api/v1/admin/items/:id", models.ResourceTypeItem},
		{"/api/v1/admin/orders/:id/status", models.ResourceTypeOrder},
		{"/api/v1/admin/blog/:id/cover", models.ResourceTypeBlogPost},
		{"/api/v1/admin/carts/:id/remind", models.ResourceTypeAbandonedCart},
		{"/api/v1/admin/settings/shipping", models.ResourceTypeSettings},
		{"/api/v1/admin/categories/" + uuid.NewString(), models.ResourceTypeCategory},
		{"/api/v1/admin/reports/overview", ""},
	}
	for _, tt := range tests {
		if got := extractResourceType(tt.path); got != tt.want {
			t.Errorf("%s: got=%q want=%q", tt.path, got, tt.want)
		}
	}
}

func TestActivityLoggingRecordsSnapshots(t *testing.T) {
	db := testutil.DB(t)
	admin := testutil.SeedUser(t, db, "ops@example.com", models.RoleAdmin)
	item := testutil.SeedItem(t, db, "Old Name", 100, 5)

	r := gin.New()
	admins := r.Group("/api/v1/admin", AuthMiddleware(), AdminMiddleware(), ActivityLoggingMiddleware())
	admins.PATCH("/items/:id", func(c *gin.Context) {
		if err := config.DB.Model(&models.Item{}).Where("id = ?", c.Param("id")).Update("name", "New Name").Error; err != nil {
			c.Status(http.StatusInternalServerError)
			return
		}
		c.Status(http.StatusOK)
	})
	admins.DELETE("/coupons/:id", func(c *gin.Context) {
		c.JSON(http.StatusNotFound, models.ErrorResponse(c, "Coupon not found"))
	})
	admins.GET("/items", func(c *gin.Context) { c.Status(http.StatusOK) })

	send := func(method, path string) {
		req := httptest.NewRequest(method, path, strings.NewReader("{}"))
		req.Header.Set("Authorization", "Bearer "+tokenFor(t, admin))
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)
	}
	send(http.MethodPatch, "/api/v1/admin/items/"+item.ID.String())
	send(http.MethodDelete, "/api/v1/admin/coupons/"+uuid.NewString())
	send(http.MethodGet, "/api/v1/admin/items")

	var logs []models.ActivityLog
	if err := db.Find(&logs).Error; err != nil {
		t.Fatal(err)
	}
	if len(logs) != 2 {
		t.Fatalf("logs: want=2 got=%d", len(logs))
	}
	byAction := map[string]models.ActivityLog{}
	for _, l := range logs {
		byAction[l.Action] = l
	}

	update := byAction["updated_item"]
	if update.Action != "updated_item" || update.Status != models.StatusSuccess || update.ResourceName != "New Name" || update.AdminID != admin.ID {
		t.Fatalf("update log: %+v", update)
	}
	var changes struct {
		Before struct{ Name string } `json:"before"`
		After  struct{ Name string } `json:"after"`
	}
	if err := json.Unmarshal(update.Changes, &changes); err != nil {
		t.Fatal(err)
	}
	if changes.Before.Name != "Old Name" || changes.After.Name != "New Name" {
		t.Fatalf("changes: %+v", changes)
	}

	failed, ok := byAction["deleted_coupon"]
	if !ok || failed.Status != models.StatusFailed || !strings.Contains(failed.ErrorMessage, "404") {
		t.Fatalf("failed log: %+v", failed)
	}
}

func TestCORSAllowsConfiguredOrigins(t *testing.T) {
	r := gin.New()
	r.Use(CORS([]string{"https://shop.example.com"}))
	r.GET("/x", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodOptions, "/x", nil)
	req.Header.Set("Origin", "https://shop.example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("preflight status: got=%d", rec.Code)
	}
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "https://shop.example.com" {
		t.Fatalf("allow-origin: %q", got)
	}
	if got := rec.Header().Get("Access-Control-Allow-Credentials"); got != "true" {
		t.Fatalf("allow-credentials: %q", got)
	}

	req = httptest.NewRequest(http.MethodOptions, "/x", nil)
	req.Header.Set("Origin", "https://evil.example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	if rec.Header().Get("Access-Control-Allow-Origin") != "" {
		t.Fatal("unknown origin must not be allowed")
	}
}

func TestRequestIDPropagates(t *testing.T) {
	r := gin.New()
	r.Use(RequestID(), RequestLogger())
	r.GET("/x", func(c *gin.Context) { c.String(http.StatusOK, c.GetString("requestID")) })

	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	if rec.Body.String() != "abc-123" || rec.Header().Get(RequestIDHeader) != "abc-123" {
		t.Fatalf("request id not kept: body=%q header=%q", rec.Body.String(), rec.Header().Get(RequestIDHeader))
	}

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/x", nil))
	if _, err := uuid.Parse(rec.Body.String()); err != nil {
		t.Fatalf("generated request id: %q", rec.Body.String())
	}
}
