package middleware

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/online-bazar/bazar-backend/config"
	"github.com/online-bazar/bazar-backend/models"
	"github.com/online-bazar/bazar-backend/services"
)

// ════════════════════════════════════════════════════════════
// Configuration Maps
// ════════════════════════════════════════════════════════════

// pathToResourceType maps URL path segments to resource types
var pathToResourceType = map[string]string{
	"items":         models.ResourceTypeItem,
	"categories":    models.ResourceTypeCategory,
	"orders":        models.ResourceTypeOrder,
	"users":         models.ResourceTypeUser,
	"reviews":       models.ResourceTypeReview,
	"coupons":       models.ResourceTypeCoupon,
	"blog":          models.ResourceTypeBlogPost,
	"registrations": models.ResourceTypeRegistration,
	"carts":         models.ResourceTypeAbandonedCart,
	"settings":      models.ResourceTypeSettings,
}

// resourceTypeToNameField maps resource types to the JSON field used as
// the human readable name in the log
var resourceTypeToNameField = map[string]string{
	models.ResourceTypeItem:          "name",
	models.ResourceTypeCategory:      "name",
	models.ResourceTypeOrder:         "order_number",
	models.ResourceTypeUser:          "email",
	models.ResourceTypeReview:        "author_name",
	models.ResourceTypeCoupon:        "code",
	models.ResourceTypeBlogPost:      "title",
	models.ResourceTypeRegistration:  "email",
	models.ResourceTypeAbandonedCart: "customer_email",
}

// resourceModels builds an empty model to load a snapshot into
var resourceModels = map[string]func() any{
	models.ResourceTypeItem:          func() any { return &models.Item{} },
	models.ResourceTypeCategory:      func() any { return &models.Category{} },
	models.ResourceTypeOrder:         func() any { return &models.Order{} },
	models.ResourceTypeUser:          func() any { return &models.User{} },
	models.ResourceTypeReview:        func() any { return &models.Review{} },
	models.ResourceTypeCoupon:        func() any { return &models.Coupon{} },
	models.ResourceTypeBlogPost:      func() any { return &models.BlogPost{} },
	models.ResourceTypeRegistration:  func() any { return &models.Registration{} },
	models.ResourceTypeAbandonedCart: func() any { return &models.AbandonedCart{} },
	models.ResourceTypeSettings:      func() any { return &models.ShippingSettings{} },
}

// methodToActionVerb maps HTTP methods to action verbs
var methodToActionVerb = map[string]string{
	http.MethodPost:   "created",
	http.MethodPatch:  "updated",
	http.MethodPut:    "updated",
	http.MethodDelete: "deleted",
}

// ════════════════════════════════════════════════════════════
// Activity Logging Middleware
// ════════════════════════════════════════════════════════════

// ActivityLoggingMiddleware records admin writes with before/after snapshots.
// Must be used AFTER AdminMiddleware (which sets adminID and adminEmail).
func ActivityLoggingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		actionVerb := methodToActionVerb[c.Request.Method]
		if actionVerb == "" {
			c.Next()
			return
		}

		adminIDRaw, idOK := c.Get("adminID")
		adminEmailRaw, emailOK := c.Get("adminEmail")
		adminID, _ := adminIDRaw.(uuid.UUID)
		adminEmail, _ := adminEmailRaw.(string)
		if !idOK || !emailOK || adminID == uuid.Nil {
			config.Log.Warn("[activity-logging] admin info not in context", "path", c.Request.URL.Path)
			c.Next()
			return
		}

		path := c.FullPath()
		if path == "" {
			path = c.Request.URL.Path
		}
		resourceType := extractResourceType(path)
		if resourceType == "" {
			config.Log.Debug("[activity-logging] could not determine resource type", "path", path)
			c.Next()
			return
		}
		resourceID := c.Param("id")
		action := actionVerb + "_" + resourceType

		var before any
		if c.Request.Method != http.MethodPost || resourceID != "" {
			before = fetchResource(c, resourceType, resourceID)
		}

		c.Next()

		statusCode := c.Writer.Status()
		req := services.LogActivityRequest{
			AdminID:      adminID,
			AdminEmail:   adminEmail,
			Action:       action,
			ResourceType: resourceType,
			ResourceID:   resourceID,
			ResourceName: extractResourceName(resourceType, before),
			IPAddress:    c.ClientIP(),
			UserAgent:    c.Request.UserAgent(),
		}

		if statusCode >= 200 && statusCode < 300 {
			if id, ok := c.Get("activityResourceID"); ok && req.ResourceID == "" {
				req.ResourceID, _ = id.(string)
			}
			var after any
			if c.Request.Method != http.MethodDelete {
				after = fetchResource(c, resourceType, req.ResourceID)
			}
			if name := extractResourceName(resourceType, after); name != "" {
				req.ResourceName = name
			}
			req.Changes = services.CreateChanges(before, after)
			req.Status = models.StatusSuccess
			services.LogActivity(c.Request.Context(), req)
			config.Log.Info("[activity-logging] success", "action", action, "admin_email", adminEmail)
			return
		}

		req.Status = models.StatusFailed
		req.ErrorMessage = "Request failed with status " + strconv.Itoa(statusCode) + " " + http.StatusText(statusCode)
		services.LogActivity(c.Request.Context(), req)
		config.Log.Warn("[activity-logging] failed", "action", action, "admin_email", adminEmail, "status", statusCode)
	}
}

// ════════════════════════════════════════════════════════════
// Helper Functions
// ════════════════════════════════════════════════════════════

// extractResourceType walks the path from the end and returns the first
// segment that names a resource.
// e.g. "/api/v1/admin/orders/:id/status" → "order"
func extractResourceType(path string) string {
	parts := strings.Split(path, "/")
	for i := len(parts) - 1; i >= 0; i-- {
		if isIDParam(parts[i]) {
			continue
		}
		if resourceType, exists := pathToResourceType[parts[i]]; exists {
			return resourceType
		}
	}
	return ""
}

func isIDParam(segment string) bool {
	if segment == "" || strings.HasPrefix(segment, ":") {
		return true
	}
	_, err := uuid.Parse(segment)
	return err == nil
}

// fetchResource loads the current row for the snapshot. Settings are a
// single row and have no id.
func fetchResource(c *gin.Context, resourceType, resourceID string) any {
	newModel, ok := resourceModels[resourceType]
	if !ok {
		return nil
	}
	obj := newModel()
	db := config.DB.WithContext(c.Request.Context())

	var err error
	switch {
	case resourceType == models.ResourceTypeSettings:
		err = db.Order("id").First(obj).Error
	case resourceID == "":
		return nil
	default:
		if _, perr := uuid.Parse(resourceID); perr != nil {
			return nil
		}
		err = db.First(obj, "id = ?", resourceID).Error
	}
	if err != nil {
		config.Log.Debug("[activity-logging] snapshot not loaded", "resource", resourceType, "resource_id", resourceID, "error", err)
		return nil
	}
	return obj
}

// extractResourceName extracts the name/identifier from a resource object
func extractResourceName(resourceType string, obj any) string {
	if obj == nil {
		return ""
	}
	fieldName := resourceTypeToNameField[resourceType]
	if fieldName == "" {
		return ""
	}

	data, err := json.Marshal(obj)
	if err != nil {
		return ""
	}
	var resourceMap map[string]any
	if err := json.Unmarshal(data, &resourceMap); err != nil {
		return ""
	}
	if value, exists := resourceMap[fieldName]; exists {
		return toString(value)
	}
	return ""
}

func toString(v any) string {
	switch val := v.(type) {
	case string:
		return val
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case nil:
		return ""
	default:
		data, err := json.Marshal(val)
		if err != nil {
			return ""
		}
		return string(data)
	}
}
