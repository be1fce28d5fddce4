// Package helpers holds the request/response plumbing shared by every
// controller package.
package helpers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/online-bazar/bazar-backend/config"
	"github.com/online-bazar/bazar-backend/models"
	"github.com/online-bazar/bazar-backend/services"
)

// ActivityResourceKey lets create handlers tell the activity logger which
// record they produced.
const ActivityResourceKey = "activityResourceID"

// ParseIDParam reads a UUID path parameter and answers 400 when malformed.
func ParseIDParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Invalid "+name))
		return uuid.Nil, false
	}
	return id, true
}

// BindJSON decodes the body into req and answers 400 on failure.
func BindJSON(c *gin.Context, req any) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Invalid request body: "+err.Error()))
		return false
	}
	return true
}

// BindQuery decodes query parameters into req and answers 400 on failure.
func BindQuery(c *gin.Context, req any) bool {
	if err := c.ShouldBindQuery(req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Invalid query parameters: "+err.Error()))
		return false
	}
	return true
}

func SetActivityResource(c *gin.Context, id uuid.UUID) {
	c.Set(ActivityResourceKey, id.String())
}

// AdminIDFromContext returns the id AdminMiddleware stored.
func AdminIDFromContext(c *gin.Context) (uuid.UUID, bool) {
	v, exists := c.Get("adminID")
	if !exists {
		return uuid.Nil, false
	}
	id, ok := v.(uuid.UUID)
	return id, ok
}

// StatusFor maps a service error to its HTTP status.
func StatusFor(err error) int {
	var vErr *services.ValidationError
	switch {
	case errors.As(err, &vErr):
		return http.StatusBadRequest
	case errors.Is(err, services.ErrNotFound),
		errors.Is(err, services.ErrRecoveryTokenInvalid):
		return http.StatusNotFound
	case errors.Is(err, services.ErrEmptyCart),
		errors.Is(err, services.ErrReasonRequired):
		return http.StatusBadRequest
	case errors.Is(err, services.ErrInvalidCredentials):
		return http.StatusUnauthorized
	case errors.Is(err, services.ErrForbidden),
		errors.Is(err, services.ErrAccountBanned),
		errors.Is(err, services.ErrRegistrationClosed):
		return http.StatusForbidden
	case errors.Is(err, services.ErrInsufficientStock),
		errors.Is(err, services.ErrConflict),
		errors.Is(err, services.ErrEmailTaken),
		errors.Is(err, services.ErrInvalidTransition),
		errors.Is(err, services.ErrDuplicateRegistration),
		errors.Is(err, services.ErrDuplicateReview):
		return http.StatusConflict
	case errors.Is(err, services.ErrItemUnavailable),
		errors.Is(err, services.ErrCouponInvalid):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

// RespondError writes the envelope for err. Unmapped errors are logged under
// tag and answered with fallback so internals never leak.
func RespondError(c *gin.Context, err error, tag, fallback string) {
	status := StatusFor(err)
	if status == http.StatusInternalServerError {
		config.Log.Error("["+tag+"] "+fallback, "error", err, "path", c.FullPath())
		c.JSON(status, models.ErrorResponse(c, fallback))
		return
	}

	var vErr *services.ValidationError
	if errors.As(err, &vErr) {
		c.JSON(status, models.ValidationErrorResponse(c, "Validation failed", vErr.Fields))
		return
	}
	c.JSON(status, models.ErrorResponse(c, err.Error()))
}
