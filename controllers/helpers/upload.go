package helpers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/online-bazar/bazar-backend/config"
	"github.com/online-bazar/bazar-backend/models"
	"github.com/online-bazar/bazar-backend/services"
)

const MaxImageSize = 10 << 20

// UploadFormImage stores the multipart file in field under folder. It writes
// the error response itself and reports false on failure.
func UploadFormImage(c *gin.Context, field, folder string) (services.UploadedMedia, bool) {
	media := services.GetMedia()
	if media == nil {
		c.JSON(http.StatusServiceUnavailable, models.ErrorResponse(c, "Image uploads are not configured"))
		return services.UploadedMedia{}, false
	}

	fh, err := c.FormFile(field)
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Missing file field "+field))
		return services.UploadedMedia{}, false
	}
	if fh.Size > MaxImageSize {
		c.JSON(http.StatusRequestEntityTooLarge, models.ErrorResponse(c, "Image must be 10MB or smaller"))
		return services.UploadedMedia{}, false
	}
	if ct := fh.Header.Get("Content-Type"); ct != "" && !strings.HasPrefix(ct, "image/") {
		c.JSON(http.StatusUnsupportedMediaType, models.ErrorResponse(c, "Only image files are accepted"))
		return services.UploadedMedia{}, false
	}

	f, err := fh.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Failed to read upload"))
		return services.UploadedMedia{}, false
	}
	defer f.Close()

	uploaded, err := media.UploadImage(c.Request.Context(), f, fh.Filename, folder)
	if err != nil {
		config.Log.Error("[media.upload] upload failed", "error", err, "folder", folder)
		c.JSON(http.StatusBadGateway, models.ErrorResponse(c, "Failed to upload image"))
		return services.UploadedMedia{}, false
	}
	return uploaded, true
}
