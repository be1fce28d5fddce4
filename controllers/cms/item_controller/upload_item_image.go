package item_controller

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/online-bazar/bazar-backend/controllers/helpers"
	"github.com/online-bazar/bazar-backend/models"
	"github.com/online-bazar/bazar-backend/services"
)

// UploadItemImage godoc
// @Summary Upload an item image
// @Description Uploads to Cloudinary and adds the URL to the gallery. primary=true makes it the primary image.
// @Tags Admin - Items
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param id path string true "Item ID"
// @Param image formData file true "Image file"
// @Param primary formData bool false "Use as primary image"
// @Success 200 {object} models.ApiResponse{data=models.Item}
// @Failure 404 {object} models.ApiResponse "Item not found"
// @Router /admin/items/{id}/images [post]
func UploadItemImage(c *gin.Context) {
	id, ok := helpers.ParseIDParam(c, "id")
	if !ok {
		return
	}

	// Step 1: Make sure the item exists before uploading anything
	ctx := c.Request.Context()
	if _, err := services.GetAdminItem(ctx, id); err != nil {
		helpers.RespondError(c, err, "admin.item.image", "Failed to fetch item")
		return
	}

	// Step 2: Upload
	uploaded, ok := helpers.UploadFormImage(c, "image", services.ItemMediaFolder+"/"+id.String())
	if !ok {
		return
	}

	// Step 3: Attach
	primary, _ := strconv.ParseBool(c.PostForm("primary"))
	item, err := services.AddItemImage(ctx, id, uploaded.URL, primary)
	if err != nil {
		helpers.RespondError(c, err, "admin.item.image", "Failed to attach image")
		return
	}

	c.JSON(http.StatusOK, models.SuccessResponse(c, "Image uploaded successfully", item))
}
