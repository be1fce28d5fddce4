package item_controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/online-bazar/bazar-backend/config"
	"github.com/online-bazar/bazar-backend/controllers/helpers"
	"github.com/online-bazar/bazar-backend/models"
	"github.com/online-bazar/bazar-backend/services"
)

// CreateItem godoc
// @Summary Create an item
// @Description Slug is derived from the name when omitted. Status defaults to draft.
// @Tags Admin - Items
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body models.ItemRequest true "Item"
// @Success 201 {object} models.ApiResponse{data=models.Item}
// @Failure 400 {object} models.ApiResponse "Invalid request"
// @Failure 409 {object} models.ApiResponse "Slug already used"
// @Router /admin/items [post]
func CreateItem(c *gin.Context) {
	// Step 1: Parse request
	var req models.ItemRequest
	if !helpers.BindJSON(c, &req) {
		return
	}

	// Step 2: Create
	item, err := services.CreateItem(c.Request.Context(), req)
	if err != nil {
		helpers.RespondError(c, err, "admin.item.create", "Failed to create item")
		return
	}

	// Step 3: Hand the id to the activity logger
	helpers.SetActivityResource(c, item.ID)

	config.Log.Info("[admin.item.create] item created", "item_id", item.ID.String(), "slug", item.Slug)
	c.JSON(http.StatusCreated, models.SuccessResponse(c, "Item created successfully", item))
}
