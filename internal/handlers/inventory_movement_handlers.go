package handlers

import (
	"net/http"

	"snack_factory_backend/internal/models"
	"snack_factory_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

const (
	defaultMovementLimit = 100
	maxMovementLimit     = 500
)

// GetMovements lists the stock movement audit trail, newest first.
func (h *InventoryHandler) GetMovements(c *gin.Context) {
	limit, err := utils.QueryInt(c, "limit", defaultMovementLimit)
	if err != nil || limit <= 0 {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid limit parameter", c.Query("limit")))
		return
	}
	if limit > maxMovementLimit {
		limit = maxMovementLimit
	}

	filters := models.MovementFilters{
		ResourceType: utils.OptionalQuery(c, "resourceType"),
		ResourceID:   utils.OptionalQuery(c, "resourceId"),
		MovementType: utils.OptionalQuery(c, "movementType"),
		Limit:        limit,
	}

	movements, err := h.inventoryService.GetMovements(c.Request.Context(), filters)
	if err != nil {
		respondServiceError(c, err, "GetMovements: Error from inventoryService.GetMovements")
		return
	}
	utils.RespondList(c, movements, len(movements))
}
