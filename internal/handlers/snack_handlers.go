package handlers

import (
	"net/http"

	"snack_factory_backend/internal/models"
	"snack_factory_backend/internal/services"
	"snack_factory_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// SnackHandler serves the public catalog.
type SnackHandler struct {
	snackService services.SnackService
}

// NewSnackHandler creates a new SnackHandler.
func NewSnackHandler(ss services.SnackService) *SnackHandler {
	return &SnackHandler{snackService: ss}
}

func (h *SnackHandler) CreateSnack(c *gin.Context) {
	var req services.CreateSnackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err, "CreateSnack: Failed to bind JSON")
		return
	}

	snack, err := h.snackService.CreateSnack(c.Request.Context(), req)
	if err != nil {
		respondServiceError(c, err, "CreateSnack: Error from snackService.CreateSnack")
		return
	}
	utils.RespondSuccess(c, http.StatusCreated, "Snack created successfully", snack)
}

// GetSnacks supports ?category= and ?inStock= filters.
func (h *SnackHandler) GetSnacks(c *gin.Context) {
	inStock, err := utils.QueryBool(c, "inStock")
	if err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid inStock parameter", c.Query("inStock")))
		return
	}
	filters := models.SnackFilters{Category: utils.OptionalQuery(c, "category"), InStock: inStock}

	snacks, err := h.snackService.GetSnacks(c.Request.Context(), filters)
	if err != nil {
		respondServiceError(c, err, "GetSnacks: Error from snackService.GetSnacks")
		return
	}
	utils.RespondList(c, snacks, len(snacks))
}

func (h *SnackHandler) GetSnackByID(c *gin.Context) {
	snack, err := h.snackService.GetSnackByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, err, "GetSnackByID: Error from snackService.GetSnackByID")
		return
	}
	utils.RespondOK(c, snack)
}

func (h *SnackHandler) UpdateSnack(c *gin.Context) {
	var req services.UpdateSnackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err, "UpdateSnack: Failed to bind JSON")
		return
	}

	snack, err := h.snackService.UpdateSnack(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		respondServiceError(c, err, "UpdateSnack: Error from snackService.UpdateSnack")
		return
	}
	utils.RespondSuccess(c, http.StatusOK, "Snack updated successfully", snack)
}

func (h *SnackHandler) DeleteSnack(c *gin.Context) {
	if err := h.snackService.DeleteSnack(c.Request.Context(), c.Param("id")); err != nil {
		respondServiceError(c, err, "DeleteSnack: Error from snackService.DeleteSnack")
		return
	}
	utils.RespondSuccess(c, http.StatusOK, "Snack deleted successfully", nil)
}
