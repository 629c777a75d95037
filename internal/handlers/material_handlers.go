package handlers

import (
	"net/http"

	"snack_factory_backend/internal/services"
	"snack_factory_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// MaterialHandler exposes raw material stock.
type MaterialHandler struct {
	materialService services.MaterialService
}

// NewMaterialHandler creates a new MaterialHandler.
func NewMaterialHandler(ms services.MaterialService) *MaterialHandler {
	return &MaterialHandler{materialService: ms}
}

func (h *MaterialHandler) CreateMaterial(c *gin.Context) {
	var req services.CreateMaterialRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err, "CreateMaterial: Failed to bind JSON")
		return
	}

	material, err := h.materialService.CreateMaterial(c.Request.Context(), req)
	if err != nil {
		respondServiceError(c, err, "CreateMaterial: Error from materialService.CreateMaterial")
		return
	}
	utils.RespondSuccess(c, http.StatusCreated, "Material created successfully", material)
}

func (h *MaterialHandler) GetMaterials(c *gin.Context) {
	materials, err := h.materialService.GetMaterials(c.Request.Context())
	if err != nil {
		respondServiceError(c, err, "GetMaterials: Error from materialService.GetMaterials")
		return
	}
	utils.RespondList(c, materials, len(materials))
}

func (h *MaterialHandler) GetMaterialByID(c *gin.Context) {
	material, err := h.materialService.GetMaterialByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, err, "GetMaterialByID: Error from materialService.GetMaterialByID")
		return
	}
	utils.RespondOK(c, material)
}

func (h *MaterialHandler) UpdateMaterial(c *gin.Context) {
	var req services.UpdateMaterialRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err, "UpdateMaterial: Failed to bind JSON")
		return
	}

	material, err := h.materialService.UpdateMaterial(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		respondServiceError(c, err, "UpdateMaterial: Error from materialService.UpdateMaterial")
		return
	}
	utils.RespondSuccess(c, http.StatusOK, "Material updated successfully", material)
}

func (h *MaterialHandler) DeleteMaterial(c *gin.Context) {
	if err := h.materialService.DeleteMaterial(c.Request.Context(), c.Param("id")); err != nil {
		respondServiceError(c, err, "DeleteMaterial: Error from materialService.DeleteMaterial")
		return
	}
	utils.RespondSuccess(c, http.StatusOK, "Material deleted successfully", nil)
}

// ReduceQuantity takes material out of stock outside of a production run.
func (h *MaterialHandler) ReduceQuantity(c *gin.Context) {
	var req services.ReduceMaterialRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err, "ReduceQuantity: Failed to bind JSON")
		return
	}

	material, err := h.materialService.ReduceQuantity(c.Request.Context(), req)
	if err != nil {
		respondServiceError(c, err, "ReduceQuantity: Error from materialService.ReduceQuantity")
		return
	}
	utils.RespondSuccess(c, http.StatusOK, "Material quantity reduced successfully", material)
}
