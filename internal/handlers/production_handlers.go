package handlers

import (
	"net/http"

	"snack_factory_backend/internal/services"
	"snack_factory_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// ProductionHandler holds the production service.
type ProductionHandler struct {
	productionService services.ProductionService
}

// NewProductionHandler creates a new ProductionHandler.
func NewProductionHandler(ps services.ProductionService) *ProductionHandler {
	return &ProductionHandler{productionService: ps}
}

// CreateProduction records a batch and consumes the materials it used.
func (h *ProductionHandler) CreateProduction(c *gin.Context) {
	var req services.CreateProductionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err, "CreateProduction: Failed to bind JSON")
		return
	}

	production, err := h.productionService.CreateProduction(c.Request.Context(), req)
	if err != nil {
		respondServiceError(c, err, "CreateProduction: Error from productionService.CreateProduction")
		return
	}
	utils.RespondSuccess(c, http.StatusCreated, "Production record created successfully", production)
}

func (h *ProductionHandler) GetProductions(c *gin.Context) {
	productions, err := h.productionService.GetProductions(c.Request.Context())
	if err != nil {
		respondServiceError(c, err, "GetProductions: Error from productionService.GetProductions")
		return
	}
	utils.RespondList(c, productions, len(productions))
}

func (h *ProductionHandler) GetProductionByID(c *gin.Context) {
	production, err := h.productionService.GetProductionByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, err, "GetProductionByID: Error from productionService.GetProductionByID")
		return
	}
	utils.RespondOK(c, production)
}

func (h *ProductionHandler) UpdateProduction(c *gin.Context) {
	var req services.UpdateProductionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err, "UpdateProduction: Failed to bind JSON")
		return
	}

	production, err := h.productionService.UpdateProduction(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		respondServiceError(c, err, "UpdateProduction: Error from productionService.UpdateProduction")
		return
	}
	utils.RespondSuccess(c, http.StatusOK, "Production record updated successfully", production)
}

func (h *ProductionHandler) DeleteProduction(c *gin.Context) {
	if err := h.productionService.DeleteProduction(c.Request.Context(), c.Param("id")); err != nil {
		respondServiceError(c, err, "DeleteProduction: Error from productionService.DeleteProduction")
		return
	}
	utils.RespondSuccess(c, http.StatusOK, "Production record deleted successfully", nil)
}
