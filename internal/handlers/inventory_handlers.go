package handlers

import (
	"net/http"

	"snack_factory_backend/internal/services"
	"snack_factory_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// InventoryHandler exposes finished-goods stock.
type InventoryHandler struct {
	inventoryService services.InventoryService
}

// NewInventoryHandler creates a new InventoryHandler.
func NewInventoryHandler(is services.InventoryService) *InventoryHandler {
	return &InventoryHandler{inventoryService: is}
}

func (h *InventoryHandler) CreateItem(c *gin.Context) {
	var req services.CreateInventoryItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err, "CreateItem: Failed to bind JSON")
		return
	}

	item, err := h.inventoryService.CreateItem(c.Request.Context(), req)
	if err != nil {
		respondServiceError(c, err, "CreateItem: Error from inventoryService.CreateItem")
		return
	}
	utils.RespondSuccess(c, http.StatusCreated, "Inventory item created successfully", item)
}

func (h *InventoryHandler) GetItems(c *gin.Context) {
	items, err := h.inventoryService.GetItems(c.Request.Context())
	if err != nil {
		respondServiceError(c, err, "GetItems: Error from inventoryService.GetItems")
		return
	}
	utils.RespondList(c, items, len(items))
}

func (h *InventoryHandler) GetItemByID(c *gin.Context) {
	item, err := h.inventoryService.GetItemByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, err, "GetItemByID: Error from inventoryService.GetItemByID")
		return
	}
	utils.RespondOK(c, item)
}

// UpdateItem edits descriptive fields; a quantity in the body is applied as a stock adjustment.
func (h *InventoryHandler) UpdateItem(c *gin.Context) {
	var req services.UpdateInventoryItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err, "UpdateItem: Failed to bind JSON")
		return
	}

	item, err := h.inventoryService.UpdateItem(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		respondServiceError(c, err, "UpdateItem: Error from inventoryService.UpdateItem")
		return
	}
	utils.RespondSuccess(c, http.StatusOK, "Inventory item updated successfully", item)
}

func (h *InventoryHandler) DeleteItem(c *gin.Context) {
	if err := h.inventoryService.DeleteItem(c.Request.Context(), c.Param("id")); err != nil {
		respondServiceError(c, err, "DeleteItem: Error from inventoryService.DeleteItem")
		return
	}
	utils.RespondSuccess(c, http.StatusOK, "Inventory item deleted successfully", nil)
}

func (h *InventoryHandler) UpdateStock(c *gin.Context) {
	var req services.UpdateStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err, "UpdateStock: Failed to bind JSON")
		return
	}

	item, err := h.inventoryService.UpdateStock(c.Request.Context(), req)
	if err != nil {
		respondServiceError(c, err, "UpdateStock: Error from inventoryService.UpdateStock")
		return
	}
	utils.RespondSuccess(c, http.StatusOK, "Stock updated successfully", item)
}

func (h *InventoryHandler) ReduceStock(c *gin.Context) {
	var req services.ReduceStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err, "ReduceStock: Failed to bind JSON")
		return
	}

	item, err := h.inventoryService.ReduceStock(c.Request.Context(), req)
	if err != nil {
		respondServiceError(c, err, "ReduceStock: Error from inventoryService.ReduceStock")
		return
	}
	utils.RespondSuccess(c, http.StatusOK, "Stock reduced successfully", item)
}
