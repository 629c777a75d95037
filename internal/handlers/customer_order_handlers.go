package handlers

import (
	"net/http"

	"snack_factory_backend/internal/middleware"
	"snack_factory_backend/internal/services"
	"snack_factory_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// CustomerOrderHandler serves storefront checkout orders.
type CustomerOrderHandler struct {
	customerOrderService services.CustomerOrderService
}

// NewCustomerOrderHandler creates a new CustomerOrderHandler.
func NewCustomerOrderHandler(cs services.CustomerOrderService) *CustomerOrderHandler {
	return &CustomerOrderHandler{customerOrderService: cs}
}

// PlaceOrder creates an order owned by the authenticated caller.
func (h *CustomerOrderHandler) PlaceOrder(c *gin.Context) {
	var req services.PlaceCustomerOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err, "PlaceOrder: Failed to bind JSON")
		return
	}

	order, err := h.customerOrderService.PlaceOrder(c.Request.Context(), middleware.UserID(c), req)
	if err != nil {
		respondServiceError(c, err, "PlaceOrder: Error from customerOrderService.PlaceOrder")
		return
	}
	utils.RespondSuccess(c, http.StatusCreated, "Order placed successfully", order)
}

func (h *CustomerOrderHandler) GetAll(c *gin.Context) {
	orders, err := h.customerOrderService.GetAll(c.Request.Context())
	if err != nil {
		respondServiceError(c, err, "GetAll: Error from customerOrderService.GetAll")
		return
	}
	utils.RespondList(c, orders, len(orders))
}

func (h *CustomerOrderHandler) GetByID(c *gin.Context) {
	order, err := h.customerOrderService.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, err, "GetByID: Error from customerOrderService.GetByID")
		return
	}
	utils.RespondOK(c, order)
}

// MyOrders lists the caller's order history, newest first.
func (h *CustomerOrderHandler) MyOrders(c *gin.Context) {
	orders, err := h.customerOrderService.GetUserHistory(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		respondServiceError(c, err, "MyOrders: Error from customerOrderService.GetUserHistory")
		return
	}
	utils.RespondList(c, orders, len(orders))
}

func (h *CustomerOrderHandler) UpdateStatus(c *gin.Context) {
	var req services.UpdateCustomerOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err, "UpdateStatus: Failed to bind JSON")
		return
	}

	order, err := h.customerOrderService.UpdateStatus(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		respondServiceError(c, err, "UpdateStatus: Error from customerOrderService.UpdateStatus")
		return
	}
	utils.RespondSuccess(c, http.StatusOK, "Order status updated successfully", order)
}

func (h *CustomerOrderHandler) Delete(c *gin.Context) {
	if err := h.customerOrderService.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondServiceError(c, err, "Delete: Error from customerOrderService.Delete")
		return
	}
	utils.RespondSuccess(c, http.StatusOK, "Order deleted successfully", nil)
}
