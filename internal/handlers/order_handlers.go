package handlers

import (
	"net/http"

	"snack_factory_backend/internal/services"
	"snack_factory_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// OrderHandler holds the dispatch order service.
type OrderHandler struct {
	orderService services.OrderService
}

// NewOrderHandler creates a new OrderHandler.
func NewOrderHandler(os services.OrderService) *OrderHandler {
	return &OrderHandler{orderService: os}
}

// CreateOrder reserves stock for the item and records the dispatch order.
func (h *OrderHandler) CreateOrder(c *gin.Context) {
	var req services.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err, "CreateOrder: Failed to bind JSON")
		return
	}

	order, err := h.orderService.CreateOrder(c.Request.Context(), req)
	if err != nil {
		respondServiceError(c, err, "CreateOrder: Error from orderService.CreateOrder")
		return
	}
	utils.RespondSuccess(c, http.StatusCreated, "Order created successfully", order)
}

func (h *OrderHandler) GetOrders(c *gin.Context) {
	orders, err := h.orderService.GetOrders(c.Request.Context())
	if err != nil {
		respondServiceError(c, err, "GetOrders: Error from orderService.GetOrders")
		return
	}
	utils.RespondList(c, orders, len(orders))
}

func (h *OrderHandler) GetOrdersByStatus(c *gin.Context) {
	orders, err := h.orderService.GetOrdersByStatus(c.Request.Context(), c.Param("status"))
	if err != nil {
		respondServiceError(c, err, "GetOrdersByStatus: Error from orderService.GetOrdersByStatus")
		return
	}
	utils.RespondList(c, orders, len(orders))
}

func (h *OrderHandler) GetOrderByID(c *gin.Context) {
	order, err := h.orderService.GetOrderByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, err, "GetOrderByID: Error from orderService.GetOrderByID")
		return
	}
	utils.RespondOK(c, order)
}

func (h *OrderHandler) UpdateOrderStatus(c *gin.Context) {
	var req services.UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err, "UpdateOrderStatus: Failed to bind JSON")
		return
	}

	order, err := h.orderService.UpdateOrderStatus(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		respondServiceError(c, err, "UpdateOrderStatus: Error from orderService.UpdateOrderStatus")
		return
	}
	utils.RespondSuccess(c, http.StatusOK, "Order status updated successfully", order)
}

// DeleteOrder removes the order and returns its reserved stock.
func (h *OrderHandler) DeleteOrder(c *gin.Context) {
	if _, err := h.orderService.DeleteOrder(c.Request.Context(), c.Param("id")); err != nil {
		respondServiceError(c, err, "DeleteOrder: Error from orderService.DeleteOrder")
		return
	}
	utils.RespondSuccess(c, http.StatusOK, "Order deleted successfully", nil)
}
