package handler

import (
	"errors"
	"net/http"

	"eventmart/internal/checkout"
	"eventmart/internal/guard"
	"eventmart/internal/middleware"
	"eventmart/internal/order"

	"github.com/gin-gonic/gin"
)

func (h *Handler) Checkout(c *gin.Context) {
	ident, _ := guard.IdentityFrom(c)

	var form order.Customer
	if err := c.ShouldBindJSON(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	orderID, err := h.checkout.PlaceOrder(c.Request.Context(), ident, h.carts.For(ident.ID), form)
	middleware.RecordOrderOperation("checkout", err == nil)

	if err != nil {
		var verr *checkout.ValidationError
		var werr *checkout.WriteError

		switch {
		case errors.As(err, &verr):
			c.JSON(http.StatusUnprocessableEntity, gin.H{"errors": verr.Fields})
		case errors.Is(err, checkout.ErrEmptyCart):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, checkout.ErrCheckoutInFlight):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		case errors.As(err, &werr):
			c.JSON(http.StatusBadGateway, gin.H{
				"error":               werr.Err.Error(),
				"compensation_failed": werr.CompensationErr != nil,
			})
		default:
			c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{"order_id": orderID})
}

// ListOrders answers with the role-scoped view: buyers their own orders,
// vendors their revenue slice, admins everything.
func (h *Handler) ListOrders(c *gin.Context) {
	ident, _ := guard.IdentityFrom(c)

	orders, err := h.orders.ListFor(c.Request.Context(), ident, c.Query("status"))
	middleware.RecordOrderOperation("list", err == nil)

	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{
			"orders": []*order.Order{},
			"error":  "failed to fetch orders",
		})
		return
	}

	if orders == nil {
		orders = []*order.Order{}
	}

	c.JSON(http.StatusOK, gin.H{"orders": orders})
}

type updateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

func (h *Handler) UpdateOrderStatus(c *gin.Context) {
	var req updateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	err := h.orders.UpdateStatus(c.Request.Context(), c.Param("id"), order.Status(req.Status))
	if err != nil {
		switch {
		case errors.Is(err, order.ErrInvalidStatus):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, order.ErrOrderNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update status"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": req.Status})
}
