package handler

import (
	"errors"
	"net/http"

	"eventmart/internal/cart"
	"eventmart/internal/catalog"
	"eventmart/internal/guard"

	"github.com/gin-gonic/gin"
)

func cartPayload(store *cart.Store) gin.H {
	return gin.H{
		"items": store.Lines(),
		"total": store.Total(),
		"count": store.Count(),
	}
}

func (h *Handler) GetCart(c *gin.Context) {
	ident, _ := guard.IdentityFrom(c)
	c.JSON(http.StatusOK, cartPayload(h.carts.For(ident.ID)))
}

type addToCartRequest struct {
	EventID  string `json:"event_id" binding:"required"`
	Quantity int    `json:"quantity"`
}

func (h *Handler) AddToCart(c *gin.Context) {
	ident, _ := guard.IdentityFrom(c)

	var req addToCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Quantity < 1 {
		req.Quantity = 1
	}

	e, err := h.catalog.GetEvent(c.Request.Context(), req.EventID)
	if err != nil {
		if errors.Is(err, catalog.ErrEventNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load event"})
		return
	}

	store := h.carts.For(ident.ID)
	store.Add(cart.Line{
		EventID:     e.ID,
		Name:        e.Name,
		VendorLabel: e.VendorName,
		ImageURL:    e.ImageURL,
		Price:       e.Price,
		Quantity:    req.Quantity,
	})

	c.JSON(http.StatusOK, cartPayload(store))
}

type updateQuantityRequest struct {
	Quantity int `json:"quantity" binding:"required"`
}

func (h *Handler) UpdateCartQuantity(c *gin.Context) {
	ident, _ := guard.IdentityFrom(c)

	var req updateQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	store := h.carts.For(ident.ID)
	store.SetQuantity(c.Param("id"), req.Quantity)

	c.JSON(http.StatusOK, cartPayload(store))
}

func (h *Handler) RemoveFromCart(c *gin.Context) {
	ident, _ := guard.IdentityFrom(c)

	store := h.carts.For(ident.ID)
	store.Remove(c.Param("id"))

	c.JSON(http.StatusOK, cartPayload(store))
}
