package handler

import (
	"errors"
	"net/http"

	"eventmart/internal/catalog"
	"eventmart/internal/guard"

	"github.com/gin-gonic/gin"
)

func (h *Handler) ListEvents(c *gin.Context) {
	events, err := h.catalog.ListEvents(c.Request.Context(), c.Query("type"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list events"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"events": events})
}

func (h *Handler) GetEvent(c *gin.Context) {
	e, err := h.catalog.GetEvent(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, catalog.ErrEventNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get event"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"event": e})
}

func (h *Handler) CreateEvent(c *gin.Context) {
	ident, _ := guard.IdentityFrom(c)

	var input catalog.EventInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	e, err := h.catalog.CreateEvent(c.Request.Context(), ident.ID, input)
	if err != nil {
		writeCatalogError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"event": e})
}

func (h *Handler) UpdateEvent(c *gin.Context) {
	ident, _ := guard.IdentityFrom(c)

	var input catalog.EventInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	e, err := h.catalog.UpdateEvent(c.Request.Context(), c.Param("id"), ident.ID, input)
	if err != nil {
		writeCatalogError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"event": e})
}

func (h *Handler) DeleteEvent(c *gin.Context) {
	ident, _ := guard.IdentityFrom(c)

	if err := h.catalog.DeleteEvent(c.Request.Context(), c.Param("id"), ident.ID); err != nil {
		writeCatalogError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func writeCatalogError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, catalog.ErrNotOwner):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, catalog.ErrEventNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, catalog.ErrMissingName),
		errors.Is(err, catalog.ErrInvalidPrice),
		errors.Is(err, catalog.ErrInvalidCapacity):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "catalog operation failed"})
	}
}
