package handler

import (
	"eventmart/internal/cart"
	"eventmart/internal/catalog"
	"eventmart/internal/checkout"
	"eventmart/internal/identity"
	"eventmart/internal/order"
)

type Handler struct {
	identity identity.Service
	catalog  catalog.Service
	carts    *cart.Sessions
	checkout checkout.Service
	orders   order.Service
}

func New(
	identitySvc identity.Service,
	catalogSvc catalog.Service,
	carts *cart.Sessions,
	checkoutSvc checkout.Service,
	orderSvc order.Service,
) *Handler {
	return &Handler{
		identity: identitySvc,
		catalog:  catalogSvc,
		carts:    carts,
		checkout: checkoutSvc,
		orders:   orderSvc,
	}
}
