package main

import (
	"context"
	"log"

	"eventmart/internal/cart"
	"eventmart/internal/catalog"
	"eventmart/internal/checkout"
	"eventmart/internal/config"
	"eventmart/internal/db"
	"eventmart/internal/fulfillment"
	"eventmart/internal/handler"
	"eventmart/internal/identity"
	"eventmart/internal/logger"
	"eventmart/internal/order"

	"go.uber.org/zap"
)

func main() {
	cfg := config.LoadConfig()

	logger.Init(cfg.AppEnv)
	defer logger.Sync()

	database := db.InitDB(cfg)
	defer database.Close()

	identityRepo := identity.NewRepository(database)
	identitySvc := identity.NewService(identityRepo)

	catalogRepo := catalog.NewRepository(database)
	catalogSvc := catalog.NewService(catalogRepo)

	orderRepo := order.NewRepository(database)
	orderSvc := order.NewService(orderRepo, catalogRepo)

	carts := cart.NewSessions()
	identitySvc.Subscribe(func(c identity.Change) {
		if c.Type == identity.SignedOut {
			carts.Drop(c.Identity.ID)
		}
	})

	var pub checkout.Publisher
	if cfg.AMQPURL != "" {
		queue, err := fulfillment.Connect(cfg.AMQPURL)
		if err != nil {
			logger.L().Warn("fulfillment queue unavailable", zap.Error(err))
		} else {
			defer queue.Close()
			pub = queue

			go func() {
				if err := queue.ConsumeStatusUpdates(context.Background(), orderSvc); err != nil {
					logger.L().Error("fulfillment consumer stopped", zap.Error(err))
				}
			}()
		}
	}

	checkoutSvc := checkout.NewService(orderRepo, pub)

	h := handler.New(identitySvc, catalogSvc, carts, checkoutSvc, orderSvc)
	router := handler.NewRouter(cfg, h)

	logger.L().Info("server starting", zap.String("port", cfg.AppPort))
	if err := router.Run(":" + cfg.AppPort); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}
