package main

import (
	"context"
	"log"
	"os"

	"github.com/Matooloose/verdant-village-store-sub002/external/payfast"
	"github.com/Matooloose/verdant-village-store-sub002/internal/db"
	"github.com/Matooloose/verdant-village-store-sub002/internal/env"
	"github.com/Matooloose/verdant-village-store-sub002/internal/repository"
	"github.com/Matooloose/verdant-village-store-sub002/internal/services"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
)

func main() {
	cfg := env.Load()

	logger := zerolog.New(os.Stdout).With().
		Timestamp().
		Str("service", "payments").
		Logger()

	// ======================
	// INFRA
	// ======================
	pool, err := db.Connect(context.Background(), cfg.DatabaseURL)
	if err != nil {
		log.Fatal(err)
	}
	defer pool.Close()

	// ======================
	// GATEWAY
	// ======================
	codec := payfast.NewCodec(
		cfg.PayfastPassphrase,
		payfast.ParseSpaceEncoding(cfg.PayfastSpaceEncoding),
	)
	builder := &payfast.RequestBuilder{
		MerchantID:  cfg.PayfastMerchantID,
		MerchantKey: cfg.PayfastMerchantKey,
		ReturnURL:   cfg.PayfastReturnURL,
		CancelURL:   cfg.PayfastCancelURL,
		NotifyURL:   cfg.PayfastNotifyURL,
		Sandbox:     cfg.PayfastSandbox,
		Codec:       codec,
	}

	// ======================
	// REPOSITORIES
	// ======================
	orderRepo := repository.NewOrderRepository(pool)
	paymentRepo := repository.NewPaymentRepository(pool)

	// ======================
	// SERVICES
	// ======================
	sigSvc := services.NewSignatureService(codec)
	notifSvc := services.NewNotificationService(codec, logger)
	reconciler := services.NewReconcileService(
		orderRepo,
		paymentRepo,
		cfg.PaymentCurrency,
		cfg.StorageTimeout,
		logger,
	)
	paySvc := services.NewPaymentService(orderRepo, builder, logger)

	// ======================
	// ECHO
	// ======================
	e := echo.New()
	e.Use(echomw.Logger())
	e.Use(echomw.Recover())

	api := e.Group("/store")

	// ======================
	// ROUTES (ONLY REGISTRATION)
	// ======================
	registerPaymentRoutes(api, sigSvc, notifSvc, reconciler, paySvc, paymentRepo)
	registerHealthRoutes(e)

	// ======================
	// SERVER
	// ======================
	e.Logger.Fatal(e.Start(":" + cfg.Port))
}
