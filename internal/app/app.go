package app

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/tiffinbox/marketplace/internal/dal/postgres"
	"github.com/tiffinbox/marketplace/internal/dal/rabbitmq"
	redisclient "github.com/tiffinbox/marketplace/internal/dal/redis"
	apartmentpg "github.com/tiffinbox/marketplace/internal/dal/repositories/apartment/postgres"
	customerpg "github.com/tiffinbox/marketplace/internal/dal/repositories/customer/postgres"
	fooditempg "github.com/tiffinbox/marketplace/internal/dal/repositories/fooditem/postgres"
	ledgerpg "github.com/tiffinbox/marketplace/internal/dal/repositories/ledger/postgres"
	notifymq "github.com/tiffinbox/marketplace/internal/dal/repositories/notification/rabbitmq"
	orderpg "github.com/tiffinbox/marketplace/internal/dal/repositories/order/postgres"
	otpredis "github.com/tiffinbox/marketplace/internal/dal/repositories/otp/redis"
	reviewpg "github.com/tiffinbox/marketplace/internal/dal/repositories/review/postgres"
	vendorpg "github.com/tiffinbox/marketplace/internal/dal/repositories/vendors/postgres"
	"github.com/tiffinbox/marketplace/internal/otel"
	"github.com/tiffinbox/marketplace/internal/service/services/accountsvc"
	"github.com/tiffinbox/marketplace/internal/service/services/catalogsvc"
	"github.com/tiffinbox/marketplace/internal/service/services/ordersvc"
	"github.com/tiffinbox/marketplace/internal/service/services/reconciler"
	"github.com/tiffinbox/marketplace/internal/smsgateway"
	httptransport "github.com/tiffinbox/marketplace/internal/transport/http"
	"github.com/tiffinbox/marketplace/internal/worker/expiry"
)

// App represents the application.
type App struct {
	transport      *httptransport.HTTPTransport
	expiryWorker   *expiry.Worker
	otelController *otel.OtelController
	postgresClient *postgres.Client
	rabbitClient   *rabbitmq.Client
}

// MustNewApp creates a new application.
func MustNewApp() *App {
	otelController := otel.MustInitOtel()

	postgresClient := postgres.MustNewClient()
	rabbitClient := rabbitmq.MustNewClient()
	redisClient := redisclient.MustNewClient()

	foodItemRepo := fooditempg.NewFoodItemRepository(postgresClient)
	ledgerRepo := ledgerpg.NewLedgerRepository(postgresClient)
	orderRepo := orderpg.NewOrderRepository(postgresClient)
	apartmentRepo := apartmentpg.NewApartmentRepository(postgresClient)
	vendorRepo := vendorpg.NewVendorRepository(postgresClient)
	customerRepo := customerpg.NewCustomerRepository(postgresClient)
	reviewRepo := reviewpg.NewReviewRepository(postgresClient)
	notifyRepo := notifymq.NewNotificationRabbitMQRepository(rabbitClient)
	otpRepo := otpredis.NewOTPRedisRepository(redisClient)

	orderSvc := ordersvc.MustNewOrderService(
		ordersvc.WithOrderRepository(orderRepo),
		ordersvc.WithLedgerRepository(ledgerRepo),
		ordersvc.WithFoodItemRepository(foodItemRepo),
		ordersvc.WithCustomerRepository(customerRepo),
		ordersvc.WithNotificationRepository(notifyRepo),
	)

	catalogSvc := catalogsvc.MustNewCatalogService(
		catalogsvc.WithFoodItemRepository(foodItemRepo),
		catalogsvc.WithLedgerRepository(ledgerRepo),
		catalogsvc.WithApartmentRepository(apartmentRepo),
		catalogsvc.WithVendorRepository(vendorRepo),
		catalogsvc.WithReviewRepository(reviewRepo),
	)

	accountSvc := accountsvc.MustNewAccountService(
		accountsvc.WithCustomerRepository(customerRepo),
		accountsvc.WithVendorRepository(vendorRepo),
		accountsvc.WithApartmentRepository(apartmentRepo),
		accountsvc.WithOTPRepository(otpRepo),
		accountsvc.WithNotificationRepository(notifyRepo),
		accountsvc.WithSMSSender(smsgateway.NewClient()),
	)

	rec := reconciler.MustNewReconciler(
		reconciler.WithFoodItemRepository(foodItemRepo),
		reconciler.WithOrderRepository(orderRepo),
	)

	transport := httptransport.NewHTTPTransport(orderSvc, catalogSvc, accountSvc, rec)
	transport.RegisterRoutes()

	return &App{
		transport:      transport,
		expiryWorker:   expiry.NewWorker(rec),
		otelController: otelController,
		postgresClient: postgresClient,
		rabbitClient:   rabbitClient,
	}
}

// Run starts the application.
// Tracks interrupt signal to gracefully shut down the application.
func (a *App) Run() {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	workerCtx, cancelWorker := context.WithCancel(context.Background())
	go a.expiryWorker.Start(workerCtx)

	go func() {
		slog.Info("Starting HTTP server")
		if err := a.transport.Run(); err != nil {
			slog.Error("HTTP server error", "error", err)
		}
	}()

	<-stop
	slog.Info("Shutdown signal received")

	cancelWorker()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := a.transport.Shutdown(ctx); err != nil {
		slog.Error("HTTP server shutdown error", "error", err)
	} else {
		slog.Info("HTTP server stopped gracefully")
	}

	if err := a.rabbitClient.Close(); err != nil {
		slog.Error("RabbitMQ connection close error", "error", err)
	} else {
		slog.Info("RabbitMQ connection closed gracefully")
	}

	if err := a.postgresClient.Close(); err != nil {
		slog.Error("Database connection close error", "error", err)
	} else {
		slog.Info("Database connection closed gracefully")
	}

	if err := a.otelController.Shutdown(); err != nil {
		slog.Error("Trace provider shutdown error", "error", err)
	}

	slog.Info("Application shutdown complete")
}
