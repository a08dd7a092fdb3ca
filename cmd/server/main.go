package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/Ashira-hub/online-ordering-system/internal/accounts"
	"github.com/Ashira-hub/online-ordering-system/internal/config"
	"github.com/Ashira-hub/online-ordering-system/internal/events"
	h "github.com/Ashira-hub/online-ordering-system/internal/http"
	"github.com/Ashira-hub/online-ordering-system/internal/notify"
	"github.com/Ashira-hub/online-ordering-system/internal/ordermeta"
	"github.com/Ashira-hub/online-ordering-system/internal/paypal"
	"github.com/Ashira-hub/online-ordering-system/internal/products"
	"github.com/Ashira-hub/online-ordering-system/internal/service"
)

func main() {
	var cfg config.Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		log.Fatalf("failed to read configuration: %v", err)
	}

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	defer logger.Sync()

	// Order metadata store: redis when available, in-process otherwise.
	var meta ordermeta.Store
	if cfg.Redis.Addr != "" {
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := client.Ping(ctx).Err(); err != nil {
			cancel()
			logger.Fatal("redis unreachable", zap.String("addr", cfg.Redis.Addr), zap.Error(err))
		}
		cancel()
		meta = ordermeta.NewRedisStore(client)
		logger.Info("using redis order metadata store", zap.String("addr", cfg.Redis.Addr))
	} else {
		meta = ordermeta.NewMemoryStore()
		logger.Info("using in-memory order metadata store")
	}
	defer meta.Close()

	// Accounts: postgres when a host is configured, in-memory otherwise.
	var accountStore accounts.Store
	if cfg.AccountsDB.Host != "" {
		pg, err := accounts.NewPostgresStore(cfg.AccountsDB)
		if err != nil {
			logger.Fatal("failed to connect to accounts database", zap.Error(err))
		}
		defer pg.Close()
		if err := pg.RunMigrations(cfg.AccountsDB.MigrationsDir); err != nil {
			logger.Fatal("failed to run account migrations", zap.Error(err))
		}
		accountStore = pg
		logger.Info("using postgres account store", zap.String("host", cfg.AccountsDB.Host))
	} else {
		accountStore = accounts.NewMemoryStore()
		logger.Info("using in-memory account store")
	}

	// Order events: kafka when a broker is configured.
	var producer events.Producer = events.NoopProducer{}
	if cfg.Kafka.BrokerURL != "" {
		kp := events.NewKafkaProducer([]string{cfg.Kafka.BrokerURL}, cfg.Kafka.OrderEventsTopic, logger)
		defer kp.Close()
		producer = kp
		logger.Info("publishing order events to kafka",
			zap.String("broker", cfg.Kafka.BrokerURL),
			zap.String("topic", cfg.Kafka.OrderEventsTopic))
	}

	// Payment gateway. Absent credentials leave the gateway nil; the
	// payment endpoints answer with a configuration error instead of the
	// process refusing to start.
	var gateway service.PaymentGateway
	if cfg.PayPal.Configured() {
		gateway = paypal.NewClient(cfg.PayPal, logger)
		logger.Info("paypal gateway configured", zap.String("mode", cfg.PayPal.Mode))
	} else {
		logger.Warn("paypal credentials missing, create/capture endpoints will fail",
			zap.String("hint", "set PAYPAL_CLIENT_ID and PAYPAL_CLIENT_SECRET"))
	}

	dispatcher := notify.NewAPIClient(cfg.Notifications, logger)
	if !dispatcher.Configured() {
		logger.Warn("notification credentials missing, emails will not be sent")
	}

	orderService := service.NewOrderService(
		gateway, meta, dispatcher, producer, cfg.Notifications.DefaultTo, logger)

	catalog, err := products.Load(cfg.ProductsPath)
	if err != nil {
		logger.Warn("failed to load product catalog, serving an empty list",
			zap.String("path", cfg.ProductsPath), zap.Error(err))
		catalog = products.NewCatalog(nil)
	}

	router := h.NewRouter(h.RouterConfig{
		Payments:       h.NewPaymentHandler(orderService, cfg.PayPal, logger),
		Notify:         h.NewNotifyHandler(dispatcher, logger),
		Products:       h.NewProductHandler(catalog),
		Accounts:       h.NewAccountHandler(accountStore, logger),
		RequestTimeout: cfg.HTTP.RequestTimeout,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.HTTP.Port,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("server starting", zap.String("port", cfg.HTTP.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server error", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("server forced to shutdown", zap.Error(err))
	}

	logger.Info("server exited")
}
