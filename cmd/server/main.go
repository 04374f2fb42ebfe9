package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	gormlogger "gorm.io/gorm/logger"

	catalogapp "github.com/stouper/wms-sub002/internal/application/catalog"
	pickingapp "github.com/stouper/wms-sub002/internal/application/picking"
	"github.com/stouper/wms-sub002/internal/application/resolve"
	shippingapp "github.com/stouper/wms-sub002/internal/application/shipping"
	stockapp "github.com/stouper/wms-sub002/internal/application/stock"
	warehouseapp "github.com/stouper/wms-sub002/internal/application/warehouse"
	"github.com/stouper/wms-sub002/internal/domain/shipping"
	"github.com/stouper/wms-sub002/internal/infrastructure/carrier"
	"github.com/stouper/wms-sub002/internal/infrastructure/config"
	"github.com/stouper/wms-sub002/internal/infrastructure/logger"
	"github.com/stouper/wms-sub002/internal/infrastructure/persistence"
	"github.com/stouper/wms-sub002/internal/interfaces/http/handler"
	"github.com/stouper/wms-sub002/internal/interfaces/http/router"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	log, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	log.Info("Starting WMS Backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	gormLevel := gormlogger.Silent
	if cfg.Log.Level == "debug" {
		gormLevel = gormlogger.Info
	}
	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, gormLevel)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected successfully")

	// Repositories
	skuRepo := persistence.NewGormSkuRepository(db.DB)
	locationRepo := persistence.NewGormLocationRepository(db.DB)
	ledgerRepo := persistence.NewGormEntryRepository(db.DB)
	jobRepo := persistence.NewGormJobRepository(db.DB)
	reservationRepo := persistence.NewGormReservationRepository(db.DB)

	// Transaction scopes
	stockScope := persistence.NewGormStockTransactionScope(db.DB)
	pickingScope := persistence.NewGormPickingTransactionScope(db.DB)

	// Carrier adapter: a configured base URL selects the live HTTP client,
	// otherwise the in-process stub issues waybills.
	var courier shipping.Carrier
	if cfg.Carrier.BaseURL != "" {
		httpCarrier, err := carrier.NewHTTPCarrier(&carrier.Config{
			Code:    cfg.Carrier.Code,
			BaseURL: cfg.Carrier.BaseURL,
			APIKey:  cfg.Carrier.APIKey,
			Timeout: cfg.Carrier.Timeout,
		})
		if err != nil {
			log.Fatal("Failed to configure carrier client", zap.Error(err))
		}
		courier = httpCarrier
		log.Info("Carrier client configured",
			zap.String("carrier", cfg.Carrier.Code),
			zap.String("base_url", cfg.Carrier.BaseURL),
		)
	} else {
		courier = carrier.NewStubCarrier()
		log.Warn("No carrier base URL configured, using stub carrier")
	}

	// Application services
	resolver := resolve.NewResolverService(skuRepo, locationRepo)
	ledgerService := stockapp.NewLedgerService(stockScope, ledgerRepo, resolver, log)
	scanService := pickingapp.NewScanService(pickingScope, resolver, log)
	jobService := pickingapp.NewJobService(jobRepo, skuRepo, locationRepo, resolver)
	reservationService := shippingapp.NewReservationService(reservationRepo, jobRepo, courier, log)
	locationService := warehouseapp.NewLocationService(locationRepo, log)
	skuService := catalogapp.NewSkuService(skuRepo)

	engine := router.New(cfg, log, router.Handlers{
		System:   handler.NewSystemHandler(db),
		Sku:      handler.NewSkuHandler(skuService),
		Location: handler.NewLocationHandler(locationService),
		Job:      handler.NewJobHandler(jobService),
		Scan:     handler.NewScanHandler(scanService),
		Stock:    handler.NewStockHandler(ledgerService),
		Shipping: handler.NewShippingHandler(reservationService),
	})

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}
