package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/stouper/wms-sub002/internal/infrastructure/config"
	"github.com/stouper/wms-sub002/internal/infrastructure/logger"
	"github.com/stouper/wms-sub002/internal/interfaces/http/handler"
	"github.com/stouper/wms-sub002/internal/interfaces/http/middleware"
)

// Handlers bundles every handler the router mounts
type Handlers struct {
	System   *handler.SystemHandler
	Sku      *handler.SkuHandler
	Location *handler.LocationHandler
	Job      *handler.JobHandler
	Scan     *handler.ScanHandler
	Stock    *handler.StockHandler
	Shipping *handler.ShippingHandler
}

// New builds the gin engine with middleware and every API route mounted
func New(cfg *config.Config, log *zap.Logger, h Handlers) *gin.Engine {
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	if len(cfg.HTTP.TrustedProxies) > 0 {
		_ = engine.SetTrustedProxies(cfg.HTTP.TrustedProxies)
	}

	engine.Use(middleware.RequestID())
	engine.Use(logger.GinMiddleware(log))
	engine.Use(logger.Recovery(log))
	engine.Use(middleware.Secure())
	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))
	engine.Use(middleware.CORSWithConfig(corsConfig(cfg)))

	engine.GET("/health", h.System.Health)

	api := engine.Group("/api/v1")
	{
		api.GET("/system/info", h.System.GetSystemInfo)

		skus := api.Group("/skus")
		{
			skus.POST("", h.Sku.Create)
			skus.GET("", h.Sku.List)
			skus.GET("/:id", h.Sku.Get)
		}

		locations := api.Group("/locations")
		{
			locations.POST("", h.Location.Create)
			locations.GET("", h.Location.List)
			locations.GET("/:id", h.Location.Get)
			locations.PUT("/:id", h.Location.Rename)
			locations.DELETE("/:id", h.Location.Delete)
		}

		jobs := api.Group("/jobs")
		{
			jobs.POST("", h.Job.Create)
			jobs.GET("", h.Job.List)
			jobs.GET("/:id", h.Job.Get)
			jobs.POST("/:id/items", h.Job.AddItems)
			jobs.PUT("/:id/allow-overpick", h.Job.SetAllowOverpick)
			jobs.PUT("/:id/parcel", h.Job.AttachParcel)

			jobs.POST("/:id/scans", h.Scan.Scan)
			jobs.POST("/:id/receipts", h.Scan.Receive)

			jobs.POST("/:id/reservation", h.Shipping.Reserve)
			jobs.GET("/:id/reservation", h.Shipping.Get)
			jobs.DELETE("/:id/reservation", h.Shipping.Cancel)
		}

		stock := api.Group("/stock")
		{
			stock.POST("/adjustments", h.Stock.Adjust)
			stock.POST("/imports", h.Stock.Import)
			stock.GET("/on-hand", h.Stock.OnHand)
			stock.GET("/report", h.Stock.Report)
			stock.GET("/forced", h.Stock.ForcedEntries)
			stock.GET("/entries", h.Stock.Entries)
		}
	}

	return engine
}

func corsConfig(cfg *config.Config) middleware.CORSConfig {
	corsCfg := middleware.DefaultCORSConfig()
	if len(cfg.HTTP.CORSAllowOrigins) > 0 {
		corsCfg.AllowOrigins = cfg.HTTP.CORSAllowOrigins
	}
	if len(cfg.HTTP.CORSAllowMethods) > 0 {
		corsCfg.AllowMethods = cfg.HTTP.CORSAllowMethods
	}
	if len(cfg.HTTP.CORSAllowHeaders) > 0 {
		corsCfg.AllowHeaders = cfg.HTTP.CORSAllowHeaders
	}
	return corsCfg
}
