package app

import (
	"context"
	"time"

	"stockroom-backend/internal/baskets"
	"stockroom-backend/internal/catalog"
	"stockroom-backend/internal/config"
	"stockroom-backend/internal/health"
	"stockroom-backend/internal/ingest"
	"stockroom-backend/internal/middleware"
	"stockroom-backend/internal/reports"
	"stockroom-backend/internal/settlement"
	"stockroom-backend/internal/state"
	"stockroom-backend/internal/stock"
	"stockroom-backend/internal/store"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// gormPinger adapts the GORM handle to the health check.
type gormPinger struct {
	db *gorm.DB
}

func (p gormPinger) Ping() error {
	sqlDB, err := p.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}

// CreateApp builds the Fiber app: middleware, the document store, the restored
// in-memory state, and every route. The returned DB and Redis handles are for
// startup connection checks; either may be nil depending on configuration.
func CreateApp(cfg *config.Config) (*fiber.App, *gorm.DB, *redis.Client, error) {
	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
		ErrorHandler:          middleware.ErrorHandler,
	})

	app.Use(middleware.CORS(middleware.CORSConfig{AllowedSuffix: cfg.AllowedOrigin}))

	var rdb *redis.Client
	if cfg.RedisURL != "" {
		opt, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			return nil, nil, nil, err
		}
		rdb = redis.NewClient(opt)
	}
	app.Use(middleware.HealthMarker(rdb))
	app.Use(middleware.Tracing())
	app.Use(middleware.RouteLogger())

	// Document store: Postgres when a DSN is configured, flat file otherwise.
	var db *gorm.DB
	var docs store.Store
	if cfg.DatabaseURL != "" {
		var err error
		db, err = store.Open(cfg.DatabaseURL)
		if err != nil {
			return nil, nil, nil, err
		}
		docs, err = store.NewGormStore(db)
		if err != nil {
			return nil, nil, nil, err
		}
	} else {
		docs = &store.FileStore{Path: cfg.DataFile}
	}

	st := state.New(catalog.Default(), cfg.HistoryLimit)
	snap, err := docs.LoadAll(context.Background())
	if err != nil {
		return nil, nil, nil, err
	}
	st.Restore(snap)
	log.Info().Int("items", len(snap.Items)).Int("history", len(snap.History)).Msg("State restored")

	admin := middleware.RequireAdminKey(cfg.AdminKey)

	// Health module
	var pinger health.DBPinger
	if db != nil {
		pinger = gormPinger{db: db}
	}
	healthHandlers := &health.Handlers{Rdb: rdb, DB: pinger, AdminKey: cfg.AdminKey}
	app.Get("/health", healthHandlers.Live)
	app.Get("/health/json", healthHandlers.JSON)
	app.Get("/health/reset", healthHandlers.Reset)

	// Stock module
	stockService := &stock.Service{State: st, Store: docs}
	stockHandlers := &stock.Handlers{Service: stockService}
	stockGroup := app.Group("/api/v1/stock")
	stockGroup.Post("/add", stockHandlers.Add)
	stockGroup.Post("/remove", stockHandlers.Remove)
	stockGroup.Post("/set", admin, stockHandlers.Set)
	stockGroup.Post("/clear", admin, stockHandlers.Clear)
	stockGroup.Get("/view", stockHandlers.View)
	stockGroup.Get("/contributor/:who", stockHandlers.Contributor)

	// Catalog routes live with the stock module; price changes touch the ledger.
	app.Get("/api/v1/catalog/items", stockHandlers.CatalogItems)
	app.Patch("/api/v1/catalog/price", admin, stockHandlers.ChangePrice)

	// Settlement + earnings
	settlementService := &settlement.Service{State: st, Store: docs}
	settlementHandlers := &settlement.Handlers{Service: settlementService}
	app.Post("/api/v1/sales/settle", admin, settlementHandlers.Settle)
	app.Post("/api/v1/earnings/payout", settlementHandlers.Payout)
	app.Get("/api/v1/earnings/:who", settlementHandlers.Balance)

	// Reports
	reportsService := &reports.Service{State: st}
	reportsHandlers := &reports.Handlers{Service: reportsService}
	app.Get("/api/v1/sales/history", reportsHandlers.History)
	app.Get("/api/v1/sales/analytics", reportsHandlers.Analytics)
	app.Get("/api/v1/export", admin, reportsHandlers.Export)

	// Baskets
	basketsService := &baskets.Service{State: st, Store: docs, Stock: stockService}
	basketsHandlers := &baskets.Handlers{Service: basketsService}
	basketsGroup := app.Group("/api/v1/baskets")
	basketsGroup.Post("/save", basketsHandlers.Save)
	basketsGroup.Post("/apply", basketsHandlers.Apply)
	basketsGroup.Get("/list/:owner", basketsHandlers.List)
	basketsGroup.Delete("/:owner/:name", basketsHandlers.Delete)

	// Webhook ingestion
	ingestService := &ingest.Service{
		Settlement: settlementService,
		Redis:      rdb,
		DedupTTL:   time.Duration(cfg.DedupTTLHours) * time.Hour,
	}
	ingestHandlers := &ingest.Handlers{Service: ingestService}
	app.Post("/api/v1/webhooks/sale", ingestHandlers.Sale)

	return app, db, rdb, nil
}
