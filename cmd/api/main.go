package main

import (
	"context"
	"log"

	"github.com/joho/godotenv"

	"github.com/vekodev/catalog-admin-golang/internal/cache"
	"github.com/vekodev/catalog-admin-golang/internal/config"
	"github.com/vekodev/catalog-admin-golang/internal/database"
	"github.com/vekodev/catalog-admin-golang/internal/handlers"
	"github.com/vekodev/catalog-admin-golang/internal/pkg/logger"
	"github.com/vekodev/catalog-admin-golang/internal/routes"
	"github.com/vekodev/catalog-admin-golang/internal/store"
	"github.com/vekodev/catalog-admin-golang/internal/taxonomy"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("WARNING: no .env file found, relying on system environment variables")
	}
	cfg := config.Load()

	logg, err := logger.New(cfg.Env)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logg.Sync()

	db, err := database.Open(cfg.DBDSN)
	if err != nil {
		logg.Fatal("failed to connect to database", "error", err)
	}
	defer db.Close()

	var listCache cache.Store = cache.Noop{}
	if cfg.RedisAddr != "" {
		redisCache := cache.NewRedis(cfg.RedisAddr, cfg.RedisPassword, logg)
		if err := redisCache.Ping(context.Background()); err != nil {
			logg.Fatal("failed to connect to redis", "addr", cfg.RedisAddr, "error", err)
		}
		listCache = redisCache
	} else {
		logg.Warn("REDIS_ADDR not set, list caching disabled")
	}

	brands := store.NewMySQLBrandStore(db)
	categories := store.NewMySQLCategoryStore(db)
	childCategories := store.NewMySQLChildCategoryStore(db)

	app := &handlers.Handlers{
		DB:              db,
		Brands:          brands,
		Categories:      categories,
		ChildCategories: childCategories,
		Reconciler:      taxonomy.NewReconciler(categories, childCategories, listCache, logg),
		Cache:           listCache,
		Cfg:             cfg,
		Log:             logg,
	}

	router := routes.SetupRouter(app)

	logg.Info("starting catalog admin API", "port", cfg.Port, "env", cfg.Env)
	if err := router.Run(":" + cfg.Port); err != nil {
		logg.Fatal("server stopped", "error", err)
	}
}
