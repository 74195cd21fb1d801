package handlers

import (
	"github.com/jmoiron/sqlx"

	"github.com/vekodev/catalog-admin-golang/internal/cache"
	"github.com/vekodev/catalog-admin-golang/internal/config"
	"github.com/vekodev/catalog-admin-golang/internal/pkg/logger"
	"github.com/vekodev/catalog-admin-golang/internal/store"
	"github.com/vekodev/catalog-admin-golang/internal/taxonomy"
)

// Handlers holds all dependencies the HTTP layer needs. Taxonomy handlers go
// through the store interfaces; the simpler back-office handlers (products,
// news, orders, users) query DB directly.
type Handlers struct {
	DB              *sqlx.DB
	Brands          store.BrandStore
	Categories      store.CategoryStore
	ChildCategories store.ChildCategoryStore
	Reconciler      *taxonomy.Reconciler
	Cache           cache.Store
	Cfg             *config.Config
	Log             *logger.Logger
}
