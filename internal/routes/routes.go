package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vekodev/catalog-admin-golang/internal/handlers"
	"github.com/vekodev/catalog-admin-golang/internal/middleware"
)

// CORSMiddleware allows the admin frontend origin to call the API.
func CORSMiddleware(origin string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

func SetupRouter(h *handlers.Handlers) *gin.Engine {
	router := gin.Default()
	router.Use(CORSMiddleware(h.Cfg.CORSOrigin))

	secret := []byte(h.Cfg.JWTSecret)

	v1 := router.Group("/v1")
	{
		v1.GET("/ping", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"message": "pong!"})
		})

		v1.POST("/login", h.Login)

		// --- Public Reads ---
		v1.GET("/brands", h.GetAllBrands)
		v1.GET("/brands/:id", h.GetBrand)
		v1.GET("/categories", h.GetAllCategories)
		v1.GET("/categories/:id", h.GetCategory)
		v1.GET("/childcategories", h.GetAllChildCategories)
		v1.GET("/childcategories/:id", h.GetChildCategory)
		v1.GET("/products", h.GetAllProducts)
		v1.GET("/products/:id", h.GetProduct)
		v1.GET("/news", h.GetAllNews)
		v1.GET("/news/:id", h.GetNews)

		// --- Manager Routes (catalog mutations + assignment workflows) ---
		manager := v1.Group("/")
		manager.Use(middleware.AuthMiddleware(secret))
		manager.Use(middleware.ManagerMiddleware())
		{
			manager.POST("/brands", h.CreateBrand)
			manager.PUT("/brands/:id", h.UpdateBrand)
			manager.DELETE("/brands/:id", h.DeleteBrand)

			manager.POST("/categories", h.CreateCategory)
			manager.PUT("/categories/:id", h.UpdateCategory)
			manager.DELETE("/categories/:id", h.DeleteCategory)

			manager.POST("/childcategories", h.CreateChildCategory)
			manager.PUT("/childcategories/:id", h.UpdateChildCategory)
			manager.DELETE("/childcategories/:id", h.DeleteChildCategory)

			// Bulk assignment workflows
			manager.GET("/brands/:id/category-assignments", h.GetCategoryAssignments)
			manager.PUT("/brands/:id/category-assignments", h.PutCategoryAssignments)
			manager.GET("/brands/:id/eligible-categories", h.GetEligibleCategories)
			manager.GET("/brands/:id/categories/:categoryId/childcategory-assignments", h.GetChildCategoryAssignments)
			manager.PUT("/brands/:id/categories/:categoryId/childcategory-assignments", h.PutChildCategoryAssignments)

			manager.POST("/products", h.CreateProduct)
			manager.PUT("/products/:id", h.UpdateProduct)
			manager.DELETE("/products/:id", h.DeleteProduct)

			manager.POST("/news", h.CreateNews)
			manager.PUT("/news/:id", h.UpdateNews)
			manager.DELETE("/news/:id", h.DeleteNews)

			manager.GET("/orders", h.GetAllOrders)
			manager.GET("/orders/:id", h.GetOrder)
			manager.PATCH("/orders/:id/status", h.UpdateOrderStatus)
		}

		// --- Admin-Only Routes ---
		admin := v1.Group("/admin")
		admin.Use(middleware.AuthMiddleware(secret))
		admin.Use(middleware.AdminMiddleware())
		{
			admin.POST("/create-manager", h.CreateManager)
		}
	}

	return router
}
