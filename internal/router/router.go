// internal/router/router.go
package router

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/haspco/safety-catalog/internal/cache"
	"github.com/haspco/safety-catalog/internal/config"
	"github.com/haspco/safety-catalog/internal/dataset"
	"github.com/haspco/safety-catalog/internal/handlers"
	"github.com/haspco/safety-catalog/internal/middleware"
	"github.com/haspco/safety-catalog/internal/services"
)

// Initialize wires services and handlers onto a new engine. ctx bounds the
// rate limiters' background cleanup.
func Initialize(ctx context.Context, cfg *config.Config, store services.DataStore, data *dataset.Dataset, productCache cache.ProductCache, log *logrus.Logger) *gin.Engine {
	// Initialize services
	source := services.NewCatalogSource(store, data, productCache, cfg.Catalog.UseMock)
	productService := services.NewProductService(source)
	manufacturerService := services.NewManufacturerService(source)
	catalogService := services.NewCatalogService(source)

	// Initialize handlers
	productHandler := handlers.NewProductHandler(productService)
	manufacturerHandler := handlers.NewManufacturerHandler(manufacturerService)
	catalogHandler := handlers.NewCatalogHandler(catalogService)
	healthHandler := handlers.NewHealthHandler(store)

	generalLimiter := middleware.GeneralRateLimit(cfg.Server.RateLimit, cfg.Server.RateBurst)
	writeLimiter := middleware.WriteRateLimit()
	go generalLimiter.Run(ctx)
	go writeLimiter.Run(ctx)

	// Initialize Gin router
	r := gin.New()

	// Global middleware
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger(log))
	r.Use(middleware.CORS(cfg.Server.AllowedOrigins))
	r.Use(middleware.I18nMiddleware(cfg.I18n.DefaultLocale))
	r.Use(generalLimiter.Middleware())

	api := r.Group("/api")
	{
		api.GET("/health", healthHandler.Health)

		products := api.Group("/products")
		{
			products.GET("", productHandler.GetProducts)
			products.GET("/search", productHandler.SearchProducts)
			products.GET("/featured", productHandler.GetFeaturedProducts)
			products.GET("/:productId", productHandler.GetProduct)
			products.POST("", writeLimiter.Middleware(), middleware.AdminRequired(cfg.Auth.AdminSecret), productHandler.CreateProduct)
		}

		manufacturers := api.Group("/manufacturers")
		{
			manufacturers.GET("", manufacturerHandler.GetManufacturers)
			manufacturers.GET("/:manufacturerName", manufacturerHandler.GetManufacturer)
		}

		catalogRoutes := api.Group("/catalog")
		{
			catalogRoutes.GET("/tree", catalogHandler.GetTree)
			catalogRoutes.GET("/options", catalogHandler.GetOptions)
			catalogRoutes.GET("/browse", catalogHandler.Browse)
		}

		api.GET("/categories", catalogHandler.GetCategories)
	}

	return r
}
