// internal/router/router.go
package router

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/javajoker/library-shop/internal/catalog"
	"github.com/javajoker/library-shop/internal/config"
	"github.com/javajoker/library-shop/internal/handlers"
	"github.com/javajoker/library-shop/internal/inference"
	"github.com/javajoker/library-shop/internal/middleware"
	"github.com/javajoker/library-shop/internal/services"
	"github.com/javajoker/library-shop/internal/utils"
)

// Dependencies are the long-lived collaborators the routes are built on.
type Dependencies struct {
	Catalog      *catalog.Catalog
	Generator    inference.Generator
	Sessions     *services.SessionStore
	RateLimiters *middleware.RateLimiters
}

func Initialize(cfg *config.Config, deps Dependencies) *gin.Engine {
	// Initialize services
	client := inference.NewClient(deps.Generator, deps.Catalog)
	searchService := services.NewSearchService(client, deps.Catalog, cfg.Upload.ImageMaxBytes)
	cartService := services.NewCartService(deps.Catalog)
	chatService := services.NewChatService(client, deps.Catalog)

	// Initialize handlers
	productHandler := handlers.NewProductHandler(deps.Catalog)
	searchHandler := handlers.NewSearchHandler(searchService, cfg.Upload.ImageMaxBytes)
	cartHandler := handlers.NewCartHandler(cartService)
	chatHandler := handlers.NewChatHandler(chatService)

	limiters := deps.RateLimiters
	if limiters == nil {
		limiters = middleware.NewRateLimiters(
			cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst,
			cfg.RateLimit.InferencePerMinute, cfg.RateLimit.InferenceBurst,
		)
	}

	// Initialize Gin router
	r := gin.New()
	r.MaxMultipartMemory = cfg.Upload.ImageMaxBytes

	// Global middleware
	r.Use(middleware.Recovery(func(c *gin.Context) { utils.InternalErrorResponse(c, "") }))
	r.Use(middleware.RequestLogger())
	r.Use(middleware.CORS(cfg.CORS.AllowedOrigins))
	r.Use(middleware.I18nMiddleware(cfg.I18n.DefaultLocale))
	r.Use(limiters.GeneralRateLimit())

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":   "healthy",
			"version":  "1.0.0",
			"products": deps.Catalog.Len(),
			"sessions": deps.Sessions.Len(),
		})
	})

	// API v1 routes
	v1 := r.Group("/v1")
	{
		v1.GET("/categories", productHandler.GetCategories)

		products := v1.Group("/products")
		{
			products.GET("", productHandler.GetProducts)
			products.GET("/:id", productHandler.GetProduct)
		}

		// Session routes
		shop := v1.Group("")
		shop.Use(middleware.SessionRequired(deps.Sessions, middleware.SessionOptions{
			MaxAge: int(cfg.Session.TTL.Seconds()),
			Secure: cfg.Session.SecureCookie,
		}))
		{
			search := shop.Group("/search")
			{
				search.GET("/products", limiters.InferenceRateLimit(), searchHandler.SearchProducts)
				search.POST("/image", limiters.InferenceRateLimit(), searchHandler.SearchImage)
				search.GET("/last", searchHandler.GetLastSearch)
			}

			cart := shop.Group("/cart")
			{
				cart.GET("", cartHandler.GetCart)
				cart.POST("/items", cartHandler.AddItem)
				cart.PATCH("/items/:id", cartHandler.UpdateItem)
				cart.DELETE("/items/:id", cartHandler.RemoveItem)
			}

			chat := shop.Group("/chat")
			{
				chat.GET("/messages", chatHandler.GetMessages)
				chat.POST("/messages", limiters.InferenceRateLimit(), chatHandler.SendMessage)
			}
		}
	}

	// 404 handler
	r.NoRoute(func(c *gin.Context) {
		utils.ErrorResponse(c, http.StatusNotFound, "NOT_FOUND", "Route not found", nil)
	})

	return r
}
