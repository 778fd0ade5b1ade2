package httpapi

import "github.com/gin-gonic/gin"

// NewRouter builds the gin engine with all dashboard routes registered.
func NewRouter(handler *Handler, debug bool) *gin.Engine {
	if debug {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	SetupRoutes(router, handler)
	return router
}

// SetupRoutes configures all API routes.
func SetupRoutes(router *gin.Engine, handler *Handler) {
	// Health check
	router.GET("/health", handler.HealthCheck)

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		v1.GET("/dashboard", handler.GetDashboard) // GET  /api/v1/dashboard
		v1.POST("/filters", handler.UpdateFilters) // POST /api/v1/filters
		v1.GET("/articles", handler.ListArticles)  // GET  /api/v1/articles?page=&size=
		v1.GET("/options", handler.GetOptions)     // GET  /api/v1/options
	}
}
