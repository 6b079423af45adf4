package handlers

import "github.com/gin-gonic/gin"

// RegisterInternalRoutes mounts the catalog and quotation endpoints on g
func RegisterInternalRoutes(g *gin.RouterGroup) {
	g.GET("/health", HealthCheck)

	cat := g.Group("/catalog")
	{
		cat.GET("", ListAllCatalog)
		cat.POST("/refresh", RefreshCatalog)
		cat.GET("/:serviceType", ListCatalog)
		cat.GET("/:serviceType/:itemId", GetCatalogItem)
	}

	quotes := g.Group("/quotations")
	{
		quotes.GET("", ListQuotations)
		quotes.POST("", CreateQuotation)
		quotes.GET("/:id", GetQuotation)
		quotes.DELETE("/:id", DiscardQuotation)
		quotes.POST("/:id/save", SaveQuotation)
		quotes.POST("/:id/open", OpenQuotation)
		quotes.POST("/:id/services", AddService)
		quotes.PATCH("/:id/services/:selectionId", UpdateService)
		quotes.DELETE("/:id/services/:selectionId", RemoveService)
	}
}
