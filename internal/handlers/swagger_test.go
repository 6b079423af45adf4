package handlers

import (
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// TestRouteRegistration verifies the docs route and every internal endpoint
// can be mounted on one router without conflicts.
func TestRouteRegistration(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	assert.NotPanics(t, func() {
		router.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
		RegisterInternalRoutes(router.Group("/internal"))
	})

	registered := make(map[string]bool)
	for _, route := range router.Routes() {
		registered[route.Method+" "+route.Path] = true
	}
	for _, want := range []string{
		"GET /docs/*any",
		"GET /internal/health",
		"GET /internal/catalog",
		"POST /internal/catalog/refresh",
		"GET /internal/catalog/:serviceType",
		"GET /internal/catalog/:serviceType/:itemId",
		"GET /internal/quotations",
		"POST /internal/quotations",
		"GET /internal/quotations/:id",
		"DELETE /internal/quotations/:id",
		"POST /internal/quotations/:id/save",
		"POST /internal/quotations/:id/open",
		"POST /internal/quotations/:id/services",
		"PATCH /internal/quotations/:id/services/:selectionId",
		"DELETE /internal/quotations/:id/services/:selectionId",
	} {
		assert.True(t, registered[want], "missing route %s", want)
	}
}
