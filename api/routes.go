package api

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// NewRouter assembles the gin engine: middleware, operational endpoints,
// and the two catalog route trees.
func NewRouter(h *Handler, log *zap.Logger, debug bool) *gin.Engine {
	if !debug {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery(), RequestLogger(log), InstrumentRequests(h.metrics))

	router.GET("/health", h.Health)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	registerTree(router, h, ModeDefault)
	registerTree(router, h, ModeCloud)
	return router
}

func registerTree(router *gin.Engine, h *Handler, mode string) {
	tree := router.Group("/" + mode)

	tree.GET("", h.Root(mode))
	tree.GET("/conformance", h.Conformance)
	tree.GET("/:provider", h.Provider(mode))
	tree.GET("/:provider/search", h.Search(mode))
	tree.POST("/:provider/search", h.Search(mode))
	tree.GET("/:provider/collections", h.Collections(mode))
	tree.GET("/:provider/collections/:collectionId", h.GetCollection(mode))
	tree.GET("/:provider/collections/:collectionId/items", h.Items(mode))
	tree.GET("/:provider/collections/:collectionId/items/:itemId", h.GetItem(mode))

	// The browse feature only activates once at least a year is present;
	// a bare /browse path has no route.
	tree.GET("/:provider/collections/:collectionId/browse/:year", h.Browse(mode))
	tree.GET("/:provider/collections/:collectionId/browse/:year/:month", h.Browse(mode))
	tree.GET("/:provider/collections/:collectionId/browse/:year/:month/:day", h.Browse(mode))
}
