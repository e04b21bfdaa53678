package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// RouterConfig carries what NewRouter needs besides the handler.
type RouterConfig struct {
	CORSOrigins []string
	Logger      *logrus.Logger
	Observer    RequestObserver
	Metrics     http.Handler
}

func NewRouter(handler *Handler, cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), RequestID())
	if cfg.Logger != nil {
		router.Use(RequestLogger(cfg.Logger, cfg.Observer))
	}
	router.Use(CORS(cfg.CORSOrigins))

	SetupRoutes(router, handler)
	if cfg.Metrics != nil {
		router.GET("/metrics", gin.WrapH(cfg.Metrics))
	}
	return router
}

func SetupRoutes(router *gin.Engine, handler *Handler) {
	api := router.Group("/api")
	{
		api.GET("/health", handler.Health)
		api.GET("/options", handler.GetOptions)
		api.GET("/overview", handler.GetOverview)
		api.GET("/ratio", handler.GetRatio)
		api.GET("/trend", handler.GetTrend)
		api.GET("/seoul", handler.GetSeoul)
		api.GET("/correlation", handler.GetCorrelation)
		api.GET("/rent/variance", handler.GetRentVariance)
		api.GET("/export/overview.xlsx", handler.ExportOverview)
		api.GET("/districts.geojson", handler.GetDistrictsGeoJSON)
		api.GET("/ingestions", handler.GetIngestions)
	}
}
