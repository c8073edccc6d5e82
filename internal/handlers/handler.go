package handlers

import (
	"firewatch/internal/logger"
	"firewatch/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Handler wires HTTP layer to services and logging.
type Handler struct {
	services *service.Service
	log      *logger.Logger
}

// NewHandler constructs a new HTTP handler with dependencies.
func NewHandler(services *service.Service, log *logger.Logger) *Handler {
	return &Handler{services: services, log: log}
}

// InitRoutes builds and returns the Gin router with all routes registered.
// Ingestion and the dashboard surface are open; the ops API under /api/v1
// requires a Bearer token.
func (h *Handler) InitRoutes() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// System endpoints
	router.GET("/health", h.health)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Sensor ingestion and dashboard (open: the fleet does not authenticate)
	router.POST("/sensordata", h.ingestReading)
	router.GET("/live", h.liveData)
	router.GET("/ws", h.wsConnect)

	// Auth endpoints
	h.registerAuthRoutes(router)

	// Versioned ops API (protected)
	h.registerAPIRoutes(router)

	return router
}

func (h *Handler) registerAuthRoutes(r *gin.Engine) {
	auth := r.Group("/auth")
	{
		auth.POST("/sign-up", h.signUp)
		auth.POST("/sign-in", h.signIn)
	}
}

func (h *Handler) registerAPIRoutes(r *gin.Engine) {
	api := r.Group("/api/v1", h.userIdMiddleware)
	{
		people := api.Group("/people")
		{
			people.GET("/", h.buildingOccupancy)
			people.GET("/:room", h.roomOccupancy)
		}
		api.GET("/incidents", h.listIncidents)
	}
}
