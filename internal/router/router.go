package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/gaojianqi6/rating-admin-api/internal/handler"
	"github.com/gaojianqi6/rating-admin-api/internal/metrics"
	"github.com/gaojianqi6/rating-admin-api/internal/middleware"
	"github.com/gaojianqi6/rating-admin-api/internal/repository"
	"github.com/gaojianqi6/rating-admin-api/internal/service"
)

// Config holds everything the router needs to wire the application
type Config struct {
	DB             *gorm.DB
	Logger         *zap.Logger
	RedisClient    *redis.Client
	JWTSecret      string
	BasePath       string
	AllowedOrigins []string
	Metrics        *metrics.Metrics
}

// Setup builds the gin engine with all routes and middleware wired
func Setup(cfg Config) *gin.Engine {
	r := gin.New()

	r.Use(middleware.Recovery(cfg.Logger))
	r.Use(middleware.CORS(cfg.AllowedOrigins))
	if cfg.Metrics != nil {
		r.Use(middleware.Metrics(cfg.Metrics))
	}

	// Repositories
	dataSourceRepo := repository.NewDataSourceRepository(cfg.DB)
	templateRepo := repository.NewTemplateRepository(cfg.DB)
	itemRepo := repository.NewItemRepository(cfg.DB)
	fieldValueRepo := repository.NewFieldValueRepository(cfg.DB)
	userRepo := repository.NewUserRepository(cfg.DB)
	statsRepo := repository.NewStatisticsRepository(cfg.DB)

	// Services
	dataSourceService := service.NewDataSourceService(dataSourceRepo)
	templateService := service.NewTemplateService(templateRepo, userRepo, cfg.Metrics)
	fieldValueService := service.NewFieldValueService(fieldValueRepo, itemRepo, templateRepo)
	itemService := service.NewItemService(itemRepo, templateRepo, userRepo, fieldValueService, cfg.Metrics)
	statisticsService := service.NewStatisticsService(statsRepo)
	authService := service.NewAuthService(userRepo, cfg.RedisClient, cfg.JWTSecret)

	// Handlers
	dataSourceHandler := handler.NewDataSourceHandler(dataSourceService)
	templateHandler := handler.NewTemplateHandler(templateService)
	itemHandler := handler.NewItemHandler(itemService, fieldValueService)
	statisticsHandler := handler.NewStatisticsHandler(statisticsService)
	authHandler := handler.NewAuthHandler(authService)

	// Health and metrics endpoints stay outside the base path so probes and
	// scrapers need no extra configuration; they are repeated under the base
	// path for ingress setups that route everything through it.
	registerOps := func(g gin.IRoutes) {
		g.GET("/health", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"status": "ok"})
		})
		g.GET("/ready", func(c *gin.Context) {
			sqlDB, err := cfg.DB.DB()
			if err != nil || sqlDB.Ping() != nil {
				c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
				return
			}
			c.JSON(http.StatusOK, gin.H{"status": "ready"})
		})
		g.GET("/metrics", gin.WrapH(promhttp.Handler()))
	}
	registerOps(r)

	var api *gin.RouterGroup
	if cfg.BasePath != "" {
		api = r.Group(cfg.BasePath)
		registerOps(api)
	} else {
		api = r.Group("")
	}

	// Public auth routes
	auth := api.Group("/auth")
	{
		auth.POST("/login", authHandler.Login)
	}

	// Authenticated routes
	authed := api.Group("")
	authed.Use(middleware.Auth(cfg.JWTSecret, authService))
	{
		authed.GET("/auth/me", authHandler.CurrentUser)
		authed.POST("/auth/logout", authHandler.Logout)

		datasources := authed.Group("/datasources")
		{
			datasources.POST("", dataSourceHandler.CreateDataSource)
			datasources.GET("", dataSourceHandler.ListDataSources)
		}

		templates := authed.Group("/templates")
		{
			templates.POST("", templateHandler.CreateTemplate)
			templates.GET("", templateHandler.ListTemplates)
			templates.GET("/:templateId", templateHandler.GetTemplate)
			templates.PUT("/:templateId", templateHandler.UpdateTemplate)
			templates.DELETE("/:templateId", templateHandler.DeleteTemplate)
			templates.POST("/:templateId/clone", templateHandler.CloneTemplate)
			templates.POST("/:templateId/publish", templateHandler.PublishTemplate)
			templates.POST("/:templateId/unpublish", templateHandler.UnpublishTemplate)
		}

		items := authed.Group("/items")
		{
			items.POST("", itemHandler.CreateItem)
			items.GET("", itemHandler.ListItems)
			items.GET("/:itemId", itemHandler.GetItem)
			items.DELETE("/:itemId", itemHandler.DeleteItem)
			items.GET("/:itemId/ratings", itemHandler.ListRatings)
			items.PUT("/:itemId/values", itemHandler.SetFieldValues)
			items.GET("/:itemId/values", itemHandler.GetFieldValues)
		}

		authed.GET("/statistics", statisticsHandler.GetStatistics)
	}

	return r
}
