package httpapi

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/dentassist/backend/internal/config"
	"github.com/dentassist/backend/internal/db"
	"github.com/dentassist/backend/internal/dialog"
	"github.com/dentassist/backend/internal/directory"
	"github.com/dentassist/backend/internal/http/handlers"
	"github.com/dentassist/backend/internal/http/middleware"
	"github.com/dentassist/backend/internal/models"
	"github.com/dentassist/backend/internal/nlu"
	"github.com/dentassist/backend/internal/session"

	_ "github.com/dentassist/backend/docs"
)

func Router(cfg config.Config, store *db.Store, sessions session.Store, orch *dialog.Orchestrator, dir directory.Directory, tenant models.Tenant, logger zerolog.Logger) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))

	corsCfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Admin-Key", "X-Request-Id"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if cfg.CORSAllowed == "*" {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = []string{cfg.CORSAllowed}
	}
	r.Use(cors.New(corsCfg))

	h := &handlers.Handler{
		Store:     store,
		Sessions:  sessions,
		Pipeline:  nlu.Pipeline{},
		Dialog:    orch,
		Directory: dir,
		Validator: validator.New(),
		Logger:    logger,
		Tenant:    tenant,
	}

	r.GET("/healthz", h.Healthz)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api")
	{
		api.POST("/chat", h.Chat)
		api.GET("/practitioners", h.PractitionersList)
		api.GET("/cabinet", h.CabinetInfo)
	}

	admin := api.Group("")
	admin.Use(middleware.AdminKey(cfg.AdminKey))
	{
		admin.GET("/sessions/:id", h.SessionGet)
		admin.DELETE("/sessions/:id", h.SessionDelete)
	}

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return r
}
