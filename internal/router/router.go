package router

import (
	"net/http"

	"github.com/Predaotor/AI-content-Generator/internal/config"
	"github.com/Predaotor/AI-content-Generator/internal/handler"
	"github.com/Predaotor/AI-content-Generator/internal/middleware"
	"github.com/Predaotor/AI-content-Generator/internal/service"
	"github.com/Predaotor/AI-content-Generator/internal/util"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// SetupRouter configures the Gin engine, CORS and all API routes.
func SetupRouter(cfg *config.Config, db *gorm.DB, identity *service.Identity, gate *service.Gate, ledger *service.Ledger) *gin.Engine {
	if cfg.Server.Mode != "" {
		gin.SetMode(cfg.Server.Mode)
	}
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery(), middleware.RequestLogger())

	// frontend dev servers by default
	origins := cfg.CORS.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"http://localhost:3000", "http://127.0.0.1:3000"}
	}
	r.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
	}))

	// liveness + database reachability
	r.GET("/healthz", func(c *gin.Context) {
		sqlDB, err := db.DB()
		if err != nil || sqlDB.Ping() != nil {
			util.Error(c, http.StatusServiceUnavailable, util.CodeServerErr, "database unavailable")
			return
		}
		util.Success(c, util.Response{"status": "ok"})
	})

	// ====== API ======
	api := r.Group("/api")

	// registration and login (no auth required)
	authHandler := handler.NewAuthHandler(identity)
	api.POST("/auth/register", authHandler.Register)
	api.POST("/auth/login", authHandler.Login)
	api.POST("/auth/google", authHandler.GoogleLogin)

	// generation goes through the admission gate, which verifies the
	// bearer token itself
	generateHandler := handler.NewGenerateHandler(gate)
	api.POST("/generate/template", generateHandler.GenerateTemplate)
	api.POST("/generate/image", generateHandler.GenerateImage)

	// routes that need a logged-in, active user
	protected := api.Group("")
	protected.Use(middleware.AuthMiddleware(identity))

	saveHandler := handler.NewSaveHandler(db)
	protected.POST("/outputs", saveHandler.SaveOutput)

	profileHandler := handler.NewProfileHandler(db, ledger)
	protected.GET("/profile", profileHandler.GetProfile)

	exportHandler := handler.NewExportHandler(db)
	protected.GET("/export/csv", exportHandler.ExportCSV)
	protected.GET("/export/xlsx", exportHandler.ExportXLSX)

	return r
}
