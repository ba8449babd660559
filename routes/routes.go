package routes

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"PRESENSI/controllers/absen"
	"PRESENSI/controllers/auth"
	"PRESENSI/controllers/face"
	"PRESENSI/middlewares"
	"PRESENSI/services"
)

type Handlers struct {
	Absen *absen.Controller
	Face  *face.Controller
	Auth  *auth.Controller
}

type Options struct {
	Environment string
	JWTKey      []byte
	CapturesDir string
}

func NewRouter(h Handlers, opts Options, log zerolog.Logger) *gin.Engine {
	if opts.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middlewares.RequestLogger(log))
	router.Use(cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowHeaders:    []string{"*"},
		ExposeHeaders:   []string{"Content-Type", middlewares.RequestIDHeader},
		MaxAge:          12 * time.Hour,
	}))

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	if opts.CapturesDir != "" {
		router.Static(services.CaptureURLPrefix, opts.CapturesDir)
	}

	// Kiosk
	router.POST("/recognize", h.Absen.RecognizeHandler)
	router.GET("/attendance/today", h.Absen.TodayHandler)
	router.GET("/list_faces", h.Face.ListFacesHandler)
	router.POST("/admin/login", h.Auth.LoginHandler)

	// Admin
	admin := router.Group("/")
	admin.Use(middlewares.RequireAdmin(opts.JWTKey))
	{
		admin.POST("/reset_absensi", h.Absen.ResetHandler)
		admin.POST("/upload_dataset", h.Face.UploadDatasetHandler)
		admin.DELETE("/delete_face/:name", h.Face.DeleteFaceHandler)
		admin.POST("/reload_db", h.Face.ReloadDBHandler)
	}

	return router
}
