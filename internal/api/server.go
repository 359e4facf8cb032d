package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"uploader/internal/api/handlers"
	"uploader/internal/api/middleware"
	"uploader/internal/config"
	"uploader/internal/database"
	"uploader/internal/events"
	"uploader/internal/store"
	"uploader/internal/sync"
	"uploader/internal/translations"
	"uploader/internal/woocommerce"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type Server struct {
	config    *config.Config
	log       *logrus.Logger
	db        *database.Database
	publisher *events.Publisher
	router    *gin.Engine
	server    *http.Server
}

func New(cfg *config.Config, log *logrus.Logger, db *database.Database) *Server {
	// Set Gin mode
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Middleware
	router.Use(middleware.Logger(log))
	router.Use(middleware.Recovery(log))
	router.Use(middleware.CORS())
	router.Use(middleware.Auth(cfg.AuthKey))

	// Wiring
	st := store.New(db.DB)
	api := woocommerce.NewClient(cfg.WCAPIURL, cfg.WCAPIKey, cfg.WCAPISecret, log)
	linker := translations.New(st, cfg.DefaultLanguage)
	syncer := sync.New(st, api, linker, cfg.UploadDir, log)
	publisher := events.New(cfg.KafkaBrokers, log)

	catalogHandler := handlers.NewCatalogHandler(api, st, log)
	uploadHandler := handlers.NewUploadHandler(syncer, publisher, log)

	// Routes. Page params are optional, so read routes register twice.
	router.GET("/attributes", catalogHandler.Attributes)
	router.GET("/tags", catalogHandler.Tags)
	router.GET("/tags/:page", catalogHandler.Tags)
	router.GET("/categories", catalogHandler.Categories)
	router.GET("/categories/:page", catalogHandler.Categories)
	router.GET("/products", catalogHandler.Products)
	router.GET("/products/:page", catalogHandler.Products)
	router.GET("/terms", catalogHandler.Terms)
	router.GET("/terms/:page", catalogHandler.Terms)
	router.GET("/product/:sku/variations", catalogHandler.Variations)
	router.GET("/product/:sku/variations/:page", catalogHandler.Variations)
	router.GET("/image", catalogHandler.Image)
	router.GET("/image/:name", catalogHandler.Image)

	router.POST("/attributes", uploadHandler.Attributes)
	router.POST("/tags", uploadHandler.Tags)
	router.POST("/categories", uploadHandler.Categories)
	router.POST("/products", uploadHandler.Products)
	router.POST("/variations", uploadHandler.Variations)
	router.POST("/terms", uploadHandler.Terms)
	router.POST("/image", uploadHandler.Images)
	router.POST("/menu", uploadHandler.Menu)

	return &Server{
		config:    cfg,
		log:       log,
		db:        db,
		publisher: publisher,
		router:    router,
	}
}

func (s *Server) Start() error {
	addr := fmt.Sprintf("%s:%s", s.config.APIHost, s.config.APIPort)

	s.server = &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	s.log.Info("Starting server on " + addr)
	return s.server.ListenAndServe()
}

func (s *Server) Stop(ctx context.Context) error {
	s.log.Info("Shutting down server...")
	if err := s.publisher.Close(); err != nil {
		s.log.WithError(err).Warn("Failed to close event publisher")
	}
	return s.server.Shutdown(ctx)
}

// Router exposes the Gin engine for tests.
func (s *Server) Router() *gin.Engine {
	return s.router
}
