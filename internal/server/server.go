package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"backend/internal/config"
	"backend/internal/handler"
	"backend/internal/middleware"
	"backend/internal/notifier"
	"backend/internal/predictor"
	"backend/internal/registry"
	"backend/internal/repository"
	"backend/internal/sink"
)

type Server struct {
	router   *gin.Engine
	db       *sqlx.DB
	cfg      *config.Config
	logger   *zap.Logger
	registry *registry.Registry
	verifier middleware.TokenVerifier
	mailer   notifier.Mailer
}

func NewServer(db *sqlx.DB, cfg *config.Config, logger *zap.Logger, reg *registry.Registry, verifier middleware.TokenVerifier, mailer notifier.Mailer) *Server {
	router := gin.Default()

	s := &Server{
		router:   router,
		db:       db,
		cfg:      cfg,
		logger:   logger,
		registry: reg,
		verifier: verifier,
		mailer:   mailer,
	}

	s.setupRoutes()

	return s
}

func (s *Server) setupRoutes() {
	historyRepo := repository.NewHistoryRepository(s.db, s.logger)
	profileRepo := repository.NewProfileRepository(s.db, s.logger)

	recorder := sink.NewRecorder(historyRepo, s.mailer, s.logger)
	dispatcher := predictor.NewDispatcher(s.registry, recorder, s.logger)

	predictHandler := handler.NewPredictHandler(dispatcher, s.logger)
	profileHandler := handler.NewProfileHandler(profileRepo, historyRepo, s.logger)
	authHandler := handler.NewAuthHandler()

	s.router.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "Cardiac Prediction API is running",
		})
	})

	s.router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
			"models":  s.registry.Status(),
		})
	})

	// Simulated scoring requires no verified identity.
	s.router.POST("/predict/synthetic", predictHandler.PredictSynthetic)

	authRequired := s.router.Group("/")
	authRequired.Use(middleware.AuthMiddleware(s.verifier, s.logger))
	{
		authRequired.POST("/predict", predictHandler.PredictAcute) // legacy alias
		authRequired.POST("/predict/acute", predictHandler.PredictAcute)
		authRequired.POST("/predict/lifestyle", predictHandler.PredictLifestyle)

		authRequired.GET("/auth/me", authHandler.Me)

		authRequired.GET("/profile", profileHandler.GetProfile)
		authRequired.POST("/profile", profileHandler.SaveProfile)
		authRequired.GET("/profile/history", profileHandler.GetHistory)
	}
}

func (s *Server) Run(addr string) {
	s.logger.Info("Server starting", zap.String("addr", addr))
	if err := s.router.Run(addr); err != nil {
		s.logger.Fatal("Server failed to start", zap.Error(err))
	}
}
