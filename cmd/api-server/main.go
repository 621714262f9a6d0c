package main

import (
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"reviewhub/database"
	"reviewhub/internal/config"
	"reviewhub/internal/http-api/handler"
	"reviewhub/internal/http-api/middleware"
	"reviewhub/internal/http-api/repository"
	"reviewhub/internal/http-api/service"
	"reviewhub/internal/mail"
	"reviewhub/internal/token"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("could not load config: %v", err)
	}

	logger := newLogger(cfg)
	slog.SetDefault(logger)

	db, err := database.ConnectDB(cfg, logger)
	if err != nil {
		logger.Error("database connection failed", "error", err)
		os.Exit(1)
	}

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	// Repositories
	users := repository.NewUserRepository(db)
	categories := repository.NewCategoryRepository(db)
	genres := repository.NewGenreRepository(db)
	titles := repository.NewTitleRepository(db)
	reviews := repository.NewReviewRepository(db)
	comments := repository.NewCommentRepository(db)

	// Services
	issuer := token.NewIssuer(cfg.JWTSecret, cfg.AccessTokenTTL)
	sender := mail.NewSMTPSender(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword, cfg.MailFrom)

	authSvc := service.NewAuthService(users, issuer, sender, logger)
	userSvc := service.NewUserService(users)
	categorySvc := service.NewCategoryService(categories)
	genreSvc := service.NewGenreService(genres)
	titleSvc := service.NewTitleService(titles, categories, genres)
	reviewSvc := service.NewReviewService(reviews, titles)
	commentSvc := service.NewCommentService(comments, reviews)

	// HTTP
	r := gin.New()
	r.Use(gin.Logger())
	r.Use(gin.Recovery())

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	authRequired := middleware.AuthRequired(issuer)
	authLimit := middleware.RateLimit(rate.Limit(cfg.AuthRateLimit), cfg.AuthRateBurst)

	// every endpoint sees the actor when a valid token rides along; routes
	// that demand one stack AuthRequired on top
	api := r.Group("/api/v1", middleware.AuthOptional(issuer))

	handler.NewAuthHandler(authSvc).RegisterRoutes(api.Group("/auth"), authLimit)
	handler.NewUserHandler(userSvc).RegisterRoutes(api.Group("/users"), authRequired)
	handler.NewCategoryHandler(categorySvc).RegisterRoutes(api.Group("/categories"), authRequired)
	handler.NewGenreHandler(genreSvc).RegisterRoutes(api.Group("/genres"), authRequired)
	handler.NewTitleHandler(titleSvc).RegisterRoutes(api.Group("/titles"), authRequired)
	handler.NewReviewHandler(reviewSvc).RegisterRoutes(api.Group("/titles/:title_id/reviews"), authRequired)
	handler.NewCommentHandler(commentSvc).RegisterRoutes(api.Group("/titles/:title_id/reviews/:review_id/comments"), authRequired)

	addr := fmt.Sprintf(":%d", cfg.HTTPPort)
	logger.Info("server starting", "addr", addr, "env", cfg.GoEnv)
	if err := r.Run(addr); err != nil {
		logger.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func newLogger(cfg *config.Config) *slog.Logger {
	var level slog.Level
	switch cfg.LogLevel {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}
	var h slog.Handler
	if cfg.LogFormat == "json" {
		h = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		h = slog.NewTextHandler(os.Stdout, opts)
	}
	return slog.New(h)
}
