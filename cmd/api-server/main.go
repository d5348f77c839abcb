package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"bookhive/database"
	"bookhive/internal/cache"
	"bookhive/internal/config"
	"bookhive/internal/http-api/handler"
	"bookhive/internal/http-api/middleware"
	"bookhive/internal/http-api/repository"
	"bookhive/internal/http-api/service"

	"github.com/gin-gonic/gin"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("could not load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid config: %v", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("could not connect to database: %v", err)
	}
	defer database.Close(db)

	// Redis is optional: without it the cache is a no-op and every read
	// goes to Postgres.
	bookCache, err := cache.NewBookCache(cfg.RedisURL, cfg.RedisPassword, cfg.CacheTTL)
	if err != nil {
		log.Printf("running without redis cache: %v", err)
		bookCache = nil
	}
	defer bookCache.Close()

	// Repositories
	userRepo := repository.NewUserRepository(db)
	refreshTokenRepo := repository.NewRefreshTokenRepository(db)
	bookRepo := repository.NewBookRepository(db)
	borrowRepo := repository.NewBorrowRepository(db)
	savedRepo := repository.NewSavedRepository(db)

	// Services
	authService := service.NewAuthService(userRepo, refreshTokenRepo, cfg)
	bookService := service.NewBookService(bookRepo, borrowRepo, savedRepo, bookCache)
	borrowService := service.NewBorrowService(borrowRepo, bookRepo, userRepo, bookCache, int64(cfg.FineDailyRate))
	savedService := service.NewSavedService(savedRepo, bookRepo, userRepo)

	// Handlers
	authHandler := handler.NewAuthHandler(authService, int64(cfg.AccessTokenTTL.Seconds()))
	bookHandler := handler.NewBookHandler(bookService)
	borrowHandler := handler.NewBorrowHandler(borrowService)
	savedHandler := handler.NewSavedHandler(savedService)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Logger())
	r.Use(gin.Recovery())
	r.Use(middleware.RateLimit(cfg.RateLimitRPS, cfg.RateLimitBurst))

	r.GET("/check-conn", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, gin.H{"message": "API is alive and database connected"})
	})

	api := r.Group("/api/v1")

	authHandler.RegisterRoutes(api.Group("/auth"))

	books := api.Group("/books", middleware.AuthMiddleware(authService))
	bookHandler.RegisterRoutes(books)
	borrowHandler.RegisterBookRoutes(books)
	savedHandler.RegisterBookRoutes(books)

	borrowHandler.RegisterRoutes(api.Group("/borrows", middleware.AuthMiddleware(authService)))
	savedHandler.RegisterRoutes(api.Group("/saved", middleware.AuthMiddleware(authService)))

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler: r,
	}

	go func() {
		log.Printf("server running at %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server error: %v", err)
		}
	}()

	// graceful shutdown on SIGINT/SIGTERM
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("forced shutdown: %v", err)
	}
}
