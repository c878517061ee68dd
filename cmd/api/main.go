package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"travelapp/internal/config"
	"travelapp/internal/database"
	"travelapp/internal/middleware"
	"travelapp/internal/modules/booking"
	"travelapp/internal/modules/listing"
	"travelapp/internal/modules/review"
	"travelapp/internal/pkg/response"
	"travelapp/internal/repository"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}
	if cfg.IsProd() {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := database.Connect(cfg.DatabaseURL, cfg.LogLevel())
	if err != nil {
		log.Fatal(err)
	}
	defer database.Close(db)

	if err := repository.Migrate(db); err != nil {
		log.Fatal("AutoMigrate failed: ", err)
	}

	store := repository.NewStore(db)

	listingService := listing.NewService(store.Listings, store.Users)
	listingHandler := listing.NewHandler(listingService)

	bookingService := booking.NewService(store.Bookings, store.Listings, store.Users)
	bookingHandler := booking.NewHandler(bookingService)

	reviewService := review.NewService(store.Reviews, store.Listings, store.Users)
	reviewHandler := review.NewHandler(reviewService)

	r := gin.New()
	r.Use(gin.Logger())
	r.Use(middleware.RequestID())
	r.Use(middleware.ErrorLogger())
	r.Use(middleware.CORS(cfg.CORSAllowedOrigins))

	r.GET("/health", func(c *gin.Context) {
		response.Success(c, http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := r.Group("/api/v1")
	{
		listingHandler.RegisterRoutes(v1)
		bookingHandler.RegisterRoutes(v1)
		reviewHandler.RegisterRoutes(v1)
	}

	server := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Printf("api: listening addr=%s env=%s", cfg.HTTPAddr, cfg.AppEnv)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("api: listen: %v", err)
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	log.Println("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Printf("api: shutdown: %v", err)
	}
	log.Println("Server gracefully stopped")
}
