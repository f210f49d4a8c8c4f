package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"github.com/yatra/backend/internal/cache"
	"github.com/yatra/backend/internal/config"
	"github.com/yatra/backend/internal/domain"
	"github.com/yatra/backend/internal/events"
	"github.com/yatra/backend/internal/handler"
	appMiddleware "github.com/yatra/backend/internal/middleware"
	"github.com/yatra/backend/internal/pricing"
	"github.com/yatra/backend/internal/repository"
	"github.com/yatra/backend/internal/service"
	"github.com/yatra/backend/pkg/crypto"
)

// eventSink is a booking event publisher that must be flushed on shutdown.
type eventSink interface {
	service.EventPublisher
	Close() error
}

func main() {
	// Load config (.env is picked up if present)
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌ Config error: %v", err)
	}

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	// Initialize database
	db, err := repository.NewDB(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("❌ Database error: %v", err)
	}
	defer db.Close()

	// Run migrations
	if err := repository.RunMigrations(ctx, db); err != nil {
		log.Fatalf("❌ Migration error: %v", err)
	}
	log.Println("✅ Database connected & migrated")

	// Initialize encryptor
	enc, err := crypto.NewEncryptor(cfg.EncryptionKey)
	if err != nil {
		log.Fatalf("❌ Encryption error: %v", err)
	}

	// Pricing table
	table, err := pricing.LoadTable(cfg.PricingConfig)
	if err != nil {
		log.Fatalf("❌ Pricing config error: %v", err)
	}
	if cfg.PricingConfig != "" {
		log.Printf("✅ Pricing table loaded from %s", cfg.PricingConfig)
	}

	// Booking events
	var sink eventSink = events.NopPublisher{}
	if brokers := cfg.Brokers(); len(brokers) > 0 {
		sink = events.NewKafkaPublisher(brokers, cfg.KafkaBookingTopic)
		log.Printf("✅ Booking events -> kafka %v topic=%s", brokers, cfg.KafkaBookingTopic)
	} else {
		log.Println("⚠️  KAFKA_BROKERS not set, booking events disabled")
	}

	// Google sign-in is optional
	var google service.GoogleVerifier
	if cfg.GoogleClientID != "" {
		v, err := service.NewIDTokenVerifier(ctx, cfg.GoogleClientID)
		if err != nil {
			log.Printf("⚠️  Google sign-in unavailable: %v", err)
		} else {
			google = v
			log.Println("✅ Google sign-in enabled")
		}
	}

	// Repositories
	userRepo := repository.NewUserRepository(db)
	bookingRepo := repository.NewBookingRepository(db)
	placeRepo := repository.NewPlaceRepository(db)
	reviewRepo := repository.NewReviewRepository(db)
	commentRepo := repository.NewCommentRepository(db)

	// Services
	authSvc := service.NewAuthService(cfg.JWTSecret, cfg.AdminEmail, cfg.AdminPassword, userRepo, google)

	// Seed admin user on first startup
	if err := authSvc.SeedAdmin(ctx); err != nil {
		log.Fatalf("❌ Admin seed error: %v", err)
	}

	subSvc := service.NewSubscriptionService(userRepo, domain.NewPlanCatalogue(cfg.MonthlyPrice, cfg.YearlyPrice))
	bookingSvc := service.NewBookingService(bookingRepo, placeRepo, subSvc, table, enc, sink)

	// Destination summaries are cached only when Redis is configured
	var destCache service.DestinationCache
	if cfg.RedisAddr != "" {
		rc := cache.NewRedisCache(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB, cfg.DestinationCacheTTL)
		defer rc.Close()
		if err := rc.Ping(ctx); err != nil {
			log.Printf("⚠️  Redis not reachable at %s: %v (cache misses will fall through)", cfg.RedisAddr, err)
		} else {
			log.Printf("✅ Redis connected (%s)", cfg.RedisAddr)
		}
		destCache = rc
	}
	placeSvc := service.NewPlaceService(placeRepo, destCache)
	reviewSvc := service.NewReviewService(reviewRepo, placeRepo, bookingRepo, destCache)
	commentSvc := service.NewCommentService(commentRepo, placeRepo)

	// Clear lapsed subscriptions in the background
	service.NewExpirySweeper(userRepo, 15*time.Minute).Start(ctx)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authSvc)
	userHandler := handler.NewUserHandler(authSvc)
	subHandler := handler.NewSubscriptionHandler(subSvc)
	bookingHandler := handler.NewBookingHandler(bookingSvc)
	placeHandler := handler.NewPlaceHandler(placeSvc)
	reviewHandler := handler.NewReviewHandler(reviewSvc)
	commentHandler := handler.NewCommentHandler(commentSvc)
	healthHandler := handler.NewHealthHandler(db)

	metrics := appMiddleware.NewMetrics()

	// Build router
	r := chi.NewRouter()

	// Global middleware
	r.Use(appMiddleware.Recovery)
	r.Use(appMiddleware.Logger)
	r.Use(metrics.Monitor)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins(),
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Global rate limiter (20 req/sec per IP, burst of 40)
	globalRL := appMiddleware.NewRateLimiter(ctx, 20, 40)
	r.Use(globalRL.Middleware())

	// Health check, metrics and public routes (no auth)
	r.Get("/health", healthHandler.Check)
	r.With(appMiddleware.BasicAuth(cfg.MetricsUser, cfg.MetricsPass)).Handle("/metrics", metrics.Handler())
	r.Get("/api/subscription/plans", subHandler.Plans)
	r.Get("/api/destinations", placeHandler.ListDestinations)
	r.Get("/api/destinations/regions", placeHandler.Regions)
	r.Get("/api/destinations/{id}", placeHandler.Destination)
	r.Get("/api/places/featured", placeHandler.Featured)
	r.Get("/api/places/search", placeHandler.Search)
	r.Get("/api/places/destination/{id}", placeHandler.PlacesByDestination)
	r.Get("/api/reviews/place/{placeId}", reviewHandler.ListForPlace)
	r.Get("/api/comments/place/{placeId}", commentHandler.ListForPlace)

	// Credential routes
	r.Group(func(r chi.Router) {
		r.Use(appMiddleware.StrictRateLimiter(ctx))
		r.Post("/api/auth/register", authHandler.Register)
		r.Post("/api/auth/login", authHandler.Login)
		r.Post("/api/auth/google", authHandler.Google)
	})

	// Protected API routes
	r.Group(func(r chi.Router) {
		r.Use(appMiddleware.Auth(authSvc))

		r.Get("/api/auth/me", authHandler.Me)
		r.Put("/api/auth/profile", authHandler.Profile)

		// Subscription
		r.Post("/api/subscription/subscribe", subHandler.Subscribe)
		r.Get("/api/subscription/status", subHandler.Status)
		r.Delete("/api/subscription/cancel", subHandler.Cancel)

		// Bookings
		r.Post("/api/bookings/quote", bookingHandler.Quote)
		r.Post("/api/bookings", bookingHandler.Create)
		r.Get("/api/bookings/user", bookingHandler.ListMine)
		r.Get("/api/bookings/{id}", bookingHandler.Get)
		r.Put("/api/bookings/{id}/status", bookingHandler.UpdateStatus)

		// Reviews
		r.Post("/api/reviews", reviewHandler.Create)
		r.Get("/api/reviews/user", reviewHandler.ListMine)
		r.Put("/api/reviews/{id}", reviewHandler.Update)
		r.Delete("/api/reviews/{id}", reviewHandler.Delete)
		r.Post("/api/reviews/{id}/helpful", reviewHandler.Helpful)

		// Comments
		r.Post("/api/comments", commentHandler.Create)
		r.Get("/api/comments/user", commentHandler.ListMine)
		r.Put("/api/comments/{id}", commentHandler.Update)
		r.Delete("/api/comments/{id}", commentHandler.Delete)
		r.Post("/api/comments/{id}/like", commentHandler.Like)

		// Subscriber-only content
		r.Group(func(r chi.Router) {
			r.Use(appMiddleware.RequireSubscription(subSvc, metrics))
			r.Get("/api/places/{id}", placeHandler.Place)
		})

		// Admin routes
		r.Group(func(r chi.Router) {
			r.Use(appMiddleware.AdminOnly)
			r.Get("/api/bookings/all", bookingHandler.ListAll)
			r.Get("/api/bookings/stats", bookingHandler.Stats)
			r.Put("/api/bookings/{id}/admin", bookingHandler.AdminUpdate)
			r.Get("/api/users", userHandler.List)
			r.Post("/api/users", userHandler.Create)
			r.Delete("/api/users/{id}", userHandler.Delete)
			r.Post("/api/admin/destinations", placeHandler.CreateDestination)
			r.Put("/api/admin/destinations/{id}", placeHandler.UpdateDestination)
			r.Delete("/api/admin/destinations/{id}", placeHandler.DeleteDestination)
			r.Post("/api/admin/places", placeHandler.CreatePlace)
			r.Put("/api/admin/places/{id}", placeHandler.UpdatePlace)
			r.Delete("/api/admin/places/{id}", placeHandler.DeletePlace)
			r.Delete("/api/reviews/{id}/admin", reviewHandler.AdminDelete)
			r.Delete("/api/comments/{id}/admin", commentHandler.AdminDelete)
		})
	})

	// Start server
	addr := fmt.Sprintf("0.0.0.0:%d", cfg.Port)
	server := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// Graceful shutdown
	done := make(chan struct{})
	go func() {
		defer close(done)
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh

		log.Println("🛑 Shutting down...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			log.Printf("⚠️  Shutdown error: %v", err)
		}
		if err := sink.Close(); err != nil {
			log.Printf("⚠️  Failed to flush booking events: %v", err)
		}
		stop()
	}()

	log.Printf("🚀 Yatra Backend (Go) listening at http://%s", addr)
	if err := server.ListenAndServe(); err != http.ErrServerClosed {
		log.Fatalf("❌ Server error: %v", err)
	}
	<-done
}
