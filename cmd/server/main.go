package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"homeworkhub/internal/ai"
	"homeworkhub/internal/config"
	"homeworkhub/internal/handlers"
	"homeworkhub/internal/repository"
	"homeworkhub/internal/security"
	"homeworkhub/internal/service"
	"homeworkhub/internal/storage"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize storage with config (supports sqlite, postgres, mysql)
	store, err := storage.InitializeWithConfig(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize storage: %v", err)
	}
	defer store.Close()

	log.Printf("Storage ready (type: %s)", cfg.DatabaseType)

	// Initialize repositories
	userRepo := repository.NewUserRepository(store)
	childRepo := repository.NewChildRepository(store)
	assignmentRepo := repository.NewAssignmentRepository(store)
	practiceRepo := repository.NewPracticeQuestionRepository(store)
	tutorRepo := repository.NewTutorRepository(store)

	// Initialize services
	authService := service.NewAuthService(userRepo, cfg.SessionSecret, cfg.SessionDuration)
	childService := service.NewChildService(childRepo, assignmentRepo, practiceRepo)
	practiceService := service.NewPracticeService(practiceRepo, childRepo)
	progressService := service.NewProgressService(childRepo, assignmentRepo, practiceRepo)
	gradingService := service.NewGradingService(
		childRepo, assignmentRepo, practiceRepo,
		&ai.MockUploader{Delay: cfg.AIDelay},
		&ai.MockExtractor{Delay: cfg.AIDelay},
		&ai.MockGrader{Delay: cfg.AIDelay},
		&ai.MockQuestionGenerator{Delay: cfg.AIDelay},
	)

	emailService, err := service.NewEmailService(cfg.AWSRegion, cfg.SESFromEmail, cfg.SESFromName, cfg.AppBaseURL)
	if err != nil {
		log.Fatalf("Failed to initialize email service: %v", err)
	}
	reportService := service.NewReportService(userRepo, childRepo, progressService, emailService)

	// Seed the demo account and sample data on first run
	seedService := service.NewSeedService(userRepo, childRepo, assignmentRepo, practiceRepo, tutorRepo)
	if err := seedService.SeedIfEmpty(cfg.DemoEmail, cfg.DemoPassword); err != nil {
		log.Fatalf("Failed to seed demo data: %v", err)
	}

	// Initialize handlers
	loginLimiter := security.NewRateLimiter(10, time.Minute)
	middleware := handlers.NewMiddleware(authService, loginLimiter)
	authHandler := handlers.NewAuthHandler(authService)
	childHandler := handlers.NewChildHandler(childService)
	assignmentHandler := handlers.NewAssignmentHandler(assignmentRepo)
	uploadHandler := handlers.NewUploadHandler(gradingService, cfg.UploadMaxSize)
	progressHandler := handlers.NewProgressHandler(progressService)
	practiceHandler := handlers.NewPracticeHandler(practiceService, practiceRepo)
	tutorHandler := handlers.NewTutorHandler(tutorRepo)

	// Setup routes
	mux := http.NewServeMux()

	// Public routes
	mux.HandleFunc("POST /api/login", middleware.RateLimit(authHandler.Login))
	mux.HandleFunc("POST /api/logout", authHandler.Logout)

	// Account
	mux.HandleFunc("GET /api/me", middleware.RequireAuth(authHandler.Me))
	mux.HandleFunc("PUT /api/me", middleware.RequireAuth(authHandler.UpdateMe))

	// Children
	mux.HandleFunc("GET /api/children", middleware.RequireAuth(childHandler.List))
	mux.HandleFunc("POST /api/children", middleware.RequireAuth(childHandler.Create))
	mux.HandleFunc("GET /api/children/{id}", middleware.RequireAuth(childHandler.Get))
	mux.HandleFunc("PUT /api/children/{id}", middleware.RequireAuth(childHandler.Update))
	mux.HandleFunc("DELETE /api/children/{id}", middleware.RequireAuth(childHandler.Delete))

	// Assignments and uploads
	mux.HandleFunc("GET /api/assignments", middleware.RequireAuth(assignmentHandler.List))
	mux.HandleFunc("GET /api/assignments/{id}", middleware.RequireAuth(assignmentHandler.Get))
	mux.HandleFunc("DELETE /api/assignments/{id}", middleware.RequireAuth(assignmentHandler.Delete))
	mux.HandleFunc("POST /api/uploads", middleware.RequireAuth(uploadHandler.Upload))

	// Progress
	mux.HandleFunc("GET /api/dashboard", middleware.RequireAuth(progressHandler.Dashboard))
	mux.HandleFunc("GET /api/progress/{childId}", middleware.RequireAuth(progressHandler.Progress))

	// Practice
	mux.HandleFunc("GET /api/practice/questions", middleware.RequireAuth(practiceHandler.ListQuestions))
	mux.HandleFunc("POST /api/practice/session", middleware.RequireAuth(practiceHandler.StartSession))
	mux.HandleFunc("GET /api/practice/session", middleware.RequireAuth(practiceHandler.GetSession))
	mux.HandleFunc("POST /api/practice/session/answer", middleware.RequireAuth(practiceHandler.Answer))
	mux.HandleFunc("POST /api/practice/session/next", middleware.RequireAuth(practiceHandler.Next))
	mux.HandleFunc("POST /api/practice/session/restart", middleware.RequireAuth(practiceHandler.Restart))

	// Tutors
	mux.HandleFunc("GET /api/tutors", middleware.RequireAuth(tutorHandler.List))

	// Wrap with logging middleware
	handler := handlers.Logging(mux)

	// Start server
	addr := ":" + cfg.ServerPort
	server := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start the weekly report loop
	reportCtx, cancelReports := context.WithCancel(context.Background())
	go runWeeklyReports(reportCtx, reportService, cfg.ReportInterval)

	// Graceful shutdown
	go func() {
		log.Printf("Server starting on http://localhost%s", addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Server shutting down...")
	cancelReports()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("Shutdown error: %v", err)
	}
}

// runWeeklyReports sends the progress summary email on a fixed interval
func runWeeklyReports(ctx context.Context, reports *service.ReportService, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := reports.SendWeeklyReport(ctx); err != nil {
				log.Printf("Weekly report failed: %v", err)
			}
		}
	}
}
