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

	"github.com/gorilla/mux"
	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"

	"github.com/peoplehub/loan-engine/internal/config"
	"github.com/peoplehub/loan-engine/internal/handler"
	"github.com/peoplehub/loan-engine/internal/repository"
	"github.com/peoplehub/loan-engine/internal/service"
	"github.com/peoplehub/loan-engine/pkg/response"
)

func main() {
	// Local development convenience; ignored when no .env exists
	_ = godotenv.Load()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize database
	db, err := initDB(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	// Initialize Redis
	redisClient := initRedis(cfg)
	defer redisClient.Close()

	// Initialize repositories
	loanRepo := repository.NewLoanRepository(db)
	employeeRepo := repository.NewEmployeeRepository(db)
	vacationRepo := repository.NewVacationRepository(db)
	payrollRepo := repository.NewPayrollRepository(db)

	// Initialize services
	loanService := service.NewLoanService(loanRepo, employeeRepo, redisClient, cfg)
	payrollService := service.NewPayrollService(loanRepo, employeeRepo, vacationRepo, payrollRepo, cfg)

	loanHandler := handler.NewLoanHandler(loanService)
	payrollHandler := handler.NewPayrollHandler(payrollService, loanHandler)
	healthHandler := handler.NewHealthHandler(db, redisClient)

	// Setup routes
	router := setupRoutes(loanHandler, payrollHandler, healthHandler)

	// Start server
	server := &http.Server{
		Addr:         cfg.Server.Host + ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	// Start server in a goroutine
	go func() {
		log.Printf("Server starting on %s", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	// Graceful shutdown
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exited")
}

func initDB(cfg *config.Config) (*sqlx.DB, error) {
	db, err := sqlx.Connect("postgres", cfg.Database.URL)
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.Database.ConnMaxLifetime)

	return db, nil
}

func initRedis(cfg *config.Config) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Host + ":" + cfg.Redis.Port,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
}

func setupRoutes(loanHandler *handler.LoanHandler, payrollHandler *handler.PayrollHandler, healthHandler *handler.HealthHandler) *mux.Router {
	router := mux.NewRouter()
	router.Use(response.LoggingMiddleware)
	router.Use(response.CORSMiddleware)

	// Health check
	router.HandleFunc("/health", healthHandler.Health).Methods("GET")
	router.HandleFunc("/health/ready", healthHandler.Ready).Methods("GET")

	// API routes
	api := router.PathPrefix("/api/v1").Subrouter()

	api.HandleFunc("/loans", loanHandler.CreateLoan).Methods("POST")
	api.HandleFunc("/loans/{loanId}/schedule", loanHandler.GetSchedule).Methods("GET")
	api.HandleFunc("/loans/{loanId}/schedule", loanHandler.RegenerateSchedule).Methods("POST")
	api.HandleFunc("/loans/{loanId}/compliance", loanHandler.GetCompliance).Methods("GET")
	api.HandleFunc("/loans/{loanId}/activate", loanHandler.ActivateLoan).Methods("POST")

	api.HandleFunc("/payroll/preview", payrollHandler.PreviewEntry).Methods("POST")
	api.HandleFunc("/payroll/entries", payrollHandler.CommitEntry).Methods("POST")
	api.HandleFunc("/employees/{employeeId}/loan-pause", payrollHandler.LoanPause).Methods("GET")

	return router
}
