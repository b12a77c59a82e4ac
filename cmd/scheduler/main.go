package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/robfig/cron/v3"

	"github.com/peoplehub/loan-engine/internal/config"
	"github.com/peoplehub/loan-engine/internal/repository"
	"github.com/peoplehub/loan-engine/internal/service"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := sqlx.Connect("postgres", cfg.Database.URL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	loanRepo := repository.NewLoanRepository(db)
	employeeRepo := repository.NewEmployeeRepository(db)
	vacationRepo := repository.NewVacationRepository(db)
	payrollRepo := repository.NewPayrollRepository(db)

	loanService := service.NewLoanService(loanRepo, employeeRepo, nil, cfg)
	payrollService := service.NewPayrollService(loanRepo, employeeRepo, vacationRepo, payrollRepo, cfg)

	c := cron.New(cron.WithLocation(cfg.GetSchedulerLocation()))

	// Schedule tasks
	setupCronJobs(c, loanService, payrollService)

	// Start the scheduler
	c.Start()
	log.Println("Scheduler started successfully")

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down scheduler...")
	c.Stop()
	log.Println("Scheduler stopped")
}

func setupCronJobs(c *cron.Cron, loanService *service.LoanService, payrollService *service.PayrollService) {
	// Monthly payroll close: attach loan deduction lines (pause-aware)
	// to every entry of the month that just ended. Runs on the 1st.
	_, err := c.AddFunc("30 0 1 * *", func() {
		log.Println("Running monthly payroll deduction job...")

		now := time.Now()
		periodEnd := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()).AddDate(0, 0, -1)
		periodStart := time.Date(periodEnd.Year(), periodEnd.Month(), 1, 0, 0, 0, 0, periodEnd.Location())

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
		defer cancel()

		if err := payrollService.RunPayrollPeriod(ctx, periodStart, periodEnd); err != nil {
			log.Printf("Payroll deduction job failed: %v", err)
		}
	})
	if err != nil {
		log.Printf("Error scheduling payroll deduction job: %v", err)
	}

	// Daily overdue sweep: mark pending installments of active loans
	// whose due date has passed.
	_, err = c.AddFunc("0 1 * * *", func() {
		log.Println("Running overdue schedule marking job...")

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
		defer cancel()

		marked, err := loanService.MarkOverdueSchedules(ctx, time.Now())
		if err != nil {
			log.Printf("Overdue schedule marking job failed: %v", err)
			return
		}
		log.Printf("Overdue schedule marking job done, %d installments marked", marked)
	})
	if err != nil {
		log.Printf("Error scheduling overdue marking job: %v", err)
	}

	log.Println("Cron jobs scheduled successfully")
}
