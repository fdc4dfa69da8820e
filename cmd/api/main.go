package main

import (
	"fmt"
	"net/http"
	"os"
	"time"

	"database/sql"

	"github.com/gorilla/mux"
	"github.com/leadbank/crm-service/internal/config"
	"github.com/leadbank/crm-service/internal/handler"
	"github.com/leadbank/crm-service/internal/integrations/rates"
	"github.com/leadbank/crm-service/internal/integrations/whatsapp"
	"github.com/leadbank/crm-service/internal/middleware"
	"github.com/leadbank/crm-service/internal/repository"
	"github.com/leadbank/crm-service/internal/scheduler"
	"github.com/leadbank/crm-service/internal/service"
	"github.com/leadbank/crm-service/internal/utils/email"
	_ "github.com/lib/pq"
	"github.com/sirupsen/logrus"
)

func main() {
	// Initialize logger
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logLevel, err := logrus.ParseLevel(os.Getenv("LOG_LEVEL"))
	if err != nil {
		logLevel = logrus.InfoLevel
	}
	logger.SetLevel(logLevel)

	// Load configuration
	cfg, err := config.NewConfig()
	if err != nil {
		logger.Fatalf("Failed to load config: %v", err)
	}

	// Initialize database
	db, err := sql.Open("postgres", cfg.DBConn)
	if err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()
	if err := db.Ping(); err != nil {
		logger.Fatalf("Failed to ping database: %v", err)
	}

	// Initialize layers
	repo := repository.NewRepository(db)
	waClient := whatsapp.NewClient(cfg, logger)
	ratesClient := rates.NewClient(cfg, logger)
	mailer := email.NewSender(cfg, logger)
	svc := service.NewService(repo, logger, cfg, waClient, ratesClient, mailer)
	h := handler.NewHandler(svc, logger)

	// Daily follow-up digest
	sched, err := scheduler.New(cfg, svc, logger)
	if err != nil {
		logger.Fatalf("Failed to init scheduler: %v", err)
	}
	sched.Start()
	defer sched.Stop()

	// Setup router
	r := mux.NewRouter()
	// Public routes
	r.HandleFunc("/register", h.Register).Methods("POST")
	r.HandleFunc("/login", h.Login).Methods("POST")
	r.HandleFunc("/webhook/whatsapp", h.VerifyWebhook(cfg)).Methods("GET")
	r.HandleFunc("/webhook/whatsapp", h.ReceiveWebhook(cfg)).Methods("POST")
	// Performance reports
	r.HandleFunc("/performance/monthly-comparison", h.MonthlyComparison).Methods("GET")
	r.HandleFunc("/performance/segment-comparison", h.SegmentComparison).Methods("GET")
	r.HandleFunc("/performance/trends-summary", h.TrendsSummary).Methods("GET")
	// Protected routes
	authRouter := r.PathPrefix("/").Subrouter()
	authRouter.Use(middleware.AuthMiddleware(cfg))
	authRouter.HandleFunc("/leads", h.CreateLead).Methods("POST")
	authRouter.HandleFunc("/leads", h.ListLeads).Methods("GET")
	authRouter.HandleFunc("/leads/{id}", h.GetLead).Methods("GET")
	authRouter.HandleFunc("/leads/{id}", h.UpdateLead).Methods("PUT")
	authRouter.HandleFunc("/leads/{id}", h.DeleteLead).Methods("DELETE")
	authRouter.HandleFunc("/loans", h.CreateLoan).Methods("POST")
	authRouter.HandleFunc("/loans", h.ListLoans).Methods("GET")
	authRouter.HandleFunc("/loans/{id}", h.GetLoan).Methods("GET")
	authRouter.HandleFunc("/loans/{id}/step", h.SubmitLoanStep).Methods("PUT")
	authRouter.HandleFunc("/loans/{id}/status", h.DecideLoan).Methods("PUT")
	authRouter.HandleFunc("/chats/{phone}", h.GetChat).Methods("GET")
	authRouter.HandleFunc("/chats/{phone}/messages", h.SendChatMessage).Methods("POST")

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Port)
	server := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}
	logger.Infof("Starting server on %s", addr)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Fatalf("Server failed: %v", err)
	}
}
