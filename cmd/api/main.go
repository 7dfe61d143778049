package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/uchiyama0208/nightbase-sub009/internal/config"
	appHTTP "github.com/uchiyama0208/nightbase-sub009/internal/handler/http"
	"github.com/uchiyama0208/nightbase-sub009/internal/handler/http/middleware"
	"github.com/uchiyama0208/nightbase-sub009/internal/pkg/cron"
	"github.com/uchiyama0208/nightbase-sub009/internal/pkg/database"
	"github.com/uchiyama0208/nightbase-sub009/internal/pkg/jwt"
	"github.com/uchiyama0208/nightbase-sub009/internal/pkg/sse"
	"github.com/uchiyama0208/nightbase-sub009/internal/pkg/xendit"
	"github.com/uchiyama0208/nightbase-sub009/internal/repository/postgresql"
	attendanceService "github.com/uchiyama0208/nightbase-sub009/internal/service/attendance"
	authService "github.com/uchiyama0208/nightbase-sub009/internal/service/auth"
	orderService "github.com/uchiyama0208/nightbase-sub009/internal/service/order"
	payrollService "github.com/uchiyama0208/nightbase-sub009/internal/service/payroll"
	queueService "github.com/uchiyama0208/nightbase-sub009/internal/service/queue"
	staffService "github.com/uchiyama0208/nightbase-sub009/internal/service/staff"
	subscriptionService "github.com/uchiyama0208/nightbase-sub009/internal/service/subscription"
	venueService "github.com/uchiyama0208/nightbase-sub009/internal/service/venue"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	dsn := cfg.DatabaseURL()
	db, err := database.NewPostgreSQLDB(dsn)
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}

	venueRepo := postgresql.NewVenueRepository(db)
	staffRepo := postgresql.NewStaffRepository(db)
	attendanceRepo := postgresql.NewAttendanceRepository(db)
	sessionRepo := postgresql.NewSessionRepository(db)
	lineItemRepo := postgresql.NewLineItemRepository(db)
	menuRepo := postgresql.NewMenuRepository(db)
	ticketRepo := postgresql.NewTicketRepository(db)
	planRepo := postgresql.NewPlanRepository(db)
	subscriptionPlanRepo := postgresql.NewSubscriptionPlanRepository(db)
	subscriptionRepo := postgresql.NewSubscriptionRepository(db)
	invoiceRepo := postgresql.NewInvoiceRepository(db)

	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration, cfg.JWT.RefreshExpiration)
	xenditClient := xendit.NewClient(cfg.Xendit)
	webhookVerifier := xendit.NewWebhookVerifier(cfg.Xendit.WebhookToken)
	hub := sse.NewHub()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	authSvc := authService.NewAuthService(db, staffRepo, JWTService)
	venueSvc := venueService.NewVenueService(db, venueRepo)
	subscriptionSvc := subscriptionService.NewSubscriptionService(
		db,
		subscriptionPlanRepo,
		subscriptionRepo,
		invoiceRepo,
		staffRepo,
		xenditClient,
		cfg,
		logger,
	)
	staffSvc := staffService.NewStaffService(db, staffRepo, subscriptionSvc)
	attendanceSvc := attendanceService.NewAttendanceService(db, attendanceRepo, venueRepo)
	orderSvc := orderService.NewOrderService(db, sessionRepo, lineItemRepo, menuRepo, venueRepo)
	queueSvc := queueService.NewQueueService(db, ticketRepo, venueRepo, hub)
	payrollSvc := payrollService.NewPayrollService(db, planRepo, staffRepo, venueRepo, attendanceRepo, lineItemRepo)

	scheduler := cron.NewScheduler()
	cron.NewQueueJobs(queueSvc).RegisterJobs(scheduler)
	cron.NewSubscriptionJobs(subscriptionSvc).RegisterJobs(scheduler)
	scheduler.Start()
	defer scheduler.Stop()

	subscriptionMiddleware := middleware.NewSubscriptionMiddleware(subscriptionSvc)

	authHandler := appHTTP.NewAuthHandler(JWTService, authSvc)
	venueHandler := appHTTP.NewVenueHandler(venueSvc)
	staffHandler := appHTTP.NewStaffHandler(staffSvc)
	attendanceHandler := appHTTP.NewAttendanceHandler(attendanceSvc)
	orderHandler := appHTTP.NewOrderHandler(orderSvc)
	queueHandler := appHTTP.NewQueueHandler(queueSvc, JWTService, hub)
	payrollHandler := appHTTP.NewPayrollHandler(payrollSvc)
	subscriptionHandler := appHTTP.NewSubscriptionHandler(subscriptionSvc, webhookVerifier)

	router := appHTTP.NewRouter(
		JWTService,
		subscriptionMiddleware,
		authHandler,
		venueHandler,
		staffHandler,
		attendanceHandler,
		orderHandler,
		queueHandler,
		payrollHandler,
		subscriptionHandler,
	)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error:", err)
	}
}
