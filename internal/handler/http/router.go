package http

import (
	"log/slog"
	"os"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
	"github.com/uchiyama0208/nightbase-sub009/internal/handler/http/middleware"
	"github.com/uchiyama0208/nightbase-sub009/internal/pkg/jwt"
)

func NewRouter(
	jwtService jwt.Service,
	subscriptionMiddleware *middleware.SubscriptionMiddleware,
	authHandler AuthHandler,
	venueHandler VenueHandler,
	staffHandler StaffHandler,
	attendanceHandler AttendanceHandler,
	orderHandler OrderHandler,
	queueHandler QueueHandler,
	payrollHandler PayrollHandler,
	subscriptionHandler SubscriptionHandler,
) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "nightbase"),
		slog.String("version", "v1.0.0"),
		slog.String("env", "development"),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000"},
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelDebug,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.AllowContentEncoding("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Route("/api/v1", func(r chi.Router) {

		r.Route("/auth", func(r chi.Router) {
			r.Post("/login", authHandler.Login)
			r.Post("/refresh", authHandler.RefreshToken)
			r.Post("/logout", authHandler.Logout)
		})

		// Public: plan catalog and payment provider callbacks
		r.Get("/subscription/plans", subscriptionHandler.GetPlans)
		r.Post("/webhook/xendit", subscriptionHandler.HandleWebhook)

		// Public: board stream, authenticated by a URL token
		r.Get("/queue/stream", queueHandler.Stream)

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(jwtService.JWTAuth()))
			r.Use(middleware.AuthRequired(jwtService.JWTAuth()))

			r.Route("/venues/my", func(r chi.Router) {
				r.Get("/", venueHandler.GetMyVenue)

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireOwner)
					r.Put("/", venueHandler.Update)
				})
			})

			r.Route("/subscription", func(r chi.Router) {
				r.Get("/my", subscriptionHandler.GetMySubscription)
				r.Get("/invoices", subscriptionHandler.GetInvoices)

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireOwner)
					r.Post("/subscribe", subscriptionHandler.Subscribe)
				})
			})

			r.Route("/attendances", func(r chi.Router) {
				r.Post("/clock-in", attendanceHandler.ClockIn)
				r.Post("/clock-out", attendanceHandler.ClockOut)
				r.Get("/my", attendanceHandler.GetMyAttendance)

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireManager)
					r.Get("/", attendanceHandler.List)
					r.Put("/{id}", attendanceHandler.Update)
				})
			})

			r.Route("/payroll", func(r chi.Router) {
				r.Get("/my", payrollHandler.GetMyReport)

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireManager)
					r.Get("/staff/{staffID}", payrollHandler.GetStaffReport)
					r.Get("/plan", payrollHandler.GetPlan)
					r.Put("/plan", payrollHandler.UpdatePlan)
				})
			})

			// Billable floor operations
			r.Group(func(r chi.Router) {
				r.Use(subscriptionMiddleware.RequireActiveSubscription)

				r.Route("/staff", func(r chi.Router) {
					r.Use(middleware.RequireManager)
					r.Get("/", staffHandler.List)
					r.Post("/", staffHandler.Create)
					r.Get("/{id}", staffHandler.GetByID)
					r.Put("/{id}", staffHandler.Update)
				})

				r.Route("/sessions", func(r chi.Router) {
					r.Get("/", orderHandler.ListOpenSessions)
					r.Post("/", orderHandler.OpenSession)
					r.Post("/{id}/close", orderHandler.CloseSession)
					r.Get("/{id}/items", orderHandler.ListSessionItems)
					r.Post("/{id}/items", orderHandler.AddLineItem)
					r.Delete("/{id}/items/{itemID}", orderHandler.VoidLineItem)
				})

				r.Route("/menu", func(r chi.Router) {
					r.Get("/", orderHandler.ListMenu)

					r.Group(func(r chi.Router) {
						r.Use(middleware.RequireManager)
						r.Post("/", orderHandler.CreateMenuItem)
						r.Put("/{id}", orderHandler.UpdateMenuItem)
					})
				})

				r.Route("/queue", func(r chi.Router) {
					r.Get("/board", queueHandler.Board)
					r.Get("/stream-token", queueHandler.StreamToken)
					r.Post("/tickets", queueHandler.IssueTicket)
					r.Post("/tickets/{id}/call", queueHandler.CallTicket)
					r.Post("/tickets/{id}/seat", queueHandler.SeatTicket)
					r.Post("/tickets/{id}/cancel", queueHandler.CancelTicket)
				})
			})
		})
	})
	return r
}
