package http

import (
	"log/slog"
	"os"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
	"github.com/personnel-hq/personnel-backend-go/internal/config"
	"github.com/personnel-hq/personnel-backend-go/internal/handler/http/middleware"
)

func NewRouter(
	cfg *config.Config,
	tokenAuth *jwtauth.JWTAuth,
	presenceHandler PresenceHandler,
	leaveHandler LeaveHandler,
	notificationHandler NotificationHandler,
	directoryHandler DirectoryHandler,
	reportHandler ReportHandler,
) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "personnel-backend"),
		slog.String("env", cfg.App.Env),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{cfg.App.FrontendURL},
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Link", "Content-Disposition"},
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
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(tokenAuth))
			r.Use(middleware.AuthRequired(tokenAuth))

			r.Route("/presence", func(r chi.Router) {
				r.Post("/start", presenceHandler.Start)
				r.Post("/stop", presenceHandler.Stop)
				r.Get("/sessions", presenceHandler.ListSessions)

				r.Route("/time-entries", func(r chi.Router) {
					r.Post("/", presenceHandler.SubmitTimeEntry)
					r.Get("/", presenceHandler.ListTimeEntries)
				})
			})

			r.Route("/leave-requests", func(r chi.Router) {
				r.Post("/", leaveHandler.Submit)
				r.Get("/", leaveHandler.ListMine)
				r.Get("/review", leaveHandler.ListForReview)

				r.Route("/{id}", func(r chi.Router) {
					r.Post("/leader-decision", leaveHandler.LeaderDecision)
					r.Post("/manager-decision", leaveHandler.ManagerDecision)
					r.Post("/cancel", leaveHandler.Cancel)
				})
			})

			r.Route("/notifications", func(r chi.Router) {
				r.Get("/", notificationHandler.List)
				r.Get("/unread-count", notificationHandler.UnreadCount)
				r.Post("/mark-read", notificationHandler.MarkAsRead)
				r.Post("/mark-all-read", notificationHandler.MarkAllAsRead)
			})

			r.Route("/employees", func(r chi.Router) {
				r.Get("/", directoryHandler.Search)
				r.Get("/{id}/approvers", directoryHandler.GetApprovers)
			})

			r.Route("/reports", func(r chi.Router) {
				r.Get("/timesheet", reportHandler.MonthlyTimesheet)
			})
		})

		// SSE clients cannot set the Authorization header, so the stream
		// route also accepts the token as a query parameter.
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verify(tokenAuth, jwtauth.TokenFromQuery, jwtauth.TokenFromHeader))
			r.Use(middleware.AuthRequired(tokenAuth))

			r.Get("/notifications/stream", notificationHandler.Stream)
		})
	})

	return r
}
