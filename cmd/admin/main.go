// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"

	"github.com/venuedesk/admin-go/internal/apiclient"
	"github.com/venuedesk/admin-go/internal/cache"
	"github.com/venuedesk/admin-go/internal/config"
	"github.com/venuedesk/admin-go/internal/handler"
	"github.com/venuedesk/admin-go/internal/logging"
	"github.com/venuedesk/admin-go/internal/middleware"
	"github.com/venuedesk/admin-go/internal/notify"
	"github.com/venuedesk/admin-go/internal/render"
	"github.com/venuedesk/admin-go/internal/resource"
	"github.com/venuedesk/admin-go/internal/session"
	"github.com/venuedesk/admin-go/internal/store"
	"github.com/venuedesk/admin-go/internal/version"
	"github.com/venuedesk/admin-go/web"
)

// Version information - injected at build time via ldflags
var (
	appVersion   = "dev"
	appGitCommit = "unknown"
	appBuildTime = "unknown"
)

// moderationRoutes registers the list/detail/approve/reject routes shared by
// every moderated resource.
type moderationHandlers struct {
	List    http.HandlerFunc
	Detail  http.HandlerFunc
	Approve http.HandlerFunc
	Reject  http.HandlerFunc
}

func registerModeration(r chi.Router, base, baseID string, h moderationHandlers) {
	r.Get(base, h.List)
	r.Get(baseID, h.Detail)
	r.Post(baseID+"/approve", h.Approve)
	r.Post(baseID+"/reject", h.Reject)
}

func main() {
	// Parse CLI flags
	showVersion := flag.Bool("version", false, "Show version information")
	flag.BoolVar(showVersion, "v", false, "Show version information (shorthand)")
	showHelp := flag.Bool("help", false, "Show help information")
	flag.BoolVar(showHelp, "h", false, "Show help information (shorthand)")

	flag.Usage = func() {
		_, _ = fmt.Fprintf(os.Stderr, "VenueDesk Admin - marketplace moderation dashboard\n\n")
		_, _ = fmt.Fprintf(os.Stderr, "Usage: %s [options]\n\n", os.Args[0])
		_, _ = fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		_, _ = fmt.Fprintf(os.Stderr, "\nEnvironment Variables:\n")
		_, _ = fmt.Fprintf(os.Stderr, "  VADMIN_BACKEND_URL       Marketplace backend base URL (required)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  VADMIN_SESSION_SECRET    Session encryption key (required, min 32 bytes)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  VADMIN_DB_PATH           SQLite database path (default: ./data/admin.db)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  VADMIN_SERVER_PORT       Server port (default: 8080)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  VADMIN_ENV               Environment: development|production (default: development)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  VADMIN_REDIS_URL         Redis URL for distributed caching (optional)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  VADMIN_NOTIFY_POLL       Notification poll cron spec (default: */2 * * * *)\n")
	}

	flag.Parse()

	// Handle -h/-help flag
	if *showHelp {
		flag.Usage()
		os.Exit(0)
	}

	// Handle -v/-version flag
	if *showVersion {
		_, _ = fmt.Printf("admin %s (commit: %s, built: %s)\n", appVersion, appGitCommit, appBuildTime)
		os.Exit(0)
	}

	if err := run(); err != nil {
		slog.Error("application error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	// Load .env file if present (development)
	_ = godotenv.Load()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	// Create version info from build-time injected values
	versionInfo := &version.Info{
		Version:   appVersion,
		GitCommit: appGitCommit,
		BuildTime: appBuildTime,
	}

	// Setup logger
	logLevel := slog.LevelInfo
	switch cfg.LogLevel {
	case "debug":
		logLevel = slog.LevelDebug
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	// Ensure data directory exists
	dbDir := filepath.Dir(cfg.DBPath)
	if err := os.MkdirAll(dbDir, 0755); err != nil {
		return fmt.Errorf("creating data directory: %w", err)
	}

	// Initialize the local database: sessions and the audit event log. All
	// domain data stays in the remote backend.
	slog.Info("initializing database", "path", cfg.DBPath)
	db, err := store.NewDB(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("initializing database: %w", err)
	}
	defer func(db *sql.DB) {
		if err := db.Close(); err != nil {
			slog.Error("error closing database connection", "error", err)
		}
	}(db)

	// Run migrations
	slog.Info("running database migrations")
	if err := store.Migrate(db); err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}
	slog.Info("database ready")

	events := store.NewEvents(db)

	// Upgrade logger to also write WARN and ERROR logs to the event log
	textHandler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel})
	logger = slog.New(logging.NewEventLogHandler(textHandler, events))
	slog.SetDefault(logger)
	slog.Info("event log integration enabled", "min_level", "warn")

	// Initialize session manager and typed login-state store
	sessionManager := session.NewManager(db, cfg.IsDevelopment())
	sessions := session.NewStore(sessionManager)
	slog.Info("session manager initialized")

	// Cache for degraded-mode list snapshots and the notification badge
	appCache := cache.New(cache.Config{
		RedisURL:   cfg.RedisURL,
		Prefix:     cfg.CachePrefix,
		DefaultTTL: time.Duration(cfg.CacheTTL) * time.Second,
		MaxEntries: cfg.CacheMaxSize,
	})
	defer func() {
		if err := appCache.Close(); err != nil {
			slog.Error("error closing cache", "error", err)
		}
	}()
	if cfg.UseRedisCache() {
		slog.Info("cache initialized", "backend", "redis", "url", cfg.RedisURL)
	} else {
		slog.Info("cache initialized", "backend", "memory")
	}

	// API client against the marketplace backend. The token comes from the
	// request session; a 401 clears the login state so the next page load
	// lands on the login form.
	api := apiclient.New(cfg.BackendBaseURL, apiclient.TokenFunc(sessions.Token),
		apiclient.WithAuthExpiredHook(func(ctx context.Context) {
			if err := sessions.Clear(ctx); err != nil {
				slog.Warn("clearing expired session", "error", err)
			}
		}),
	)
	services := resource.NewServices(api)
	slog.Info("backend client initialized", "base_url", cfg.BackendBaseURL)

	// Notification badge poller
	poller := notify.New(services.Notifications, appCache, cfg.NotifyPollSpec, logger)
	if err := poller.Start(context.Background()); err != nil {
		return fmt.Errorf("starting notification poller: %w", err)
	}
	defer poller.Stop()
	slog.Info("notification poller started", "spec", cfg.NotifyPollSpec)

	// Initialize template renderer
	templatesFS, err := fs.Sub(web.Templates, "templates")
	if err != nil {
		return fmt.Errorf("getting templates fs: %w", err)
	}
	renderer, err := render.New(render.Config{
		TemplatesFS:    templatesFS,
		SessionManager: sessionManager,
		IsDev:          cfg.IsDevelopment(),
	})
	if err != nil {
		return fmt.Errorf("initializing renderer: %w", err)
	}
	slog.Info("template renderer initialized")

	// Create router
	r := chi.NewRouter()

	// Middleware stack
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)
	r.Use(middleware.Compress(5))
	r.Use(chimw.GetHead)
	r.Use(middleware.Timeout(30 * time.Second))
	r.Use(middleware.StripTrailingSlash)

	// Security headers middleware (CSP, HSTS, X-Frame-Options, etc.)
	securityConfig := middleware.DefaultSecurityHeadersConfig(cfg.IsDevelopment())
	r.Use(middleware.SecurityHeaders(securityConfig))

	// Request path middleware for logging context
	r.Use(middleware.RequestPath)

	r.Use(sessionManager.LoadAndSave)

	// CSRF protection middleware
	csrfConfig := middleware.DefaultCSRFConfig([]byte(cfg.SessionSecret), cfg.IsDevelopment())
	csrfMiddleware := middleware.CSRF(csrfConfig)
	slog.Info("CSRF protection initialized", "secure", !cfg.IsDevelopment())

	// Initialize login protection
	loginProtection := middleware.NewLoginProtection(middleware.DefaultLoginProtectionConfig())
	slog.Info("login protection initialized",
		"ip_rate_limit", "0.5 req/s",
		"max_failed_attempts", 5,
		"lockout_duration", "15m",
	)

	// Initialize handlers
	deps := handler.Deps{
		Cfg:             cfg,
		Renderer:        renderer,
		Sessions:        sessions,
		Services:        services,
		Cache:           appCache,
		Events:          events,
		Poller:          poller,
		LoginProtection: loginProtection,
		Logger:          logger,
	}

	authHandler := handler.NewAuthHandler(deps)
	dashboardHandler := handler.NewDashboardHandler(deps)
	bannersHandler := handler.NewBannersHandler(deps)
	promotionsHandler := handler.NewPromotionsHandler(deps)
	registrationsHandler := handler.NewRegistrationsHandler(deps)
	withdrawalsHandler := handler.NewWithdrawalsHandler(deps)
	ticketsHandler := handler.NewTicketsHandler(deps)
	usersHandler := handler.NewUsersHandler(deps)
	faqsHandler := handler.NewFAQsHandler(deps)
	settingsHandler := handler.NewSettingsHandler(deps)
	notificationsHandler := handler.NewNotificationsHandler(deps)
	designationsHandler := handler.NewDesignationsHandler(deps)
	profileHandler := handler.NewProfileHandler(deps)
	eventsHandler := handler.NewEventsHandler(deps)
	healthHandler := handler.NewHealthHandler(db, sessions, versionInfo)

	// Health check routes (public, returns additional details for signed-in callers)
	r.Get("/health", healthHandler.Health)
	r.Get("/health/live", healthHandler.Liveness)
	r.Get("/health/ready", healthHandler.Readiness)

	// Auth routes (public, with CSRF and rate limiting)
	r.Group(func(r chi.Router) {
		r.Use(csrfMiddleware)
		r.Get(handler.RouteLogin, authHandler.LoginForm)
		r.With(loginProtection.Middleware()).Post(handler.RouteLogin, authHandler.Login)
		r.Get(handler.RouteLogout, authHandler.Logout)
		r.Post(handler.RouteLogout, authHandler.Logout)
		r.Get(handler.RouteVerifyOTP, authHandler.VerifyOTPForm)
		r.Post(handler.RouteVerifyOTP, authHandler.VerifyOTP)
		r.Post(handler.RouteVerifyOTP+"/resend", authHandler.ResendOTP)
		r.Get(handler.RouteSetPassword, authHandler.SetPasswordForm)
		r.Post(handler.RouteSetPassword, authHandler.SetPassword)
		r.Get(handler.RouteForgotPassword, authHandler.ForgotPasswordForm)
		r.With(loginProtection.Middleware()).Post(handler.RouteForgotPassword, authHandler.ForgotPassword)
		r.Get(handler.RouteResetPassword, authHandler.ResetPasswordForm)
		r.Post(handler.RouteResetPassword, authHandler.ResetPassword)
	})

	// Admin routes (protected with CSRF)
	r.Route("/admin", func(r chi.Router) {
		r.Use(csrfMiddleware)
		r.Use(middleware.Auth(sessions))
		r.Use(middleware.LoadUser(sessions))

		// Dashboard and audit log
		r.Get(handler.RouteRoot, dashboardHandler.Show)
		r.Get("/events", eventsHandler.List)

		// Content moderation
		registerModeration(r, handler.RouteBanners, handler.RouteBannersID, moderationHandlers{
			List: bannersHandler.List, Detail: bannersHandler.Detail,
			Approve: bannersHandler.Approve, Reject: bannersHandler.Reject,
		})
		registerModeration(r, handler.RoutePromotions, handler.RoutePromotionsID, moderationHandlers{
			List: promotionsHandler.List, Detail: promotionsHandler.Detail,
			Approve: promotionsHandler.Approve, Reject: promotionsHandler.Reject,
		})
		registerModeration(r, handler.RouteRegistrations, handler.RouteRegistrationsID, moderationHandlers{
			List: registrationsHandler.List, Detail: registrationsHandler.Detail,
			Approve: registrationsHandler.Approve, Reject: registrationsHandler.Reject,
		})
		r.Post(handler.RouteRegistrationsID+"/delete", registrationsHandler.Delete)

		// Withdrawal requests
		registerModeration(r, handler.RouteWithdrawals, handler.RouteWithdrawalsID, moderationHandlers{
			List: withdrawalsHandler.List, Detail: withdrawalsHandler.Detail,
			Approve: withdrawalsHandler.Approve, Reject: withdrawalsHandler.Reject,
		})
		r.Post(handler.RouteWithdrawalsID+"/processing", withdrawalsHandler.MarkProcessing)

		// Support tickets
		r.Get(handler.RouteTickets, ticketsHandler.List)
		r.Get(handler.RouteTicketsID, ticketsHandler.Detail)
		r.Post(handler.RouteTicketsID+"/status", ticketsHandler.SetStatus)
		r.Post(handler.RouteTicketsID+"/priority", ticketsHandler.SetPriority)
		r.Post(handler.RouteTicketsID+"/resolve", ticketsHandler.Resolve)
		r.Post(handler.RouteTicketsID+"/reply", ticketsHandler.Reply)
		r.Post(handler.RouteTicketsID+"/delete", ticketsHandler.Delete)

		// Managed marketplace users
		r.Get(handler.RouteUsers, usersHandler.List)
		r.Get(handler.RouteUsersID, usersHandler.Detail)
		r.Post(handler.RouteUsersID+"/action", usersHandler.Action)

		// FAQ management
		r.Get(handler.RouteFAQs, faqsHandler.List)
		r.Get(handler.RouteFAQs+handler.RouteSuffixNew, faqsHandler.NewForm)
		r.Post(handler.RouteFAQs, faqsHandler.Create)
		r.Get(handler.RouteFAQsID, faqsHandler.EditForm)
		r.Post(handler.RouteFAQsID, faqsHandler.Update)
		r.Post(handler.RouteFAQsID+"/delete", faqsHandler.Delete)

		// Site settings (terms, privacy, about, contact)
		r.Get(handler.RouteSettings, settingsHandler.List)
		r.Get(handler.RouteSettings+handler.RouteParamType, settingsHandler.EditForm)
		r.Post(handler.RouteSettings+handler.RouteParamType, settingsHandler.Update)

		// Admin notifications
		r.Get(handler.RouteNotifications, notificationsHandler.List)
		r.Post(handler.RouteNotificationsID+"/read", notificationsHandler.MarkRead)
		r.Post(handler.RouteNotificationsID+"/unread", notificationsHandler.MarkUnread)
		r.Post(handler.RouteNotificationsID+"/delete", notificationsHandler.Delete)
		r.Post(handler.RouteNotifications+"/read-all", notificationsHandler.MarkAllRead)
		r.Post(handler.RouteNotifications+"/clear", notificationsHandler.ClearAll)

		// Staff designations
		r.Get(handler.RouteDesignations, designationsHandler.List)
		r.Post(handler.RouteDesignations, designationsHandler.Create)
		r.Post(handler.RouteDesignationsID, designationsHandler.Update)
		r.Post(handler.RouteDesignationsID+"/delete", designationsHandler.Delete)

		// Admin profile
		r.Get(handler.RouteProfile, profileHandler.Show)
		r.Post(handler.RouteProfile, profileHandler.Update)
		r.Post(handler.RoutePasswordChange, profileHandler.ChangePassword)
	})

	// Root redirects to the admin dashboard
	r.Get("/", func(w http.ResponseWriter, req *http.Request) {
		http.Redirect(w, req, "/admin", http.StatusFound)
	})

	// Static file serving with long-lived caching
	staticFS, err := fs.Sub(web.Static, "static/dist")
	if err != nil {
		return fmt.Errorf("getting static fs: %w", err)
	}
	staticHandler := http.StripPrefix("/static/dist/", http.FileServer(http.FS(staticFS)))
	r.Handle("/static/dist/*", http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		w.Header().Set("Cache-Control", "public, max-age=31536000")
		staticHandler.ServeHTTP(w, req)
	}))

	// Create server with appropriate timeouts
	srv := &http.Server{
		Addr:              cfg.ServerAddr(),
		Handler:           r,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    1 << 20,
	}

	// Start server in goroutine
	go func() {
		slog.Info("starting server", "addr", cfg.ServerAddr(), "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "error", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server...")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	slog.Info("server stopped")
	return nil
}
