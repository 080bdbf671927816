package main

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/healthify/portal/internal/config"
	"github.com/healthify/portal/internal/domain/dashboard"
	"github.com/healthify/portal/internal/domain/identity"
	"github.com/healthify/portal/internal/domain/messaging"
	"github.com/healthify/portal/internal/domain/prescriptions"
	"github.com/healthify/portal/internal/domain/profile"
	"github.com/healthify/portal/internal/domain/records"
	"github.com/healthify/portal/internal/domain/scheduling"
	"github.com/healthify/portal/internal/platform/auth"
	"github.com/healthify/portal/internal/platform/baas"
	"github.com/healthify/portal/internal/platform/db"
	"github.com/healthify/portal/internal/platform/middleware"
	"github.com/healthify/portal/internal/platform/slotlock"
	"github.com/healthify/portal/internal/ui/tokens"
	"github.com/healthify/portal/internal/web"
	"github.com/healthify/portal/migrations"
)

const (
	bodyLimit      = 1 << 20
	requestTimeout = 30 * time.Second
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "portal-server",
		Short: "Healthify patient and provider portal",
	}

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(migrateCmd())
	rootCmd.AddCommand(seedCmd())
	rootCmd.AddCommand(tokensCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the portal web server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer()
		},
	}
}

func migrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply the portal schema to the backend database",
	}

	// migrate up
	upCmd := &cobra.Command{
		Use:   "up",
		Short: "Apply pending migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			schema, _ := cmd.Flags().GetString("schema")
			dir, _ := cmd.Flags().GetString("dir")

			ctx := context.Background()
			pool, err := openPool(ctx)
			if err != nil {
				return err
			}
			defer pool.Close()

			migrator := db.NewMigrator(pool, migrationFS(dir), schema)
			fmt.Fprintf(cmd.OutOrStdout(), "Running migrations on schema: %s\n", schema)

			count, err := migrator.Up(ctx)
			if err != nil {
				return fmt.Errorf("migration failed: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Applied %d migration(s) successfully.\n", count)
			return nil
		},
	}
	upCmd.Flags().String("schema", db.DefaultSchema, "Target schema for the migrations table")
	upCmd.Flags().String("dir", "", "Read migrations from this directory instead of the embedded set")
	cmd.AddCommand(upCmd)

	// migrate status
	statusCmd := &cobra.Command{
		Use:   "status",
		Short: "Show migration status",
		RunE: func(cmd *cobra.Command, args []string) error {
			schema, _ := cmd.Flags().GetString("schema")
			dir, _ := cmd.Flags().GetString("dir")

			ctx := context.Background()
			pool, err := openPool(ctx)
			if err != nil {
				return err
			}
			defer pool.Close()

			statuses, err := db.NewMigrator(pool, migrationFS(dir), schema).Status(ctx)
			if err != nil {
				return fmt.Errorf("failed to get migration status: %w", err)
			}
			printStatus(cmd.OutOrStdout(), schema, statuses)
			return nil
		},
	}
	statusCmd.Flags().String("schema", db.DefaultSchema, "Target schema for the migrations table")
	statusCmd.Flags().String("dir", "", "Read migrations from this directory instead of the embedded set")
	cmd.AddCommand(statusCmd)

	return cmd
}

func migrationFS(dir string) fs.FS {
	if dir == "" {
		return migrations.FS
	}
	return os.DirFS(dir)
}

func openPool(ctx context.Context) (*pgxpool.Pool, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	return db.NewPool(ctx, cfg)
}

func printStatus(w io.Writer, schema string, statuses []db.MigrationStatus) {
	fmt.Fprintf(w, "Migration status for schema: %s\n", schema)
	fmt.Fprintf(w, "%-10s %-40s %-10s %s\n", "VERSION", "NAME", "STATUS", "APPLIED AT")
	fmt.Fprintln(w, "---------- ---------------------------------------- ---------- --------------------")
	for _, s := range statuses {
		status, appliedAt := "pending", ""
		if s.Applied {
			status = "applied"
			if s.AppliedAt != nil {
				appliedAt = s.AppliedAt.Format(time.RFC3339)
			}
		}
		fmt.Fprintf(w, "%-10d %-40s %-10s %s\n", s.Version, s.Name, status, appliedAt)
	}
}

func tokensCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tokens",
		Short: "Print the design tokens",
		RunE: func(cmd *cobra.Command, args []string) error {
			format, _ := cmd.Flags().GetString("format")
			switch format {
			case "css":
				return tokens.WriteCSS(cmd.OutOrStdout())
			case "json":
				b, err := tokens.JSON()
				if err != nil {
					return err
				}
				_, err = fmt.Fprintln(cmd.OutOrStdout(), string(b))
				return err
			}
			return fmt.Errorf("unknown format %q: want css or json", format)
		},
	}
	cmd.Flags().String("format", "css", "Output format: css or json")
	return cmd
}

func newLogger(cfg *config.Config) zerolog.Logger {
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	if cfg.IsDev() {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout}).With().Timestamp().Logger()
	}
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil || cfg.LogLevel == "" {
		level = zerolog.InfoLevel
	}
	return logger.Level(level)
}

func rateLimitConfig(cfg *config.Config) middleware.RateLimitConfig {
	rl := middleware.DefaultRateLimitConfig()
	if cfg.RateLimitRPS > 0 {
		rl.RequestsPerSecond = cfg.RateLimitRPS
	}
	if cfg.RateLimitBurst > 0 {
		rl.BurstSize = cfg.RateLimitBurst
	}
	return rl
}

func runServer() error {
	// Config
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	// Logger
	logger := newLogger(cfg)

	if err := cfg.Validate(); err != nil {
		logger.Fatal().Err(err).Msg("invalid configuration")
	}

	// Backend handles
	handles, err := baas.Connect(cfg, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to backend")
	}

	ctx := context.Background()

	// Slot lock
	locker, closeLocker, err := slotlock.New(ctx, cfg, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to set up slot lock")
	}
	defer closeLocker()

	// Database, for the health check only
	checks := []db.Check{backendCheck(handles)}
	if cfg.DatabaseURL != "" {
		pool, err := db.NewPool(ctx, cfg)
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to connect to database")
		}
		defer pool.Close()
		checks = append(checks, db.PoolCheck(pool))
		logger.Info().Msg("connected to database")
	}

	// Echo server
	renderer, err := web.NewRenderer()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to parse templates")
	}
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Renderer = renderer
	e.Validator = web.NewValidator()
	e.HTTPErrorHandler = web.ErrorHandler(logger)

	// Global middleware
	e.Use(middleware.Recovery(logger))
	e.Use(middleware.RequestID())
	e.Use(middleware.Logger(logger))
	e.Use(middleware.SecurityHeaders(cfg.IsProduction()))
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins: cfg.CORSOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost},
		AllowHeaders: []string{"Authorization", "Content-Type", "X-Request-ID"},
	}))
	e.Use(middleware.BodyLimit(bodyLimit))
	e.Use(middleware.RequestTimeout(requestTimeout))

	// Auth middleware
	e.Use(auth.SessionMiddleware(auth.SessionConfig{
		Secret: []byte(cfg.SupabaseJWTSecret),
		Dev:    cfg.IsDev(),
	}))
	e.Use(middleware.RateLimit(rateLimitConfig(cfg)))
	e.Use(echomw.CSRFWithConfig(echomw.CSRFConfig{
		Skipper:        auth.Skipper,
		TokenLookup:    "form:_csrf",
		CookiePath:     "/",
		CookieHTTPOnly: true,
		CookieSecure:   cfg.IsProduction(),
		CookieSameSite: http.SameSiteLaxMode,
	}))

	// Health check and assets
	e.GET("/healthz", db.HealthHandler(checks...))
	web.RegisterStatic(e)

	pages := e.Group("")
	fhirGroup := e.Group("/fhir")

	// Profile
	profileSvc := profile.NewService(profile.NewRepo(handles.Anon), profile.NewServiceRepo(handles.Service), logger)
	profile.NewHandler(profileSvc).RegisterRoutes(pages)

	// Identity
	identitySvc := identity.NewService(
		identity.NewPatientRepo(handles.Anon),
		identity.NewPractitionerRepo(handles.Anon),
		web.NewValidator(),
		logger,
	)
	identity.NewHandler(identitySvc).RegisterRoutes(fhirGroup)

	// Scheduling
	schedulingSvc := scheduling.NewService(scheduling.NewRepo(handles.Anon, handles.Service), locker, logger)
	scheduling.NewHandler(schedulingSvc, profileSvc).RegisterRoutes(pages, fhirGroup)

	// Messaging
	messagingSvc := messaging.NewService(messaging.NewMemoryRepo(), logger)
	messaging.NewHandler(messagingSvc).RegisterRoutes(pages)

	// Health records
	recordsSvc := records.NewService(records.SampleRepo{})
	records.NewHandler(recordsSvc, profileSvc).RegisterRoutes(pages)

	// Prescriptions
	prescriptionsSvc := prescriptions.NewService(prescriptions.NewMemoryRepo(), logger)
	prescriptions.NewHandler(prescriptionsSvc, profileSvc).RegisterRoutes(pages, fhirGroup)

	// Dashboard
	dashboardSvc := dashboard.NewService(dashboardSources(profileSvc, schedulingSvc, messagingSvc, recordsSvc), logger)
	dashboard.NewHandler(dashboardSvc).RegisterRoutes(pages)

	// Graceful shutdown
	go func() {
		addr := ":" + cfg.Port
		logger.Info().Str("addr", addr).Str("env", cfg.Env).Msg("starting server")
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("server shutdown failed")
	}
	logger.Info().Msg("server stopped")
	return nil
}

// backendCheck pings the REST surface with the service handle.
func backendCheck(h *baas.Handles) db.Check {
	check := db.Check{Name: "backend"}
	if p, ok := h.Service.(interface{ Ping(context.Context) error }); ok {
		check.Ping = p.Ping
	} else {
		check.Ping = func(context.Context) error { return nil }
	}
	return check
}

// dashboardSources reads each tile from the service that owns it.
func dashboardSources(prof *profile.Service, sched *scheduling.Service, inbox *messaging.Service, chart *records.Service) dashboard.Sources {
	return dashboard.Sources{
		FullName: func(ctx context.Context) (string, error) {
			p, err := prof.Current(ctx)
			if err != nil {
				return "", err
			}
			return p.FullName, nil
		},
		NextVisit: func(ctx context.Context) (*scheduling.Visit, error) {
			patientID, err := prof.PatientID(ctx)
			if err != nil {
				return nil, err
			}
			upcoming, _, err := sched.Visits(ctx, patientID)
			if err != nil || len(upcoming) == 0 {
				return nil, err
			}
			return &upcoming[0], nil
		},
		Inbox: inbox.Conversations,
		Chart: func(ctx context.Context) (*records.Chart, error) {
			patientID, err := prof.PatientID(ctx)
			if err != nil {
				return nil, err
			}
			return chart.Chart(ctx, patientID)
		},
	}
}
