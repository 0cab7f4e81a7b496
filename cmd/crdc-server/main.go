package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/crdc/crdc/internal/config"
	"github.com/crdc/crdc/internal/domain/admin"
	"github.com/crdc/crdc/internal/domain/browse"
	"github.com/crdc/crdc/internal/domain/dashboard"
	"github.com/crdc/crdc/internal/domain/finding"
	"github.com/crdc/crdc/internal/domain/note"
	"github.com/crdc/crdc/internal/domain/observation"
	"github.com/crdc/crdc/internal/domain/participant"
	"github.com/crdc/crdc/internal/domain/refdata"
	"github.com/crdc/crdc/internal/domain/reports"
	"github.com/crdc/crdc/internal/domain/session"
	"github.com/crdc/crdc/internal/domain/study"
	"github.com/crdc/crdc/internal/platform/audit"
	"github.com/crdc/crdc/internal/platform/auth"
	"github.com/crdc/crdc/internal/platform/cache"
	"github.com/crdc/crdc/internal/platform/db"
	"github.com/crdc/crdc/internal/platform/middleware"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "crdc-server",
		Short: "Clinical research data capture API server",
	}

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(migrateCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer()
		},
	}
}

func migrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Run database migrations",
	}

	upCmd := &cobra.Command{
		Use:   "up",
		Short: "Apply pending migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, _ := cmd.Flags().GetString("dir")

			cfg, err := config.Load()
			if err != nil {
				return err
			}

			ctx := context.Background()
			pool, err := db.NewPool(ctx, cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns)
			if err != nil {
				return err
			}
			defer pool.Close()

			count, err := db.NewMigrator(pool, dir).Up(ctx)
			if err != nil {
				return fmt.Errorf("migration failed: %w", err)
			}

			fmt.Printf("Applied %d migration(s) successfully.\n", count)
			return nil
		},
	}
	upCmd.Flags().String("dir", "./migrations", "Path to migrations directory")
	cmd.AddCommand(upCmd)

	statusCmd := &cobra.Command{
		Use:   "status",
		Short: "Show migration status",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, _ := cmd.Flags().GetString("dir")

			cfg, err := config.Load()
			if err != nil {
				return err
			}

			ctx := context.Background()
			pool, err := db.NewPool(ctx, cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns)
			if err != nil {
				return err
			}
			defer pool.Close()

			statuses, err := db.NewMigrator(pool, dir).Status(ctx)
			if err != nil {
				return fmt.Errorf("failed to get migration status: %w", err)
			}

			fmt.Printf("%-10s %-40s %-10s %s\n", "VERSION", "NAME", "STATUS", "APPLIED AT")
			for _, s := range statuses {
				status := "pending"
				appliedAt := ""
				if s.Applied {
					status = "applied"
					if s.AppliedAt != nil {
						appliedAt = s.AppliedAt.Format("2006-01-02 15:04:05")
					}
				}
				fmt.Printf("%-10d %-40s %-10s %s\n", s.Version, s.Name, status, appliedAt)
			}
			return nil
		},
	}
	statusCmd.Flags().String("dir", "./migrations", "Path to migrations directory")
	cmd.AddCommand(statusCmd)

	return cmd
}

func runServer() error {
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	if os.Getenv("ENV") == "development" {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout}).With().Timestamp().Logger()
	}

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load config")
	}
	if err := cfg.Validate(); err != nil {
		logger.Fatal().Err(err).Msg("invalid configuration")
	}

	ctx := context.Background()
	pool, err := db.NewPool(ctx, cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer pool.Close()

	// Refuse to serve against the wrong database.
	if err := db.VerifyCatalog(ctx, pool, cfg.ExpectedDatabase); err != nil {
		logger.Fatal().Err(err).Msg("database verification failed")
	}
	logger.Info().Str("database", cfg.ExpectedDatabase).Msg("connected to database")

	auditLogger := audit.NewLogger(pool, logger)
	lookupCache := cache.New()
	sessions := session.NewStore(time.Duration(cfg.SessionTTLMin) * time.Minute)

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.Recovery(logger))
	e.Use(middleware.RequestID())
	e.Use(middleware.Logger(logger))
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins: cfg.CORSOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete},
		AllowHeaders: []string{"Authorization", "Content-Type", "X-Request-ID", session.HeaderSessionID},
	}))

	if cfg.IsDev() {
		e.Use(auth.DevAuthMiddleware())
	} else {
		e.Use(auth.JWTMiddleware([]byte(cfg.AuthSecret)))
	}

	e.Use(middleware.Activity(logger, middleware.ActivityRecorderFunc(auditLogger.RecordActivity)))

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{
			"status":  "ok",
			"version": "0.1.0",
		})
	})

	apiV1 := e.Group("/api/v1")

	// Studies
	studyRepo := study.NewPGRepository(pool)
	studySvc := study.NewService(studyRepo, lookupCache,
		time.Duration(cfg.StudiesCacheTTL)*time.Second, auditLogger)
	study.NewHandler(studySvc).RegisterRoutes(apiV1)

	// Session selection
	session.NewHandler(sessions, studySvc).RegisterRoutes(apiV1)

	// Participants
	partRepo := participant.NewPGRepository(pool)
	partSvc := participant.NewService(partRepo, lookupCache, auditLogger)
	participant.NewHandler(partSvc, sessions).RegisterRoutes(apiV1)

	// Notes
	noteRepo := note.NewPGRepository(pool)
	noteSvc := note.NewService(noteRepo, lookupCache, auditLogger)
	note.NewHandler(noteSvc, sessions).RegisterRoutes(apiV1)

	// Observations
	obsRepo := observation.NewPGRepository(pool)
	obsSvc := observation.NewService(obsRepo, partSvc, auditLogger)
	observation.NewHandler(obsSvc, sessions).RegisterRoutes(apiV1)

	// Findings
	findingRepo := finding.NewPGRepository(pool)
	findingSvc := finding.NewService(findingRepo, lookupCache, auditLogger)
	finding.NewHandler(findingSvc, sessions).RegisterRoutes(apiV1)

	// Reference data
	refRepo := refdata.NewPGRepository(pool)
	refSvc := refdata.NewService(refRepo, lookupCache,
		time.Duration(cfg.RefCacheTTL)*time.Second, logger)
	refdata.NewHandler(refSvc).RegisterRoutes(apiV1)

	// Dashboard
	dashRepo := dashboard.NewPGRepository(pool)
	dashSvc := dashboard.NewService(dashRepo, lookupCache,
		time.Duration(cfg.MetricsCacheTTL)*time.Second)
	dashboard.NewHandler(dashSvc).RegisterRoutes(apiV1)

	// Reports
	reportRepo := reports.NewPGRepository(pool)
	reports.NewHandler(reports.NewService(reportRepo)).RegisterRoutes(apiV1)

	// Record browser and CSV export
	browse.NewHandler(browse.NewService(pool)).RegisterRoutes(apiV1)

	// Admin (restricted)
	adminGroup := apiV1.Group("", auth.RequireRole("ADMIN"))
	admin.NewHandler(admin.NewService(pool, auditLogger)).RegisterRoutes(adminGroup)

	// Graceful shutdown
	go func() {
		addr := ":" + cfg.Port
		logger.Info().Str("addr", addr).Msg("starting server")
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
