package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/Zachkp/portfolio/internal/analytics"
	"github.com/Zachkp/portfolio/internal/config"
	"github.com/Zachkp/portfolio/internal/contact"
	"github.com/Zachkp/portfolio/internal/logger"
	"github.com/Zachkp/portfolio/internal/mail"
	"github.com/Zachkp/portfolio/internal/metrics"
	"github.com/Zachkp/portfolio/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		return serve(ctx, appConfig, appLogger)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func serve(ctx context.Context, cfg *config.Config, log logger.Logger) error {
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	if cfg.Server.Debug {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	m := metrics.New()
	sender := mail.NewSMTPSender(mail.SMTPConfig{
		Host:     cfg.Mail.Host,
		Port:     cfg.Mail.Port,
		Username: cfg.Mail.Username,
		Password: cfg.Mail.Password,
	})
	contactHandler := contact.NewHandler(sender, cfg.Mail.Username, cfg.Mail.OwnerAddress, log, m)

	deps := server.Deps{
		Content:    newAdapter(cfg, log, m),
		Contact:    contactHandler.HandleSubmit,
		Metrics:    m,
		AdminToken: cfg.Server.AdminToken,
		Logger:     log,
	}

	if !cfg.Analytics.Disabled {
		store, err := analytics.Open(ctx, cfg.Analytics.DBPath)
		if err != nil {
			return err
		}
		defer store.Close()

		hasher, err := analytics.NewHasher(cfg.Analytics.Salt)
		if err != nil {
			return err
		}
		tracker := analytics.NewTracker(store, hasher, log)
		defer tracker.Wait()

		deps.Tracker = tracker
		deps.Stats = store

		stopCleanup := startCleanup(ctx, store, cfg.Analytics.Retention, log)
		defer stopCleanup()

		log.Info("Visitor tracking enabled with hashed IP addresses",
			logger.String("db_path", cfg.Analytics.DBPath))
	}

	router := server.NewRouter(deps)
	return server.New(cfg.Server.Port, router, log).Run(ctx)
}
