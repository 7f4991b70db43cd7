package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/Zachkp/portfolio/internal/analytics"
	"github.com/Zachkp/portfolio/internal/logger"
)

var analyticsCmd = &cobra.Command{
	Use:   "analytics",
	Short: "Manage recorded visitor data",
}

var analyticsCleanupCmd = &cobra.Command{
	Use:   "cleanup",
	Short: "Delete visits older than the retention period",
	RunE: func(cmd *cobra.Command, _ []string) error {
		store, err := analytics.Open(cmd.Context(), appConfig.Analytics.DBPath)
		if err != nil {
			return err
		}
		defer store.Close()

		removed, err := store.Cleanup(cmd.Context(), appConfig.Analytics.Retention)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Removed %d visits older than %s\n", removed, appConfig.Analytics.Retention)
		return nil
	},
}

func init() {
	analyticsCmd.AddCommand(analyticsCleanupCmd)
	rootCmd.AddCommand(analyticsCmd)
}

// startCleanup runs cleanupVisits in the background. The returned stop
// function cancels the loop and returns once it has exited, so the store can
// be closed after it.
func startCleanup(ctx context.Context, store *analytics.Store, retention time.Duration, log logger.Logger) (stop func()) {
	ctx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	go func() {
		defer close(done)
		cleanupVisits(ctx, store, retention, log)
	}()
	return func() {
		cancel()
		<-done
	}
}

// cleanupVisits prunes once at startup and then daily until ctx is done.
func cleanupVisits(ctx context.Context, store *analytics.Store, retention time.Duration, log logger.Logger) {
	ticker := time.NewTicker(24 * time.Hour)
	defer ticker.Stop()

	for {
		removed, err := store.Cleanup(ctx, retention)
		switch {
		case err != nil:
			log.Error("Error cleaning up old visitor data", logger.Error(err))
		case removed > 0:
			log.Info("Removed expired visitor records",
				logger.Int64("removed", removed),
				logger.Duration("retention", retention))
		}

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}
