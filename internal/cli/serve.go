package cli

import (
	"context"
	"fmt"
	"github.com/maxaizer/sam-finder/internal/dashboard"
	"github.com/maxaizer/sam-finder/internal/logger"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"net/http"
	"os/signal"
	"syscall"
	"time"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the dashboard",
	Long: `Start the browser dashboard for searching SAM.gov opportunities.

Example:
  sam-finder serve
  sam-finder serve --port 9090`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		if servePort != 0 {
			appConfig.Server.Port = servePort
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		return runServer(ctx)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().IntVar(&servePort, "port", 0, "server port (overrides config)")
}

func runServer(ctx context.Context) error {

	application, err := newApp(appConfig)
	if err != nil {
		return fmt.Errorf("can't create application: %w", err)
	}

	server, err := dashboard.NewServer(application.form, application.feed)
	if err != nil {
		return fmt.Errorf("can't create dashboard: %w", err)
	}

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", appConfig.Server.Port),
		Handler:           server.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErr <- err
		}
	}()

	log.Infof("Dashboard is listening on :%d (mode %s)", appConfig.Server.Port, appConfig.Server.Mode)

	var serveErr error
	select {
	case <-ctx.Done():
		log.Info("Shutting down dashboard...")
	case serveErr = <-serverErr:
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeHttp).Errorf("server error: %v", serveErr)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), appConfig.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	if serveErr != nil {
		return fmt.Errorf("server error: %w", serveErr)
	}

	log.Info("Dashboard stopped.")
	return nil
}
