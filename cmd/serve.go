package cmd

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"slotwise/config"
	"slotwise/handlers"
	"slotwise/middleware"
	"slotwise/routes"
	"slotwise/utils"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
)

func newServeCmd() *cobra.Command {
	var runWorker, runSweeper bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API, by default with the expiry worker and sweeper",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer cancel()

			a, err := newApp(ctx)
			if err != nil {
				return err
			}
			defer a.Close()
			if err := a.startBackground(ctx, runWorker, runSweeper); err != nil {
				return err
			}

			if config.IsProduction() {
				gin.SetMode(gin.ReleaseMode)
			}
			router := gin.New()
			router.Use(gin.Recovery())
			router.Use(utils.ErrorHandler())
			router.Use(middleware.RequestLogger(a.logger))
			router.Use(middleware.RateLimitMiddleware(config.AppConfig.MaxRequestsPerMin))

			routes.RegisterRoutes(router, &handlers.HandlerBundle{
				Reservations: handlers.NewReservationHandler(a.bookings, a.logger),
				Availability: handlers.NewAvailabilityHandler(a.availability, a.logger),
				Tiers:        handlers.NewTierHandler(a.tiers),
			})

			port := config.AppConfig.AppPort
			if port == "" {
				port = "8080"
			}
			srv := &http.Server{
				Addr:    "0.0.0.0:" + port,
				Handler: router,
			}

			sugar := a.logger.Sugar()
			sugar.Infof("Starting server on %s...", srv.Addr)
			errCh := make(chan error, 1)
			go func() {
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					errCh <- err
				}
			}()

			select {
			case <-ctx.Done():
			case err := <-errCh:
				return err
			}
			sugar.Info("serve: server is shutting down...")

			shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer shutdownCancel()
			if err := srv.Shutdown(shutdownCtx); err != nil {
				return err
			}
			sugar.Info("serve: server stopped gracefully")
			return nil
		},
	}

	cmd.Flags().BoolVar(&runWorker, "worker", true, "run the expiry task worker in-process")
	cmd.Flags().BoolVar(&runSweeper, "sweeper", true, "run the expiry sweeper in-process")
	return cmd
}
