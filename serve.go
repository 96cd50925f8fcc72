package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/Dauletnazarr/donation-project/config"
	"github.com/Dauletnazarr/donation-project/database"
	routes "github.com/Dauletnazarr/donation-project/internal/app/http"
	"github.com/Dauletnazarr/donation-project/internal/infra/logging"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	config.MustEnv("DB_URL", "JWT_SECRET")
	if !config.DEBUG {
		gin.SetMode(gin.ReleaseMode)
	}

	database.InitDB()
	if err := database.Migrate(database.DB); err != nil {
		return err
	}
	database.InitRedis()

	srv := &http.Server{
		Addr:              ":" + config.PORT,
		Handler:           routes.NewRouter(logging.Log),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logging.Log.Info().Str("addr", srv.Addr).Msg("http server listening")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	logging.Log.Info().Msg("shutting down http server")
	return srv.Shutdown(shutdownCtx)
}
