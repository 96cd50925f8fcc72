package main

import (
	"os/signal"
	"syscall"

	"github.com/Dauletnazarr/donation-project/config"
	"github.com/Dauletnazarr/donation-project/database"
	"github.com/Dauletnazarr/donation-project/internal/infra/logging"
	"github.com/Dauletnazarr/donation-project/internal/infra/mailer"
	"github.com/Dauletnazarr/donation-project/internal/notify"

	"github.com/spf13/cobra"
)

var workerCmd = &cobra.Command{
	Use:   "worker",
	Short: "Deliver queued email notifications",
	RunE: func(cmd *cobra.Command, args []string) error {
		if config.EMAIL_BACKEND == "smtp" {
			config.MustEnv("SMTP_HOST")
		}
		database.InitRedis()

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		w := notify.NewWorker(mailer.New(), logging.Log.With().Str("component", "worker").Logger())
		return w.Run(ctx)
	},
}
