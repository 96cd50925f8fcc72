package main

import (
	"errors"
	"fmt"

	"github.com/Dauletnazarr/donation-project/config"
	"github.com/Dauletnazarr/donation-project/database"
	"github.com/Dauletnazarr/donation-project/internal/app/seed"
	"github.com/Dauletnazarr/donation-project/internal/infra/logging"

	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the database schema",
	RunE: func(cmd *cobra.Command, args []string) error {
		config.MustEnv("DB_URL")
		database.InitDB()
		if err := database.Migrate(database.DB); err != nil {
			return err
		}
		logging.Log.Info().Msg("migrations applied")
		return nil
	},
}

var seedOpts = seed.DefaultOptions()

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Replace demo data with a generated data set",
	Long: `Deletes all collects and non-staff users, then generates users,
collects, payments, likes and comments. Does nothing when the database
already holds more than --skip-above collects.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		config.MustEnv("DB_URL")
		database.InitDB()
		if err := database.Migrate(database.DB); err != nil {
			return err
		}

		sum, err := seed.Run(database.DB, seedOpts)
		if errors.Is(err, seed.ErrAlreadySeeded) {
			logging.Log.Warn().Msg("mock data already present, skipping")
			return nil
		}
		if err != nil {
			return err
		}

		fmt.Printf("Users:    %d\n", sum.Users)
		fmt.Printf("Collects: %d\n", sum.Collects)
		fmt.Printf("Payments: %d\n", sum.Payments)
		fmt.Printf("Likes:    %d\n", sum.Likes)
		fmt.Printf("Comments: %d\n", sum.Comments)
		return nil
	},
}

var superuser struct {
	username string
	email    string
	password string
}

var createSuperuserCmd = &cobra.Command{
	Use:   "createsuperuser",
	Short: "Create the staff account if it does not exist",
	RunE: func(cmd *cobra.Command, args []string) error {
		config.MustEnv("DB_URL")
		database.InitDB()
		if err := database.Migrate(database.DB); err != nil {
			return err
		}

		created, err := seed.EnsureSuperuser(database.DB, superuser.username, superuser.email, superuser.password)
		if err != nil {
			return err
		}
		if created {
			fmt.Println("Superuser created.")
		} else {
			fmt.Println("Superuser already exists.")
		}
		return nil
	},
}

func init() {
	f := seedCmd.Flags()
	f.IntVar(&seedOpts.Users, "users", seedOpts.Users, "number of users")
	f.IntVar(&seedOpts.CollectsPerUser, "collects-per-user", seedOpts.CollectsPerUser, "collects per user")
	f.IntVar(&seedOpts.PaymentsPerCollect, "payments-per-collect", seedOpts.PaymentsPerCollect, "payments per collect")
	f.IntVar(&seedOpts.LikesPerPayment, "likes-per-payment", seedOpts.LikesPerPayment, "likes per payment")
	f.IntVar(&seedOpts.CommentsPerPayment, "comments-per-payment", seedOpts.CommentsPerPayment, "comments per payment")
	f.Int64Var(&seedOpts.SkipAbove, "skip-above", seedOpts.SkipAbove, "skip when more collects than this exist")

	s := createSuperuserCmd.Flags()
	s.StringVar(&superuser.username, "username", "admin", "username")
	s.StringVar(&superuser.email, "email", "admin@example.com", "email")
	s.StringVar(&superuser.password, "password", "admin", "password")
}
