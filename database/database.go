package database

import (
	"fmt"
	"time"

	"github.com/Dauletnazarr/donation-project/config"
	"github.com/Dauletnazarr/donation-project/internal/domain/donations"
	"github.com/Dauletnazarr/donation-project/internal/domain/media"
	"github.com/Dauletnazarr/donation-project/internal/domain/users"
	"github.com/Dauletnazarr/donation-project/internal/infra/logging"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

// Config is shared by the postgres connection and the sqlite test store.
// TranslateError makes unique violations surface as gorm.ErrDuplicatedKey.
func Config() *gorm.Config {
	level := logger.Warn
	if config.DEBUG {
		level = logger.Info
	}
	return &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(level),
		NowFunc: func() time.Time {
			return time.Now().In(config.Location)
		},
	}
}

func InitDB() {
	dsn := config.DB_URL
	if dsn == "" {
		logging.Log.Fatal().Msg("DB_URL not set")
	}

	db, err := gorm.Open(postgres.Open(dsn), Config())
	if err != nil {
		logging.Log.Fatal().Err(err).Msg("failed to connect to database")
	}

	sqlDB, err := db.DB()
	if err != nil {
		logging.Log.Fatal().Err(err).Msg("failed to get sql handle")
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(25)

	DB = db
	logging.Log.Info().Msg("connected to database")
}

// Models lists every table in dependency order.
func Models() []interface{} {
	return []interface{}{
		&users.User{},
		&media.Image{},
		&donations.Collect{},
		&donations.Payment{},
		&donations.PaymentLike{},
		&donations.PaymentComment{},
	}
}

func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(Models()...); err != nil {
		return fmt.Errorf("auto-migrate: %w", err)
	}
	return nil
}
