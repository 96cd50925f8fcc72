// Package testutil wires the package-level stores to throwaway backends:
// a sqlite file per test for gorm and miniredis for the cache and queue.
package testutil

import (
	"context"
	"net/http"
	"path/filepath"
	"testing"
	"time"

	"github.com/Dauletnazarr/donation-project/config"
	"github.com/Dauletnazarr/donation-project/database"
	"github.com/Dauletnazarr/donation-project/internal/domain/donations"
	"github.com/Dauletnazarr/donation-project/internal/domain/users"
	"github.com/Dauletnazarr/donation-project/internal/infra/queue"
	"github.com/Dauletnazarr/donation-project/internal/infra/tokens"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const JWTSecret = "test-secret"

// Setup points database.DB and database.Rdb at fresh stores and sets a JWT
// secret. Everything is restored on cleanup.
func Setup(t *testing.T) *miniredis.Miniredis {
	t.Helper()
	SetupDB(t)
	mr := SetupRedis(t)

	prev := config.JWT_SECRET
	config.JWT_SECRET = JWTSecret
	t.Cleanup(func() { config.JWT_SECRET = prev })
	return mr
}

func SetupDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := filepath.Join(t.TempDir(), "test.db") + "?_foreign_keys=on&_busy_timeout=5000"
	cfg := database.Config()
	cfg.Logger = logger.Discard

	db, err := gorm.Open(sqlite.Open(dsn), cfg)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sql handle: %v", err)
	}
	// one connection serialises writers; sqlite would otherwise report SQLITE_BUSY
	sqlDB.SetMaxOpenConns(1)

	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	prev := database.DB
	database.DB = db
	t.Cleanup(func() {
		database.DB = prev
		sqlDB.Close()
	})
	return db
}

func SetupRedis(t *testing.T) *miniredis.Miniredis {
	t.Helper()
	mr := miniredis.RunT(t)
	prev := database.Rdb
	database.Rdb = redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() {
		database.Rdb.Close()
		database.Rdb = prev
	})
	return mr
}

func CreateUser(t *testing.T, username string) users.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("Secret123"), bcrypt.MinCost)
	if err != nil {
		t.Fatal(err)
	}
	u := users.User{
		Username: username,
		Email:    username + "@example.com",
		Password: string(hash),
	}
	if err := database.DB.Create(&u).Error; err != nil {
		t.Fatalf("create user %s: %v", username, err)
	}
	return u
}

func CreateCollect(t *testing.T, author users.User, title string) donations.Collect {
	t.Helper()
	goal := decimal.NewFromInt(1000)
	c := donations.Collect{
		AuthorID:    author.ID,
		Title:       title,
		Occasion:    donations.OccasionBirthday,
		Description: "test collect",
		GoalAmount:  &goal,
		EndDatetime: time.Now().Add(7 * 24 * time.Hour),
	}
	if err := database.DB.Create(&c).Error; err != nil {
		t.Fatalf("create collect: %v", err)
	}
	return c
}

// CreatePayment inserts a payment and applies it to the collect aggregates.
func CreatePayment(t *testing.T, collect donations.Collect, donor users.User, amount int64) donations.Payment {
	t.Helper()
	p := donations.Payment{CollectID: collect.ID, DonorID: &donor.ID, Amount: decimal.NewFromInt(amount)}
	err := database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&p).Error; err != nil {
			return err
		}
		return donations.ApplyPayment(tx, collect.ID, p.Amount)
	})
	if err != nil {
		t.Fatalf("create payment: %v", err)
	}
	return p
}

func BearerFor(t *testing.T, u users.User) string {
	t.Helper()
	tok, err := tokens.Issue(u.ID, u.Username, tokens.Access)
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}
	return "Bearer " + tok
}

func Authorize(req *http.Request, bearer string) *http.Request {
	if bearer != "" {
		req.Header.Set("Authorization", bearer)
	}
	req.Header.Set("Content-Type", "application/json")
	return req
}

// QueuedJobs drains the email queue and returns the envelopes in order.
func QueuedJobs(t *testing.T) []queue.Envelope {
	t.Helper()
	var out []queue.Envelope
	for {
		n, err := queue.Len(context.Background(), queue.Emails)
		if err != nil {
			t.Fatalf("queue len: %v", err)
		}
		if n == 0 {
			return out
		}
		env, err := queue.Dequeue(context.Background(), queue.Emails, time.Second)
		if err != nil {
			t.Fatalf("dequeue: %v", err)
		}
		if env != nil {
			out = append(out, *env)
		}
	}
}
