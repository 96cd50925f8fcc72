// Package seed fills an empty database with demo data and provisions the
// admin account.
package seed

import (
	"errors"
	"fmt"
	"time"

	"github.com/Dauletnazarr/donation-project/internal/domain/donations"
	"github.com/Dauletnazarr/donation-project/internal/domain/users"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrAlreadySeeded is returned when the store already holds more than
// Options.SkipAbove collects.
var ErrAlreadySeeded = errors.New("mock data already present")

type Options struct {
	Users              int
	CollectsPerUser    int
	PaymentsPerCollect int
	LikesPerPayment    int
	CommentsPerPayment int
	SkipAbove          int64
	Password           string
	Now                func() time.Time
}

func DefaultOptions() Options {
	return Options{
		Users:              7,
		CollectsPerUser:    10,
		PaymentsPerCollect: 20,
		LikesPerPayment:    3,
		CommentsPerPayment: 2,
		SkipAbove:          50,
		Password:           "password123",
		Now:                time.Now,
	}
}

type Summary struct {
	Users    int
	Collects int
	Payments int
	Likes    int64
	Comments int64
}

// Run replaces previous demo rows (everything except staff accounts) with a
// fresh, deterministic data set. Aggregates are written from the generated
// payments so collected_amount and donors_count match the payments table.
func Run(db *gorm.DB, opts Options) (Summary, error) {
	var sum Summary
	if opts.Users < 1 {
		return sum, fmt.Errorf("seed needs at least one user")
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	var existing int64
	if err := db.Model(&donations.Collect{}).Count(&existing).Error; err != nil {
		return sum, err
	}
	if existing > opts.SkipAbove {
		return sum, ErrAlreadySeeded
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(opts.Password), bcrypt.DefaultCost)
	if err != nil {
		return sum, fmt.Errorf("hash seed password: %w", err)
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		// collects cascade to payments, likes and comments
		if err := tx.Where("1 = 1").Delete(&donations.Collect{}).Error; err != nil {
			return err
		}
		if err := tx.Where("is_staff = ?", false).Delete(&users.User{}).Error; err != nil {
			return err
		}

		people := make([]users.User, opts.Users)
		for i := range people {
			people[i] = users.User{
				Username:  fmt.Sprintf("user%d", i),
				Email:     fmt.Sprintf("user%d@test.com", i),
				Password:  string(hash),
				FirstName: fmt.Sprintf("Name%d", i),
				LastName:  fmt.Sprintf("Surname%d", i),
			}
		}
		if err := tx.CreateInBatches(&people, 500).Error; err != nil {
			return fmt.Errorf("create users: %w", err)
		}
		sum.Users = len(people)

		now := opts.Now()
		goal := decimal.NewFromInt(10000)
		amount := decimal.NewFromInt(100)

		var collects []donations.Collect
		for _, u := range people {
			for j := 0; j < opts.CollectsPerUser; j++ {
				g := goal
				collects = append(collects, donations.Collect{
					AuthorID:        u.ID,
					Title:           fmt.Sprintf("Collect by %s #%d", u.Username, j),
					Occasion:        donations.OccasionOther,
					Description:     "Demo collect",
					GoalAmount:      &g,
					CollectedAmount: amount.Mul(decimal.NewFromInt(int64(opts.PaymentsPerCollect))),
					DonorsCount:     uint(opts.PaymentsPerCollect),
					EndDatetime:     now.Add(30 * 24 * time.Hour),
				})
			}
		}
		if len(collects) == 0 {
			return nil
		}
		if err := tx.CreateInBatches(&collects, 500).Error; err != nil {
			return fmt.Errorf("create collects: %w", err)
		}
		sum.Collects = len(collects)

		var payments []donations.Payment
		for ci, col := range collects {
			for k := 0; k < opts.PaymentsPerCollect; k++ {
				donor := people[(ci+k)%len(people)].ID
				payments = append(payments, donations.Payment{
					CollectID: col.ID,
					DonorID:   &donor,
					Amount:    amount,
				})
			}
		}
		if len(payments) == 0 {
			return nil
		}
		if err := tx.CreateInBatches(&payments, 1000).Error; err != nil {
			return fmt.Errorf("create payments: %w", err)
		}
		sum.Payments = len(payments)

		// likes and comments come from donors of the same collect
		donorsOf := map[uint][]uint{}
		for _, p := range payments {
			donorsOf[p.CollectID] = appendUnique(donorsOf[p.CollectID], *p.DonorID)
		}

		var likes []donations.PaymentLike
		var comments []donations.PaymentComment
		for pi, p := range payments {
			eligible := donorsOf[p.CollectID]
			for i := 0; i < opts.LikesPerPayment && i < len(eligible); i++ {
				likes = append(likes, donations.PaymentLike{
					PaymentID: p.ID,
					UserID:    eligible[(pi+i)%len(eligible)],
				})
			}
			for j := 0; j < opts.CommentsPerPayment && j < len(eligible); j++ {
				comments = append(comments, donations.PaymentComment{
					PaymentID: p.ID,
					UserID:    eligible[(pi+j+1)%len(eligible)],
					Text:      fmt.Sprintf("Comment #%d on payment %d", j, p.ID),
				})
			}
		}

		if len(likes) > 0 {
			res := tx.Clauses(clause.OnConflict{DoNothing: true}).CreateInBatches(&likes, 1000)
			if res.Error != nil {
				return fmt.Errorf("create likes: %w", res.Error)
			}
		}
		if len(comments) > 0 {
			res := tx.Clauses(clause.OnConflict{DoNothing: true}).CreateInBatches(&comments, 1000)
			if res.Error != nil {
				return fmt.Errorf("create comments: %w", res.Error)
			}
		}

		if err := tx.Model(&donations.PaymentLike{}).Count(&sum.Likes).Error; err != nil {
			return err
		}
		return tx.Model(&donations.PaymentComment{}).Count(&sum.Comments).Error
	})
	return sum, err
}

func appendUnique(ids []uint, id uint) []uint {
	for _, v := range ids {
		if v == id {
			return ids
		}
	}
	return append(ids, id)
}
