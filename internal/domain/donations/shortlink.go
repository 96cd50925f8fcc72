package donations

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	ShortLinkLength      = 8
	maxShortLinkAttempts = 32
)

var ErrShortLinkExhausted = errors.New("could not allocate a unique short link")

// newShortToken is swapped in tests to force collisions.
var newShortToken = func() string {
	return uuid.NewString()[:ShortLinkLength]
}

// EnsureShortLink returns the collect's short link, allocating and persisting
// one on first use. The write only succeeds while short_link is still NULL,
// so concurrent callers end up with the same token.
//
// Pass db in rather than importing the database package (import cycle).
func EnsureShortLink(db *gorm.DB, c *Collect) (string, error) {
	if c == nil || c.ID == 0 {
		return "", fmt.Errorf("collect is not persisted")
	}
	if c.ShortLink != nil && *c.ShortLink != "" {
		return *c.ShortLink, nil
	}

	for attempt := 0; attempt < maxShortLinkAttempts; attempt++ {
		token := newShortToken()

		var taken int64
		if err := db.Model(&Collect{}).Where("short_link = ?", token).Count(&taken).Error; err != nil {
			return "", err
		}
		if taken > 0 {
			continue
		}

		res := db.Model(&Collect{}).
			Where("id = ? AND short_link IS NULL", c.ID).
			Update("short_link", token)
		if res.Error != nil {
			if errors.Is(res.Error, gorm.ErrDuplicatedKey) {
				continue
			}
			return "", res.Error
		}

		if res.RowsAffected == 0 {
			// someone else got there first
			var current Collect
			if err := db.Select("id", "short_link").First(&current, c.ID).Error; err != nil {
				return "", err
			}
			if current.ShortLink == nil {
				continue
			}
			token = *current.ShortLink
		}

		c.ShortLink = &token
		return token, nil
	}

	return "", ErrShortLinkExhausted
}

// ShortLinkPath is the public redirect path for a token.
func ShortLinkPath(token string) string {
	return "/r/" + token
}
