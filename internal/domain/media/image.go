package media

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const coversDir = "covers"

var (
	ErrNotImage = errors.New("upload a valid image")
	ErrTooLarge = errors.New("image is too large")
	ErrEmpty    = errors.New("the submitted file is empty")
)

// extensions lists the accepted content types and the suffix stored on disk.
var extensions = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

// Image is an uploaded file. OriginalPath is relative to the media root and
// uses forward slashes, so it doubles as the URL suffix.
type Image struct {
	ID           string `gorm:"type:varchar(36);primaryKey"`
	OriginalPath string `gorm:"not null"`
	ContentType  string `gorm:"type:varchar(100);not null"`
	Size         int64  `gorm:"not null"`
	UploaderID   *uint  `gorm:"index"`

	CreatedAt time.Time
}

func (img *Image) BeforeCreate(tx *gorm.DB) error {
	if img.ID == "" {
		img.ID = uuid.NewString()
	}
	return nil
}

// URL joins the public media prefix and the stored path.
func (img Image) URL(prefix string) string {
	return path.Join("/", prefix, img.OriginalPath)
}

// Save copies r into root/covers after checking its size and sniffing its
// content type. The returned Image has its ID set and is not persisted.
func Save(root string, r io.Reader, maxBytes int64) (Image, error) {
	buf, err := io.ReadAll(io.LimitReader(r, maxBytes+1))
	if err != nil {
		return Image{}, fmt.Errorf("read upload: %w", err)
	}
	switch {
	case len(buf) == 0:
		return Image{}, ErrEmpty
	case int64(len(buf)) > maxBytes:
		return Image{}, ErrTooLarge
	}

	ctype := http.DetectContentType(buf)
	ext, ok := extensions[ctype]
	if !ok {
		return Image{}, ErrNotImage
	}

	img := Image{
		ID:          uuid.NewString(),
		ContentType: ctype,
		Size:        int64(len(buf)),
	}
	img.OriginalPath = coversDir + "/" + img.ID + ext

	dir := filepath.Join(root, coversDir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return Image{}, fmt.Errorf("create %s: %w", dir, err)
	}
	if err := os.WriteFile(filepath.Join(root, filepath.FromSlash(img.OriginalPath)), buf, 0o644); err != nil {
		return Image{}, fmt.Errorf("write image: %w", err)
	}
	return img, nil
}
