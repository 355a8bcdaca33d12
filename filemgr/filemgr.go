package filemgr

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"
	_ "golang.org/x/image/webp"
)

type EntityType string

const (
	EntityProduct  EntityType = "product"
	EntityCategory EntityType = "category"
	EntityBrand    EntityType = "brand"
	EntityBanner   EntityType = "banner"
	EntityHero     EntityType = "hero"
)

var (
	AllowedExtensions = []string{".jpg", ".jpeg", ".png", ".gif", ".webp"}
	AllowedMIMEs      = []string{"image/jpeg", "image/png", "image/gif", "image/webp"}

	EntitySubfolders = map[EntityType]string{
		EntityProduct:  "productpic",
		EntityCategory: "categorypic",
		EntityBrand:    "brandpic",
		EntityBanner:   "bannerpic",
		EntityHero:     "heropic",
	}

	ErrInvalidExtension = errors.New("invalid file extension")
	ErrInvalidMIME      = errors.New("invalid MIME type")
	ErrFileTooLarge     = errors.New("file size exceeds limit")
)

const maxImageSize = 10 << 20

func ResolvePath(entity EntityType) string {
	sub, ok := EntitySubfolders[entity]
	if !ok {
		sub = "uploads"
	}
	return filepath.Join("static", sub)
}

// SaveImage validates, EXIF-strips and stores an uploaded image for the
// entity, writing a 300px thumbnail next to it. Returns the stored filename.
func SaveImage(file multipart.File, header *multipart.FileHeader, entity EntityType) (string, error) {
	defer file.Close()

	ext := strings.ToLower(filepath.Ext(header.Filename))
	if !contains(AllowedExtensions, ext) {
		return "", fmt.Errorf("%w: %s", ErrInvalidExtension, ext)
	}

	buf, err := io.ReadAll(io.LimitReader(file, maxImageSize+1))
	if err != nil {
		return "", fmt.Errorf("read file: %w", err)
	}
	if len(buf) > maxImageSize {
		return "", ErrFileTooLarge
	}

	mimeType := http.DetectContentType(buf)
	if !contains(AllowedMIMEs, mimeType) {
		return "", fmt.Errorf("%w: %s", ErrInvalidMIME, mimeType)
	}

	img, _, err := image.Decode(bytes.NewReader(buf))
	if err != nil {
		return "", fmt.Errorf("decode image: %w", err)
	}

	// Re-encode to drop EXIF before storing
	var clean bytes.Buffer
	if err := jpeg.Encode(&clean, img, &jpeg.Options{Quality: 90}); err == nil && ext != ".gif" {
		buf = clean.Bytes()
		ext = ".jpg"
	}

	dest := ResolvePath(entity)
	if err := os.MkdirAll(dest, 0o755); err != nil {
		return "", fmt.Errorf("mkdir %s: %w", dest, err)
	}

	filename := uuid.New().String() + ext
	fullPath := filepath.Join(dest, filename)
	if err := os.WriteFile(fullPath, buf, 0o644); err != nil {
		return "", fmt.Errorf("write %s: %w", fullPath, err)
	}

	if err := generateThumbnail(img, dest, filename); err != nil {
		// Thumbnail failure doesn't fail the upload
		fmt.Println("thumbnail generation failed:", err)
	}

	return filename, nil
}

func generateThumbnail(img image.Image, dest, filename string) error {
	thumbDir := filepath.Join(dest, "thumb")
	if err := os.MkdirAll(thumbDir, 0o755); err != nil {
		return err
	}
	thumb := imaging.Thumbnail(img, 300, 300, imaging.Lanczos)
	return imaging.Save(thumb, filepath.Join(thumbDir, filename))
}

// PublicURL maps a stored filename to the path the static file server mounts.
func PublicURL(entity EntityType, filename string) string {
	if filename == "" {
		return ""
	}
	return "/static/" + EntitySubfolders[entity] + "/" + filename
}

func contains(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}
