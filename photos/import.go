package photos

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode"

	"github.com/rwcarlsen/goexif/exif"
	"github.com/rwcarlsen/goexif/mknote"
)

// imageExtensions are the formats the library accepts, matched
// case-insensitively on the file suffix.
var imageExtensions = map[string]bool{
	".bmp":  true,
	".gif":  true,
	".jpeg": true,
	".jpg":  true,
	".png":  true,
}

// IsImageFile reports whether path has a supported image extension.
func IsImageFile(path string) bool {
	return imageExtensions[strings.ToLower(filepath.Ext(path))]
}

// NewPhotoFromFile builds a photo for the file at path. The capture date is
// the file's modification time and the stored path is absolute.
func NewPhotoFromFile(path string) (*Photo, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("stat photo: %w", err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%w: %s is a directory", ErrInvalidInput, path)
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve photo path: %w", err)
	}
	return NewPhoto(abs, info.ModTime()), nil
}

// ImportPhoto is NewPhotoFromFile with a better capture date: when the file
// carries EXIF data, the original date-time wins over the modification time.
func ImportPhoto(path string) (*Photo, error) {
	photo, err := NewPhotoFromFile(path)
	if err != nil {
		return nil, err
	}
	if takenAt, ok := exifTakenAt(photo.Path()); ok {
		photo.SetTakenAt(takenAt)
	}
	return photo, nil
}

// exifTakenAt extracts the EXIF capture date. Any failure just means "no
// EXIF date"; the caller falls back to the modification time.
func exifTakenAt(path string) (time.Time, bool) {
	f, err := os.Open(path)
	if err != nil {
		return time.Time{}, false
	}
	defer f.Close()

	exif.RegisterParsers(mknote.All...)
	data, err := exif.Decode(f)
	if err != nil {
		return time.Time{}, false
	}
	takenAt, err := data.DateTime()
	if err != nil {
		return time.Time{}, false
	}
	return takenAt, true
}

// CaptionFromFilename derives a starter caption from a file name: extension
// stripped, underscores to spaces, first rune upper-cased.
// "new_york.jpg" becomes "New york".
func CaptionFromFilename(name string) string {
	caption := strings.TrimSuffix(name, filepath.Ext(name))
	caption = strings.ReplaceAll(caption, "_", " ")
	if caption == "" {
		return caption
	}
	runes := []rune(caption)
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}
