package media

import (
	"context"
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"go-ems/internal/shared/apperror"
)

// MaxFileSize is the hard cap checked before any network transfer.
const MaxFileSize = 5 << 20 // 5MB

// File is an in-memory image staged by the HTTP layer.
type File struct {
	Name        string
	ContentType string
	Size        int64
	Reader      io.Reader
}

// UploadResult makes the non-fatal upload policy explicit: either the
// provider returned a durable URL, or the upload was skipped with a
// reason and the caller falls back to the default image. Upload never
// fails the surrounding operation.
type UploadResult struct {
	URL      string
	PublicID string
	Skipped  bool
	Reason   string
}

func Uploaded(url, publicID string) UploadResult {
	return UploadResult{URL: url, PublicID: publicID}
}

func Skip(reason string) UploadResult {
	return UploadResult{Skipped: true, Reason: reason}
}

//go:generate mockgen -source=media.go -destination=mock/uploader_mock.go -package=mock
type Uploader interface {
	Upload(ctx context.Context, file File) UploadResult
	Delete(ctx context.Context, publicID string) error
}

var (
	ErrFileTooLarge = apperror.New(
		apperror.CodeInvalidInput,
		"File too large. Maximum size is 5MB.",
		http.StatusBadRequest,
	)
	ErrUnsupportedFileType = apperror.New(
		apperror.CodeInvalidInput,
		"Only image files (jpeg, jpg, png, gif) are allowed!",
		http.StatusBadRequest,
	)
)

var allowedExtensions = map[string]bool{
	".jpeg": true,
	".jpg":  true,
	".png":  true,
	".gif":  true,
}

var allowedContentTypes = map[string]bool{
	"image/jpeg": true,
	"image/jpg":  true,
	"image/png":  true,
	"image/gif":  true,
}

// ValidateFile rejects non-image content before any network transfer.
// Both the filename extension and the declared content type must match.
func ValidateFile(f File) error {
	if f.Size > MaxFileSize {
		return ErrFileTooLarge
	}

	ext := strings.ToLower(filepath.Ext(f.Name))
	if !allowedExtensions[ext] {
		return ErrUnsupportedFileType
	}

	if !allowedContentTypes[strings.ToLower(f.ContentType)] {
		return ErrUnsupportedFileType
	}

	return nil
}
