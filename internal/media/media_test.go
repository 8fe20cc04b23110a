package media_test

import (
	"strings"
	"testing"

	"go-ems/internal/media"

	"github.com/stretchr/testify/assert"
)

func imageFile(name, contentType string, size int64) media.File {
	return media.File{
		Name:        name,
		ContentType: contentType,
		Size:        size,
		Reader:      strings.NewReader("bytes"),
	}
}

func TestValidateFile(t *testing.T) {
	t.Run("accepts supported images", func(t *testing.T) {
		for _, name := range []string{"a.jpg", "a.jpeg", "a.PNG", "a.gif"} {
			assert.NoError(t, media.ValidateFile(imageFile(name, "image/png", 1024)), name)
		}
	})

	t.Run("rejects oversized file", func(t *testing.T) {
		err := media.ValidateFile(imageFile("a.png", "image/png", media.MaxFileSize+1))
		assert.ErrorIs(t, err, media.ErrFileTooLarge)
	})

	t.Run("rejects unsupported extension", func(t *testing.T) {
		err := media.ValidateFile(imageFile("resume.pdf", "image/png", 1024))
		assert.ErrorIs(t, err, media.ErrUnsupportedFileType)
	})

	t.Run("rejects mismatched content type", func(t *testing.T) {
		// extension alone is not enough, the declared type must match too
		err := media.ValidateFile(imageFile("a.png", "application/octet-stream", 1024))
		assert.ErrorIs(t, err, media.ErrUnsupportedFileType)
	})
}

func TestPublicID(t *testing.T) {
	t.Run("unique per call", func(t *testing.T) {
		assert.NotEqual(t, media.PublicID("ann.png"), media.PublicID("ann.png"))
	})

	t.Run("sanitizes the base name", func(t *testing.T) {
		id := media.PublicID("my photo v1.2.png")
		assert.NotContains(t, id, " ")
		assert.NotContains(t, id, ".png")
		assert.True(t, strings.HasPrefix(id, "my-photo-v1-2-"), id)
	})

	t.Run("empty base falls back", func(t *testing.T) {
		assert.True(t, strings.HasPrefix(media.PublicID(".png"), "upload-"))
	})
}

func TestPublicIDFromURL(t *testing.T) {
	t.Run("recovers id from retrieval url", func(t *testing.T) {
		id, ok := media.PublicIDFromURL("https://res.cloudinary.com/demo/image/upload/v1/employee_profiles/ann-123.png")
		assert.True(t, ok)
		assert.Equal(t, "employee_profiles/ann-123", id)
	})

	t.Run("rejects unusable urls", func(t *testing.T) {
		_, ok := media.PublicIDFromURL("")
		assert.False(t, ok)

		_, ok = media.PublicIDFromURL(".png")
		assert.False(t, ok)
	})
}
