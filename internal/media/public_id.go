package media

import (
	"fmt"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// UploadFolder is the provider-side folder every profile image lands in.
const UploadFolder = "employee_profiles"

var sanitizer = strings.NewReplacer(" ", "-", "/", "-", "\\", "-", ".", "-")

// PublicID builds a collision-resistant storage key from the original
// filename: sanitized base name plus a timestamp and a random suffix,
// so repeated uploads of the same filename never collide.
func PublicID(filename string) string {
	base := strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename))
	base = sanitizer.Replace(base)
	if base == "" {
		base = "upload"
	}

	return fmt.Sprintf("%s-%d-%s", base, time.Now().UnixMilli(), uuid.NewString()[:8])
}

// PublicIDFromURL recovers the provider public id from a stored
// retrieval URL by taking the last path segment without its extension.
// Fragile by construction: it breaks if the provider changes URL shape,
// which is why new records persist the public id alongside the URL and
// only legacy records fall through to this parse.
func PublicIDFromURL(fileURL string) (string, bool) {
	segment := path.Base(fileURL)
	if segment == "." || segment == "/" || segment == "" {
		return "", false
	}

	name := strings.TrimSuffix(segment, path.Ext(segment))
	if name == "" {
		return "", false
	}

	return UploadFolder + "/" + name, true
}
