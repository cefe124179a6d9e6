// services/uploads.go - uploaded media: allow-list, filenames, embed snippets
package services

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// ErrFileTypeNotAllowed rejects uploads outside the media allow-list.
var ErrFileTypeNotAllowed = errors.New("file type not allowed")

// allowedExtensions are the only upload types accepted: images, video, audio
// and pdf write-ups.
var allowedExtensions = map[string]bool{
	"pdf": true, "png": true, "jpg": true, "jpeg": true, "gif": true,
	"mp4": true, "ogg": true, "mp3": true, "wav": true,
}

// UploadService decides where uploaded files land and how they are embedded
// in post bodies.
type UploadService struct {
	dir string
}

// NewUploadService reads UPLOAD_DIR, defaulting to ./static/uploads.
func NewUploadService() *UploadService {
	dir := os.Getenv("UPLOAD_DIR")
	if dir == "" {
		dir = "./static/uploads"
	}
	return &UploadService{dir: dir}
}

// Dir returns the configured upload directory.
func (s *UploadService) Dir() string {
	return s.dir
}

// AllowedFile reports whether the filename carries an accepted extension.
func AllowedFile(name string) bool {
	return allowedExtensions[extension(name)]
}

func extension(name string) string {
	return strings.ToLower(strings.TrimPrefix(filepath.Ext(name), "."))
}

// sanitizeFilename strips any path and reduces the name to a safe character
// set, the way werkzeug's secure_filename does for the original uploads.
func sanitizeFilename(name string) string {
	name = filepath.Base(name)
	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9',
			r == '.', r == '-', r == '_':
			b.WriteRune(r)
		case r == ' ':
			b.WriteRune('_')
		}
	}
	return b.String()
}

// Destination validates an upload and returns its stored filename and full
// path. The name is prefixed with the uploader and a random salt so two
// teams uploading "solution.pdf" never collide.
func (s *UploadService) Destination(username, original string) (filename, fullpath string, err error) {
	if !AllowedFile(original) {
		return "", "", ErrFileTypeNotAllowed
	}
	filename = sanitizeFilename(username) + uuid.New().String()[:8] + "_" + sanitizeFilename(original)
	return filename, filepath.Join(s.dir, filename), nil
}

// MediaSnippet renders the HTML fragment embedded in a post body for an
// uploaded file, chosen by extension. The second return is false for types
// that have no embed form.
func MediaSnippet(filename string) (string, bool) {
	src := "/static/uploads/" + filename
	switch extension(filename) {
	case "png", "jpg", "jpeg", "gif":
		return fmt.Sprintf(`<img src=%q alt="Uploaded image" width="900px" border="0" />`, src), true
	case "mp4":
		return fmt.Sprintf(`<video width="600" controls><source src=%q type="video/mp4">Your browser does not support the video tag.</video>`, src), true
	case "ogg":
		return fmt.Sprintf(`<video width="600" controls><source src=%q type="video/ogg">Your browser does not support the video tag.</video>`, src), true
	case "pdf":
		return fmt.Sprintf(`<iframe src=%q style="width:718px; height:700px;" frameborder="0"></iframe>`, src), true
	case "mp3":
		return fmt.Sprintf(`<audio controls><source src=%q type="audio/mpeg">Your browser does not support the audio element.</audio>`, src), true
	case "wav":
		return fmt.Sprintf(`<audio controls><source src=%q type="audio/wav">Your browser does not support the audio element.</audio>`, src), true
	}
	return "", false
}
