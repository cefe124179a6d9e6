package services

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAllowedFile(t *testing.T) {
	t.Parallel()

	allowed := []string{
		"writeup.pdf", "chart.png", "photo.JPG", "anim.jpeg", "loop.gif",
		"clip.mp4", "clip.ogg", "song.mp3", "song.wav",
	}
	for _, name := range allowed {
		assert.True(t, AllowedFile(name), name)
	}

	rejected := []string{
		"payload.exe", "script.js", "page.html", "archive.zip",
		"noextension", "trailingdot.", "solution.pdf.exe",
	}
	for _, name := range rejected {
		assert.False(t, AllowedFile(name), name)
	}
}

func TestUploadServiceDir(t *testing.T) {
	t.Setenv("UPLOAD_DIR", "/srv/uploads")
	assert.Equal(t, "/srv/uploads", NewUploadService().Dir())
}

func TestDestination(t *testing.T) {
	t.Parallel()

	s := &UploadService{dir: "/tmp/uploads"}

	filename, fullpath, err := s.Destination("The Enigmatics", "our solution.pdf")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(filename, "The_Enigmatics"), filename)
	assert.True(t, strings.HasSuffix(filename, "_our_solution.pdf"), filename)
	assert.Equal(t, filepath.Join("/tmp/uploads", filename), fullpath)
	assert.NotContains(t, filename, " ")
	assert.NotContains(t, filename, string(filepath.Separator))
}

func TestDestinationUnique(t *testing.T) {
	t.Parallel()

	s := &UploadService{dir: "/tmp/uploads"}

	a, _, err := s.Destination("team", "solution.pdf")
	require.NoError(t, err)
	b, _, err := s.Destination("team", "solution.pdf")
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
}

func TestDestinationRejectsDisallowedType(t *testing.T) {
	t.Parallel()

	s := &UploadService{dir: "/tmp/uploads"}

	_, _, err := s.Destination("team", "payload.exe")
	assert.ErrorIs(t, err, ErrFileTypeNotAllowed)
}

func TestDestinationStripsPath(t *testing.T) {
	t.Parallel()

	s := &UploadService{dir: "/tmp/uploads"}

	filename, _, err := s.Destination("team", "../../etc/passwd.png")
	require.NoError(t, err)
	assert.NotContains(t, filename, "/")
	assert.NotContains(t, filename, "..")
}

func TestMediaSnippet(t *testing.T) {
	t.Parallel()

	tests := []struct {
		filename string
		contains string
	}{
		{"chart.png", "<img"},
		{"photo.jpg", "<img"},
		{"clip.mp4", "video/mp4"},
		{"clip.ogg", "video/ogg"},
		{"writeup.pdf", "<iframe"},
		{"song.mp3", "audio/mpeg"},
		{"song.wav", "audio/wav"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.filename, func(t *testing.T) {
			t.Parallel()

			snippet, ok := MediaSnippet(tt.filename)
			require.True(t, ok)
			assert.Contains(t, snippet, tt.contains)
			assert.Contains(t, snippet, "/static/uploads/"+tt.filename)
		})
	}

	_, ok := MediaSnippet("notes.txt")
	assert.False(t, ok)
}
