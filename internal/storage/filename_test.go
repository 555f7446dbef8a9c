package storage

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", "poster.png", "poster.png"},
		{"spaces", "my movie poster.jpg", "my_movie_poster.jpg"},
		{"path traversal", "../../etc/passwd", "passwd"},
		{"windows path", `C:\uploads\dune.gif`, "dune.gif"},
		{"unicode stripped", "постер.png", "png"},
		{"special chars", "a!b@c#d$.jpeg", "abcd.jpeg"},
		{"only unsafe", "!@#$%", ""},
		{"dot dot", "..", ""},
		{"leading dots trimmed", "...hidden.png", "hidden.png"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, SanitizeFilename(tt.in))
		})
	}
}

func TestAllowedExtension(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"poster.png", true},
		{"poster.PNG", true},
		{"poster.jpg", true},
		{"poster.JPEG", true},
		{"poster.gif", true},
		{"poster.bmp", false},
		{"poster.svg", false},
		{"poster", false},
		{"", false},
		{"archive.tar.gz", false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			require.Equal(t, tt.want, AllowedExtension(tt.in))
		})
	}
}
