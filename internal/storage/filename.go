package storage

import (
	"path"
	"path/filepath"
	"regexp"
	"strings"
)

// allowedExtensions are the image types accepted for poster uploads.
// Anything else is treated as "no image provided", not an error.
var allowedExtensions = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".gif":  true,
}

// unsafeChars matches everything that may not appear in a stored filename.
var unsafeChars = regexp.MustCompile(`[^A-Za-z0-9_.-]`)

// AllowedExtension reports whether the filename carries an accepted image
// extension. The comparison ignores case; a name without a dot never
// qualifies.
func AllowedExtension(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	return allowedExtensions[ext]
}

// SanitizeFilename reduces an uploaded filename to a safe flat name:
// directory components are stripped, whitespace becomes underscores, and
// any character outside [A-Za-z0-9_.-] is removed. Returns an empty
// string when nothing safe remains.
func SanitizeFilename(name string) string {
	// Drop any directory part, whichever separator the client used.
	name = path.Base(strings.ReplaceAll(name, "\\", "/"))

	name = strings.Join(strings.Fields(name), "_")
	name = unsafeChars.ReplaceAllString(name, "")
	name = strings.Trim(name, "._-")

	if name == "." || name == ".." {
		return ""
	}
	return name
}
