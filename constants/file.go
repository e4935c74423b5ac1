package constants

import "strings"

// Formats holds the document formats the layout parsers understand.
var Formats = []string{"PDF", "HTML", "JSON"}

// AllowedExtensions holds the default allowed file extensions for order documents.
var AllowedExtensions = map[string]struct{}{
	"pdf":  {},
	"html": {},
	"htm":  {},
	"json": {},
}

// MaxFileSizeBytes is the per-document size ceiling enforced before parsing.
const MaxFileSizeBytes = int64(25 * 1024 * 1024)

// NormalizeExt lowercases and trims the dot from a file extension.
func NormalizeExt(ext string) string {
	return strings.ToLower(strings.TrimPrefix(ext, "."))
}

// IsAllowedExt reports whether a normalized extension is in the allowed set.
func IsAllowedExt(ext string) bool {
	_, ok := AllowedExtensions[ext]
	return ok
}
