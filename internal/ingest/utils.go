package ingest

import (
	"path/filepath"
	"strings"

	"github.com/vicam001/order-extract/constants"
)

// AllowedExt checks if a file extension is in the allowed set (pdf/html/htm/json).
func AllowedExt(ext string) bool {
	return constants.IsAllowedExt(constants.NormalizeExt(ext))
}

// IsHidden checks if a file or directory is hidden (starts with '.').
func IsHidden(path string) bool {
	base := filepath.Base(path)
	return strings.HasPrefix(base, ".")
}
