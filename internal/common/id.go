package common

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// NewRunID returns an identifier for one suite run, used to name the
// results directory. The timestamp prefix keeps directories sortable; the
// uuid suffix keeps concurrent shards from colliding.
func NewRunID() string {
	return time.Now().Format("20060102-150405") + "-" + uuid.NewString()[:8]
}

// SanitizeName converts a display name to a safe file name fragment.
func SanitizeName(name string) string {
	replacer := strings.NewReplacer(
		" ", "_",
		"/", "_",
		"\\", "_",
		":", "_",
	)
	return strings.ToLower(replacer.Replace(name))
}
