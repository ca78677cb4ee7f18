package tools

import (
	"strings"

	"github.com/parley-mcp/parley/internal/config"
)

// Destructive verbs in an impact description demand the longest
// confirmation window; warning language a medium one.
var (
	destructiveKeywords = []string{
		"delete", "remove", "destroy", "drop", "erase",
		"wipe", "purge", "overwrite", "truncate",
	}
	warningKeywords = []string{
		"warning", "caution", "risk",
		"irreversible", "permanent", "unrecoverable",
	}
)

// ImpactTimeoutMs scales the confirm_action timeout by the severity of
// the impact description. Empty or unrecognized impact text keeps the
// configured default.
func ImpactTimeoutMs(impact string, defaultMs int) int {
	lower := strings.ToLower(impact)
	for _, kw := range destructiveKeywords {
		if strings.Contains(lower, kw) {
			return config.DestructiveTimeoutMs
		}
	}
	for _, kw := range warningKeywords {
		if strings.Contains(lower, kw) {
			return config.WarningTimeoutMs
		}
	}
	return defaultMs
}
