package config

const (
	DefaultHost        = "0.0.0.0"
	DefaultPort        = 8399
	DefaultEnvironment = "development"
	DefaultLogLevel    = "info"

	DefaultRateLimitPerMinute = 120

	// Elicitation timeouts, in milliseconds. A configured default
	// outside [MinElicitationTimeoutMs, MaxElicitationTimeoutMs]
	// falls back to DefaultElicitationTimeoutMs.
	DefaultElicitationTimeoutMs = 60_000
	MinElicitationTimeoutMs     = 5_000
	MaxElicitationTimeoutMs     = 1_800_000

	// Fixed per-category timeouts.
	YesNoTimeoutMs  = 30_000
	RatingTimeoutMs = 20_000

	// Action confirmations scale with the severity of the described
	// impact.
	DestructiveTimeoutMs = 120_000
	WarningTimeoutMs     = 90_000

	DefaultConfirmationLogPath = "data/confirmations.jsonl"

	DefaultCORSMaxAge = 300
)

var DefaultCORSOrigins = []string{
	"http://localhost:3000",
	"http://localhost:8080",
}
