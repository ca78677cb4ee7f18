package models

import (
	"strings"
	"time"
)

// ConfirmationType is the coarse category inferred from a request
// message, used for logging and analytics grouping.
type ConfirmationType string

const (
	TypeConfirmation  ConfirmationType = "confirmation"
	TypeRating        ConfirmationType = "rating"
	TypeClarification ConfirmationType = "clarification"
	TypeVerification  ConfirmationType = "verification"
	TypeYesNo         ConfirmationType = "yes_no"
	TypeCustom        ConfirmationType = "custom"
)

// TimeoutMarker is the substring every timeout error carries. The
// search layer derives its timedOut predicate from it, so the engine
// and the reader must agree on the exact text.
const TimeoutMarker = "timed out"

// ConfirmationRecord captures one completed elicitation transaction.
// Records are append-only and never mutated after being written.
type ConfirmationRecord struct {
	Timestamp        string             `json:"timestamp"`
	ConfirmationType ConfirmationType   `json:"confirmationType"`
	Request          ElicitationRequest `json:"request"`
	Response         Outcome            `json:"response"`
	ResponseTimeMs   int64              `json:"responseTimeMs"`
	Success          bool               `json:"success"`
	Error            string             `json:"error,omitempty"`
}

// TimedOut reports whether the record failed because of a timeout.
// Records without an error never time out.
func (r ConfirmationRecord) TimedOut() bool {
	return r.Error != "" && strings.Contains(r.Error, TimeoutMarker)
}

// Time parses the record timestamp. Records written by this process
// carry RFC 3339 timestamps; the offset in the document is preserved.
func (r ConfirmationRecord) Time() (time.Time, error) {
	return time.Parse(time.RFC3339Nano, r.Timestamp)
}
