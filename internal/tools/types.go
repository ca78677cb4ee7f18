// Package tools defines the elicitation tool catalog: per-tool argument
// coercion, prompt and schema construction, and the MCP handlers that
// drive the protocol engine and the confirmation log.
package tools

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/parley-mcp/parley/internal/models"
)

// Placeholder stands in for a string argument that is missing, blank,
// or not a string. Builders degrade to it instead of failing, so a tool
// call with malformed arguments still produces a well-formed
// elicitation request.
const Placeholder = "(not specified)"

// argString coerces a core string argument, substituting Placeholder
// when the value is missing, mistyped, or blank.
func argString(args map[string]any, key string) string {
	if s := optString(args, key); s != "" {
		return s
	}
	return Placeholder
}

// optString coerces an optional string argument; missing or mistyped
// values collapse to the empty string.
func optString(args map[string]any, key string) string {
	s, _ := args[key].(string)
	return strings.TrimSpace(s)
}

// argStringSlice coerces an array argument to a list of strings.
// Missing or mistyped arguments become an empty list. Non-string
// elements are rendered with fmt.Sprint rather than dropped.
func argStringSlice(args map[string]any, key string) []string {
	out := []string{}
	switch raw := args[key].(type) {
	case []string:
		for _, s := range raw {
			if s = strings.TrimSpace(s); s != "" {
				out = append(out, s)
			}
		}
	case []any:
		for _, v := range raw {
			switch s := v.(type) {
			case string:
				if s = strings.TrimSpace(s); s != "" {
					out = append(out, s)
				}
			case nil:
			default:
				out = append(out, fmt.Sprint(v))
			}
		}
	}
	return out
}

// argInt coerces a numeric argument to int, tolerating the float64
// values JSON decoding produces. Fractional values take the fallback.
func argInt(args map[string]any, key string, fallback int) int {
	switch v := args[key].(type) {
	case float64:
		if v != math.Trunc(v) {
			return fallback
		}
		return int(v)
	case int:
		return v
	case int64:
		return int(v)
	}
	return fallback
}

// lookupBool reports a boolean argument and whether one was actually
// supplied, for tri-state filters where absence means "no filter".
func lookupBool(args map[string]any, key string) (bool, bool) {
	v, ok := args[key].(bool)
	return v, ok
}

// lookupInt64 reports a numeric argument and whether one was supplied.
func lookupInt64(args map[string]any, key string) (int64, bool) {
	switch v := args[key].(type) {
	case float64:
		return int64(v), true
	case int:
		return int64(v), true
	case int64:
		return v, true
	}
	return 0, false
}

// coerceTo converts a raw argument to the named schema type. Numeric
// and boolean strings parse, so a value declared as a string property
// on the tool still lands as the right primitive. The second return is
// false when the value cannot represent the type.
func coerceTo(typ string, v any) (any, bool) {
	switch typ {
	case models.FieldString:
		if s, ok := v.(string); ok && strings.TrimSpace(s) != "" {
			return s, true
		}
	case models.FieldBoolean:
		switch b := v.(type) {
		case bool:
			return b, true
		case string:
			if parsed, err := strconv.ParseBool(strings.TrimSpace(b)); err == nil {
				return parsed, true
			}
		}
	case models.FieldNumber:
		switch n := v.(type) {
		case float64:
			return n, true
		case int:
			return float64(n), true
		case string:
			if f, err := strconv.ParseFloat(strings.TrimSpace(n), 64); err == nil {
				return f, true
			}
		}
	case models.FieldInteger:
		switch n := v.(type) {
		case float64:
			if n == math.Trunc(n) {
				return int(n), true
			}
		case int:
			return n, true
		case string:
			if i, err := strconv.Atoi(strings.TrimSpace(n)); err == nil {
				return i, true
			}
		}
	}
	return nil, false
}
