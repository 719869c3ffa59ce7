// Package sanitize strips script injection patterns from request input.
//
// It is a denylist, not an HTML parser: payloads here are JSON API data,
// never rendered HTML fragments, so removing the three classic vectors
// (script blocks, javascript: URIs, inline event-handler attributes) is the
// whole contract. Non-string values are never touched, and sanitizing an
// already-clean value is a no-op.
package sanitize

import "regexp"

var (
	scriptPattern  = regexp.MustCompile(`(?is)<script\b.*?</script>`)
	jsURIPattern   = regexp.MustCompile(`(?i)javascript:`)
	handlerPattern = regexp.MustCompile(`(?i)on\w+\s*=`)
)

// String removes script blocks, javascript: URIs and inline event-handler
// attributes from s.
func String(s string) string {
	s = scriptPattern.ReplaceAllString(s, "")
	s = jsURIPattern.ReplaceAllString(s, "")
	s = handlerPattern.ReplaceAllString(s, "")
	return s
}

// Value sanitizes every string reachable from v, recursing through the
// containers encoding/json produces (maps and slices). Anything else is
// returned unchanged.
func Value(v interface{}) interface{} {
	switch val := v.(type) {
	case string:
		return String(val)
	case map[string]interface{}:
		for k, item := range val {
			val[k] = Value(item)
		}
		return val
	case []interface{}:
		for i, item := range val {
			val[i] = Value(item)
		}
		return val
	default:
		return v
	}
}

// Map sanitizes a decoded JSON object in place.
func Map(m map[string]interface{}) {
	for k, v := range m {
		m[k] = Value(v)
	}
}
