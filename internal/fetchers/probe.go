package fetchers

import (
	"encoding/json"
	"strconv"
)

// The GFZ and ISGI feeds are loosely typed: the index field shows up as
// "Kp", "kp" or "kp_index" depending on endpoint version, and values may be
// JSON numbers or quoted strings. Candidate keys are probed in priority
// order and the first numerically parseable one wins.

// pickNumber returns the first candidate key whose value parses as a number.
func pickNumber(entry map[string]interface{}, keys ...string) (float64, bool) {
	for _, key := range keys {
		v, ok := entry[key]
		if !ok {
			continue
		}
		if n, ok := asNumber(v); ok {
			return n, true
		}
	}
	return 0, false
}

// pickString returns the first candidate key holding a non-empty string.
func pickString(entry map[string]interface{}, keys ...string) (string, bool) {
	for _, key := range keys {
		if v, ok := entry[key]; ok {
			if s, ok := v.(string); ok && s != "" {
				return s, true
			}
		}
	}
	return "", false
}

func asNumber(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	case string:
		f, err := strconv.ParseFloat(n, 64)
		return f, err == nil
	default:
		return 0, false
	}
}
