package common

import (
	"fmt"
	"math"
	"strings"
)

// StringArg returns the trimmed string argument key, or "" when absent.
func StringArg(args map[string]any, key string) string {
	s, _ := args[key].(string)
	return strings.TrimSpace(s)
}

// IntArg returns the integer argument key, or def when absent. JSON numbers
// arrive as float64; fractional values are rejected.
func IntArg(args map[string]any, key string, def int) (int, error) {
	switch v := args[key].(type) {
	case nil:
		return def, nil
	case float64:
		if v != math.Trunc(v) {
			return 0, fmt.Errorf("%s must be an integer", key)
		}
		return int(v), nil
	case int:
		return v, nil
	case int64:
		return int(v), nil
	default:
		return 0, fmt.Errorf("%s must be a number", key)
	}
}
