package server

import "strings"

// StringParam reads a string argument, trimming surrounding space.
func StringParam(params map[string]interface{}, key, def string) string {
	if v, ok := params[key].(string); ok {
		return strings.TrimSpace(v)
	}
	return def
}

// BoolParam reads a boolean argument.
func BoolParam(params map[string]interface{}, key string, def bool) bool {
	if v, ok := params[key].(bool); ok {
		return v
	}
	return def
}

// IntParam reads a numeric argument. JSON numbers arrive as float64.
func IntParam(params map[string]interface{}, key string, def int) int {
	switch v := params[key].(type) {
	case float64:
		return int(v)
	case int:
		return v
	}
	return def
}

// FloatParam reads a numeric argument as float64.
func FloatParam(params map[string]interface{}, key string, def float64) float64 {
	switch v := params[key].(type) {
	case float64:
		return v
	case int:
		return float64(v)
	}
	return def
}

// optionalBool reports a boolean argument only when present.
func optionalBool(params map[string]interface{}, key string) (bool, bool) {
	v, ok := params[key].(bool)
	return v, ok
}
