package domain

import (
	"time"
)

// Helpers for decoding the loosely typed rows the table store hands back.
// Seed data and callers may stamp numbers as int, int64 or float64 depending
// on where the value came from, so every accessor coerces.

func rowString(row map[string]any, key string) string {
	if v, ok := row[key].(string); ok {
		return v
	}
	return ""
}

func rowInt(row map[string]any, key string) int {
	switch v := row[key].(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	}
	return 0
}

func rowInt64(row map[string]any, key string) int64 {
	switch v := row[key].(type) {
	case int64:
		return v
	case int:
		return int64(v)
	case float64:
		return int64(v)
	}
	return 0
}

func rowBool(row map[string]any, key string) bool {
	if v, ok := row[key].(bool); ok {
		return v
	}
	return false
}

func rowTime(row map[string]any, key string) time.Time {
	switch v := row[key].(type) {
	case time.Time:
		return v
	case string:
		if t, err := time.Parse(time.RFC3339, v); err == nil {
			return t
		}
	}
	return time.Time{}
}

func rowTimePtr(row map[string]any, key string) *time.Time {
	t := rowTime(row, key)
	if t.IsZero() {
		return nil
	}
	return &t
}

func rowStringSlice(row map[string]any, key string) []string {
	switch v := row[key].(type) {
	case []string:
		return append([]string(nil), v...)
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}

func rowMap(row map[string]any, key string) map[string]any {
	if v, ok := row[key].(map[string]any); ok {
		out := make(map[string]any, len(v))
		for k, val := range v {
			out[k] = val
		}
		return out
	}
	return nil
}
