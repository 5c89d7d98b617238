package store

import (
	"fmt"
	"strconv"
	"time"
)

// TimeLayout is the fixed-width UTC layout used when a backend stores times as text.
// Fixed width keeps lexical and chronological order identical.
const TimeLayout = "2006-01-02T15:04:05.000000000Z07:00"

var timeLayouts = []string{
	TimeLayout,
	time.RFC3339Nano,
	"2006-01-02 15:04:05.999999999-07:00",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// String returns the column as a string, or "" when missing or NULL.
func (r Record) String(key string) string {
	switch v := r[key].(type) {
	case nil:
		return ""
	case string:
		return v
	case []byte:
		return string(v)
	case fmt.Stringer:
		return v.String()
	default:
		return fmt.Sprint(v)
	}
}

// StringPtr is like String but keeps NULL distinguishable from "".
func (r Record) StringPtr(key string) *string {
	if r[key] == nil {
		return nil
	}
	s := r.String(key)
	return &s
}

// Int64 returns the column as an integer, or 0 when missing or unparsable.
func (r Record) Int64(key string) int64 {
	return toInt64(r[key])
}

// Time returns the column as a UTC time, or the zero time when missing or unparsable.
func (r Record) Time(key string) time.Time {
	switch v := r[key].(type) {
	case time.Time:
		return v.UTC()
	case string:
		return parseTime(v)
	case []byte:
		return parseTime(string(v))
	case int64:
		return time.Unix(v, 0).UTC()
	default:
		return time.Time{}
	}
}

func parseTime(s string) time.Time {
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC()
		}
	}
	return time.Time{}
}

func toInt64(v any) int64 {
	switch n := v.(type) {
	case int64:
		return n
	case int32:
		return int64(n)
	case int:
		return int64(n)
	case float64:
		return int64(n)
	case string:
		i, _ := strconv.ParseInt(n, 10, 64)
		return i
	case []byte:
		i, _ := strconv.ParseInt(string(n), 10, 64)
		return i
	default:
		return 0
	}
}
