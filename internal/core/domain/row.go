package domain

import "time"

// Row is the untyped shape the gateway hands back for a single record.
// The store is schemaless from this layer's point of view; typed views are
// built from rows with the accessors below, which tolerate missing fields
// and the loose numeric typing of decoded documents.
type Row map[string]any

func (r Row) String(key string) string {
	s, _ := r[key].(string)
	return s
}

func (r Row) Bool(key string) bool {
	b, _ := r[key].(bool)
	return b
}

func (r Row) Int(key string) int {
	switch v := r[key].(type) {
	case int:
		return v
	case int32:
		return int(v)
	case int64:
		return int(v)
	case float64:
		return int(v)
	}
	return 0
}

func (r Row) Float(key string) float64 {
	switch v := r[key].(type) {
	case float64:
		return v
	case float32:
		return float64(v)
	case int:
		return float64(v)
	case int32:
		return float64(v)
	case int64:
		return float64(v)
	}
	return 0
}

// Time reads a timestamp stored either natively or as RFC 3339 text.
func (r Row) Time(key string) time.Time {
	switch v := r[key].(type) {
	case time.Time:
		return v
	case string:
		if t, err := time.Parse(time.RFC3339, v); err == nil {
			return t
		}
		if t, err := time.Parse("2006-01-02", v); err == nil {
			return t
		}
	}
	return time.Time{}
}

func (r Row) Slice(key string) []any {
	s, _ := r[key].([]any)
	return s
}
