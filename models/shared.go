package models

import "strings"

func upper(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}

// Float returns a pointer to f.
func Float(f float64) *float64 {
	return &f
}

// Bool returns a pointer to b.
func Bool(b bool) *bool {
	return &b
}

// String returns a pointer to s.
func String(s string) *string {
	return &s
}
