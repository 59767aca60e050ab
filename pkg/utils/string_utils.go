package utils

import "strings"

// NewNullString is a helper for string pointers, returning nil if string is empty.
func NewNullString(s string) *string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return &s
}

// DerefString returns the pointed-to string or "" for nil.
func DerefString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
