package helper_util

import (
	"time"
)

// ParseTime parses an RFC3339 timestamp from a query parameter.
func ParseTime(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, s)
	return t, err
}
