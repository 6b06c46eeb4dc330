package common

import (
	"regexp"
	"time"
)

const isoDateLayout = "2006-01-02"

var isoDatePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// IsISODate reports whether s is a well-formed YYYY-MM-DD calendar date.
func IsISODate(s string) bool {
	if !isoDatePattern.MatchString(s) {
		return false
	}
	_, err := time.Parse(isoDateLayout, s)
	return err == nil
}

// Today returns the current UTC date as YYYY-MM-DD. All expiry
// comparisons in the store rely on the lexicographic order of this
// fixed-width format.
func Today() string {
	return time.Now().UTC().Format(isoDateLayout)
}

// AddOneYear returns the date one calendar year after the given ISO
// date. Feb 29 normalizes to Mar 1 in non-leap years.
func AddOneYear(iso string) string {
	d, err := time.Parse(isoDateLayout, iso)
	if err != nil {
		return iso
	}
	return d.AddDate(1, 0, 0).Format(isoDateLayout)
}

// ClampPage applies the uniform pagination contract: limit defaults to
// 50 and is capped at 200, offset is never negative.
func ClampPage(limit, offset int) (int, int) {
	if limit <= 0 {
		limit = 50
	}
	if limit > 200 {
		limit = 200
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}
