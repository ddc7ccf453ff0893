package domain

import (
	"fmt"
	"time"
)

// EncodeDate packs a calendar date into the backend's 8-digit YYYYMMDD
// integer, e.g. 5 March 2025 -> 20250305.
func EncodeDate(t time.Time) int {
	return t.Year()*10000 + int(t.Month())*100 + t.Day()
}

// DecodeDate reverses EncodeDate. The zero parts of the returned time are
// midnight local, matching how scheduled dates are compared.
func DecodeDate(v int) (time.Time, error) {
	if v < 10000101 || v > 99991231 {
		return time.Time{}, fmt.Errorf("date %d is not an 8-digit YYYYMMDD value", v)
	}
	year := v / 10000
	month := (v / 100) % 100
	day := v % 100
	if month < 1 || month > 12 {
		return time.Time{}, fmt.Errorf("date %d has invalid month %d", v, month)
	}
	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.Local)
	// time.Date normalizes overflow (e.g. day 32 rolls into the next month),
	// so round-trip to catch invalid days.
	if EncodeDate(t) != v {
		return time.Time{}, fmt.Errorf("date %d has invalid day %d", v, day)
	}
	return t, nil
}
