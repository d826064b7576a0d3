package utils

import (
	"time"
)

// DateLayout adalah format kunci tanggal ledger (YYYY-MM-DD).
// String dengan format ini terurut secara leksikografis, jadi aman
// dipakai untuk range query tanpa konversi.
const DateLayout = "2006-01-02"

// Today returns the server's current date as YYYY-MM-DD.
func Today() string {
	return time.Now().Format(DateLayout)
}

// ParseDate memvalidasi string tanggal YYYY-MM-DD.
func ParseDate(s string) (time.Time, error) {
	return time.Parse(DateLayout, s)
}

// AddDays menggeser tanggal n hari. Tanggal harus sudah tervalidasi.
func AddDays(date string, n int) string {
	t, _ := time.Parse(DateLayout, date)
	return t.AddDate(0, 0, n).Format(DateLayout)
}

// MonthStart returns the first day of the month containing date.
func MonthStart(date string) string {
	t, _ := time.Parse(DateLayout, date)
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC).Format(DateLayout)
}

// NextMonthStart returns the first day of the following month.
func NextMonthStart(date string) string {
	t, _ := time.Parse(DateLayout, date)
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, 1, 0).Format(DateLayout)
}

// IsSunday reports whether the date falls on a Sunday.
func IsSunday(date string) bool {
	t, err := time.Parse(DateLayout, date)
	if err != nil {
		return false
	}
	return t.Weekday() == time.Sunday
}

// MonthName returns e.g. "January 2026" for the month containing date.
func MonthName(date string) string {
	t, _ := time.Parse(DateLayout, date)
	return t.Format("January 2006")
}
