// Package core holds the finance domain model and the calendar and money
// primitives every other package builds on.
//
// Dates are ISO "YYYY-MM-DD" strings and months are "YYYY-MM" strings.
// Both are zero-padded, so lexicographic comparison equals chronological
// comparison; the whole engine relies on that.
package core

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

type (
	// Date is a calendar date in "YYYY-MM-DD" form.
	Date string

	// Month is a calendar month in "YYYY-MM" form.
	Month string
)

// maxMonthRange bounds MonthRange against runaway inputs.
const maxMonthRange = 120

func NewDate(year, month, day int) Date {
	return Date(fmt.Sprintf("%04d-%02d-%02d", year, month, day))
}

func NewMonth(year, month int) Month {
	return Month(fmt.Sprintf("%04d-%02d", year, month))
}

// MonthOf returns the month of a time value, in the local calendar.
func MonthOf(t time.Time) Month {
	return NewMonth(t.Year(), int(t.Month()))
}

func (d Date) Validate() error {
	if _, err := time.Parse("2006-01-02", string(d)); err != nil {
		return ErrInvalidDate
	}
	return nil
}

// Month returns the "YYYY-MM" prefix of the date.
func (d Date) Month() Month {
	if len(d) < 7 {
		return ""
	}
	return Month(d[:7])
}

// Day returns the day-of-month component, or 0 for malformed dates.
func (d Date) Day() int {
	if len(d) < 10 {
		return 0
	}
	n, err := strconv.Atoi(string(d[8:10]))
	if err != nil {
		return 0
	}
	return n
}

func (m Month) Validate() error {
	if _, err := time.Parse("2006-01", string(m)); err != nil {
		return ErrInvalidMonth
	}
	return nil
}

func (m Month) split() (year, month int) {
	parts := strings.SplitN(string(m), "-", 2)
	if len(parts) != 2 {
		return 0, 0
	}
	year, _ = strconv.Atoi(parts[0])
	month, _ = strconv.Atoi(parts[1])
	return year, month
}

// Add returns the month n whole months later (earlier for negative n).
// The internal zero-based index is normalized by hand because Go's modulo
// keeps the sign of the dividend and would produce a negative month index.
func (m Month) Add(n int) Month {
	year, month := m.split()
	idx := month - 1 + n
	year += idx / 12
	idx = idx % 12
	if idx < 0 {
		idx += 12
		year--
	}
	return NewMonth(year, idx+1)
}

// Days returns the number of days in the month.
func (m Month) Days() int {
	year, month := m.split()
	return time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// DateOn places a day-of-month inside the month, clamping to the last
// valid day so a series dated the 31st still lands in February.
func (m Month) DateOn(day int) Date {
	if last := m.Days(); day > last {
		day = last
	}
	if day < 1 {
		day = 1
	}
	year, month := m.split()
	return NewDate(year, month, day)
}

// MonthRange returns the inclusive ascending sequence from start to end.
// A start after end yields just the start; that degenerate result is a
// documented quirk the callers treat as a valid one-month range. The
// sequence is capped at maxMonthRange entries.
func MonthRange(start, end Month) []Month {
	months := []Month{start}
	cur := start
	for cur < end && len(months) < maxMonthRange {
		cur = cur.Add(1)
		months = append(months, cur)
	}
	return months
}

// MonthRangeDesc is MonthRange in reverse chronological order, for lists
// that show the most recent month first.
func MonthRangeDesc(start, end Month) []Month {
	asc := MonthRange(start, end)
	for i, j := 0, len(asc)-1; i < j; i, j = i+1, j-1 {
		asc[i], asc[j] = asc[j], asc[i]
	}
	return asc
}
