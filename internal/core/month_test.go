package core

import (
	"testing"
	"time"
)

func TestMonthAdd(t *testing.T) {
	cases := []struct {
		m    Month
		n    int
		want Month
	}{
		{"2024-01", 0, "2024-01"},
		{"2024-01", 1, "2024-02"},
		{"2024-11", 2, "2025-01"},
		{"2024-12", 1, "2025-01"},
		{"2024-01", 12, "2025-01"},
		{"2024-01", 25, "2026-02"},
		{"2024-03", -1, "2024-02"},
		{"2024-01", -1, "2023-12"},
		{"2024-02", -14, "2022-12"},
	}
	for _, tc := range cases {
		if got := tc.m.Add(tc.n); got != tc.want {
			t.Errorf("%s.Add(%d) = %s, want %s", tc.m, tc.n, got, tc.want)
		}
	}
}

func TestMonthAddRoundTrip(t *testing.T) {
	for _, m := range []Month{"2023-01", "2024-06", "2025-12"} {
		for k := 0; k <= 24; k++ {
			if got := m.Add(k).Add(-k); got != m {
				t.Fatalf("%s.Add(%d).Add(%d) = %s, want %s", m, k, -k, got, m)
			}
		}
	}
}

func TestMonthRange(t *testing.T) {
	tests := []struct {
		name       string
		start, end Month
		want       []Month
	}{
		{
			name:  "single month",
			start: "2024-05", end: "2024-05",
			want: []Month{"2024-05"},
		},
		{
			name:  "across year boundary",
			start: "2024-11", end: "2025-02",
			want: []Month{"2024-11", "2024-12", "2025-01", "2025-02"},
		},
		{
			name:  "start after end returns start only",
			start: "2024-08", end: "2024-03",
			want: []Month{"2024-08"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MonthRange(tt.start, tt.end)
			if len(got) != len(tt.want) {
				t.Fatalf("MonthRange(%s, %s) = %v, want %v", tt.start, tt.end, got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Fatalf("MonthRange(%s, %s)[%d] = %s, want %s", tt.start, tt.end, i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestMonthRangeCap(t *testing.T) {
	got := MonthRange("2000-01", "2050-01")
	if len(got) != maxMonthRange {
		t.Fatalf("expected range capped at %d, got %d", maxMonthRange, len(got))
	}
}

func TestMonthRangeDesc(t *testing.T) {
	got := MonthRangeDesc("2024-01", "2024-03")
	want := []Month{"2024-03", "2024-02", "2024-01"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("MonthRangeDesc = %v, want %v", got, want)
		}
	}
}

func TestDateParts(t *testing.T) {
	d := Date("2024-03-09")
	if d.Month() != "2024-03" {
		t.Errorf("Month() = %s, want 2024-03", d.Month())
	}
	if d.Day() != 9 {
		t.Errorf("Day() = %d, want 9", d.Day())
	}
	if err := d.Validate(); err != nil {
		t.Errorf("Validate() = %v, want nil", err)
	}
	if err := Date("2024-13-01").Validate(); err == nil {
		t.Error("expected error for month 13")
	}
}

func TestMonthDateOnClamps(t *testing.T) {
	cases := []struct {
		m    Month
		day  int
		want Date
	}{
		{"2024-02", 31, "2024-02-29"}, // leap year
		{"2023-02", 31, "2023-02-28"},
		{"2024-04", 31, "2024-04-30"},
		{"2024-01", 15, "2024-01-15"},
	}
	for _, tc := range cases {
		if got := tc.m.DateOn(tc.day); got != tc.want {
			t.Errorf("%s.DateOn(%d) = %s, want %s", tc.m, tc.day, got, tc.want)
		}
	}
}

func TestMonthOf(t *testing.T) {
	got := MonthOf(time.Date(2024, 7, 31, 23, 0, 0, 0, time.UTC))
	if got != "2024-07" {
		t.Fatalf("MonthOf = %s, want 2024-07", got)
	}
}
