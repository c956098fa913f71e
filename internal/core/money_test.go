package core

import "testing"

func TestParseDecimalToCents(t *testing.T) {
	cases := []struct {
		in   string
		want int64
		ok   bool
	}{
		{"12.34", 1234, true},
		{"12,34", 1234, true},
		{"12.345", 1234, true},
		{"12.346", 1235, true},
		{"0.01", 1, true},
		{"100", 10000, true},
		{"", 0, false},
		{"-5", 0, false},
		{"0", 0, false},
		{"abc", 0, false},
		{"1.2.3", 0, false},
	}
	for _, tc := range cases {
		got, err := ParseDecimalToCents(tc.in)
		if tc.ok && (err != nil || got != tc.want) {
			t.Errorf("ParseDecimalToCents(%q) = %d, %v; want %d", tc.in, got, err, tc.want)
		}
		if !tc.ok && err == nil {
			t.Errorf("ParseDecimalToCents(%q) expected error", tc.in)
		}
	}
}

func TestDivideRound(t *testing.T) {
	cases := []struct {
		cents int64
		n     int
		want  int64
	}{
		{10000, 3, 3333}, // 100.00 in 3x -> 33.33, drift -0.01 accepted
		{10000, 1, 10000},
		{10000, 0, 10000},
		{100, 3, 33},
		{200, 3, 67}, // half-up
		{999, 2, 500},
	}
	for _, tc := range cases {
		got := Money{Cents: tc.cents}.DivideRound(tc.n)
		if got.Cents != tc.want {
			t.Errorf("DivideRound(%d, %d) = %d, want %d", tc.cents, tc.n, got.Cents, tc.want)
		}
	}
}

func TestMoneyString(t *testing.T) {
	if got := (Money{Cents: 3333}).String(); got != "33.33" {
		t.Errorf("String() = %s, want 33.33", got)
	}
	if got := (Money{Cents: -101}).String(); got != "-1.01" {
		t.Errorf("String() = %s, want -1.01", got)
	}
}
