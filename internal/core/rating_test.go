package core

import (
	"testing"
	"time"
)

func TestValueLabels(t *testing.T) {
	cases := []struct {
		value Value
		label string
	}{
		{NotPresent, "Not present"},
		{Present, "Present"},
		{Mild, "Mild"},
		{Moderate, "Moderate"},
		{Severe, "Severe"},
	}
	for _, tc := range cases {
		if got := tc.value.Label(); got != tc.label {
			t.Errorf("Label(%d) = %q, want %q", tc.value, got, tc.label)
		}
		v, ok := ValueFromLabel(tc.label)
		if !ok || v != tc.value {
			t.Errorf("ValueFromLabel(%q) = %v, %v", tc.label, v, ok)
		}
	}
}

func TestValueFromLabelUnknown(t *testing.T) {
	if _, ok := ValueFromLabel("Terrible"); ok {
		t.Fatal("expected unknown label to fail")
	}
	if _, ok := ValueFromLabel(""); ok {
		t.Fatal("expected empty label to fail")
	}
}

func TestValuesOrdinal(t *testing.T) {
	for i, v := range Values() {
		if int(v) != i {
			t.Fatalf("value at position %d has ordinal %d", i, int(v))
		}
	}
}

func TestParseDateRoundTrip(t *testing.T) {
	d, err := ParseDate("2024-03-15")
	if err != nil {
		t.Fatalf("ParseDate: %v", err)
	}
	if d.String() != "2024-03-15" {
		t.Fatalf("String() = %q", d.String())
	}
	if d.Year() != 2024 || d.Month() != time.March || d.Day() != 15 {
		t.Fatalf("unexpected components: %v", d)
	}
}

func TestParseDateInvalid(t *testing.T) {
	for _, s := range []string{"", "15/03/2024", "2024-13-01", "yesterday"} {
		if _, err := ParseDate(s); err == nil {
			t.Errorf("ParseDate(%q) expected error", s)
		}
	}
}

func TestDateOfNormalizesClock(t *testing.T) {
	evening := time.Date(2024, 3, 15, 23, 45, 12, 999, time.Local)
	d := DateOf(evening)
	if !d.Equal(NewDate(2024, 3, 15)) {
		t.Fatalf("DateOf(%v) = %v", evening, d)
	}
	if d.Hour() != 0 || d.Minute() != 0 {
		t.Fatalf("clock not normalized: %v", d)
	}
}

func TestMonthStart(t *testing.T) {
	if got := NewDate(2024, 3, 15).MonthStart(); !got.Equal(NewDate(2024, 3, 1)) {
		t.Fatalf("MonthStart = %v", got)
	}
	if got := NewDate(2024, 1, 1).MonthStart(); !got.Equal(NewDate(2024, 1, 1)) {
		t.Fatalf("MonthStart of first = %v", got)
	}
}

func TestRatingRated(t *testing.T) {
	unrated := Rating{Date: NewDate(2024, 1, 1)}
	if unrated.Rated() || unrated.Label() != "" {
		t.Fatal("unrated rating should have no value and empty label")
	}
	rated := Rating{Date: NewDate(2024, 1, 1), Value: Mild.Ptr()}
	if !rated.Rated() || rated.Label() != "Mild" {
		t.Fatalf("rated = %v label = %q", rated.Rated(), rated.Label())
	}
}
