package csvio

import (
	"strings"
	"testing"

	"daycheck/internal/core"
)

func TestExportFormat(t *testing.T) {
	ratings := []core.Rating{
		{Date: core.NewDate(2024, 3, 2), Value: core.Severe.Ptr(), Notes: "bad night"},
		{Date: core.NewDate(2024, 3, 1), Value: core.Mild.Ptr()},
		{Date: core.NewDate(2024, 3, 3)},
	}

	got := Export(ratings)
	want := "date,rating,notes\n" +
		"2024-03-01,Mild,\n" +
		"2024-03-02,Severe,bad night\n" +
		"2024-03-03,,\n"
	if got != want {
		t.Fatalf("Export mismatch:\n got %q\nwant %q", got, want)
	}
}

func TestExportEmpty(t *testing.T) {
	if got := Export(nil); got != "date,rating,notes\n" {
		t.Fatalf("Export(nil) = %q", got)
	}
}

func TestRoundTrip(t *testing.T) {
	ratings := []core.Rating{
		{Date: core.NewDate(2023, 12, 31), Value: core.NotPresent.Ptr(), Notes: "fine"},
		{Date: core.NewDate(2024, 1, 1), Value: core.Present.Ptr()},
		{Date: core.NewDate(2024, 2, 10)},
	}

	parsed, err := Import(Export(ratings))
	if err != nil {
		t.Fatalf("Import: %v", err)
	}
	if len(parsed) != len(ratings) {
		t.Fatalf("round trip length = %d, want %d", len(parsed), len(ratings))
	}
	for i, r := range parsed {
		want := ratings[i]
		if !r.Date.Equal(want.Date) || r.Notes != want.Notes {
			t.Errorf("entry %d = %+v, want %+v", i, r, want)
		}
		if (r.Value == nil) != (want.Value == nil) {
			t.Errorf("entry %d value presence mismatch", i)
		}
		if r.Value != nil && *r.Value != *want.Value {
			t.Errorf("entry %d value = %v, want %v", i, *r.Value, *want.Value)
		}
	}
}

func TestImportHeaderOnly(t *testing.T) {
	ratings, err := Import("date,rating,notes\n")
	if err != nil {
		t.Fatalf("Import: %v", err)
	}
	if len(ratings) != 0 {
		t.Fatalf("expected empty collection, got %d entries", len(ratings))
	}
}

func TestImportMissingHeader(t *testing.T) {
	if _, err := Import("2024-03-01,Mild,\n"); err == nil {
		t.Fatal("expected error for missing header")
	}
}

func TestImportUnknownLabel(t *testing.T) {
	ratings, err := Import("date,rating,notes\n2024-03-01,Dreadful,\n")
	if err != nil {
		t.Fatalf("Import: %v", err)
	}
	if len(ratings) != 1 || ratings[0].Value != nil {
		t.Fatalf("unknown label should map to unrated entry, got %+v", ratings)
	}
}

func TestImportMalformed(t *testing.T) {
	cases := []struct {
		name string
		text string
	}{
		{"wrong field count", "date,rating,notes\n2024-03-01,Mild\n"},
		{"embedded comma", "date,rating,notes\n2024-03-01,Mild,one,two\n"},
		{"bad date", "date,rating,notes\nnot-a-date,Mild,\n"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := Import(tc.text); err == nil {
				t.Fatal("expected error")
			} else if !strings.Contains(err.Error(), "line 2") {
				t.Fatalf("error should name the line: %v", err)
			}
		})
	}
}

func TestImportWindowsLineEndings(t *testing.T) {
	ratings, err := Import("date,rating,notes\r\n2024-03-01,Mild,ok\r\n")
	if err != nil {
		t.Fatalf("Import: %v", err)
	}
	if len(ratings) != 1 || ratings[0].Notes != "ok" {
		t.Fatalf("unexpected parse: %+v", ratings)
	}
}
