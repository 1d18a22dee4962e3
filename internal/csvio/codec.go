// Package csvio converts the rating history to and from its CSV
// interchange form.
package csvio

import (
	"fmt"
	"sort"
	"strings"

	"daycheck/internal/core"
)

const (
	// Filename is the conventional name of an exported history.
	Filename = "daycheck.csv"

	// ContentType is the MIME type of the exported history.
	ContentType = "text/csv"

	header     = "date,rating,notes"
	fieldCount = 3
)

// Export renders the ratings as CSV, one row per day in ascending date
// order after the header line. The rating field is the severity label
// (empty when unrated) and the notes field is written verbatim.
//
// Fields are not quoted, so notes containing a comma will not survive a
// round trip. Import accepts only this plain form.
func Export(ratings []core.Rating) string {
	ordered := make([]core.Rating, len(ratings))
	copy(ordered, ratings)
	sort.Slice(ordered, func(i, j int) bool {
		return ordered[i].Date.Before(ordered[j].Date)
	})

	var b strings.Builder
	b.WriteString(header)
	b.WriteString("\n")
	for _, r := range ordered {
		b.WriteString(r.Date.String())
		b.WriteString(",")
		b.WriteString(r.Label())
		b.WriteString(",")
		b.WriteString(r.Notes)
		b.WriteString("\n")
	}
	return b.String()
}

// Import parses CSV text produced by Export. The header line is
// skipped; every remaining non-empty line must split into exactly three
// fields with a valid ISO date. An empty or unrecognized rating label
// yields an unrated entry. Any malformed line fails the whole import.
func Import(text string) ([]core.Rating, error) {
	lines := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
	if len(lines) == 0 || strings.TrimSpace(lines[0]) != header {
		return nil, fmt.Errorf("missing header line %q", header)
	}

	var ratings []core.Rating
	for i, line := range lines[1:] {
		if strings.TrimSpace(line) == "" {
			continue
		}

		fields := strings.Split(line, ",")
		if len(fields) != fieldCount {
			return nil, fmt.Errorf("line %d: expected %d fields, got %d", i+2, fieldCount, len(fields))
		}

		date, err := core.ParseDate(fields[0])
		if err != nil {
			return nil, fmt.Errorf("line %d: invalid date %q: %w", i+2, fields[0], err)
		}

		r := core.Rating{Date: date, Notes: fields[2]}
		if v, ok := core.ValueFromLabel(fields[1]); ok {
			r.Value = v.Ptr()
		}
		ratings = append(ratings, r)
	}

	return ratings, nil
}
