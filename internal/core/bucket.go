package core

import (
	"sort"
	"time"
)

// MonthsPerYear is the window length produced by CreateYear.
const MonthsPerYear = 12

// BucketByMonth groups ratings by the first day of their month. Each
// bucket is sorted ascending by date.
func BucketByMonth(ratings []Rating) map[Date][]Rating {
	buckets := make(map[Date][]Rating)
	for _, r := range ratings {
		key := r.Date.MonthStart()
		buckets[key] = append(buckets[key], r)
	}
	for key := range buckets {
		sortByDate(buckets[key])
	}
	return buckets
}

// GroupedByMonth flattens the month buckets into the history ordering:
// most recent month first, dates ascending within each month.
func GroupedByMonth(ratings []Rating) [][]Rating {
	buckets := BucketByMonth(ratings)

	months := make([]Date, 0, len(buckets))
	for key := range buckets {
		months = append(months, key)
	}
	sort.Slice(months, func(i, j int) bool {
		return months[j].Before(months[i])
	})

	groups := make([][]Rating, 0, len(months))
	for _, m := range months {
		groups = append(groups, buckets[m])
	}
	return groups
}

// CreateYear returns 12 consecutive month-start dates beginning at the
// month containing start.
//
// FIXME: callers pass the earliest record's date, so the window walks
// forward from the oldest month instead of ending at the newest one.
// CreateYearEnding is the corrected variant.
func CreateYear(start Date) []Date {
	first := start.MonthStart()
	months := make([]Date, 0, MonthsPerYear)
	for i := 0; i < MonthsPerYear; i++ {
		months = append(months, first.AddMonths(i))
	}
	return months
}

// CreateYearEnding returns the 12 consecutive month-start dates whose
// last entry is the month containing end.
func CreateYearEnding(end Date) []Date {
	return CreateYear(end.MonthStart().AddMonths(-(MonthsPerYear - 1)))
}

// WeekdayBuckets groups ratings into the seven ISO weekday buckets,
// index 0 = Monday through 6 = Sunday, regardless of week.
func WeekdayBuckets(ratings []Rating) [7][]Rating {
	var buckets [7][]Rating
	for _, r := range ratings {
		i := ISOWeekday(r.Date)
		buckets[i] = append(buckets[i], r)
	}
	for i := range buckets {
		sortByDate(buckets[i])
	}
	return buckets
}

// ISOWeekday maps a date to its ISO weekday index, 0 = Monday.
func ISOWeekday(d Date) int {
	return (int(d.Weekday()) + 6) % 7
}

// WeekdayName returns the English weekday name for an ISO index.
func WeekdayName(i int) string {
	return time.Weekday((i + 1) % 7).String()
}

func sortByDate(ratings []Rating) {
	sort.Slice(ratings, func(i, j int) bool {
		return ratings[i].Date.Before(ratings[j].Date)
	})
}
