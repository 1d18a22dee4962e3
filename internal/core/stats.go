package core

import "math"

// ValueCount is the number of ratings recorded with one severity value.
type ValueCount struct {
	Value Value
	Count int
}

// Average returns the mean ordinal severity over the ratings that carry
// a value. Unrated entries are excluded from both numerator and
// denominator. With zero rated entries the average is undefined and NaN
// is returned; callers must treat NaN as "no data", never as a score.
func Average(ratings []Rating) float64 {
	sum := 0
	count := 0
	for _, r := range ratings {
		if r.Value == nil {
			continue
		}
		sum += int(*r.Value)
		count++
	}
	if count == 0 {
		return math.NaN()
	}
	return float64(sum) / float64(count)
}

// ValueTotals counts ratings per severity value. Every value appears in
// canonical ascending order, with zero counts included. Unrated entries
// are excluded.
func ValueTotals(ratings []Rating) []ValueCount {
	counts := make(map[Value]int)
	for _, r := range ratings {
		if r.Value != nil {
			counts[*r.Value]++
		}
	}

	totals := make([]ValueCount, 0, len(valueLabels))
	for _, v := range Values() {
		totals = append(totals, ValueCount{Value: v, Count: counts[v]})
	}
	return totals
}
