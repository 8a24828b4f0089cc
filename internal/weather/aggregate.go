package weather

import (
	"sort"
	"time"
)

// AggregateDaily groups forecast entries by UTC calendar day and computes
// mean, max and min temperatures. Days are returned in ascending order.
func AggregateDaily(entries []ForecastEntry) []DailyStats {
	type acc struct {
		sum      float64
		n        int
		max, min float64
	}

	days := make(map[time.Time]*acc)
	for _, e := range entries {
		if e.Time.IsZero() {
			continue
		}
		ts := e.Time.UTC()
		day := time.Date(ts.Year(), ts.Month(), ts.Day(), 0, 0, 0, 0, time.UTC)

		a, ok := days[day]
		if !ok {
			a = &acc{max: e.TempC, min: e.TempC}
			days[day] = a
		}
		a.sum += e.TempC
		a.n++
		if e.TempC > a.max {
			a.max = e.TempC
		}
		if e.TempC < a.min {
			a.min = e.TempC
		}
	}

	out := make([]DailyStats, 0, len(days))
	for day, a := range days {
		out = append(out, DailyStats{
			Date: day,
			Mean: a.sum / float64(a.n),
			Max:  a.max,
			Min:  a.min,
		})
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Date.Before(out[j].Date)
	})
	return out
}
