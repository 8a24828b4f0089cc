package weather

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestAggregateDaily(t *testing.T) {
	day1 := time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC)
	day2 := day1.AddDate(0, 0, 1)

	entries := []ForecastEntry{
		{Time: day2.Add(3 * time.Hour), TempC: 20},
		{Time: day1.Add(12 * time.Hour), TempC: 30},
		{Time: day1.Add(15 * time.Hour), TempC: 24},
		{Time: day1.Add(21 * time.Hour), TempC: 21},
		{TempC: 99},
	}

	got := AggregateDaily(entries)
	require.Len(t, got, 2)

	require.Equal(t, day1, got[0].Date)
	require.InDelta(t, 25.0, got[0].Mean, 1e-9)
	require.Equal(t, 30.0, got[0].Max)
	require.Equal(t, 21.0, got[0].Min)

	require.Equal(t, day2, got[1].Date)
	require.Equal(t, 20.0, got[1].Mean)
}

func TestAggregateDailyEmpty(t *testing.T) {
	require.Empty(t, AggregateDaily(nil))
}
