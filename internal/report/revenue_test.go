package report

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/fitstudio/studio-api/internal/models"
)

func TestRevenueEvolutionDailyBucketsAreDense(t *testing.T) {
	window := Window{Start: day(2024, time.March, 10), End: day(2024, time.March, 14)}
	payments := []models.Payment{
		{Amount: 100, Date: day(2024, time.March, 10), Status: models.PaymentRecordPaid},
		{Amount: 50, Date: day(2024, time.March, 12), Status: models.PaymentRecordPending},
	}

	series := RevenueEvolution(payments, window, DefaultDailyBucketMaxDays)

	require.Len(t, series, 5)
	require.Equal(t, "2024-03-10", series[0].Key)
	require.Equal(t, "2024-03-14", series[4].Key)
	require.Equal(t, 100.0, series[0].Realized)
	// A paid payment is also expected revenue on its effective due date.
	require.Equal(t, 100.0, series[0].Expected)
	require.Equal(t, 50.0, series[2].Expected)
	require.Equal(t, 0.0, series[2].Realized)

	var zeroDays int
	for _, bucket := range series {
		if bucket.Realized == 0 && bucket.Expected == 0 {
			zeroDays++
		}
	}
	require.Equal(t, 3, zeroDays)
}

func TestRevenueEvolutionSwitchesToMonthlyBuckets(t *testing.T) {
	window := Window{Start: day(2024, time.January, 1), End: day(2024, time.December, 31)}
	payments := []models.Payment{
		{Amount: 300, Date: day(2024, time.February, 10), Status: models.PaymentRecordPaid},
		{Amount: 300, Date: day(2024, time.February, 25), Status: models.PaymentRecordPaid},
		{Amount: 120, Date: day(2024, time.November, 5), Status: models.PaymentRecordLate},
	}

	series := RevenueEvolution(payments, window, DefaultDailyBucketMaxDays)

	require.Len(t, series, 12)
	require.Equal(t, "2024-01", series[0].Key)
	require.Equal(t, "02/2024", series[1].Label)
	require.Equal(t, 600.0, series[1].Realized)
	require.Equal(t, 120.0, series[10].Expected)
	require.Equal(t, 0.0, series[10].Realized)
}

func TestRevenueEvolutionIsSortedChronologically(t *testing.T) {
	window := Window{Start: day(2023, time.November, 1), End: day(2024, time.February, 29)}

	series := RevenueEvolution(nil, window, DefaultDailyBucketMaxDays)

	require.Len(t, series, 4)
	for i := 1; i < len(series); i++ {
		require.Less(t, series[i-1].Key, series[i].Key)
	}
	require.Equal(t, "2023-11", series[0].Key)
	require.Equal(t, "2024-02", series[3].Key)
}

func TestRevenueEvolutionThresholdIsTunable(t *testing.T) {
	window := Window{Start: day(2024, time.March, 1), End: day(2024, time.March, 10)}

	series := RevenueEvolution(nil, window, 5)

	// A 10-day window over a 5-day threshold buckets monthly.
	require.Len(t, series, 1)
	require.Equal(t, "2024-03", series[0].Key)
}
