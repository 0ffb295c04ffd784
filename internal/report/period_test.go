package report

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/minsukang/channel-sales-manager/internal/entity"
)

func TestGeneratePeriodSales_MonthlyOrdering(t *testing.T) {
	records := []entity.SalesRecord{
		testRecord(func(r *entity.SalesRecord) { r.OrderDate = "2025-07-05T10:00:00" }),
		testRecord(func(r *entity.SalesRecord) { r.OrderDate = "2025-06-20T10:00:00" }),
		testRecord(func(r *entity.SalesRecord) { r.OrderDate = "2025-08-01T10:00:00" }),
	}

	rows := GeneratePeriodSales(records, PeriodMonthly)
	require.Len(t, rows, 3)

	keys := []string{rows[0].Period, rows[1].Period, rows[2].Period}
	assert.Equal(t, []string{"2025-06", "2025-07", "2025-08"}, keys)

	assert.Equal(t, "06/01", rows[0].StartDate)
	assert.Equal(t, "06/30", rows[0].EndDate)
}

func TestGeneratePeriodSales_Daily(t *testing.T) {
	records := []entity.SalesRecord{
		testRecord(func(r *entity.SalesRecord) { r.OrderDate = "2025-07-05T10:00:00" }),
		testRecord(func(r *entity.SalesRecord) { r.OrderDate = "2025-07-05T22:00:00" }),
	}

	rows := GeneratePeriodSales(records, PeriodDaily)
	require.Len(t, rows, 1)
	assert.Equal(t, "2025-07-05", rows[0].Period)
	assert.Equal(t, "07/05", rows[0].StartDate)
	assert.Equal(t, "07/05", rows[0].EndDate)
	assert.Equal(t, 4000.0, rows[0].Total)
	assert.Equal(t, 4000.0, rows[0].Coupang)
}

func TestGeneratePeriodSales_WeeklySpansMondayToSunday(t *testing.T) {
	// 2025-07-02 is a Wednesday in ISO week 27 (Mon 06/30 - Sun 07/06).
	records := []entity.SalesRecord{
		testRecord(func(r *entity.SalesRecord) { r.OrderDate = "2025-07-02T10:00:00" }),
	}

	rows := GeneratePeriodSales(records, PeriodWeekly)
	require.Len(t, rows, 1)
	assert.Equal(t, "2025-W27", rows[0].Period)
	assert.Equal(t, "06/30", rows[0].StartDate)
	assert.Equal(t, "07/06", rows[0].EndDate)
}

func TestGeneratePeriodSales_UnknownChannelTotalOnly(t *testing.T) {
	records := []entity.SalesRecord{
		testRecord(func(r *entity.SalesRecord) { r.Channel = "gmarket" }),
	}

	rows := GeneratePeriodSales(records, PeriodDaily)
	require.Len(t, rows, 1)
	assert.Equal(t, 2000.0, rows[0].Total)
	assert.Zero(t, rows[0].Smartstore)
	assert.Zero(t, rows[0].Ohouse)
	assert.Zero(t, rows[0].YTShopping)
	assert.Zero(t, rows[0].Coupang)
}

func TestGeneratePeriodSales_MissingDateDropped(t *testing.T) {
	records := []entity.SalesRecord{
		testRecord(func(r *entity.SalesRecord) { r.OrderDate = "" }),
	}

	assert.Empty(t, GeneratePeriodSales(records, PeriodDaily))

	// The same record still counts in views that do not depend on the date.
	assert.Len(t, AggregateProductSales(records), 1)
}

func TestGenerateDayOfWeekSales_OmitsMissingDays(t *testing.T) {
	// 2025-07-07 is a Monday, 2025-07-09 a Wednesday; no Tuesday entry may
	// appear.
	records := []entity.SalesRecord{
		testRecord(func(r *entity.SalesRecord) { r.OrderDate = "2025-07-07T10:00:00" }),
		testRecord(func(r *entity.SalesRecord) { r.OrderDate = "2025-07-09T10:00:00" }),
		testRecord(func(r *entity.SalesRecord) {
			r.OrderDate = "2025-07-13T10:00:00" // Sunday
			r.Channel = entity.ChannelSmartstore
		}),
	}

	rows := GenerateDayOfWeekSales(records)
	require.Len(t, rows, 3)

	assert.Equal(t, "월요일", rows[0].Day)
	assert.Equal(t, "수요일", rows[1].Day)
	assert.Equal(t, "일요일", rows[2].Day)
	for _, row := range rows {
		assert.NotEqual(t, "화요일", row.Day)
	}

	assert.Equal(t, 2000.0, rows[2].Smartstore)
	assert.Equal(t, 2000.0, rows[2].Total)
}

func TestGenerateDayOfWeekSales_KSTWeekdayBoundary(t *testing.T) {
	// 2025-07-05 15:00 UTC is already Sunday 00:00 in KST.
	records := []entity.SalesRecord{
		testRecord(func(r *entity.SalesRecord) { r.OrderDate = "2025-07-05T15:00:00.000Z" }),
	}

	rows := GenerateDayOfWeekSales(records)
	require.Len(t, rows, 1)
	assert.Equal(t, "일요일", rows[0].Day)
}
