package report

import (
	"fmt"
	"sort"
	"time"

	"github.com/minsukang/channel-sales-manager/internal/entity"
	"github.com/minsukang/channel-sales-manager/internal/kst"
)

// PeriodType selects the calendar grain of GeneratePeriodSales.
type PeriodType string

const (
	PeriodDaily   PeriodType = "daily"
	PeriodWeekly  PeriodType = "weekly"
	PeriodMonthly PeriodType = "monthly"
)

// GeneratePeriodSales buckets valid records by KST calendar period. Bucket
// keys (yyyy-MM-dd, yyyy-'W'ww, yyyy-MM) are zero padded, so the ascending
// lexicographic sort is chronological. Records without an order date are
// dropped from this view entirely. Unrecognized channels contribute to Total
// only.
func GeneratePeriodSales(records []entity.SalesRecord, periodType PeriodType) []entity.PeriodRow {
	buckets := make(map[string]*entity.PeriodRow)

	for _, r := range records {
		if entity.IsCancelStatus(r.Status) {
			continue
		}
		if r.OrderDate == "" {
			continue
		}
		t := kst.Normalize(r.OrderDate)
		key, start, end := bucketOf(t, periodType)

		row, ok := buckets[key]
		if !ok {
			row = &entity.PeriodRow{
				Period:    key,
				StartDate: start.Format("01/02"),
				EndDate:   end.Format("01/02"),
			}
			buckets[key] = row
		}
		addChannelSales(r, &row.Smartstore, &row.Ohouse, &row.YTShopping, &row.Coupang, &row.Total)
	}

	rows := make([]entity.PeriodRow, 0, len(buckets))
	for _, row := range buckets {
		rows = append(rows, *row)
	}
	sort.Slice(rows, func(i, j int) bool {
		return rows[i].Period < rows[j].Period
	})
	return rows
}

// bucketOf returns the bucket key of t plus the first and last day the bucket
// spans (day: the same day twice; week: ISO Monday-Sunday; month: first-last
// calendar day).
func bucketOf(t time.Time, periodType PeriodType) (key string, start, end time.Time) {
	t = t.In(kst.Location())
	switch periodType {
	case PeriodWeekly:
		year, week := t.ISOWeek()
		monday := t.AddDate(0, 0, -((int(t.Weekday()) + 6) % 7))
		return fmt.Sprintf("%d-W%02d", year, week), monday, monday.AddDate(0, 0, 6)
	case PeriodMonthly:
		first := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
		return t.Format("2006-01"), first, first.AddDate(0, 1, -1)
	default:
		return t.Format("2006-01-02"), t, t
	}
}

// addChannelSales routes the line amount (price*quantity) into the matching
// channel column. Unknown channels fall through to the total alone.
func addChannelSales(r entity.SalesRecord, smartstore, ohouse, ytshopping, coupang, total *float64) {
	amount := r.Price * float64(r.Quantity)
	switch r.Channel {
	case entity.ChannelSmartstore:
		*smartstore += amount
	case entity.ChannelOhouse:
		*ohouse += amount
	case entity.ChannelYTShopping:
		*ytshopping += amount
	case entity.ChannelCoupang:
		*coupang += amount
	}
	*total += amount
}
