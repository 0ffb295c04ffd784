package report

import (
	"time"

	"github.com/minsukang/channel-sales-manager/internal/entity"
	"github.com/minsukang/channel-sales-manager/internal/kst"
)

// koreanWeekdays maps Go weekdays to the localized labels used by the
// dashboard charts.
var koreanWeekdays = map[time.Weekday]string{
	time.Monday:    "월요일",
	time.Tuesday:   "화요일",
	time.Wednesday: "수요일",
	time.Thursday:  "목요일",
	time.Friday:    "금요일",
	time.Saturday:  "토요일",
	time.Sunday:    "일요일",
}

// weekdayOrder is the Monday-first display order.
var weekdayOrder = []time.Weekday{
	time.Monday, time.Tuesday, time.Wednesday, time.Thursday,
	time.Friday, time.Saturday, time.Sunday,
}

// GenerateDayOfWeekSales buckets valid records by KST weekday. The result is
// ordered Monday through Sunday and contains only weekdays that actually
// occur in the data; zero days are omitted, not zero-filled.
func GenerateDayOfWeekSales(records []entity.SalesRecord) []entity.DayOfWeekRow {
	buckets := make(map[string]*entity.DayOfWeekRow)

	for _, r := range records {
		if entity.IsCancelStatus(r.Status) {
			continue
		}
		if r.OrderDate == "" {
			continue
		}
		t := kst.Normalize(r.OrderDate).In(kst.Location())
		day := koreanWeekdays[t.Weekday()]

		row, ok := buckets[day]
		if !ok {
			row = &entity.DayOfWeekRow{Day: day}
			buckets[day] = row
		}
		addChannelSales(r, &row.Smartstore, &row.Ohouse, &row.YTShopping, &row.Coupang, &row.Total)
	}

	rows := make([]entity.DayOfWeekRow, 0, len(buckets))
	for _, wd := range weekdayOrder {
		if row, ok := buckets[koreanWeekdays[wd]]; ok {
			rows = append(rows, *row)
		}
	}
	return rows
}
