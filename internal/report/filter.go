// Package report folds raw order lines into the dashboard's report views.
// All functions are pure: they take a freshly fetched slice and return new
// result values, never touching shared state.
package report

import (
	"time"

	"github.com/minsukang/channel-sales-manager/internal/entity"
	"github.com/minsukang/channel-sales-manager/internal/kst"
)

// FilterByDateRange keeps records whose normalized KST date falls within
// [start 00:00:00.000, end 23:59:59.999]. The boundaries are taken from the
// calendar dates of start/end as given; no further normalization is applied to
// them. Records without a date are dropped.
func FilterByDateRange(records []entity.SalesRecord, start, end time.Time) []entity.SalesRecord {
	loc := kst.Location()
	from := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, loc)
	to := time.Date(end.Year(), end.Month(), end.Day(), 23, 59, 59, int(999*time.Millisecond), loc)

	out := make([]entity.SalesRecord, 0, len(records))
	for _, r := range records {
		if r.OrderDate == "" {
			continue
		}
		t := kst.Normalize(r.OrderDate)
		if t.Before(from) || t.After(to) {
			continue
		}
		out = append(out, r)
	}
	return out
}

// FilterValidSales keeps records usable for reporting: identifiable, with a
// positive quantity and a status outside the cancel family.
func FilterValidSales(records []entity.SalesRecord) []entity.SalesRecord {
	out := make([]entity.SalesRecord, 0, len(records))
	for _, r := range records {
		if !isValidSale(r) {
			continue
		}
		out = append(out, r)
	}
	return out
}

func isValidSale(r entity.SalesRecord) bool {
	return r.OrderNumber != "" &&
		r.OrderDate != "" &&
		r.ProductName != "" &&
		r.Quantity > 0 &&
		!entity.IsCancelStatus(r.Status)
}

// deref turns an optional numeric field into a value, coercing missing to 0.
func deref(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}
