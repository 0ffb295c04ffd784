package report

import (
	"github.com/minsukang/channel-sales-manager/internal/entity"
)

// CalculateOrderAndCustomerCounts returns the headline counters of a period.
// OrderCount counts valid line records, not distinct order numbers (the name
// predates the semantics and callers depend on it). CustomerCount dedups by
// identity key through an orderNumber -> customer map, last writer per order
// number. TotalSales always sums price*quantity, ignoring line totals.
func CalculateOrderAndCustomerCounts(records []entity.SalesRecord) entity.SalesTotals {
	var totals entity.SalesTotals

	orderCustomer := make(map[string]string)
	for _, r := range records {
		if entity.IsCancelStatus(r.Status) {
			continue
		}
		totals.OrderCount++
		totals.TotalSales += r.Price * float64(r.Quantity)
		if r.OrderNumber != "" {
			orderCustomer[r.OrderNumber] = r.CustomerKey()
		}
	}

	customers := make(map[string]struct{}, len(orderCustomer))
	for _, key := range orderCustomer {
		customers[key] = struct{}{}
	}
	totals.CustomerCount = len(customers)
	return totals
}
