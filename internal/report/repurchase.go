package report

import (
	"fmt"
	"sort"

	"github.com/minsukang/channel-sales-manager/internal/entity"
)

// repurchaseCap is the "N회 이상" bucket threshold.
const repurchaseCap = 5

// CalculateRepurchaseStats distributes customers over "number of distinct
// orders" buckets. Customers are keyed by name only here, unlike the other
// aggregators; the asymmetry matches the shipped reports (see DESIGN.md).
// Records without a customer name are skipped before grouping.
func CalculateRepurchaseStats(records []entity.SalesRecord) []entity.RepurchaseRow {
	ordersByCustomer := make(map[string]map[string]struct{})

	for _, r := range records {
		if entity.IsCancelStatus(r.Status) {
			continue
		}
		if r.CustomerName == "" {
			continue
		}
		orders, ok := ordersByCustomer[r.CustomerName]
		if !ok {
			orders = make(map[string]struct{})
			ordersByCustomer[r.CustomerName] = orders
		}
		if r.OrderNumber != "" {
			orders[r.OrderNumber] = struct{}{}
		}
	}

	totalCustomers := len(ordersByCustomer)
	if totalCustomers == 0 {
		return nil
	}

	countBuckets := make(map[int]int)
	for _, orders := range ordersByCustomer {
		n := len(orders)
		if n == 0 {
			continue
		}
		if n > repurchaseCap {
			n = repurchaseCap
		}
		countBuckets[n]++
	}

	counts := make([]int, 0, len(countBuckets))
	for n := range countBuckets {
		counts = append(counts, n)
	}
	sort.Ints(counts)

	rows := make([]entity.RepurchaseRow, 0, len(counts))
	for _, n := range counts {
		label := fmt.Sprintf("%d회 구매", n)
		if n == repurchaseCap {
			label = fmt.Sprintf("%d회 이상 구매", n)
		}
		rows = append(rows, entity.RepurchaseRow{
			Type:          label,
			CustomerCount: countBuckets[n],
			Percentage:    float64(countBuckets[n]) / float64(totalCustomers) * 100,
		})
	}
	return rows
}
