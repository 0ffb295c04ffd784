package report

import (
	"fmt"
	"sort"

	"github.com/minsukang/channel-sales-manager/internal/entity"
)

type productAcc struct {
	row    entity.ProductSalesRow
	orders map[string]struct{}
}

// AggregateProductSales groups valid records by SKU (product|option) and
// accumulates quantity, sales, cost and profit totals. A precomputed line
// total takes precedence over price*quantity. Cancel-family records are
// excluded here as well, so the function is safe on unfiltered input.
func AggregateProductSales(records []entity.SalesRecord) []entity.ProductSalesRow {
	groups := make(map[string]*productAcc)
	var order []string

	for _, r := range records {
		if entity.IsCancelStatus(r.Status) {
			continue
		}
		key := r.ProductKey()
		acc, ok := groups[key]
		if !ok {
			acc = &productAcc{
				row: entity.ProductSalesRow{
					ProductName:    r.ProductName,
					OptionName:     r.OptionName,
					MatchingStatus: r.MatchingStatus,
				},
				orders: make(map[string]struct{}),
			}
			groups[key] = acc
			order = append(order, key)
		}

		acc.row.Quantity += r.Quantity
		if r.TotalSales != nil {
			acc.row.Sales += *r.TotalSales
		} else {
			acc.row.Sales += r.Price * float64(r.Quantity)
		}
		acc.row.Cost += deref(r.Cost) * float64(r.Quantity)
		acc.row.CommissionAmount += deref(r.CommissionAmount)
		acc.row.NetProfit += deref(r.NetProfit)
		acc.row.OperatingProfit += deref(r.OperatingProfit)
		if r.OrderNumber != "" {
			acc.orders[r.OrderNumber] = struct{}{}
		}
		// Sticky: once any contributing record is mapped the group stays mapped.
		if r.MatchingStatus == entity.MatchingMapped {
			acc.row.MatchingStatus = entity.MatchingMapped
		}
	}

	rows := make([]entity.ProductSalesRow, 0, len(groups))
	for _, key := range order {
		acc := groups[key]
		acc.row.OrderCount = len(acc.orders)
		acc.row.MarginRate = marginRate(acc.row.NetProfit, acc.row.Sales)
		acc.row.OperatingMarginRate = marginRate(acc.row.OperatingProfit, acc.row.Sales)
		rows = append(rows, acc.row)
	}

	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Sales > rows[j].Sales
	})
	return rows
}

// marginRate formats profit/sales as a percentage with one decimal, guarding
// the zero-sales case.
func marginRate(profit, sales float64) string {
	if sales == 0 {
		return "0.0"
	}
	return fmt.Sprintf("%.1f", profit/sales*100)
}
