package report

import (
	"sort"

	"github.com/minsukang/channel-sales-manager/internal/entity"
)

type channelAcc struct {
	sales      float64
	orderCount int
	customers  map[string]struct{}
}

// AggregateChannelSales groups valid records by channel. Sales here is always
// price*quantity, even when a line total is present; the product aggregator
// behaves differently and the divergence is kept on purpose (see DESIGN.md).
// OrderCount counts product lines. CustomerCount dedups purchasers by identity
// key through an orderNumber -> customer map, last writer per order number.
func AggregateChannelSales(records []entity.SalesRecord) []entity.ChannelSalesRow {
	groups := make(map[string]*channelAcc)

	// Last writer wins per order number across the whole dataset.
	orderCustomer := make(map[string]string)
	orderChannel := make(map[string]string)

	for _, r := range records {
		if entity.IsCancelStatus(r.Status) {
			continue
		}
		acc, ok := groups[r.Channel]
		if !ok {
			acc = &channelAcc{customers: make(map[string]struct{})}
			groups[r.Channel] = acc
		}
		acc.sales += r.Price * float64(r.Quantity)
		acc.orderCount++

		if r.OrderNumber != "" {
			orderCustomer[r.OrderNumber] = r.CustomerKey()
			orderChannel[r.OrderNumber] = r.Channel
		}
	}

	for orderNo, customer := range orderCustomer {
		ch := orderChannel[orderNo]
		if acc, ok := groups[ch]; ok {
			acc.customers[customer] = struct{}{}
		}
	}

	rows := make([]entity.ChannelSalesRow, 0, len(groups))
	for ch, acc := range groups {
		rows = append(rows, entity.ChannelSalesRow{
			Channel:       ch,
			Sales:         acc.sales,
			OrderCount:    acc.orderCount,
			CustomerCount: len(acc.customers),
		})
	}
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Sales > rows[j].Sales
	})
	return rows
}
