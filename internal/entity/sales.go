package entity

import "time"

// Sales channels the dashboard reports on. Unknown channel ids coming from
// upstream are kept verbatim on the record but only contribute to totals.
const (
	ChannelSmartstore = "smartstore"
	ChannelOhouse     = "ohouse"
	ChannelYTShopping = "ytshopping"
	ChannelCoupang    = "coupang"
)

// KnownChannels lists every channel with a dedicated column in period and
// day-of-week breakdowns, in display order.
var KnownChannels = []string{
	ChannelSmartstore,
	ChannelOhouse,
	ChannelYTShopping,
	ChannelCoupang,
}

// Matching statuses for product name reconciliation.
const (
	MatchingMapped   = "매핑완료"
	MatchingUnmapped = "미매핑"
)

// cancelStatuses is the cancel/refund/return family. A record carrying one of
// these must not contribute to any aggregate.
var cancelStatuses = map[string]struct{}{
	"취소":    {},
	"환불":    {},
	"미결제취소": {},
	"반품":    {},
	"구매취소":  {},
	"주문취소":  {},
}

// IsCancelStatus reports whether the status marks the record invalid for
// reporting.
func IsCancelStatus(status string) bool {
	_, ok := cancelStatuses[status]
	return ok
}

// SalesRecord is one product line within an order, as delivered by the
// analytics query endpoint. Order numbers repeat across lines of the same
// order. OrderDate is kept as the raw textual encoding; normalization to KST
// happens at aggregation time.
type SalesRecord struct {
	Channel          string   `json:"channel"`
	OrderNumber      string   `json:"orderNumber"`
	OrderDate        string   `json:"orderDate"`
	CustomerName     string   `json:"customerName"`
	CustomerID       string   `json:"customerId"`
	ProductName      string   `json:"productName"`
	OptionName       string   `json:"optionName"`
	Quantity         int      `json:"quantity"`
	Price            float64  `json:"price"`
	TotalSales       *float64 `json:"totalSales,omitempty"`
	Cost             *float64 `json:"cost,omitempty"`
	CommissionAmount *float64 `json:"commissionAmount,omitempty"`
	NetProfit        *float64 `json:"netProfit,omitempty"`
	OperatingProfit  *float64 `json:"operatingProfit,omitempty"`
	Status           string   `json:"status"`
	MatchingStatus   string   `json:"matchingStatus,omitempty"`
}

// ProductKey groups SKU-level sales. Must match the keying of the product
// mapping table exactly.
func (r SalesRecord) ProductKey() string {
	return r.ProductName + "|" + r.OptionName
}

// CustomerKey identifies a purchaser within one aggregation run. Not globally
// unique across channels.
func (r SalesRecord) CustomerKey() string {
	return r.CustomerName + "##" + r.CustomerID
}

// ProductMapping reconciles a raw product name/option pair to its canonical
// form. Keyed by "productName|optionName".
type ProductMapping struct {
	ProductName       string `json:"productName"`
	OptionName        string `json:"optionName"`
	MappedProductName string `json:"mappedProductName"`
	MappedOptionName  string `json:"mappedOptionName"`
}

// Key returns the raw-side lookup key of the mapping.
func (m ProductMapping) Key() string {
	return m.ProductName + "|" + m.OptionName
}

// TimeRange is a reporting period.
type TimeRange struct {
	From time.Time `json:"from"`
	To   time.Time `json:"to"`
}
