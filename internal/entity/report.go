package entity

import "github.com/shopspring/decimal"

// ProductSalesRow aggregates one SKU (product + option).
type ProductSalesRow struct {
	ProductName         string  `json:"productName"`
	OptionName          string  `json:"optionName"`
	Quantity            int     `json:"quantity"`
	Sales               float64 `json:"sales"`
	Cost                float64 `json:"cost"`
	CommissionAmount    float64 `json:"commissionAmount"`
	NetProfit           float64 `json:"netProfit"`
	OperatingProfit     float64 `json:"operatingProfit"`
	MarginRate          string  `json:"marginRate"`
	OperatingMarginRate string  `json:"operatingMarginRate"`
	OrderCount          int     `json:"orderCount"`
	MatchingStatus      string  `json:"matchingStatus"`
}

// ChannelSalesRow aggregates one sales channel. OrderCount counts product
// lines, not distinct order numbers.
type ChannelSalesRow struct {
	Channel       string  `json:"channel"`
	Sales         float64 `json:"sales"`
	OrderCount    int     `json:"orderCount"`
	CustomerCount int     `json:"customerCount"`
}

// PeriodRow is one calendar bucket (day, ISO week or month) with a fixed
// column per known channel. Amounts from unrecognized channels land in Total
// only.
type PeriodRow struct {
	Period     string  `json:"period"`
	StartDate  string  `json:"startDate"`
	EndDate    string  `json:"endDate"`
	Smartstore float64 `json:"smartstore"`
	Ohouse     float64 `json:"ohouse"`
	YTShopping float64 `json:"ytshopping"`
	Coupang    float64 `json:"coupang"`
	Total      float64 `json:"total"`
}

// DayOfWeekRow is one localized weekday bucket. Only observed weekdays are
// emitted.
type DayOfWeekRow struct {
	Day        string  `json:"day"`
	Smartstore float64 `json:"smartstore"`
	Ohouse     float64 `json:"ohouse"`
	YTShopping float64 `json:"ytshopping"`
	Coupang    float64 `json:"coupang"`
	Total      float64 `json:"total"`
}

// SalesTotals carries the headline counters of a period. OrderCount counts
// valid line records.
type SalesTotals struct {
	OrderCount    int     `json:"orderCount"`
	CustomerCount int     `json:"customerCount"`
	TotalSales    float64 `json:"totalSales"`
}

// RepurchaseRow is one "number of distinct orders" bucket of the repeat
// purchase distribution.
type RepurchaseRow struct {
	Type          string  `json:"type"`
	CustomerCount int     `json:"customerCount"`
	Percentage    float64 `json:"percentage"`
}

// RevenueSummary holds exact monetary totals computed in SQL for a period,
// cancel-family rows excluded.
type RevenueSummary struct {
	Revenue   decimal.Decimal `json:"revenue"`
	NetProfit decimal.Decimal `json:"netProfit"`
	Lines     int             `json:"lines"`
	Orders    int             `json:"orders"`
}
