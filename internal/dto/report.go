package dto

import (
	"github.com/minsukang/channel-sales-manager/internal/entity"
	"github.com/minsukang/channel-sales-manager/internal/report"
)

// Response is the JSON envelope of every analytics endpoint.
type Response struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

// GrowthRates compares the current period against the previous one, in
// percent.
type GrowthRates struct {
	Sales     float64 `json:"sales"`
	Orders    float64 `json:"orders"`
	Customers float64 `json:"customers"`
}

// SalesReport is the full aggregated report the dashboard renders from.
type SalesReport struct {
	Period        entity.TimeRange  `json:"period"`
	ComparePeriod *entity.TimeRange `json:"comparePeriod,omitempty"`
	Channel       string            `json:"channel"`
	PeriodType    string            `json:"periodType"`

	Totals         entity.SalesTotals  `json:"totals"`
	PreviousTotals *entity.SalesTotals `json:"previousTotals,omitempty"`
	Growth         *GrowthRates        `json:"growth,omitempty"`

	ProductSales    []entity.ProductSalesRow `json:"productSales"`
	ChannelSales    []entity.ChannelSalesRow `json:"channelSales"`
	PeriodSales     []entity.PeriodRow       `json:"periodSales"`
	DayOfWeekSales  []entity.DayOfWeekRow    `json:"dayOfWeekSales"`
	RepurchaseStats []entity.RepurchaseRow   `json:"repurchaseStats"`

	PortfolioHealth report.PortfolioHealth `json:"portfolioHealth"`
}
