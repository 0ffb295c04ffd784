// Package analytics serves the dashboard's query endpoints: raw sales data,
// the product mapping table and fully aggregated reports.
package analytics

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"log/slog"

	"github.com/asaskevich/govalidator"

	"github.com/minsukang/channel-sales-manager/internal/dependency"
	"github.com/minsukang/channel-sales-manager/internal/dto"
	"github.com/minsukang/channel-sales-manager/internal/entity"
	"github.com/minsukang/channel-sales-manager/internal/report"
)

const dateLayout = "2006-01-02"

// Server implements the analytics endpoints over the repository.
type Server struct {
	db dependency.Repository
}

func New(db dependency.Repository) *Server {
	return &Server{db: db}
}

// GetSalesData handles GET /api/analytics/sales-data.
func (s *Server) GetSalesData(w http.ResponseWriter, r *http.Request) {
	from, to, channel, err := rangeParams(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, err)
		return
	}

	records, err := s.db.Sales().GetSalesRecords(r.Context(), from, to, channel)
	if err != nil {
		slog.Default().ErrorContext(r.Context(), "can't get sales records",
			slog.String("err", err.Error()),
		)
		respondError(w, http.StatusInternalServerError, fmt.Errorf("could not load sales data"))
		return
	}
	respondData(w, records)
}

// GetProductMappings handles GET /api/analytics/product-mappings.
func (s *Server) GetProductMappings(w http.ResponseWriter, r *http.Request) {
	mappings, err := s.db.Mappings().ListProductMappings(r.Context())
	if err != nil {
		slog.Default().ErrorContext(r.Context(), "can't list product mappings",
			slog.String("err", err.Error()),
		)
		respondError(w, http.StatusInternalServerError, fmt.Errorf("could not load product mappings"))
		return
	}
	respondData(w, mappings)
}

// UpsertProductMapping handles POST /api/analytics/product-mappings.
func (s *Server) UpsertProductMapping(w http.ResponseWriter, r *http.Request) {
	var m entity.ProductMapping
	if err := json.NewDecoder(r.Body).Decode(&m); err != nil {
		respondError(w, http.StatusBadRequest, fmt.Errorf("invalid body: %w", err))
		return
	}
	if m.ProductName == "" || m.MappedProductName == "" {
		respondError(w, http.StatusBadRequest, fmt.Errorf("productName and mappedProductName are required"))
		return
	}
	if err := s.db.Mappings().UpsertProductMapping(r.Context(), m); err != nil {
		slog.Default().ErrorContext(r.Context(), "can't upsert product mapping",
			slog.String("err", err.Error()),
		)
		respondError(w, http.StatusInternalServerError, fmt.Errorf("could not save product mapping"))
		return
	}
	respondData(w, m)
}

// GetSummary handles GET /api/analytics/summary with exact SQL-side totals.
func (s *Server) GetSummary(w http.ResponseWriter, r *http.Request) {
	from, to, _, err := rangeParams(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, err)
		return
	}

	summary, err := s.db.Sales().GetRevenueSummary(r.Context(), from, to)
	if err != nil {
		slog.Default().ErrorContext(r.Context(), "can't get revenue summary",
			slog.String("err", err.Error()),
		)
		respondError(w, http.StatusInternalServerError, fmt.Errorf("could not load summary"))
		return
	}
	respondData(w, summary)
}

// GetReport handles GET /api/analytics/report: the full aggregation pipeline
// over the requested period plus the equal-length period right before it.
func (s *Server) GetReport(w http.ResponseWriter, r *http.Request) {
	from, to, channel, err := rangeParams(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, err)
		return
	}

	periodType := report.PeriodDaily
	if pt := r.URL.Query().Get("periodType"); pt != "" {
		if !govalidator.IsIn(pt, string(report.PeriodDaily), string(report.PeriodWeekly), string(report.PeriodMonthly)) {
			respondError(w, http.StatusBadRequest, fmt.Errorf("invalid periodType: %s", pt))
			return
		}
		periodType = report.PeriodType(pt)
	}

	ctx := r.Context()

	current, err := s.db.Sales().GetSalesRecords(ctx, from, to, channel)
	if err != nil {
		slog.Default().ErrorContext(ctx, "can't get current period records",
			slog.String("err", err.Error()),
		)
		respondError(w, http.StatusInternalServerError, fmt.Errorf("could not load sales data"))
		return
	}

	prevFrom, prevTo := previousPeriod(from, to)
	previous, err := s.db.Sales().GetSalesRecords(ctx, prevFrom, prevTo, channel)
	if err != nil {
		slog.Default().ErrorContext(ctx, "can't get previous period records",
			slog.String("err", err.Error()),
		)
		respondError(w, http.StatusInternalServerError, fmt.Errorf("could not load sales data"))
		return
	}

	mappings, err := s.db.Mappings().ListProductMappings(ctx)
	if err != nil {
		slog.Default().ErrorContext(ctx, "can't list product mappings",
			slog.String("err", err.Error()),
		)
		respondError(w, http.StatusInternalServerError, fmt.Errorf("could not load product mappings"))
		return
	}

	rep := buildReport(current, previous, mappings, channel, periodType)
	rep.Period = entity.TimeRange{From: from, To: to}
	rep.ComparePeriod = &entity.TimeRange{From: prevFrom, To: prevTo}
	respondData(w, rep)
}

// buildReport runs the aggregation pipeline over fetched record sets.
func buildReport(current, previous []entity.SalesRecord, mappings []entity.ProductMapping, channel string, periodType report.PeriodType) *dto.SalesReport {
	table := report.MappingTable(mappings)
	mapped := report.ApplyProductMappings(current, table)
	valid := report.FilterValidSales(mapped)

	channelSales := report.AggregateChannelSales(valid)
	totals := report.CalculateOrderAndCustomerCounts(valid)

	rep := &dto.SalesReport{
		Channel:    channel,
		PeriodType: string(periodType),

		Totals:          totals,
		ProductSales:    report.AggregateProductSales(valid),
		ChannelSales:    channelSales,
		PeriodSales:     report.GeneratePeriodSales(valid, periodType),
		DayOfWeekSales:  report.GenerateDayOfWeekSales(valid),
		RepurchaseStats: report.CalculateRepurchaseStats(valid),
		PortfolioHealth: report.CalculatePortfolioHealth(report.ChannelMixPercents(channelSales)),
	}

	prevValid := report.FilterValidSales(report.ApplyProductMappings(previous, table))
	prevTotals := report.CalculateOrderAndCustomerCounts(prevValid)
	rep.PreviousTotals = &prevTotals
	rep.Growth = &dto.GrowthRates{
		Sales:     report.CalculateGrowthRate(totals.TotalSales, prevTotals.TotalSales),
		Orders:    report.CalculateGrowthRate(float64(totals.OrderCount), float64(prevTotals.OrderCount)),
		Customers: report.CalculateGrowthRate(float64(totals.CustomerCount), float64(prevTotals.CustomerCount)),
	}
	return rep
}

// previousPeriod is the equal-length range ending the day before from.
func previousPeriod(from, to time.Time) (time.Time, time.Time) {
	days := int(to.Sub(from).Hours()/24) + 1
	return from.AddDate(0, 0, -days), from.AddDate(0, 0, -1)
}

func rangeParams(r *http.Request) (from, to time.Time, channel string, err error) {
	q := r.URL.Query()
	startDate := q.Get("startDate")
	endDate := q.Get("endDate")
	if !govalidator.IsTime(startDate, dateLayout) {
		return from, to, "", fmt.Errorf("invalid startDate: %q", startDate)
	}
	if !govalidator.IsTime(endDate, dateLayout) {
		return from, to, "", fmt.Errorf("invalid endDate: %q", endDate)
	}

	from, _ = time.Parse(dateLayout, startDate)
	to, _ = time.Parse(dateLayout, endDate)
	if to.Before(from) {
		return from, to, "", fmt.Errorf("endDate before startDate")
	}

	channel = q.Get("channel")
	if channel == "" {
		channel = "all"
	}
	return from, to, channel, nil
}

func respondData(w http.ResponseWriter, data any) {
	respondJSON(w, http.StatusOK, dto.Response{Success: true, Data: data})
}

func respondError(w http.ResponseWriter, status int, err error) {
	respondJSON(w, status, dto.Response{Success: false, Error: err.Error()})
}

func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Default().Error("can't encode response", slog.String("err", err.Error()))
	}
}
