package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/minsukang/channel-sales-manager/internal/dependency"
	"github.com/minsukang/channel-sales-manager/internal/entity"
)

type salesStore struct {
	*PostgresStore
}

func (ps *PostgresStore) Sales() dependency.Sales {
	return &salesStore{PostgresStore: ps}
}

// cancelFamily mirrors entity.IsCancelStatus for SQL-side exclusion.
var cancelFamily = []string{"취소", "환불", "미결제취소", "반품", "구매취소", "주문취소"}

type salesRecordRow struct {
	Channel          string          `db:"channel"`
	OrderNumber      string          `db:"order_number"`
	OrderDate        time.Time       `db:"order_date"`
	CustomerName     string          `db:"customer_name"`
	CustomerID       string          `db:"customer_id"`
	ProductName      string          `db:"product_name"`
	OptionName       string          `db:"option_name"`
	Quantity         int             `db:"quantity"`
	Price            float64         `db:"price"`
	TotalSales       sql.NullFloat64 `db:"total_sales"`
	Cost             sql.NullFloat64 `db:"cost"`
	CommissionAmount sql.NullFloat64 `db:"commission_amount"`
	NetProfit        sql.NullFloat64 `db:"net_profit"`
	OperatingProfit  sql.NullFloat64 `db:"operating_profit"`
	Status           string          `db:"status"`
	MatchingStatus   sql.NullString  `db:"matching_status"`
}

func (r salesRecordRow) toEntity() entity.SalesRecord {
	return entity.SalesRecord{
		Channel:          r.Channel,
		OrderNumber:      r.OrderNumber,
		OrderDate:        r.OrderDate.Format("2006-01-02T15:04:05") + "+00:00",
		CustomerName:     r.CustomerName,
		CustomerID:       r.CustomerID,
		ProductName:      r.ProductName,
		OptionName:       r.OptionName,
		Quantity:         r.Quantity,
		Price:            r.Price,
		TotalSales:       nullToPtr(r.TotalSales),
		Cost:             nullToPtr(r.Cost),
		CommissionAmount: nullToPtr(r.CommissionAmount),
		NetProfit:        nullToPtr(r.NetProfit),
		OperatingProfit:  nullToPtr(r.OperatingProfit),
		Status:           r.Status,
		MatchingStatus:   r.MatchingStatus.String,
	}
}

func nullToPtr(v sql.NullFloat64) *float64 {
	if !v.Valid {
		return nil
	}
	f := v.Float64
	return &f
}

// GetSalesRecords returns records placed within the calendar days [from, to].
// Order dates are stored as KST wall clocks labeled UTC (the importer's
// convention); they are emitted with the same +00:00 label so the normalizer's
// compensation applies uniformly to DB-served and legacy data.
func (ss *salesStore) GetSalesRecords(ctx context.Context, from, to time.Time, channel string) ([]entity.SalesRecord, error) {
	if channel == "" {
		channel = "all"
	}
	start := time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, time.UTC)
	end := time.Date(to.Year(), to.Month(), to.Day(), 0, 0, 0, 0, time.UTC).AddDate(0, 0, 1)

	query := `
		SELECT channel, order_number, order_date,
			customer_name, customer_id, product_name, option_name,
			quantity, price, total_sales, cost, commission_amount,
			net_profit, operating_profit, status, matching_status
		FROM sales_records
		WHERE order_date >= :from AND order_date < :to
		AND (:channel = 'all' OR channel = :channel)
		ORDER BY order_date, order_number
	`
	rows, err := QueryListNamed[salesRecordRow](ctx, ss.DB(), query, map[string]any{
		"from":    start,
		"to":      end,
		"channel": channel,
	})
	if err != nil {
		return nil, fmt.Errorf("sales records: %w", err)
	}

	records := make([]entity.SalesRecord, len(rows))
	for i, r := range rows {
		records[i] = r.toEntity()
	}
	return records, nil
}

// GetRevenueSummary computes exact monetary totals in SQL, excluding the
// cancel family. Revenue prefers the precomputed line total over
// price*quantity, matching the product aggregation.
func (ss *salesStore) GetRevenueSummary(ctx context.Context, from, to time.Time) (*entity.RevenueSummary, error) {
	start := time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, time.UTC)
	end := time.Date(to.Year(), to.Month(), to.Day(), 0, 0, 0, 0, time.UTC).AddDate(0, 0, 1)

	type row struct {
		Revenue   decimal.Decimal `db:"revenue"`
		NetProfit decimal.Decimal `db:"net_profit"`
		Lines     int             `db:"lines"`
		Orders    int             `db:"orders"`
	}
	query := `
		SELECT
			COALESCE(SUM(COALESCE(total_sales, price * quantity)), 0) AS revenue,
			COALESCE(SUM(COALESCE(net_profit, 0)), 0) AS net_profit,
			COUNT(*) AS lines,
			COUNT(DISTINCT order_number) AS orders
		FROM sales_records
		WHERE order_date >= :from AND order_date < :to
		AND status NOT IN (:cancelStatuses)
	`
	r, err := QueryNamedOne[row](ctx, ss.DB(), query, map[string]any{
		"from":           start,
		"to":             end,
		"cancelStatuses": cancelFamily,
	})
	if err != nil {
		return nil, fmt.Errorf("revenue summary: %w", err)
	}
	return &entity.RevenueSummary{
		Revenue:   r.Revenue,
		NetProfit: r.NetProfit,
		Lines:     r.Lines,
		Orders:    r.Orders,
	}, nil
}
