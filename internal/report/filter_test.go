package report

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/minsukang/channel-sales-manager/internal/entity"
)

func testRecord(mut ...func(*entity.SalesRecord)) entity.SalesRecord {
	r := entity.SalesRecord{
		Channel:      entity.ChannelCoupang,
		OrderNumber:  "A1",
		OrderDate:    "2025-07-01T00:02:40.000Z",
		CustomerName: "김민수",
		CustomerID:   "cust-1",
		ProductName:  "Widget",
		OptionName:   "Red",
		Quantity:     2,
		Price:        1000,
		Status:       "판매중",
	}
	for _, m := range mut {
		m(&r)
	}
	return r
}

func ptrF(v float64) *float64 { return &v }

func TestFilterByDateRange(t *testing.T) {
	records := []entity.SalesRecord{
		testRecord(func(r *entity.SalesRecord) { r.OrderDate = "2025-07-01T00:02:40.000Z" }),
		testRecord(func(r *entity.SalesRecord) { r.OrderDate = "2025-06-30T10:00:00" }),
		testRecord(func(r *entity.SalesRecord) { r.OrderDate = "2025-08-02T10:00:00" }),
		testRecord(func(r *entity.SalesRecord) { r.OrderDate = "" }),
	}

	start := time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 7, 31, 0, 0, 0, 0, time.UTC)

	got := FilterByDateRange(records, start, end)
	assert.Len(t, got, 1)
	assert.Equal(t, "2025-07-01T00:02:40.000Z", got[0].OrderDate)
}

func TestFilterByDateRange_InclusiveBoundaries(t *testing.T) {
	records := []entity.SalesRecord{
		testRecord(func(r *entity.SalesRecord) { r.OrderDate = "2025-07-01T00:00:00" }),
		testRecord(func(r *entity.SalesRecord) { r.OrderDate = "2025-07-31T23:59:59" }),
	}

	start := time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 7, 31, 0, 0, 0, 0, time.UTC)

	got := FilterByDateRange(records, start, end)
	assert.Len(t, got, 2)
}

func TestFilterValidSales(t *testing.T) {
	records := []entity.SalesRecord{
		testRecord(),
		testRecord(func(r *entity.SalesRecord) { r.Status = "취소" }),
		testRecord(func(r *entity.SalesRecord) { r.Status = "환불" }),
		testRecord(func(r *entity.SalesRecord) { r.Status = "반품" }),
		testRecord(func(r *entity.SalesRecord) { r.OrderNumber = "" }),
		testRecord(func(r *entity.SalesRecord) { r.OrderDate = "" }),
		testRecord(func(r *entity.SalesRecord) { r.ProductName = "" }),
		testRecord(func(r *entity.SalesRecord) { r.Quantity = 0 }),
	}

	got := FilterValidSales(records)
	assert.Len(t, got, 1)
}

// Cancel-family records must not surface in any aggregate view.
func TestCancelExclusionEverywhere(t *testing.T) {
	cancelled := []entity.SalesRecord{
		testRecord(func(r *entity.SalesRecord) { r.Status = "미결제취소" }),
		testRecord(func(r *entity.SalesRecord) { r.Status = "구매취소" }),
		testRecord(func(r *entity.SalesRecord) { r.Status = "주문취소" }),
	}

	assert.Empty(t, AggregateProductSales(cancelled))
	assert.Empty(t, AggregateChannelSales(cancelled))
	assert.Empty(t, GeneratePeriodSales(cancelled, PeriodDaily))
	assert.Empty(t, GenerateDayOfWeekSales(cancelled))
	assert.Empty(t, CalculateRepurchaseStats(cancelled))

	totals := CalculateOrderAndCustomerCounts(cancelled)
	assert.Zero(t, totals.OrderCount)
	assert.Zero(t, totals.CustomerCount)
	assert.Zero(t, totals.TotalSales)
}
