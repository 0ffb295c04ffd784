package store

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/minsukang/channel-sales-manager/internal/entity"
)

func newTestDB(t *testing.T) *PostgresStore {
	dsn := os.Getenv("POSTGRES_TEST_DSN")
	if dsn == "" {
		t.Skip("POSTGRES_TEST_DSN not set")
	}

	db, err := New(context.Background(), Config{
		DSN:         dsn,
		Automigrate: true,
	})
	require.NoError(t, err)
	t.Cleanup(db.Close)

	_, err = db.db.ExecContext(context.Background(), "DELETE FROM sales_records")
	require.NoError(t, err)
	_, err = db.db.ExecContext(context.Background(), "DELETE FROM product_mappings")
	require.NoError(t, err)

	return db
}

func insertTestRecord(t *testing.T, db *PostgresStore, orderNo, channel, status string, placed time.Time, price float64, qty int) {
	_, err := db.db.ExecContext(context.Background(), `
		INSERT INTO sales_records
			(channel, order_number, order_date, customer_name, customer_id, product_name, option_name, quantity, price, status)
		VALUES ($1, $2, $3, '김민수', 'cust-1', 'Widget', 'Red', $4, $5, $6)`,
		channel, orderNo, placed, qty, price, status,
	)
	require.NoError(t, err)
}

func TestSalesStore_GetSalesRecords(t *testing.T) {
	db := newTestDB(t)
	ss := db.Sales()
	ctx := context.Background()

	july := time.Date(2025, 7, 15, 10, 30, 0, 0, time.UTC)
	insertTestRecord(t, db, "A1", entity.ChannelCoupang, "판매중", july, 1000, 2)
	insertTestRecord(t, db, "B1", entity.ChannelSmartstore, "취소", july, 500, 1)
	insertTestRecord(t, db, "C1", entity.ChannelCoupang, "판매중", july.AddDate(0, 2, 0), 300, 1)

	from := time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, 7, 31, 0, 0, 0, 0, time.UTC)

	records, err := ss.GetSalesRecords(ctx, from, to, "all")
	require.NoError(t, err)
	require.Len(t, records, 2) // cancelled rows are still served; September is not

	// The +00:00 label must survive the round trip for the normalizer.
	assert.Contains(t, records[0].OrderDate, "+00:00")
	assert.Equal(t, "2025-07-15T10:30:00+00:00", records[0].OrderDate)

	coupangOnly, err := ss.GetSalesRecords(ctx, from, to, entity.ChannelCoupang)
	require.NoError(t, err)
	require.Len(t, coupangOnly, 1)
	assert.Equal(t, "A1", coupangOnly[0].OrderNumber)
}

func TestSalesStore_GetRevenueSummary(t *testing.T) {
	db := newTestDB(t)
	ss := db.Sales()
	ctx := context.Background()

	july := time.Date(2025, 7, 15, 10, 30, 0, 0, time.UTC)
	insertTestRecord(t, db, "A1", entity.ChannelCoupang, "판매중", july, 1000, 2)
	insertTestRecord(t, db, "A1", entity.ChannelCoupang, "판매중", july, 500, 1)
	insertTestRecord(t, db, "B1", entity.ChannelSmartstore, "환불", july, 9999, 1)

	from := time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, 7, 31, 0, 0, 0, 0, time.UTC)

	sum, err := ss.GetRevenueSummary(ctx, from, to)
	require.NoError(t, err)

	assert.Equal(t, "2500", sum.Revenue.String())
	assert.Equal(t, 2, sum.Lines)
	assert.Equal(t, 1, sum.Orders)
}

func TestMappingsStore_Upsert(t *testing.T) {
	db := newTestDB(t)
	ms := db.Mappings()
	ctx := context.Background()

	m := entity.ProductMapping{
		ProductName:       "Widget",
		OptionName:        "Red",
		MappedProductName: "위젯",
		MappedOptionName:  "레드",
	}
	require.NoError(t, ms.UpsertProductMapping(ctx, m))

	m.MappedOptionName = "빨강"
	require.NoError(t, ms.UpsertProductMapping(ctx, m))

	mappings, err := ms.ListProductMappings(ctx)
	require.NoError(t, err)
	require.Len(t, mappings, 1)
	assert.Equal(t, "빨강", mappings[0].MappedOptionName)
}
