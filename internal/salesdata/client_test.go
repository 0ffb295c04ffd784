package salesdata

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/minsukang/channel-sales-manager/internal/entity"
)

func newTestClient(handler http.Handler) (*Client, *httptest.Server) {
	srv := httptest.NewServer(handler)
	return New(&Config{BaseURL: srv.URL, Timeout: 5 * time.Second}), srv
}

func salesHandler(t *testing.T, records []entity.SalesRecord) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/analytics/sales-data", r.URL.Path)
		assert.Regexp(t, `^\d{4}-\d{2}-\d{2}$`, r.URL.Query().Get("startDate"))
		assert.Regexp(t, `^\d{4}-\d{2}-\d{2}$`, r.URL.Query().Get("endDate"))
		assert.NotEmpty(t, r.URL.Query().Get("channel"))

		json.NewEncoder(w).Encode(map[string]any{
			"success": true,
			"data":    records,
		})
	})
}

func TestFetchRange(t *testing.T) {
	want := []entity.SalesRecord{
		{Channel: entity.ChannelCoupang, OrderNumber: "A1", ProductName: "Widget", Quantity: 1, Price: 1000, Status: "판매중"},
	}
	c, srv := newTestClient(salesHandler(t, want))
	defer srv.Close()

	from := time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, 7, 31, 0, 0, 0, 0, time.UTC)

	res, err := c.FetchRange(context.Background(), from, to, "")
	require.NoError(t, err)
	assert.Equal(t, want, res.Records)
	assert.NotEqual(t, res.Token.String(), "00000000-0000-0000-0000-000000000000")
}

func TestFetchRange_EnvelopeFailure(t *testing.T) {
	c, srv := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"success": false,
			"error":   "database unavailable",
		})
	}))
	defer srv.Close()

	_, err := c.FetchRange(context.Background(), time.Now(), time.Now(), ChannelAll)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "database unavailable")
}

func TestFetchRange_HTTPFailure(t *testing.T) {
	c, srv := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := c.FetchRange(context.Background(), time.Now(), time.Now(), ChannelAll)
	assert.Error(t, err)
}

func TestFetchWithComparison(t *testing.T) {
	var starts []string
	c, srv := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		starts = append(starts, r.URL.Query().Get("startDate"))
		json.NewEncoder(w).Encode(map[string]any{
			"success": true,
			"data": []entity.SalesRecord{
				{OrderNumber: r.URL.Query().Get("startDate")},
			},
		})
	}))
	defer srv.Close()

	current := entity.TimeRange{
		From: time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC),
		To:   time.Date(2025, 7, 31, 0, 0, 0, 0, time.UTC),
	}
	previous := entity.TimeRange{
		From: time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
		To:   time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC),
	}

	cmp, err := c.FetchWithComparison(context.Background(), current, previous, ChannelAll)
	require.NoError(t, err)

	require.Len(t, cmp.Current, 1)
	require.Len(t, cmp.Previous, 1)
	assert.Equal(t, "2025-07-01", cmp.Current[0].OrderNumber)
	assert.Equal(t, "2025-06-01", cmp.Previous[0].OrderNumber)
	assert.ElementsMatch(t, []string{"2025-07-01", "2025-06-01"}, starts)
}

func TestFetchWithComparison_EitherFailureFailsPair(t *testing.T) {
	c, srv := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("startDate") == "2025-06-01" {
			http.Error(w, "boom", http.StatusBadGateway)
			return
		}
		json.NewEncoder(w).Encode(map[string]any{"success": true, "data": []entity.SalesRecord{}})
	}))
	defer srv.Close()

	current := entity.TimeRange{From: time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC), To: time.Date(2025, 7, 31, 0, 0, 0, 0, time.UTC)}
	previous := entity.TimeRange{From: time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC), To: time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC)}

	_, err := c.FetchWithComparison(context.Background(), current, previous, ChannelAll)
	assert.Error(t, err)
}

func TestGenerationsDetectStaleFetches(t *testing.T) {
	c, srv := newTestClient(salesHandler(t, nil))
	defer srv.Close()

	from := time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, 7, 2, 0, 0, 0, 0, time.UTC)

	first, err := c.FetchRange(context.Background(), from, to, ChannelAll)
	require.NoError(t, err)
	second, err := c.FetchRange(context.Background(), from, to, ChannelAll)
	require.NoError(t, err)

	assert.True(t, c.IsStale(first.Generation))
	assert.False(t, c.IsStale(second.Generation))
	assert.NotEqual(t, first.Token, second.Token)
}

func TestFetchProductMappings(t *testing.T) {
	c, srv := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/analytics/product-mappings", r.URL.Path)
		json.NewEncoder(w).Encode(map[string]any{
			"success": true,
			"data": []entity.ProductMapping{
				{ProductName: "Widget", OptionName: "Red", MappedProductName: "위젯", MappedOptionName: "레드"},
			},
		})
	}))
	defer srv.Close()

	table, err := c.FetchProductMappings(context.Background())
	require.NoError(t, err)
	require.Len(t, table, 1)
	assert.Equal(t, "위젯", table["Widget|Red"].MappedProductName)
}
