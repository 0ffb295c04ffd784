// Package salesdata is the HTTP client for the analytics query endpoint. It
// is the only network-touching piece of the reporting core; everything
// downstream is pure computation over the fetched slices.
package salesdata

import (
	"context"
	"encoding/json"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/minsukang/channel-sales-manager/internal/entity"
	"github.com/minsukang/channel-sales-manager/internal/report"
)

// ChannelAll is the sentinel for an unfiltered fetch.
const ChannelAll = "all"

const dateLayout = "2006-01-02"

type Config struct {
	BaseURL string        `mapstructure:"base_url"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// Client fetches sales records and product mappings. Every fetch carries a
// token and a monotonically increasing generation so callers racing a slow
// earlier request against a newer one can discard the stale result instead of
// overwriting fresh state.
type Client struct {
	cli *resty.Client
	gen atomic.Uint64
}

func New(c *Config) *Client {
	cli := resty.New()
	cli.SetBaseURL(c.BaseURL)
	if c.Timeout > 0 {
		cli.SetTimeout(c.Timeout)
	} else {
		cli.SetTimeout(10 * time.Second)
	}
	return &Client{cli: cli}
}

// Result is one fetched range plus its staleness handle.
type Result struct {
	Token      uuid.UUID
	Generation uint64
	Records    []entity.SalesRecord
}

// Comparison pairs a current and previous period fetched concurrently.
type Comparison struct {
	Token      uuid.UUID
	Generation uint64
	Current    []entity.SalesRecord
	Previous   []entity.SalesRecord
}

type salesEnvelope struct {
	Success bool                 `json:"success"`
	Data    []entity.SalesRecord `json:"data"`
	Error   string               `json:"error"`
}

type mappingEnvelope struct {
	Success bool                    `json:"success"`
	Data    []entity.ProductMapping `json:"data"`
	Error   string                  `json:"error"`
}

// FetchRange fetches one date range. Dates go over the wire as plain
// YYYY-MM-DD strings without time or zone. Fails loud: HTTP errors and
// success=false envelopes both return an error for the caller to surface.
func (c *Client) FetchRange(ctx context.Context, from, to time.Time, channel string) (*Result, error) {
	records, err := c.fetchSalesData(ctx, from, to, channel)
	if err != nil {
		return nil, err
	}
	return &Result{
		Token:      uuid.New(),
		Generation: c.gen.Add(1),
		Records:    records,
	}, nil
}

// FetchWithComparison fetches the current and previous periods concurrently.
// There is no partial-failure recovery: if either request fails the pair
// fails and the caller retries both.
func (c *Client) FetchWithComparison(ctx context.Context, current, previous entity.TimeRange, channel string) (*Comparison, error) {
	cmp := &Comparison{
		Token:      uuid.New(),
		Generation: c.gen.Add(1),
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		records, err := c.fetchSalesData(ctx, current.From, current.To, channel)
		if err != nil {
			return fmt.Errorf("current period: %w", err)
		}
		cmp.Current = records
		return nil
	})
	g.Go(func() error {
		records, err := c.fetchSalesData(ctx, previous.From, previous.To, channel)
		if err != nil {
			return fmt.Errorf("previous period: %w", err)
		}
		cmp.Previous = records
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return cmp, nil
}

// IsStale reports whether a fetch generation has been superseded by a newer
// request on this client.
func (c *Client) IsStale(generation uint64) bool {
	return generation < c.gen.Load()
}

func (c *Client) fetchSalesData(ctx context.Context, from, to time.Time, channel string) ([]entity.SalesRecord, error) {
	if channel == "" {
		channel = ChannelAll
	}
	resp, err := c.cli.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"startDate": from.Format(dateLayout),
			"endDate":   to.Format(dateLayout),
			"channel":   channel,
		}).
		Get("/api/analytics/sales-data")
	if err != nil {
		return nil, fmt.Errorf("could not fetch sales data: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("sales data request failed: %s: %s", resp.Status(), resp.String())
	}

	var env salesEnvelope
	if err := json.Unmarshal(resp.Body(), &env); err != nil {
		return nil, fmt.Errorf("could not unmarshal sales data response: %w: body: %v", err, resp.String())
	}
	if !env.Success {
		return nil, fmt.Errorf("sales data request rejected: %s", env.Error)
	}
	return env.Data, nil
}

// FetchProductMappings fetches the reconciliation table, indexed by
// "productName|optionName" for report.ApplyProductMappings.
func (c *Client) FetchProductMappings(ctx context.Context) (map[string]entity.ProductMapping, error) {
	resp, err := c.cli.R().
		SetContext(ctx).
		Get("/api/analytics/product-mappings")
	if err != nil {
		return nil, fmt.Errorf("could not fetch product mappings: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("product mappings request failed: %s", resp.Status())
	}

	var env mappingEnvelope
	if err := json.Unmarshal(resp.Body(), &env); err != nil {
		return nil, fmt.Errorf("could not unmarshal product mappings response: %w", err)
	}
	if !env.Success {
		return nil, fmt.Errorf("product mappings request rejected: %s", env.Error)
	}
	return report.MappingTable(env.Data), nil
}
