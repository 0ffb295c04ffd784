package dependency

import (
	"context"
	"database/sql"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/minsukang/channel-sales-manager/internal/entity"
)

type (
	// Sales reads order-line records for the analytics endpoints.
	Sales interface {
		// GetSalesRecords returns records placed within the KST calendar days
		// [from, to] for one channel, or for all channels when channel is
		// "all" or empty.
		GetSalesRecords(ctx context.Context, from, to time.Time, channel string) ([]entity.SalesRecord, error)
		// GetRevenueSummary returns exact monetary totals for the period,
		// cancel-family rows excluded in SQL.
		GetRevenueSummary(ctx context.Context, from, to time.Time) (*entity.RevenueSummary, error)
	}

	// Mappings manages the product reconciliation table.
	Mappings interface {
		ListProductMappings(ctx context.Context) ([]entity.ProductMapping, error)
		UpsertProductMapping(ctx context.Context, m entity.ProductMapping) error
	}

	Repository interface {
		Sales() Sales
		Mappings() Mappings
		Ping(ctx context.Context) error
		Close()
		DB() DB
	}

	// DB represents database interface.
	DB interface {
		BeginTxx(ctx context.Context, opts *sql.TxOptions) (*sqlx.Tx, error)
		ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)

		// sqlx methods
		GetContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
		NamedExecContext(ctx context.Context, query string, arg interface{}) (sql.Result, error)
		PrepareNamedContext(ctx context.Context, query string) (*sqlx.NamedStmt, error)
		QueryRowxContext(ctx context.Context, query string, args ...interface{}) *sqlx.Row
		QueryxContext(ctx context.Context, query string, args ...interface{}) (*sqlx.Rows, error)
		SelectContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
	}
)
