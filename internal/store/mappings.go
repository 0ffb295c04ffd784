package store

import (
	"context"
	"fmt"

	"github.com/minsukang/channel-sales-manager/internal/dependency"
	"github.com/minsukang/channel-sales-manager/internal/entity"
)

type mappingsStore struct {
	*PostgresStore
}

func (ps *PostgresStore) Mappings() dependency.Mappings {
	return &mappingsStore{PostgresStore: ps}
}

type productMappingRow struct {
	ProductName       string `db:"product_name"`
	OptionName        string `db:"option_name"`
	MappedProductName string `db:"mapped_product_name"`
	MappedOptionName  string `db:"mapped_option_name"`
}

func (ms *mappingsStore) ListProductMappings(ctx context.Context) ([]entity.ProductMapping, error) {
	query := `
		SELECT product_name, option_name, mapped_product_name, mapped_option_name
		FROM product_mappings
		ORDER BY product_name, option_name
	`
	rows, err := QueryListNamed[productMappingRow](ctx, ms.DB(), query, map[string]any{})
	if err != nil {
		return nil, fmt.Errorf("product mappings: %w", err)
	}

	mappings := make([]entity.ProductMapping, len(rows))
	for i, r := range rows {
		mappings[i] = entity.ProductMapping{
			ProductName:       r.ProductName,
			OptionName:        r.OptionName,
			MappedProductName: r.MappedProductName,
			MappedOptionName:  r.MappedOptionName,
		}
	}
	return mappings, nil
}

func (ms *mappingsStore) UpsertProductMapping(ctx context.Context, m entity.ProductMapping) error {
	query := `
		INSERT INTO product_mappings (product_name, option_name, mapped_product_name, mapped_option_name)
		VALUES (:productName, :optionName, :mappedProductName, :mappedOptionName)
		ON CONFLICT (product_name, option_name)
		DO UPDATE SET mapped_product_name = EXCLUDED.mapped_product_name,
			mapped_option_name = EXCLUDED.mapped_option_name,
			updated_at = now()
	`
	err := ExecNamed(ctx, ms.DB(), query, map[string]any{
		"productName":       m.ProductName,
		"optionName":        m.OptionName,
		"mappedProductName": m.MappedProductName,
		"mappedOptionName":  m.MappedOptionName,
	})
	if err != nil {
		return fmt.Errorf("upsert product mapping: %w", err)
	}
	return nil
}
