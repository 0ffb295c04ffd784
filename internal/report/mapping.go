package report

import "github.com/minsukang/channel-sales-manager/internal/entity"

// ApplyProductMappings rewrites raw product name/option pairs to their
// canonical form. Mappings are keyed by "productName|optionName", the same key
// the product aggregator groups on. The input slice is not mutated; a record
// with no mapping is marked 미매핑. Matching status never affects totals.
func ApplyProductMappings(records []entity.SalesRecord, mappings map[string]entity.ProductMapping) []entity.SalesRecord {
	out := make([]entity.SalesRecord, len(records))
	for i, r := range records {
		if m, ok := mappings[r.ProductKey()]; ok {
			r.ProductName = m.MappedProductName
			r.OptionName = m.MappedOptionName
			r.MatchingStatus = entity.MatchingMapped
		} else if r.MatchingStatus == "" {
			r.MatchingStatus = entity.MatchingUnmapped
		}
		out[i] = r
	}
	return out
}

// MappingTable indexes a mapping list by raw product key.
func MappingTable(mappings []entity.ProductMapping) map[string]entity.ProductMapping {
	table := make(map[string]entity.ProductMapping, len(mappings))
	for _, m := range mappings {
		table[m.Key()] = m
	}
	return table
}
