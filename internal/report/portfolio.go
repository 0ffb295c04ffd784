package report

import "github.com/minsukang/channel-sales-manager/internal/entity"

// Portfolio health grades, from a well diversified channel mix down to a
// single-channel concentration.
const (
	PortfolioStable       = "안정적"
	PortfolioNeedsBalance = "균형 필요"
	PortfolioConcentrated = "집중됨"
)

// PortfolioHealth scores how evenly revenue spreads across channels.
type PortfolioHealth struct {
	Score float64 `json:"score"`
	Grade string  `json:"grade"`
}

// CalculatePortfolioHealth derives a 0-100 diversification score from the
// channel mix percentages (summing to 100). The score is an inverse
// Herfindahl-Hirschman index scaled by 150 and clamped; the scaling constant
// is part of the reporting contract, not a tunable.
func CalculatePortfolioHealth(channelPercents []float64) PortfolioHealth {
	var hhi float64
	for _, p := range channelPercents {
		share := p / 100
		hhi += share * share
	}

	score := (1 - hhi) * 150
	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}

	grade := PortfolioConcentrated
	switch {
	case score > 60:
		grade = PortfolioStable
	case score > 30:
		grade = PortfolioNeedsBalance
	}
	return PortfolioHealth{Score: score, Grade: grade}
}

// ChannelMixPercents converts channel sales rows into the percentage mix the
// portfolio score expects. Returns nil when there are no sales.
func ChannelMixPercents(rows []entity.ChannelSalesRow) []float64 {
	var total float64
	for _, r := range rows {
		total += r.Sales
	}
	if total == 0 {
		return nil
	}
	percents := make([]float64, 0, len(rows))
	for _, r := range rows {
		percents = append(percents, r.Sales/total*100)
	}
	return percents
}
