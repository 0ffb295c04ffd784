package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/minsukang/channel-sales-manager/config"
	"github.com/minsukang/channel-sales-manager/internal/entity"
	"github.com/minsukang/channel-sales-manager/internal/report"
	"github.com/minsukang/channel-sales-manager/internal/salesdata"
)

var (
	compareCmd = &cobra.Command{
		Use:   "compare",
		Short: "Fetch a period and the equal-length previous period from a running instance and print totals with growth rates",
		RunE:  compare,
	}

	compareStart   string
	compareEnd     string
	compareChannel string
)

func init() {
	compareCmd.Flags().StringVar(&compareStart, "start", "", "period start date, YYYY-MM-DD")
	compareCmd.Flags().StringVar(&compareEnd, "end", "", "period end date, YYYY-MM-DD")
	compareCmd.Flags().StringVar(&compareChannel, "channel", salesdata.ChannelAll, "sales channel")
	rootCmd.AddCommand(compareCmd)
}

func compare(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadConfig(cfgFile)
	if err != nil {
		return fmt.Errorf("cannot load a config %v", err.Error())
	}

	from, err := time.Parse("2006-01-02", compareStart)
	if err != nil {
		return fmt.Errorf("invalid --start: %w", err)
	}
	to, err := time.Parse("2006-01-02", compareEnd)
	if err != nil {
		return fmt.Errorf("invalid --end: %w", err)
	}
	if to.Before(from) {
		return fmt.Errorf("--end is before --start")
	}

	days := int(to.Sub(from).Hours()/24) + 1
	current := entity.TimeRange{From: from, To: to}
	previous := entity.TimeRange{From: from.AddDate(0, 0, -days), To: from.AddDate(0, 0, -1)}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	cli := salesdata.New(&cfg.Upstream)
	cmp, err := cli.FetchWithComparison(ctx, current, previous, compareChannel)
	if err != nil {
		return err
	}

	curTotals := report.CalculateOrderAndCustomerCounts(report.FilterValidSales(cmp.Current))
	prevTotals := report.CalculateOrderAndCustomerCounts(report.FilterValidSales(cmp.Previous))

	out := struct {
		Current   entity.SalesTotals `json:"current"`
		Previous  entity.SalesTotals `json:"previous"`
		Growth    float64            `json:"salesGrowth"`
		OrdGrowth float64            `json:"orderGrowth"`
	}{
		Current:   curTotals,
		Previous:  prevTotals,
		Growth:    report.CalculateGrowthRate(curTotals.TotalSales, prevTotals.TotalSales),
		OrdGrowth: report.CalculateGrowthRate(float64(curTotals.OrderCount), float64(prevTotals.OrderCount)),
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
