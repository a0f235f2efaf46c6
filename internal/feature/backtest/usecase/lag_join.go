package usecase

import (
	"sort"
	"time"

	"stock_api/internal/feature/backtest/domain/entity"
	priceentity "stock_api/internal/feature/prices/domain/entity"
	"stock_api/internal/shared/tradingdate"
)

// AlignLagged joins every row of series with the same symbol's row lagA and lagB
// calendar days earlier. Only an exact date match counts; a lag landing on a day
// without a record leaves the value absent.
// The result holds rows dated within [start, end], ordered by symbol then date.
func AlignLagged(series []priceentity.PriceRecord, start, end time.Time, a, b entity.LaggedField) []entity.AlignedRow {
	if len(series) == 0 {
		return nil
	}

	bySymbol := make(map[string][]priceentity.PriceRecord)
	for _, r := range series {
		bySymbol[r.Symbol] = append(bySymbol[r.Symbol], r)
	}
	symbols := make([]string, 0, len(bySymbol))
	for s := range bySymbol {
		symbols = append(symbols, s)
	}
	sort.Strings(symbols)

	var out []entity.AlignedRow
	for _, s := range symbols {
		rows := bySymbol[s]
		sort.SliceStable(rows, func(i, j int) bool { return rows[i].Date.Before(rows[j].Date) })

		byDate := make(map[string]priceentity.PriceRecord, len(rows))
		for _, r := range rows {
			byDate[tradingdate.Format(r.Date)] = r
		}

		for _, r := range rows {
			if r.Date.Before(start) || r.Date.After(end) {
				continue
			}
			row := entity.AlignedRow{
				Symbol: r.Symbol,
				Date:   r.Date,
				Open:   r.Open,
				High:   r.High,
				Low:    r.Low,
				Close:  r.Close,
			}
			if lagged, ok := byDate[tradingdate.Format(tradingdate.DaysBefore(r.Date, a.LagDays))]; ok {
				row.ValueA, row.HasA = a.Field.Of(lagged), true
			}
			if lagged, ok := byDate[tradingdate.Format(tradingdate.DaysBefore(r.Date, b.LagDays))]; ok {
				row.ValueB, row.HasB = b.Field.Of(lagged), true
			}
			out = append(out, row)
		}
	}
	return out
}
