package yahoo

import (
	"context"

	"econcharts/internal/fetcher"
)

// Fundamentals retrieves annual income statement line items, one record per
// fiscal period: totalRevenue and grossProfit keyed by the period end date.
func (c *Client) Fundamentals(ctx context.Context, symbol string) (*fetcher.Dataset, error) {
	res, err := c.quoteSummary(ctx, symbol, "incomeStatementHistory")
	if err != nil {
		return nil, err
	}

	if res.IncomeStatementHistory == nil || len(res.IncomeStatementHistory.IncomeStatementHistory) == 0 {
		return nil, fetcher.NewMalformedDataError(symbol, "income statement history is empty")
	}

	ds := fetcher.NewDataset(symbol)
	for _, st := range res.IncomeStatementHistory.IncomeStatementHistory {
		if st.EndDate.Fmt == "" {
			return nil, fetcher.NewMalformedDataError(symbol, "income statement without endDate")
		}
		ds.Add(fetcher.FieldTotalRevenue, st.EndDate.Fmt, st.TotalRevenue.Raw)
		ds.Add(fetcher.FieldGrossProfit, st.EndDate.Fmt, st.GrossProfit.Raw)
	}

	return ds, nil
}
