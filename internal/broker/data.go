package broker

import (
	"fmt"
	"time"

	"github.com/alpacahq/alpaca-trade-api-go/v3/marketdata"

	"CoinSentinel/internal/market"
	"CoinSentinel/internal/model"
)

// DataClient wraps the Alpaca historical crypto data API.
type DataClient struct {
	md     *marketdata.Client
	symbol string
}

// NewDataClient creates a historical data client for one symbol.
func NewDataClient(apiKey, apiSecret, symbol string) *DataClient {
	return &DataClient{
		md: marketdata.NewClient(marketdata.ClientOpts{
			APIKey:    apiKey,
			APISecret: apiSecret,
		}),
		symbol: symbol,
	}
}

// MinuteBars fetches up to limit recent minute bars, oldest first.
func (c *DataClient) MinuteBars(limit int) ([]model.Bar, error) {
	end := time.Now()
	start := end.Add(-time.Duration(limit+5) * time.Minute)
	bars, err := c.md.GetCryptoBars(c.symbol, marketdata.GetCryptoBarsRequest{
		TimeFrame:  marketdata.OneMin,
		Start:      start,
		End:        end,
		TotalLimit: limit,
	})
	if err != nil {
		return nil, fmt.Errorf("fetch minute bars: %w", err)
	}
	if len(bars) == 0 {
		return nil, market.ErrNoData
	}
	return c.convert(bars), nil
}

// HourBars fetches hour bars covering the given lookback, oldest first.
func (c *DataClient) HourBars(lookback time.Duration) ([]model.Bar, error) {
	end := time.Now()
	bars, err := c.md.GetCryptoBars(c.symbol, marketdata.GetCryptoBarsRequest{
		TimeFrame: marketdata.OneHour,
		Start:     end.Add(-lookback),
		End:       end,
	})
	if err != nil {
		return nil, fmt.Errorf("fetch hour bars: %w", err)
	}
	if len(bars) == 0 {
		return nil, market.ErrNoData
	}
	return c.convert(bars), nil
}

func (c *DataClient) convert(bars []marketdata.CryptoBar) []model.Bar {
	out := make([]model.Bar, len(bars))
	for i, b := range bars {
		out[i] = model.Bar{
			Symbol:    c.symbol,
			Timestamp: b.Timestamp,
			Open:      b.Open,
			High:      b.High,
			Low:       b.Low,
			Close:     b.Close,
			Volume:    b.Volume,
		}
	}
	return out
}
