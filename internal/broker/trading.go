package broker

import (
	"fmt"

	"github.com/alpacahq/alpaca-trade-api-go/v3/alpaca"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"CoinSentinel/internal/model"
)

const (
	paperTradingURL = "https://paper-api.alpaca.markets"
	liveTradingURL  = "https://api.alpaca.markets"
)

// TradingClient wraps the Alpaca trading API for account queries and
// notional market buys.
type TradingClient struct {
	client *alpaca.Client
}

// NewTradingClient creates a trading client against paper or live.
func NewTradingClient(apiKey, apiSecret string, paper bool) *TradingClient {
	baseURL := liveTradingURL
	if paper {
		baseURL = paperTradingURL
	}
	return &TradingClient{
		client: alpaca.NewClient(alpaca.ClientOpts{
			APIKey:    apiKey,
			APISecret: apiSecret,
			BaseURL:   baseURL,
		}),
	}
}

// AccountSnapshot fetches the current account figures.
func (c *TradingClient) AccountSnapshot() (model.AccountSnapshot, error) {
	account, err := c.client.GetAccount()
	if err != nil {
		return model.AccountSnapshot{}, fmt.Errorf("get account: %w", err)
	}
	cash, _ := account.Cash.Float64()
	portfolio, _ := account.PortfolioValue.Float64()
	buyingPower, _ := account.BuyingPower.Float64()
	equity, _ := account.Equity.Float64()
	lastEquity, _ := account.LastEquity.Float64()
	return model.AccountSnapshot{
		Cash:           cash,
		PortfolioValue: portfolio,
		BuyingPower:    buyingPower,
		DailyPL:        equity - lastEquity,
	}, nil
}

// PlaceBuy submits a notional market BUY order. The returned order is only
// non-nil when the broker confirmed the submission.
func (c *TradingClient) PlaceBuy(symbol string, notional float64) (*model.Order, error) {
	amount := decimal.NewFromFloat(notional)
	order, err := c.client.PlaceOrder(alpaca.PlaceOrderRequest{
		Symbol:        symbol,
		Notional:      &amount,
		Side:          alpaca.Buy,
		Type:          alpaca.Market,
		TimeInForce:   alpaca.GTC,
		ClientOrderID: "coinsentinel-" + uuid.NewString(),
	})
	if err != nil {
		return nil, fmt.Errorf("place buy order: %w", err)
	}

	o := &model.Order{
		ID:            order.ID,
		ClientOrderID: order.ClientOrderID,
		Symbol:        symbol,
		Notional:      notional,
		Status:        string(order.Status),
		CreatedAt:     order.CreatedAt,
	}
	if order.FilledAvgPrice != nil {
		o.FilledAvgPrice, _ = order.FilledAvgPrice.Float64()
	}
	return o, nil
}
