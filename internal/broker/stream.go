package broker

import (
	"context"
	"log"
	"time"

	"github.com/alpacahq/alpaca-trade-api-go/v3/marketdata"
	"github.com/alpacahq/alpaca-trade-api-go/v3/marketdata/stream"

	"CoinSentinel/internal/model"
)

// BarHandlers receives normalized bars from the crypto stream. Within a
// channel delivery is timestamp-ordered; ordering across channels is not
// guaranteed by the broker.
type BarHandlers struct {
	OnBar       func(model.Bar) // newly completed minute bar
	OnCorrected func(model.Bar) // amendment of the most recent minute bar
	OnDaily     func(model.Bar) // daily bar
}

// Stream maintains the crypto bar subscription, reconnecting with backoff
// when the connection drops. It owns no market state; everything it receives
// is handed to the configured handlers.
type Stream struct {
	apiKey    string
	apiSecret string
	symbol    string
	handlers  BarHandlers
}

// NewStream creates a stream for one symbol.
func NewStream(apiKey, apiSecret, symbol string, h BarHandlers) *Stream {
	return &Stream{apiKey: apiKey, apiSecret: apiSecret, symbol: symbol, handlers: h}
}

// Run blocks until ctx is cancelled. Connection loss is logged and retried;
// it never propagates to the caller.
func (s *Stream) Run(ctx context.Context) {
	backoff := time.Second
	for {
		c := stream.NewCryptoClient(marketdata.US,
			stream.WithCredentials(s.apiKey, s.apiSecret),
			stream.WithCryptoBars(s.newBar, s.symbol),
			stream.WithCryptoUpdatedBars(s.correctedBar, s.symbol),
			stream.WithCryptoDailyBars(s.dailyBar, s.symbol),
		)

		if err := c.Connect(ctx); err != nil {
			log.Printf("[ERROR] crypto stream connect: %v", err)
		} else {
			log.Printf("[INFO] crypto stream connected for %s", s.symbol)
			backoff = time.Second
			if err := <-c.Terminated(); err != nil {
				log.Printf("[WARN] crypto stream terminated: %v", err)
			}
		}

		select {
		case <-ctx.Done():
			return
		case <-time.After(backoff):
		}
		if backoff < 30*time.Second {
			backoff *= 2
		}
	}
}

func (s *Stream) newBar(b stream.CryptoBar) {
	if s.handlers.OnBar != nil {
		s.handlers.OnBar(convertStreamBar(b))
	}
}

func (s *Stream) correctedBar(b stream.CryptoBar) {
	if s.handlers.OnCorrected != nil {
		s.handlers.OnCorrected(convertStreamBar(b))
	}
}

func (s *Stream) dailyBar(b stream.CryptoBar) {
	if s.handlers.OnDaily != nil {
		s.handlers.OnDaily(convertStreamBar(b))
	}
}

func convertStreamBar(b stream.CryptoBar) model.Bar {
	return model.Bar{
		Symbol:    b.Symbol,
		Timestamp: b.Timestamp,
		Open:      b.Open,
		High:      b.High,
		Low:       b.Low,
		Close:     b.Close,
		Volume:    b.Volume,
	}
}
