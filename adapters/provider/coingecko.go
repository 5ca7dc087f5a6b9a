package provider

import (
	"context"
	"net/url"
	"strings"

	"github.com/satriahrh/gerch/domain"
)

// CoinGecko reads spot prices from the public CoinGecko API.
type CoinGecko struct {
	base
}

func NewCoinGecko(opts ...Option) *CoinGecko {
	return &CoinGecko{base: newBase("https://api.coingecko.com/api/v3", opts)}
}

// Prices returns USD prices in the order of coinIDs. Unknown ids are skipped.
func (c *CoinGecko) Prices(ctx context.Context, coinIDs []string) ([]domain.CoinPrice, error) {
	if len(coinIDs) == 0 {
		return nil, domain.ErrInvalidInput
	}

	var resp map[string]map[string]float64
	err := c.getJSON(ctx, "/simple/price", url.Values{
		"ids":                 {strings.Join(coinIDs, ",")},
		"vs_currencies":       {"usd"},
		"include_24hr_change": {"true"},
	}, &resp)
	if err != nil {
		return nil, err
	}

	prices := make([]domain.CoinPrice, 0, len(coinIDs))
	for _, id := range coinIDs {
		quote, ok := resp[id]
		if !ok {
			continue
		}
		usd, ok := quote["usd"]
		if !ok {
			continue
		}
		prices = append(prices, domain.CoinPrice{
			ID:        id,
			USD:       usd,
			Change24h: quote["usd_24h_change"],
		})
	}
	if len(prices) == 0 {
		return nil, domain.ErrNotFound
	}
	return prices, nil
}
