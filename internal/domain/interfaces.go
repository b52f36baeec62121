package domain

import "context"

// MarketDataSource is the boundary to the remote market-data API.
// Views receive it through their constructors.
type MarketDataSource interface {
	// FetchCoinList returns the current market table.
	// Fails with *NetworkError or *DecodeError.
	FetchCoinList(ctx context.Context) ([]CoinSummary, error)

	// FetchCoinDetail returns the extended record for id, or (nil, nil)
	// when the id is malformed or unknown. Fails with *NetworkError.
	FetchCoinDetail(ctx context.Context, id string) (*CoinDetail, error)
}
