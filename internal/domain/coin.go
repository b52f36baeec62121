package domain

import "github.com/shopspring/decimal"

// CoinSummary is one row of the market table
type CoinSummary struct {
	ID                       string          `json:"id"`
	Symbol                   string          `json:"symbol"`
	Name                     string          `json:"name"`
	Image                    string          `json:"image"`
	CurrentPrice             decimal.Decimal `json:"current_price"`
	MarketCap                decimal.Decimal `json:"market_cap"`
	MarketCapRank            int             `json:"market_cap_rank"`
	PriceChangePercentage24h decimal.Decimal `json:"price_change_percentage_24h"`
	TotalVolume              decimal.Decimal `json:"total_volume"`
}

// ChangeDirection returns "positive", "negative", or "neutral"
func (c CoinSummary) ChangeDirection() string {
	return changeDirection(c.PriceChangePercentage24h)
}

// ImageSet holds the coin logo in the resolutions the API provides
type ImageSet struct {
	Thumb string `json:"thumb"`
	Small string `json:"small"`
	Large string `json:"large"`
}

// Links groups the external URLs of a coin
type Links struct {
	Homepage       []string `json:"homepage"`
	BlockchainSite []string `json:"blockchain_site"`
}

// DeveloperStats are repository statistics reported for the coin
type DeveloperStats struct {
	Stars       int64 `json:"stars"`
	Forks       int64 `json:"forks"`
	Subscribers int64 `json:"subscribers"`
}

// MarketDetail is the extended market data of a single coin (USD)
type MarketDetail struct {
	CurrentPrice             decimal.Decimal `json:"current_price"`
	MarketCap                decimal.Decimal `json:"market_cap"`
	TotalVolume              decimal.Decimal `json:"total_volume"`
	PriceChangePercentage24h decimal.Decimal `json:"price_change_percentage_24h"`
	PriceChangePercentage7d  decimal.Decimal `json:"price_change_percentage_7d"`
	PriceChangePercentage30d decimal.Decimal `json:"price_change_percentage_30d"`
	CirculatingSupply        decimal.Decimal `json:"circulating_supply"`
	TotalSupply              decimal.Decimal `json:"total_supply"`
	MaxSupply                Supply          `json:"max_supply"`
}

// ChangeDirection returns the 24h direction: "positive", "negative", or "neutral"
func (m MarketDetail) ChangeDirection() string {
	return changeDirection(m.PriceChangePercentage24h)
}

// CoinDetail is the extended record shown on the coin page
type CoinDetail struct {
	ID          string         `json:"id"`
	Symbol      string         `json:"symbol"`
	Name        string         `json:"name"`
	Image       ImageSet       `json:"image"`
	Description string         `json:"description"`
	Links       Links          `json:"links"`
	Developer   DeveloperStats `json:"developer"`
	Market      MarketDetail   `json:"market"`
}

func changeDirection(d decimal.Decimal) string {
	if d.IsPositive() {
		return "positive"
	}
	if d.IsNegative() {
		return "negative"
	}
	return "neutral"
}
