package coingecko

import (
	"coinboard/internal/domain"

	"github.com/shopspring/decimal"
)

// marketResponse is one element of GET /coins/markets
type marketResponse struct {
	ID                       string          `json:"id"`
	Symbol                   string          `json:"symbol"`
	Name                     string          `json:"name"`
	Image                    string          `json:"image"`
	CurrentPrice             decimal.Decimal `json:"current_price"`
	MarketCap                decimal.Decimal `json:"market_cap"`
	MarketCapRank            *int            `json:"market_cap_rank"`
	PriceChangePercentage24h decimal.Decimal `json:"price_change_percentage_24h"`
	TotalVolume              decimal.Decimal `json:"total_volume"`
}

func (r marketResponse) toDomain() domain.CoinSummary {
	rank := 0
	if r.MarketCapRank != nil {
		rank = *r.MarketCapRank
	}
	return domain.CoinSummary{
		ID:                       r.ID,
		Symbol:                   r.Symbol,
		Name:                     r.Name,
		Image:                    r.Image,
		CurrentPrice:             r.CurrentPrice,
		MarketCap:                r.MarketCap,
		MarketCapRank:            rank,
		PriceChangePercentage24h: r.PriceChangePercentage24h,
		TotalVolume:              r.TotalVolume,
	}
}

// detailResponse is GET /coins/{id} with market and developer data enabled
type detailResponse struct {
	ID     string `json:"id"`
	Symbol string `json:"symbol"`
	Name   string `json:"name"`
	Image  struct {
		Thumb string `json:"thumb"`
		Small string `json:"small"`
		Large string `json:"large"`
	} `json:"image"`
	Description struct {
		En string `json:"en"`
	} `json:"description"`
	Links struct {
		Homepage       []string `json:"homepage"`
		BlockchainSite []string `json:"blockchain_site"`
	} `json:"links"`
	DeveloperData struct {
		Forks       *int64 `json:"forks"`
		Stars       *int64 `json:"stars"`
		Subscribers *int64 `json:"subscribers"`
	} `json:"developer_data"`
	MarketData struct {
		CurrentPrice             map[string]decimal.Decimal `json:"current_price"`
		MarketCap                map[string]decimal.Decimal `json:"market_cap"`
		TotalVolume              map[string]decimal.Decimal `json:"total_volume"`
		PriceChangePercentage24h decimal.Decimal            `json:"price_change_percentage_24h"`
		PriceChangePercentage7d  decimal.Decimal            `json:"price_change_percentage_7d"`
		PriceChangePercentage30d decimal.Decimal            `json:"price_change_percentage_30d"`
		CirculatingSupply        decimal.Decimal            `json:"circulating_supply"`
		TotalSupply              decimal.Decimal            `json:"total_supply"`
		MaxSupply                decimal.NullDecimal        `json:"max_supply"`
	} `json:"market_data"`
}

func (r detailResponse) toDomain(vsCurrency string) *domain.CoinDetail {
	md := r.MarketData

	maxSupply := domain.NoSupply()
	if md.MaxSupply.Valid {
		maxSupply = domain.SupplyOf(md.MaxSupply.Decimal)
	}

	return &domain.CoinDetail{
		ID:     r.ID,
		Symbol: r.Symbol,
		Name:   r.Name,
		Image: domain.ImageSet{
			Thumb: r.Image.Thumb,
			Small: r.Image.Small,
			Large: r.Image.Large,
		},
		Description: r.Description.En,
		Links: domain.Links{
			Homepage:       nonEmpty(r.Links.Homepage),
			BlockchainSite: nonEmpty(r.Links.BlockchainSite),
		},
		Developer: domain.DeveloperStats{
			Stars:       deref(r.DeveloperData.Stars),
			Forks:       deref(r.DeveloperData.Forks),
			Subscribers: deref(r.DeveloperData.Subscribers),
		},
		Market: domain.MarketDetail{
			CurrentPrice:             md.CurrentPrice[vsCurrency],
			MarketCap:                md.MarketCap[vsCurrency],
			TotalVolume:              md.TotalVolume[vsCurrency],
			PriceChangePercentage24h: md.PriceChangePercentage24h,
			PriceChangePercentage7d:  md.PriceChangePercentage7d,
			PriceChangePercentage30d: md.PriceChangePercentage30d,
			CirculatingSupply:        md.CirculatingSupply,
			TotalSupply:              md.TotalSupply,
			MaxSupply:                maxSupply,
		},
	}
}

// nonEmpty drops the blank padding entries the API returns in link lists
func nonEmpty(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}

func deref(p *int64) int64 {
	if p == nil {
		return 0
	}
	return *p
}
