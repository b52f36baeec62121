package coingecko

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"coinboard/internal/domain"
	"coinboard/internal/infra"
)

const (
	opCoinList   = "coin_list"
	opCoinDetail = "coin_detail"

	// maxBodyBytes bounds a single response; the full markets page is ~60KB
	maxBodyBytes = 8 << 20
)

// Client is the CoinGecko v3 REST client (Boundary Layer).
// It is safe for concurrent use and performs exactly one request per call.
type Client struct {
	baseURL    string
	vsCurrency string
	perPage    int
	httpClient *http.Client
	metrics    *infra.Metrics
	logger     *slog.Logger
}

var _ domain.MarketDataSource = (*Client)(nil)

// NewClient creates a new CoinGecko API client.
// metrics may be nil.
func NewClient(cfg *infra.Config, metrics *infra.Metrics) *Client {
	if metrics == nil {
		metrics = &infra.Metrics{}
	}
	return &Client{
		baseURL:    strings.TrimRight(cfg.API.BaseURL, "/"),
		vsCurrency: cfg.API.VsCurrency,
		perPage:    cfg.API.PerPage,
		httpClient: &http.Client{
			Timeout: cfg.RequestTimeout(),
			Transport: &http.Transport{
				MaxIdleConns:    10,
				IdleConnTimeout: 30 * time.Second,
			},
		},
		metrics: metrics,
		logger:  slog.Default().With("module", "coingecko_client"),
	}
}

// FetchCoinList returns the first market page ordered by market cap.
func (c *Client) FetchCoinList(ctx context.Context) ([]domain.CoinSummary, error) {
	query := url.Values{}
	query.Set("vs_currency", c.vsCurrency)
	query.Set("order", "market_cap_desc")
	query.Set("per_page", strconv.Itoa(c.perPage))
	query.Set("page", "1")
	query.Set("sparkline", "false")

	body, status, err := c.doGet(ctx, opCoinList, "/coins/markets", query)
	if err != nil {
		return nil, err
	}
	if status < 200 || status > 299 {
		c.metrics.RecordFailure()
		return nil, &domain.NetworkError{
			Op:         opCoinList,
			StatusCode: status,
			Err:        fmt.Errorf("unexpected status code: %d", status),
		}
	}

	var data []marketResponse
	if err := json.Unmarshal(body, &data); err != nil {
		c.metrics.RecordDecodeFailure()
		c.logger.Warn("Coin list decode failed", slog.Any("error", err))
		return nil, &domain.DecodeError{Op: opCoinList, Err: err}
	}

	coins := make([]domain.CoinSummary, 0, len(data))
	for _, m := range data {
		if m.ID == "" {
			c.metrics.RecordDecodeFailure()
			return nil, &domain.DecodeError{Op: opCoinList, Err: fmt.Errorf("coin without id")}
		}
		coins = append(coins, m.toDomain())
	}

	return domain.UniqueByID(coins), nil
}

// FetchCoinDetail returns the extended record for id.
// A malformed id, a non-2xx answer or an undecodable body yields (nil, nil);
// only transport failures are returned as errors.
func (c *Client) FetchCoinDetail(ctx context.Context, id string) (*domain.CoinDetail, error) {
	if !domain.ValidCoinID(id) {
		c.logger.Debug("Rejected coin id", slog.String("id", id))
		return nil, nil
	}

	query := url.Values{}
	query.Set("localization", "false")
	query.Set("tickers", "false")
	query.Set("market_data", "true")
	query.Set("community_data", "false")
	query.Set("developer_data", "true")
	query.Set("sparkline", "false")

	body, status, err := c.doGet(ctx, opCoinDetail, "/coins/"+url.PathEscape(id), query)
	if err != nil {
		return nil, err
	}
	if status < 200 || status > 299 {
		c.logger.Info("Coin detail not available", slog.String("id", id), slog.Int("status", status))
		return nil, nil
	}

	var data detailResponse
	if err := json.Unmarshal(body, &data); err != nil {
		c.metrics.RecordDecodeFailure()
		c.logger.Warn("Coin detail decode failed", slog.String("id", id), slog.Any("error", err))
		return nil, nil
	}
	if data.ID == "" {
		c.metrics.RecordDecodeFailure()
		c.logger.Warn("Coin detail without id", slog.String("id", id))
		return nil, nil
	}

	return data.toDomain(c.vsCurrency), nil
}

// doGet performs a single GET and returns the body and status.
// Transport and read failures come back as *domain.NetworkError.
func (c *Client) doGet(ctx context.Context, op, path string, query url.Values) ([]byte, int, error) {
	reqURL := c.baseURL + path
	if len(query) > 0 {
		reqURL += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, 0, domain.NewNetworkError(op, err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", infra.DefaultUserAgent)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.metrics.RecordFailure()
		c.logger.Warn("Request failed", slog.String("op", op), slog.Any("error", err))
		return nil, 0, domain.NewNetworkError(op, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		c.metrics.RecordFailure()
		return nil, resp.StatusCode, domain.NewNetworkError(op, err)
	}

	latency := time.Since(start)
	c.metrics.RecordRequest(latency)
	c.logger.Debug("Request completed",
		slog.String("op", op),
		slog.Int("status", resp.StatusCode),
		slog.Duration("latency", latency),
	)

	return body, resp.StatusCode, nil
}
