// Package marketclient calls the external market-registration service
// that records newly observed Serum markets.
package marketclient

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-resty/resty/v2"

	"github.com/solrelay/txstream/internal/solana"
)

var errHTTPError = errors.New("market gateway http error")

// Client records Serum markets with the gateway service.
type Client interface {
	CreateSerumMarket(ctx context.Context, req CreateSerumMarketRequest) error
}

// CreateSerumMarketRequest is the body posted to the gateway when a
// Serum InitializeMarket instruction is decoded: the nine account
// addresses the instruction carries, plus the five numeric fields from
// the decoded payload.
type CreateSerumMarketRequest struct {
	MarketID     solana.Address `json:"market_id"`
	RequestQueue solana.Address `json:"request_queue"`
	EventQueue   solana.Address `json:"event_queue"`
	Bids         solana.Address `json:"bids"`
	Asks         solana.Address `json:"asks"`
	BaseSplVault solana.Address `json:"base_spl_vault"`
	QuoteSplVault solana.Address `json:"quote_spl_vault"`
	BaseToken    solana.Address `json:"base_token"`
	QuoteToken   solana.Address `json:"quote_token"`

	BaseLotSize        uint64 `json:"base_lot_size"`
	QuoteLotSize       uint64 `json:"quote_lot_size"`
	FeeRateBps         uint16 `json:"fee_rate_bps"`
	VaultSignerNonce   uint64 `json:"vault_signer_nonce"`
	QuoteDustThreshold uint64 `json:"quote_dust_threshold"`
}

type createSerumMarketResponse struct {
	Error string `json:"error,omitempty"`
}

type httpClient struct {
	rc *resty.Client
}

// New returns a Client that posts to baseURL with apiKey as a bearer
// token. A startup error is never returned here; a dead gateway
// surfaces as a handler-level warning instead of failing the process.
func New(baseURL, apiKey string) Client {
	rc := resty.New().
		SetBaseURL(baseURL).
		SetHeader("Authorization", "Bearer "+apiKey).
		SetHeader("Content-Type", "application/json")
	return &httpClient{rc: rc}
}

func (c *httpClient) CreateSerumMarket(ctx context.Context, req CreateSerumMarketRequest) error {
	result := &createSerumMarketResponse{}
	resp, err := c.rc.R().
		SetContext(ctx).
		SetBody(req).
		SetResult(result).
		Post("/markets/serum")
	if err != nil {
		return fmt.Errorf("create serum market: %w", err)
	}
	if resp.IsError() {
		return fmt.Errorf("create serum market: status %d: %w", resp.StatusCode(), errHTTPError)
	}
	if result.Error != "" {
		return fmt.Errorf("create serum market: gateway error: %s", result.Error)
	}
	return nil
}
