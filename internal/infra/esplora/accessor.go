package esplora

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/vietddude/chainlens/internal/core/domain"
)

// AddressInfo fetches the summary of an address: funded/spent totals and
// transaction count.
func (c *Client) AddressInfo(ctx context.Context, address string) (*domain.AddressInfo, error) {
	url := fmt.Sprintf("%s/address/%s", c.cfg.BaseURL, address)
	body, err := c.fetch(ctx, url, cacheVolatile)
	if err != nil {
		return nil, err
	}

	var info domain.AddressInfo
	if err := json.Unmarshal(body, &info); err != nil {
		return nil, fmt.Errorf("%w: address %s: %v", ErrMalformed, address, err)
	}
	return &info, nil
}

// AddressTxs fetches the most recent transactions touching an address.
func (c *Client) AddressTxs(ctx context.Context, address string) ([]domain.Transaction, error) {
	url := fmt.Sprintf("%s/address/%s/txs", c.cfg.BaseURL, address)
	body, err := c.fetch(ctx, url, cacheVolatile)
	if err != nil {
		return nil, err
	}

	var txs []domain.Transaction
	if err := json.Unmarshal(body, &txs); err != nil {
		return nil, fmt.Errorf("%w: txs for address %s: %v", ErrMalformed, address, err)
	}
	return txs, nil
}

// Transaction fetches the full detail of a transaction.
func (c *Client) Transaction(ctx context.Context, txid string) (*domain.Transaction, error) {
	url := fmt.Sprintf("%s/tx/%s", c.cfg.BaseURL, txid)
	body, err := c.fetch(ctx, url, cacheImmutable)
	if err != nil {
		return nil, err
	}

	var tx domain.Transaction
	if err := json.Unmarshal(body, &tx); err != nil {
		return nil, fmt.Errorf("%w: tx %s: %v", ErrMalformed, txid, err)
	}
	return &tx, nil
}

// Outspend fetches the spend status of output (txid, vout).
func (c *Client) Outspend(ctx context.Context, txid string, vout int) (*domain.Outspend, error) {
	url := fmt.Sprintf("%s/tx/%s/outspend/%d", c.cfg.BaseURL, txid, vout)
	body, err := c.fetch(ctx, url, cacheVolatile)
	if err != nil {
		return nil, err
	}

	var spend domain.Outspend
	if err := json.Unmarshal(body, &spend); err != nil {
		return nil, fmt.Errorf("%w: outspend %s:%d: %v", ErrMalformed, txid, vout, err)
	}
	return &spend, nil
}

// Block fetches the summary of a block by hash.
func (c *Client) Block(ctx context.Context, hash string) (*domain.Block, error) {
	url := fmt.Sprintf("%s/block/%s", c.cfg.BaseURL, hash)
	body, err := c.fetch(ctx, url, cacheImmutable)
	if err != nil {
		return nil, err
	}

	var block domain.Block
	if err := json.Unmarshal(body, &block); err != nil {
		return nil, fmt.Errorf("%w: block %s: %v", ErrMalformed, hash, err)
	}
	return &block, nil
}

// BlockTxs fetches the transactions of a block by hash.
func (c *Client) BlockTxs(ctx context.Context, hash string) ([]domain.Transaction, error) {
	url := fmt.Sprintf("%s/block/%s/txs", c.cfg.BaseURL, hash)
	body, err := c.fetch(ctx, url, cacheImmutable)
	if err != nil {
		return nil, err
	}

	var txs []domain.Transaction
	if err := json.Unmarshal(body, &txs); err != nil {
		return nil, fmt.Errorf("%w: txs for block %s: %v", ErrMalformed, hash, err)
	}
	return txs, nil
}

// PriceUSD fetches the BTC/USD price for a calendar date. Historical
// prices are immutable, so the response is cached without expiry.
func (c *Client) PriceUSD(ctx context.Context, date time.Time) (float64, error) {
	url := fmt.Sprintf("%s/coins/bitcoin/history?date=%s", c.cfg.PriceURL, date.Format("02-01-2006"))
	body, err := c.fetch(ctx, url, cacheImmutable)
	if err != nil {
		return 0, err
	}

	var resp struct {
		MarketData *struct {
			CurrentPrice map[string]float64 `json:"current_price"`
		} `json:"market_data"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		return 0, fmt.Errorf("%w: price history: %v", ErrMalformed, err)
	}
	if resp.MarketData == nil {
		return 0, fmt.Errorf("%w: price history: market_data missing", ErrMalformed)
	}

	price, ok := resp.MarketData.CurrentPrice["usd"]
	if !ok {
		return 0, fmt.Errorf("%w: price history: usd price missing", ErrMalformed)
	}
	return price, nil
}
