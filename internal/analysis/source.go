// Package analysis defines the query surface the traversal engines need
// from the explorer gateway. Implementations return the esplora sentinel
// errors; the engines absorb per-node failures into report status fields
// instead of aborting.
package analysis

import (
	"context"
	"time"

	"github.com/vietddude/chainlens/internal/core/domain"
)

// Source is the typed accessor over the block explorer. A returned error
// always means "could not analyze this entity"; it never proves the entity
// does not exist.
type Source interface {
	// AddressInfo resolves an address's summary (balances, tx count).
	AddressInfo(ctx context.Context, address string) (*domain.AddressInfo, error)

	// AddressTxs lists the most recent transactions touching an address.
	AddressTxs(ctx context.Context, address string) ([]domain.Transaction, error)

	// Transaction fetches a transaction's full detail.
	Transaction(ctx context.Context, txid string) (*domain.Transaction, error)

	// Outspend fetches the spend status of output (txid, vout).
	Outspend(ctx context.Context, txid string, vout int) (*domain.Outspend, error)

	// Block fetches a block's summary by hash.
	Block(ctx context.Context, hash string) (*domain.Block, error)

	// BlockTxs fetches a block's transactions by hash.
	BlockTxs(ctx context.Context, hash string) ([]domain.Transaction, error)

	// PriceUSD fetches the BTC/USD price for a calendar date.
	PriceUSD(ctx context.Context, date time.Time) (float64, error)
}
