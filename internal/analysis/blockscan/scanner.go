// Package blockscan filters a block's transactions by output value.
package blockscan

import (
	"context"
	"log/slog"

	"github.com/vietddude/chainlens/internal/analysis"
	"github.com/vietddude/chainlens/internal/core/domain"
)

type Scanner struct {
	source analysis.Source
	log    *slog.Logger
}

func NewScanner(source analysis.Source) *Scanner {
	return &Scanner{source: source, log: slog.Default()}
}

// Scan fetches the block and keeps the transactions whose summed output
// value exceeds thresholdSat. Upstream failures surface on the report's
// status field, never as a fault.
func (s *Scanner) Scan(ctx context.Context, blockHash string, thresholdSat int64) *domain.BlockReport {
	report := &domain.BlockReport{LargeTxs: []domain.Transaction{}}

	block, err := s.source.Block(ctx, blockHash)
	if err != nil {
		s.log.Warn("block unavailable", "block", blockHash, "error", err)
		report.Status = domain.StatusFetchError
		return report
	}
	report.Block = block

	txs, err := s.source.BlockTxs(ctx, blockHash)
	if err != nil {
		s.log.Warn("block transactions unavailable", "block", blockHash, "error", err)
		report.Status = domain.StatusFetchError
		return report
	}

	for _, tx := range txs {
		if tx.OutputValue() > thresholdSat {
			report.LargeTxs = append(report.LargeTxs, tx)
		}
	}
	return report
}
