// Package report composes the analysis engines into one JSON-serializable
// report.
package report

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/vietddude/chainlens/internal/analysis"
	"github.com/vietddude/chainlens/internal/analysis/blockscan"
	"github.com/vietddude/chainlens/internal/analysis/cluster"
	"github.com/vietddude/chainlens/internal/analysis/flow"
	"github.com/vietddude/chainlens/internal/core/domain"
)

// Config holds the per-run analysis parameters.
type Config struct {
	ClusterDepth int
	FlowDepth    int
	ThresholdSat int64
}

// Assembler runs the requested analyses and collects their results. Every
// section is best-effort: per-entity failures become status fields, and
// only invalid caller input makes Assemble fail.
type Assembler struct {
	source   analysis.Source
	explorer *cluster.Explorer
	tracer   *flow.Tracer
	scanner  *blockscan.Scanner
	cfg      Config
	log      *slog.Logger

	now func() time.Time
}

func NewAssembler(source analysis.Source, cfg Config) *Assembler {
	return &Assembler{
		source:   source,
		explorer: cluster.NewExplorer(source),
		tracer:   flow.NewTracer(source),
		scanner:  blockscan.NewScanner(source),
		cfg:      cfg,
		log:      slog.Default(),
		now:      time.Now,
	}
}

// Assemble analyzes the given addresses, transaction, and block. Empty
// inputs skip their section.
func (a *Assembler) Assemble(ctx context.Context, addresses []string, txid, blockHash string) (*domain.Report, error) {
	rep := &domain.Report{
		RunID:       uuid.NewString(),
		GeneratedAt: a.now().UTC(),
		Addresses:   []domain.AddressReport{},
	}

	if price, err := a.source.PriceUSD(ctx, rep.GeneratedAt); err != nil {
		a.log.Warn("price lookup failed", "error", err)
	} else {
		rep.PriceUSD = price
	}

	if len(addresses) > 0 {
		for _, addr := range addresses {
			rep.Addresses = append(rep.Addresses, a.analyzeAddress(ctx, addr))
		}

		clusterSet, err := a.explorer.Explore(ctx, addresses, a.cfg.ClusterDepth)
		if err != nil {
			return nil, err
		}
		rep.Cluster = sortedMembers(clusterSet)
	}

	if txid != "" {
		a.log.Info("tracing transaction", "txid", txid, "depth", a.cfg.FlowDepth)
		node, err := a.tracer.Trace(ctx, txid, a.cfg.FlowDepth)
		if err != nil {
			return nil, err
		}
		rep.Transaction = node
	}

	if blockHash != "" {
		a.log.Info("scanning block", "block", blockHash, "threshold_sat", a.cfg.ThresholdSat)
		rep.Block = a.scanner.Scan(ctx, blockHash, a.cfg.ThresholdSat)
	}

	return rep, nil
}

func (a *Assembler) analyzeAddress(ctx context.Context, address string) domain.AddressReport {
	a.log.Info("analyzing address", "address", address)
	ar := domain.AddressReport{Address: address}

	info, err := a.source.AddressInfo(ctx, address)
	if err != nil {
		a.log.Warn("address summary unavailable", "address", address, "error", err)
		ar.Status = domain.StatusFetchError
	} else {
		ar.Info = info
		ar.BalanceSat = info.Balance()
	}

	txs, err := a.source.AddressTxs(ctx, address)
	if err != nil {
		a.log.Warn("address transactions unavailable", "address", address, "error", err)
		ar.Status = domain.StatusFetchError
		return ar
	}

	for _, tx := range txs {
		node, err := a.tracer.Trace(ctx, tx.TxID, a.cfg.FlowDepth)
		if err != nil {
			// Only possible on empty txid from a degenerate listing.
			a.log.Warn("skipping flow trace", "txid", tx.TxID, "error", err)
			continue
		}
		ar.Flows = append(ar.Flows, node)
	}
	return ar
}

// Write marshals the report with indentation to path.
func Write(rep *domain.Report, path string) error {
	data, err := json.MarshalIndent(rep, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	return nil
}

func sortedMembers(set map[string]struct{}) []string {
	members := make([]string, 0, len(set))
	for addr := range set {
		members = append(members, addr)
	}
	sort.Strings(members)
	return members
}
