// Package cluster discovers the set of addresses connected to a seed set
// via shared transaction membership, within a depth bound.
package cluster

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/vietddude/chainlens/internal/analysis"
)

const (
	// maxDepth caps exploration regardless of caller input.
	maxDepth = 5
	// txLimit bounds per-address work against very active addresses.
	txLimit = 100
)

// Explorer walks the bipartite address↔transaction graph.
type Explorer struct {
	source analysis.Source
	log    *slog.Logger
}

func NewExplorer(source analysis.Source) *Explorer {
	return &Explorer{source: source, log: slog.Default()}
}

// state carries the traversal bookkeeping for a single Explore call. It is
// built fresh per call so unrelated explorations never share state.
//
// addrDepth and txDepth record the largest remaining depth an address or
// transaction has been expanded at. Re-expanding when a node is reached
// again with more remaining depth makes the resulting cluster a pure
// function of reachability: membership cannot depend on which frontier
// entry happened to be expanded first.
type state struct {
	addrDepth map[string]int
	txDepth   map[string]int
	cluster   map[string]struct{}
}

// Explore returns every address reachable from seeds within depth hops.
// An empty seed set yields an empty cluster. A fetch failure for one
// address or transaction skips that branch; siblings are still explored.
func (e *Explorer) Explore(ctx context.Context, seeds []string, depth int) (map[string]struct{}, error) {
	if depth < 0 {
		return nil, fmt.Errorf("cluster depth must be non-negative, got %d", depth)
	}
	if depth > maxDepth {
		e.log.Debug("capping cluster depth", "requested", depth, "max", maxDepth)
		depth = maxDepth
	}

	st := &state{
		addrDepth: make(map[string]int),
		txDepth:   make(map[string]int),
		cluster:   make(map[string]struct{}),
	}
	for _, addr := range seeds {
		if addr == "" {
			continue
		}
		st.cluster[addr] = struct{}{}
	}
	for _, addr := range seeds {
		if addr == "" {
			continue
		}
		e.expand(ctx, st, addr, depth)
	}
	return st.cluster, nil
}

func (e *Explorer) expand(ctx context.Context, st *state, address string, depth int) {
	if depth <= 0 || ctx.Err() != nil {
		return
	}
	if prev, ok := st.addrDepth[address]; ok && prev >= depth {
		return
	}
	st.addrDepth[address] = depth
	st.cluster[address] = struct{}{}

	txs, err := e.source.AddressTxs(ctx, address)
	if err != nil {
		e.log.Warn("skipping address, transactions unavailable", "address", address, "error", err)
		return
	}
	if len(txs) > txLimit {
		txs = txs[:txLimit]
	}

	for _, tx := range txs {
		if prev, ok := st.txDepth[tx.TxID]; ok && prev >= depth {
			continue
		}
		st.txDepth[tx.TxID] = depth

		detail, err := e.source.Transaction(ctx, tx.TxID)
		if err != nil {
			e.log.Warn("skipping transaction, detail unavailable", "txid", tx.TxID, "error", err)
			continue
		}

		for _, vin := range detail.Vin {
			if vin.Prevout == nil || vin.Prevout.Address == "" {
				continue
			}
			e.expand(ctx, st, vin.Prevout.Address, depth-1)
		}
		for _, vout := range detail.Vout {
			if vout.Address == "" {
				continue
			}
			e.expand(ctx, st, vout.Address, depth-1)
		}
	}
}
