// Package flow traces a transaction's outputs forward through the chain
// of transactions that spend them, producing a spend tree.
package flow

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/vietddude/chainlens/internal/analysis"
	"github.com/vietddude/chainlens/internal/core/domain"
	"github.com/vietddude/chainlens/internal/infra/esplora"
)

// Tracer follows spend links. "Spent by" is a function (at most one
// spender per output), so a well-formed chain cannot loop; the tracer
// still guards against an upstream claiming a self-referential spend.
type Tracer struct {
	source analysis.Source
	log    *slog.Logger
}

func NewTracer(source analysis.Source) *Tracer {
	return &Tracer{source: source, log: slog.Default()}
}

// Trace builds the spend tree rooted at txid, descending at most maxDepth
// levels. Fetch failures are absorbed into status nodes; only invalid
// input returns an error.
func (t *Tracer) Trace(ctx context.Context, txid string, maxDepth int) (*domain.TraceNode, error) {
	if txid == "" {
		return nil, errors.New("txid is required")
	}
	if maxDepth < 0 {
		return nil, fmt.Errorf("flow depth must be non-negative, got %d", maxDepth)
	}
	return t.trace(ctx, txid, maxDepth, 0, make(map[string]struct{})), nil
}

// path holds the txids from the root to the current node. A repeat txid
// on the path means the upstream answered with an impossible spend cycle;
// it is cut off as a max-depth leaf instead of recursing forever.
func (t *Tracer) trace(ctx context.Context, txid string, maxDepth, depth int, path map[string]struct{}) *domain.TraceNode {
	if depth >= maxDepth {
		return &domain.TraceNode{TxID: txid, Status: domain.StatusMaxDepth}
	}
	if _, ok := path[txid]; ok {
		t.log.Warn("spend cycle reported by upstream, cutting trace", "txid", txid)
		return &domain.TraceNode{TxID: txid, Status: domain.StatusMaxDepth}
	}

	tx, err := t.source.Transaction(ctx, txid)
	if err != nil {
		if errors.Is(err, esplora.ErrNotFound) {
			return &domain.TraceNode{TxID: txid, Status: domain.StatusNotFound}
		}
		t.log.Warn("transaction unavailable", "txid", txid, "error", err)
		return &domain.TraceNode{TxID: txid, Status: domain.StatusFetchError}
	}

	path[txid] = struct{}{}
	defer delete(path, txid)

	node := &domain.TraceNode{TxID: txid}
	for _, vin := range tx.Vin {
		in := domain.TraceInput{}
		if vin.Prevout != nil {
			in.PrevoutAddress = vin.Prevout.Address
			in.PrevoutValue = vin.Prevout.Value
		}
		node.Inputs = append(node.Inputs, in)
	}

	for n, vout := range tx.Vout {
		out := domain.TraceOutput{Address: vout.Address, Value: vout.Value}

		spend, err := t.source.Outspend(ctx, txid, n)
		switch {
		case err != nil:
			// Only this output's branch is lost; siblings are still traced.
			t.log.Warn("outspend lookup failed", "txid", txid, "vout", n, "error", err)
			out.Status = domain.StatusError
		case spend.Spent && spend.TxID != "":
			out.Spend = t.trace(ctx, spend.TxID, maxDepth, depth+1, path)
		default:
			out.Status = domain.StatusUnspent
		}

		node.Outputs = append(node.Outputs, out)
	}
	return node
}
