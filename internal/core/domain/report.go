package domain

import "time"

// AddressReport is the per-address section of a report: the explorer
// summary plus a forward flow trace of each of the address's transactions.
type AddressReport struct {
	Address    string       `json:"address"`
	Status     string       `json:"status,omitempty"`
	Info       *AddressInfo `json:"info,omitempty"`
	BalanceSat int64        `json:"balance_sat"`
	Flows      []*TraceNode `json:"transactions_flow,omitempty"`
}

// BlockReport is the result of scanning a block for large transactions.
type BlockReport struct {
	Status   string        `json:"status,omitempty"`
	Block    *Block        `json:"block_info,omitempty"`
	LargeTxs []Transaction `json:"large_transactions"`
}

// Report is the full analysis output. Every section is best-effort:
// upstream failures surface as status fields, never as a missing report.
type Report struct {
	RunID       string          `json:"run_id"`
	GeneratedAt time.Time       `json:"generated_at"`
	PriceUSD    float64         `json:"btc_price_usd,omitempty"`
	Addresses   []AddressReport `json:"addresses"`
	Cluster     []string        `json:"cluster,omitempty"`
	Transaction *TraceNode      `json:"transaction,omitempty"`
	Block       *BlockReport    `json:"block,omitempty"`
}
