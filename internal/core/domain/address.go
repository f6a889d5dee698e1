package domain

// TxStats aggregates funded/spent output totals for an address as reported
// by the explorer. All sums are satoshis.
type TxStats struct {
	FundedTxoCount int   `json:"funded_txo_count"`
	FundedTxoSum   int64 `json:"funded_txo_sum"`
	SpentTxoCount  int   `json:"spent_txo_count"`
	SpentTxoSum    int64 `json:"spent_txo_sum"`
	TxCount        int   `json:"tx_count"`
}

// AddressInfo is the explorer's summary view of an address. ChainStats
// covers confirmed transactions, MempoolStats covers unconfirmed ones.
type AddressInfo struct {
	Address      string  `json:"address"`
	ChainStats   TxStats `json:"chain_stats"`
	MempoolStats TxStats `json:"mempool_stats"`
}

// Balance returns confirmed funded minus spent satoshis. A negative result
// means the upstream data is inconsistent, not a local bug.
func (a *AddressInfo) Balance() int64 {
	return a.ChainStats.FundedTxoSum - a.ChainStats.SpentTxoSum
}
