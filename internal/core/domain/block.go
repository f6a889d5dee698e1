package domain

// Block is the explorer's summary view of a block.
type Block struct {
	ID                string `json:"id"`
	Height            uint64 `json:"height"`
	Version           uint32 `json:"version"`
	Timestamp         uint64 `json:"timestamp"`
	TxCount           int    `json:"tx_count"`
	Size              int    `json:"size"`
	Weight            int    `json:"weight"`
	MerkleRoot        string `json:"merkle_root"`
	PreviousBlockHash string `json:"previousblockhash"`
	Nonce             uint32 `json:"nonce"`
	Bits              uint32 `json:"bits"`
}

// Outspend reports whether and where an output has been spent. At most one
// transaction can spend an output; the explorer's answer is trusted.
type Outspend struct {
	Spent  bool            `json:"spent"`
	TxID   string          `json:"txid,omitempty"`
	Vin    uint32          `json:"vin,omitempty"`
	Status *TxConfirmation `json:"status,omitempty"`
}
