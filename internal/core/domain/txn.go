package domain

// Prevout describes the output an input spends. Address is empty when the
// previous output is non-standard and carries no address.
type Prevout struct {
	Address string `json:"scriptpubkey_address,omitempty"`
	Value   int64  `json:"value"`
}

// Vin is a transaction input. Prevout is nil for coinbase inputs.
type Vin struct {
	TxID       string   `json:"txid"`
	Vout       uint32   `json:"vout"`
	Prevout    *Prevout `json:"prevout"`
	IsCoinbase bool     `json:"is_coinbase"`
}

// Vout is a transaction output. Outputs are identified by their position
// in the Vout slice. Address is empty for unspendable/non-standard outputs.
type Vout struct {
	ScriptPubKey     string `json:"scriptpubkey,omitempty"`
	ScriptPubKeyType string `json:"scriptpubkey_type,omitempty"`
	Address          string `json:"scriptpubkey_address,omitempty"`
	Value            int64  `json:"value"`
}

// TxConfirmation is the explorer's confirmation state for a transaction.
type TxConfirmation struct {
	Confirmed   bool   `json:"confirmed"`
	BlockHeight uint64 `json:"block_height,omitempty"`
	BlockHash   string `json:"block_hash,omitempty"`
	BlockTime   uint64 `json:"block_time,omitempty"`
}

// Transaction is the explorer's full view of a transaction.
type Transaction struct {
	TxID     string         `json:"txid"`
	Version  int32          `json:"version"`
	Locktime uint32         `json:"locktime"`
	Size     int            `json:"size"`
	Weight   int            `json:"weight"`
	Fee      int64          `json:"fee"`
	Vin      []Vin          `json:"vin"`
	Vout     []Vout         `json:"vout"`
	Status   TxConfirmation `json:"status"`
}

// OutputValue returns the summed value of all outputs in satoshis.
func (t *Transaction) OutputValue() int64 {
	var total int64
	for _, vout := range t.Vout {
		total += vout.Value
	}
	return total
}
