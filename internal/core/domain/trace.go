package domain

// Status values carried inside reports where a traversal absorbed a
// per-node failure instead of aborting.
const (
	StatusMaxDepth   = "max-depth-reached"
	StatusNotFound   = "not-found"
	StatusFetchError = "fetch-error"
	StatusUnspent    = "unspent"
	StatusError      = "error"
)

// TraceInput is the prevout view of a traced transaction's input.
type TraceInput struct {
	PrevoutAddress string `json:"prevout_address,omitempty"`
	PrevoutValue   int64  `json:"prevout_value"`
}

// TraceOutput is one output of a traced transaction: a terminal leaf
// (unspent, or a failed spend lookup) or a recursion into the transaction
// that spends it.
type TraceOutput struct {
	Address string     `json:"address,omitempty"`
	Value   int64      `json:"value"`
	Status  string     `json:"status,omitempty"`
	Spend   *TraceNode `json:"spend,omitempty"`
}

// TraceNode is one node of a spend tree. Terminal nodes carry only TxID
// and Status; interior nodes carry inputs and one TraceOutput per output.
type TraceNode struct {
	TxID    string        `json:"txid"`
	Status  string        `json:"status,omitempty"`
	Inputs  []TraceInput  `json:"inputs,omitempty"`
	Outputs []TraceOutput `json:"outputs,omitempty"`
}
