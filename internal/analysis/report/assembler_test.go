package report

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sort"
	"testing"
	"time"

	"github.com/vietddude/chainlens/internal/core/domain"
)

// mockSource is a fully scripted explorer backend.
type mockSource struct {
	infos        map[string]*domain.AddressInfo
	txsByAddress map[string][]domain.Transaction
	txs          map[string]*domain.Transaction
	block        *domain.Block
	blockTxs     []domain.Transaction
	price        float64

	infoErr  map[string]error
	priceErr error
}

func newMockSource() *mockSource {
	return &mockSource{
		infos:        make(map[string]*domain.AddressInfo),
		txsByAddress: make(map[string][]domain.Transaction),
		txs:          make(map[string]*domain.Transaction),
		infoErr:      make(map[string]error),
	}
}

func (m *mockSource) AddressInfo(ctx context.Context, address string) (*domain.AddressInfo, error) {
	if err, ok := m.infoErr[address]; ok {
		return nil, err
	}
	info, ok := m.infos[address]
	if !ok {
		return nil, errors.New("unknown address")
	}
	return info, nil
}

func (m *mockSource) AddressTxs(ctx context.Context, address string) ([]domain.Transaction, error) {
	return m.txsByAddress[address], nil
}

func (m *mockSource) Transaction(ctx context.Context, txid string) (*domain.Transaction, error) {
	tx, ok := m.txs[txid]
	if !ok {
		return nil, errors.New("unknown transaction")
	}
	return tx, nil
}

func (m *mockSource) Outspend(ctx context.Context, txid string, vout int) (*domain.Outspend, error) {
	return &domain.Outspend{Spent: false}, nil
}

func (m *mockSource) Block(ctx context.Context, hash string) (*domain.Block, error) {
	if m.block == nil {
		return nil, errors.New("unknown block")
	}
	return m.block, nil
}

func (m *mockSource) BlockTxs(ctx context.Context, hash string) ([]domain.Transaction, error) {
	return m.blockTxs, nil
}

func (m *mockSource) PriceUSD(ctx context.Context, date time.Time) (float64, error) {
	if m.priceErr != nil {
		return 0, m.priceErr
	}
	return m.price, nil
}

// addAddress registers an address with a balance and one transaction paying
// it from counterparty.
func (m *mockSource) addAddress(address, counterparty, txid string, balance int64) {
	m.infos[address] = &domain.AddressInfo{
		Address:    address,
		ChainStats: domain.TxStats{FundedTxoSum: balance, TxCount: 1},
	}
	tx := &domain.Transaction{
		TxID: txid,
		Vin:  []domain.Vin{{Prevout: &domain.Prevout{Address: counterparty, Value: balance}}},
		Vout: []domain.Vout{{Address: address, Value: balance}},
	}
	m.txs[txid] = tx
	m.txsByAddress[address] = append(m.txsByAddress[address], domain.Transaction{TxID: txid})
	m.txsByAddress[counterparty] = append(m.txsByAddress[counterparty], domain.Transaction{TxID: txid})
}

func testConfig() Config {
	return Config{ClusterDepth: 2, FlowDepth: 2, ThresholdSat: domain.BTCToSat(10)}
}

func TestAssemble_ComposesSections(t *testing.T) {
	src := newMockSource()
	src.addAddress("addrA", "addrB", "t1", 50000)
	src.price = 65000
	src.block = &domain.Block{ID: "blk1", TxCount: 1}
	src.blockTxs = []domain.Transaction{{
		TxID: "big",
		Vout: []domain.Vout{{Address: "whale", Value: domain.BTCToSat(15)}},
	}}

	a := NewAssembler(src, testConfig())
	rep, err := a.Assemble(context.Background(), []string{"addrA"}, "t1", "blk1")
	if err != nil {
		t.Fatalf("Assemble failed: %v", err)
	}

	if rep.RunID == "" {
		t.Error("expected a run ID")
	}
	if rep.GeneratedAt.IsZero() {
		t.Error("expected a generation timestamp")
	}
	if rep.PriceUSD != 65000 {
		t.Errorf("expected price 65000, got %v", rep.PriceUSD)
	}

	if len(rep.Addresses) != 1 {
		t.Fatalf("expected 1 address section, got %d", len(rep.Addresses))
	}
	ar := rep.Addresses[0]
	if ar.Status != "" || ar.BalanceSat != 50000 {
		t.Errorf("unexpected address section %+v", ar)
	}
	if len(ar.Flows) != 1 || ar.Flows[0].TxID != "t1" {
		t.Errorf("expected one flow trace for t1, got %+v", ar.Flows)
	}

	if !sort.StringsAreSorted(rep.Cluster) {
		t.Errorf("cluster members must be sorted, got %v", rep.Cluster)
	}
	want := []string{"addrA", "addrB"}
	if len(rep.Cluster) != len(want) || rep.Cluster[0] != want[0] || rep.Cluster[1] != want[1] {
		t.Errorf("expected cluster %v, got %v", want, rep.Cluster)
	}

	if rep.Transaction == nil || rep.Transaction.TxID != "t1" {
		t.Errorf("expected transaction trace for t1, got %+v", rep.Transaction)
	}
	if rep.Block == nil || len(rep.Block.LargeTxs) != 1 || rep.Block.LargeTxs[0].TxID != "big" {
		t.Errorf("expected one large transaction, got %+v", rep.Block)
	}
}

func TestAssemble_EmptyInputsSkipSections(t *testing.T) {
	a := NewAssembler(newMockSource(), testConfig())
	rep, err := a.Assemble(context.Background(), nil, "", "")
	if err != nil {
		t.Fatalf("Assemble failed: %v", err)
	}

	if len(rep.Addresses) != 0 || rep.Cluster != nil || rep.Transaction != nil || rep.Block != nil {
		t.Errorf("expected empty report sections, got %+v", rep)
	}
}

func TestAssemble_PriceFailureTolerated(t *testing.T) {
	src := newMockSource()
	src.addAddress("addrA", "addrB", "t1", 1000)
	src.priceErr = errors.New("rate limited")

	a := NewAssembler(src, testConfig())
	rep, err := a.Assemble(context.Background(), []string{"addrA"}, "", "")
	if err != nil {
		t.Fatalf("Assemble failed: %v", err)
	}
	if rep.PriceUSD != 0 {
		t.Errorf("expected zero price on lookup failure, got %v", rep.PriceUSD)
	}
	if len(rep.Addresses) != 1 || rep.Addresses[0].BalanceSat != 1000 {
		t.Errorf("address analysis must proceed without a price, got %+v", rep.Addresses)
	}
}

func TestAssemble_AddressFailureIsStatus(t *testing.T) {
	src := newMockSource()
	src.addAddress("good", "other", "t1", 1000)
	src.infoErr["bad"] = errors.New("upstream down")

	a := NewAssembler(src, testConfig())
	rep, err := a.Assemble(context.Background(), []string{"bad", "good"}, "", "")
	if err != nil {
		t.Fatalf("Assemble failed: %v", err)
	}

	if rep.Addresses[0].Status != domain.StatusFetchError {
		t.Errorf("expected fetch-error for bad address, got %+v", rep.Addresses[0])
	}
	if rep.Addresses[1].Status != "" || rep.Addresses[1].BalanceSat != 1000 {
		t.Errorf("good address must be unaffected, got %+v", rep.Addresses[1])
	}
}

func TestAssemble_InvalidDepthFails(t *testing.T) {
	src := newMockSource()
	src.addAddress("addrA", "addrB", "t1", 1000)

	a := NewAssembler(src, Config{ClusterDepth: -1})
	if _, err := a.Assemble(context.Background(), []string{"addrA"}, "", ""); err == nil {
		t.Fatal("expected error for negative cluster depth")
	}
}

func TestWrite_Roundtrip(t *testing.T) {
	src := newMockSource()
	src.addAddress("addrA", "addrB", "t1", 1000)

	a := NewAssembler(src, testConfig())
	a.now = func() time.Time { return time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC) }

	rep, err := a.Assemble(context.Background(), []string{"addrA"}, "", "")
	if err != nil {
		t.Fatalf("Assemble failed: %v", err)
	}

	path := filepath.Join(t.TempDir(), "report.json")
	if err := Write(rep, path); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading report: %v", err)
	}
	var got domain.Report
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("report is not valid JSON: %v", err)
	}
	if got.RunID != rep.RunID || !got.GeneratedAt.Equal(rep.GeneratedAt) {
		t.Errorf("roundtrip mismatch: got %+v, want %+v", got, rep)
	}
}
