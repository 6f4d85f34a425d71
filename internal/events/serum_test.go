package events

import (
	"context"
	"testing"

	"github.com/mr-tron/base58"

	"github.com/solrelay/txstream/internal/catalogue"
	"github.com/solrelay/txstream/internal/marketclient"
	"github.com/solrelay/txstream/internal/solana"
	"github.com/solrelay/txstream/internal/txcontext"
)

// encodeInitializeMarketPayload builds a raw Serum InitializeMarket
// record by hand: version(1) + discriminator u32 LE(4) + base_lot_size
// u64(8) + quote_lot_size u64(8) + fee_rate_bps u16(2) +
// vault_signer_nonce u64(8) + quote_dust_threshold u64(8).
func encodeInitializeMarketPayload(t *testing.T) string {
	t.Helper()
	raw := []byte{0}             // version
	raw = append(raw, 0, 0, 0, 0) // discriminator u32 LE = 0
	raw = appendU64LE(raw, 10)    // base_lot_size
	raw = appendU64LE(raw, 20)    // quote_lot_size
	raw = appendU16LE(raw, 30)    // fee_rate_bps
	raw = appendU64LE(raw, 40)    // vault_signer_nonce
	raw = appendU64LE(raw, 50)    // quote_dust_threshold
	return base58.Encode(raw)
}

func appendU64LE(b []byte, v uint64) []byte {
	for i := 0; i < 8; i++ {
		b = append(b, byte(v))
		v >>= 8
	}
	return b
}

func appendU16LE(b []byte, v uint16) []byte {
	return append(b, byte(v), byte(v>>8))
}

func TestHandleInitializeMarketGatedOnProvenance(t *testing.T) {
	d, q, _ := newTestDeps()
	fake := &marketclient.Fake{}
	d.Market = fake

	payload := encodeInitializeMarketPayload(t)
	accounts := make([]solana.Address, 9)
	for i := range accounts {
		accounts[i] = solana.Address{byte(i + 1)}
	}
	instr := txcontext.Instruction{PayloadBase58: payload, Accounts: accounts}

	tx := &txcontext.Transaction{AccountAddresses: []solana.Address{{0xFF}}, Signers: []bool{true}}
	if err := HandleInitializeMarket(context.Background(), d, tx, instr); err != nil {
		t.Fatalf("HandleInitializeMarket: %v", err)
	}
	if len(fake.Calls) != 0 {
		t.Fatal("expected no RPC call when migration account is absent")
	}

	tx2 := &txcontext.Transaction{
		AccountAddresses: []solana.Address{catalogue.PumpFunRaydiumMigration},
		Signers:          []bool{true},
	}
	if err := HandleInitializeMarket(context.Background(), d, tx2, instr); err != nil {
		t.Fatalf("HandleInitializeMarket: %v", err)
	}
	if len(fake.Calls) != 1 {
		t.Fatalf("expected one RPC call, got %d", len(fake.Calls))
	}
	if fake.Calls[0].MarketID != accounts[0] {
		t.Fatalf("MarketID = %v, want %v", fake.Calls[0].MarketID, accounts[0])
	}
	if fake.Calls[0].BaseLotSize != 10 || fake.Calls[0].QuoteLotSize != 20 {
		t.Fatalf("lot sizes = %d/%d", fake.Calls[0].BaseLotSize, fake.Calls[0].QuoteLotSize)
	}
	q.Close()
}

func TestHandleInitializeMarketRPCFailureIsNonFatal(t *testing.T) {
	d, _, _ := newTestDeps()
	d.Market = &marketclient.Fake{Err: context.DeadlineExceeded}

	payload := encodeInitializeMarketPayload(t)
	accounts := make([]solana.Address, 9)
	instr := txcontext.Instruction{PayloadBase58: payload, Accounts: accounts}
	tx := &txcontext.Transaction{
		AccountAddresses: []solana.Address{catalogue.PumpFunRaydiumMigration},
		Signers:          []bool{true},
	}

	if err := HandleInitializeMarket(context.Background(), d, tx, instr); err != nil {
		t.Fatalf("HandleInitializeMarket should swallow RPC errors, got %v", err)
	}
}
