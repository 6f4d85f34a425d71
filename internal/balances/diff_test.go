package balances

import (
	"testing"

	"github.com/solrelay/txstream/internal/solana"
	"github.com/solrelay/txstream/internal/txcontext"
)

var (
	owner1 = solana.MustAddress("EPjFWdd5AufqSSqeM2qN1xzybapC8G4wEGGkZwyTDt1v")
	owner2 = solana.MustAddress("So11111111111111111111111111111111111111112")
	mint1  = solana.MustAddress("675kPX9MHTjS2zt1qfr1NYHuzeLXfQM9H24wFSUt1Mp8")
)

func TestCompileBasic(t *testing.T) {
	pre := []txcontext.TokenBalance{
		{HasOwner: true, Owner: owner1, Mint: mint1, Amount: "100", Decimals: 6},
	}
	post := []txcontext.TokenBalance{
		{HasOwner: true, Owner: owner1, Mint: mint1, Amount: "150", Decimals: 6},
		{HasOwner: true, Owner: owner2, Mint: mint1, Amount: "5", Decimals: 9},
	}
	got := Compile(pre, post)

	if len(got) != 2 {
		t.Fatalf("expected 2 keys, got %d", len(got))
	}
	k1 := Key{Owner: owner1, Mint: mint1}
	u1, ok := got[k1]
	if !ok || u1.Pre != 100 || u1.Post != 150 {
		t.Errorf("owner1 update = %+v, ok=%v", u1, ok)
	}
	k2 := Key{Owner: owner2, Mint: mint1}
	u2, ok := got[k2]
	if !ok || u2.Pre != 0 || u2.Post != 5 {
		t.Errorf("owner2 update = %+v, ok=%v", u2, ok)
	}
}

func TestCompileSkipsMissingOwner(t *testing.T) {
	pre := []txcontext.TokenBalance{{HasOwner: false, Mint: mint1, Amount: "100"}}
	got := Compile(pre, nil)
	if len(got) != 0 {
		t.Errorf("expected no entries for ownerless balance, got %d", len(got))
	}
}

func TestCompileUnparsableAmountDefaultsZero(t *testing.T) {
	pre := []txcontext.TokenBalance{{HasOwner: true, Owner: owner1, Mint: mint1, Amount: "not-a-number"}}
	got := Compile(pre, nil)
	u := got[Key{Owner: owner1, Mint: mint1}]
	if u.Pre != 0 {
		t.Errorf("expected unparsable amount to default to 0, got %d", u.Pre)
	}
}

func TestFindByOwner(t *testing.T) {
	list := []txcontext.TokenBalance{
		{HasOwner: false, Amount: "1"},
		{HasOwner: true, Owner: owner2, Amount: "2"},
		{HasOwner: true, Owner: owner1, Amount: "3"},
	}
	got, ok := FindByOwner(list, owner1)
	if !ok || got.Amount != "3" {
		t.Errorf("FindByOwner = %+v, %v", got, ok)
	}
	if _, ok := FindByOwner(list, mint1); ok {
		t.Error("expected miss for unrelated address")
	}
}
