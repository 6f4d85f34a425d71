package events

import (
	"context"
	"encoding/binary"
	"testing"

	"github.com/mr-tron/base58"

	"github.com/solrelay/txstream/internal/solana"
	"github.com/solrelay/txstream/internal/txcontext"
)

func TestDispatchUnknownProgramIsSilentSkip(t *testing.T) {
	d, _, _ := newTestDeps()
	instr := txcontext.Instruction{ProgramAddress: solana.Address{0xEE}, PayloadBase58: ""}

	dispatched, err := Dispatch(context.Background(), d, &txcontext.Transaction{}, instr)
	if err != nil || dispatched {
		t.Fatalf("Dispatch() = %v, %v, want false, nil", dispatched, err)
	}
}

func TestDispatchDecodeFailurePropagatesError(t *testing.T) {
	d, _, _ := newTestDeps()
	// Recognized PumpFun Creation discriminator, but payload truncated
	// right after it — DecodeCreation must fail reading the name string.
	instr := txcontext.Instruction{
		ProgramAddress: pumpFunProgramIDForTest(t),
		PayloadBase58:  creationDiscriminatorOnlyPayload(t),
	}

	_, err := Dispatch(context.Background(), d, &txcontext.Transaction{}, instr)
	if err == nil {
		t.Fatal("expected decode error to propagate")
	}
}

func pumpFunProgramIDForTest(t *testing.T) solana.Address {
	t.Helper()
	addr, err := solana.ParseAddress("6EF8rrecthR5Dkzon8Nwu78hRvfCKubJ14M5uBEwF6P")
	if err != nil {
		t.Fatalf("ParseAddress: %v", err)
	}
	return addr
}

// creationDiscriminatorOnlyPayload encodes exactly the 8-byte PumpFun
// Creation discriminator and nothing after it: enough for the catalogue
// to recognize the function, not enough for the decoder to read the
// following name string.
func creationDiscriminatorOnlyPayload(t *testing.T) string {
	t.Helper()
	var raw [8]byte
	binary.BigEndian.PutUint64(raw[:], 0x181ec828051c0777)
	return base58.Encode(raw[:])
}

func TestDispatchUnrecognizedDiscriminatorIsSilentSkip(t *testing.T) {
	d, _, _ := newTestDeps()
	instr := txcontext.Instruction{
		ProgramAddress: pumpFunProgramIDForTest(t),
		PayloadBase58:  "111111111111111", // decodes to all-zero bytes, not a known discriminator
	}
	dispatched, err := Dispatch(context.Background(), d, &txcontext.Transaction{}, instr)
	if err != nil || dispatched {
		t.Fatalf("Dispatch() = %v, %v, want false, nil", dispatched, err)
	}
}
