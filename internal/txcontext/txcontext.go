// Copyright 2025 The txstream Authors
// This file is part of the txstream service.

// Package txcontext holds the data model a notified transaction is
// reduced to before dispatch: the flattened instruction view, the
// pre/post balance snapshots, and the transaction context handlers
// receive. Instances are created per notification, read by handlers,
// and dropped — never mutated after construction.
package txcontext

import "github.com/solrelay/txstream/internal/solana"

// Instruction is a partially-decoded instruction after flattening:
// program address, raw base58 payload, and the ordered account list.
// Only this shape is dispatched; fully-parsed JSON-shape instructions
// are ignored.
type Instruction struct {
	ProgramAddress solana.Address
	PayloadBase58  string
	Accounts       []solana.Address
	IsInner        bool
}

// Account returns the account at index, or the zero Address if index is
// out of range. Handlers use the zero Address as is; an out-of-range
// index is not reported as an error.
func (i Instruction) Account(index int) solana.Address {
	if index < 0 || index >= len(i.Accounts) {
		return solana.Address{}
	}
	return i.Accounts[index]
}

// TokenBalance is one entry of a pre/post SPL-token balance snapshot.
// Owner may be absent (HasOwner false) — the upstream JSON omits it for
// non-owned accounts.
type TokenBalance struct {
	AccountIndex int
	Owner        solana.Address
	HasOwner     bool
	Mint         solana.Address
	Amount       string
	Decimals     uint8
	UIAmount     float64
	HasUIAmount  bool
}

// Transaction is the immutable context handed to every handler: slot,
// signature, native/token balance snapshots, and the flattened
// instruction list.
type Transaction struct {
	Slot              uint64
	Signature         string
	AccountAddresses  []solana.Address
	Signers           []bool
	PreBalances       []uint64
	PostBalances      []uint64
	PreTokenBalances  []TokenBalance
	PostTokenBalances []TokenBalance
	// HasPostTokenBalances distinguishes "meta had no postTokenBalances
	// key at all" from "meta had an empty postTokenBalances list" — the
	// former is a hard invariant violation; the latter is a transaction
	// that legitimately touched no SPL token accounts.
	HasPostTokenBalances bool
	Instructions         []Instruction
}

// IndexOf returns the index of address within AccountAddresses, or -1.
func (t *Transaction) IndexOf(address solana.Address) int {
	for i, a := range t.AccountAddresses {
		if a == address {
			return i
		}
	}
	return -1
}

// IsSigner reports whether address appears in AccountAddresses flagged
// as a signer, per the parsed-JSON accountKeys shape. The pump.fun
// provenance gate consults this for Serum/Raydium.
func (t *Transaction) IsSigner(address solana.Address) bool {
	idx := t.IndexOf(address)
	return idx >= 0 && idx < len(t.Signers) && t.Signers[idx]
}
