// Copyright 2025 The txstream Authors
// This file is part of the txstream service.

// Package balances joins pre/post balance snapshots into per-account
// deltas keyed by (owner, mint).
package balances

import (
	"strconv"

	"github.com/solrelay/txstream/internal/solana"
	"github.com/solrelay/txstream/internal/txcontext"
)

// Key identifies a balance update by (owner, mint).
type Key struct {
	Owner solana.Address
	Mint  solana.Address
}

// Update is one entry of the compiled balance-diff map: pre/post raw
// token amounts and the decimals last observed for the key.
type Update struct {
	Pre      uint64
	Post     uint64
	Decimals uint8
}

// Compile joins pre and post token-balance snapshots into a map keyed
// by (owner, mint). Entries missing an owner on a side are skipped on
// that side; an amount string that fails to parse becomes 0; decimals
// from the later-observed side win on collision.
func Compile(pre, post []txcontext.TokenBalance) map[Key]*Update {
	out := make(map[Key]*Update)

	for _, b := range pre {
		if !b.HasOwner {
			continue
		}
		key := Key{Owner: b.Owner, Mint: b.Mint}
		amount := parseAmount(b.Amount)
		if existing, ok := out[key]; ok {
			existing.Pre = amount
			existing.Decimals = b.Decimals
		} else {
			out[key] = &Update{Pre: amount, Post: 0, Decimals: b.Decimals}
		}
	}

	for _, b := range post {
		if !b.HasOwner {
			continue
		}
		key := Key{Owner: b.Owner, Mint: b.Mint}
		amount := parseAmount(b.Amount)
		if existing, ok := out[key]; ok {
			existing.Post = amount
			existing.Decimals = b.Decimals
		} else {
			out[key] = &Update{Pre: 0, Post: amount, Decimals: b.Decimals}
		}
	}

	return out
}

func parseAmount(s string) uint64 {
	v, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0
	}
	return v
}

// FindByOwner returns the first balance in balances whose owner equals
// owner, skipping entries with no owner, or (zero, false) if none match.
func FindByOwner(balances []txcontext.TokenBalance, owner solana.Address) (txcontext.TokenBalance, bool) {
	for _, b := range balances {
		if b.HasOwner && b.Owner == owner {
			return b, true
		}
	}
	return txcontext.TokenBalance{}, false
}
