// Copyright 2025 The txstream Authors
// This file is part of the txstream service.

package decode

import "github.com/mr-tron/base58"

// InitializeMarket is the Serum InitializeMarket instruction layout:
// a 1-byte version, a 4-byte little-endian discriminator, and five
// numeric fields.
type InitializeMarket struct {
	Version            uint8
	Discriminator      uint32
	BaseLotSize        uint64
	QuoteLotSize       uint64
	FeeRateBps         uint16
	VaultSignerNonce   uint64
	QuoteDustThreshold uint64
}

// DecodeInitializeMarket decodes a base58-encoded Serum InitializeMarket payload.
func DecodeInitializeMarket(payloadBase58 string) (InitializeMarket, error) {
	raw, err := base58.Decode(payloadBase58)
	if err != nil {
		return InitializeMarket{}, &Error{Program: "SERUM", RawPayload: payloadBase58, Reason: "not valid base58: " + err.Error()}
	}
	r := newReader(raw)

	var m InitializeMarket
	fail := func(stage string) (InitializeMarket, error) {
		return InitializeMarket{}, &Error{Program: "SERUM", RawPayload: payloadBase58, Offset: r.pos, Reason: stage + ": " + err.Error()}
	}

	if m.Version, err = r.u8(); err != nil {
		return fail("version")
	}
	if m.Discriminator, err = r.u32(); err != nil {
		return fail("discriminator")
	}
	if m.BaseLotSize, err = r.u64(); err != nil {
		return fail("base_lot_size")
	}
	if m.QuoteLotSize, err = r.u64(); err != nil {
		return fail("quote_lot_size")
	}
	if m.FeeRateBps, err = r.u16(); err != nil {
		return fail("fee_rate_bps")
	}
	if m.VaultSignerNonce, err = r.u64(); err != nil {
		return fail("vault_signer_nonce")
	}
	if m.QuoteDustThreshold, err = r.u64(); err != nil {
		return fail("quote_dust_threshold")
	}
	return m, nil
}
