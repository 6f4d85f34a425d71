// Copyright 2025 The txstream Authors
// This file is part of the txstream service.

package decode

import "github.com/mr-tron/base58"

// Creation is the PumpFun Creation instruction layout: an 8-byte
// discriminator (read here as part of the borsh struct, little-endian;
// the catalogue reads the same bytes big-endian purely for dispatch)
// followed by three length-prefixed strings.
type Creation struct {
	Discriminator uint64
	Name          string
	Symbol        string
	URI           string
}

// DecodeCreation decodes a base58-encoded PumpFun Creation payload.
func DecodeCreation(payloadBase58 string) (Creation, error) {
	raw, err := base58.Decode(payloadBase58)
	if err != nil {
		return Creation{}, &Error{Program: "PUMP_FUN", RawPayload: payloadBase58, Reason: "not valid base58: " + err.Error()}
	}
	r := newReader(raw)

	var c Creation
	if c.Discriminator, err = r.u64(); err != nil {
		return Creation{}, &Error{Program: "PUMP_FUN", RawPayload: payloadBase58, Offset: r.pos, Reason: err.Error()}
	}
	if c.Name, err = r.str(); err != nil {
		return Creation{}, &Error{Program: "PUMP_FUN", RawPayload: payloadBase58, Offset: r.pos, Reason: err.Error()}
	}
	if c.Symbol, err = r.str(); err != nil {
		return Creation{}, &Error{Program: "PUMP_FUN", RawPayload: payloadBase58, Offset: r.pos, Reason: err.Error()}
	}
	if c.URI, err = r.str(); err != nil {
		return Creation{}, &Error{Program: "PUMP_FUN", RawPayload: payloadBase58, Offset: r.pos, Reason: err.Error()}
	}
	return c, nil
}
