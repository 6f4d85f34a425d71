// Copyright 2025 The txstream Authors
// This file is part of the txstream service.

// Package solana holds the small set of wire types the ingest and
// blockhash components share: base58 addresses/signatures and the
// commitment/encoding string enums used in RPC request bodies.
package solana

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/mr-tron/base58"
)

// AddressLength is the expected length of a Solana public key, in bytes.
const AddressLength = 32

// SignatureLength is the expected length of an ed25519 signature, in bytes.
const SignatureLength = 64

// Address is a Solana account address, stored as raw bytes and rendered
// as base58 at the JSON/text boundary.
type Address [AddressLength]byte

// MustAddress parses s as base58 and panics on malformed input; use only
// for package-level catalogue constants, never on untrusted data.
func MustAddress(s string) Address {
	a, err := ParseAddress(s)
	if err != nil {
		panic(fmt.Sprintf("solana: invalid address literal %q: %v", s, err))
	}
	return a
}

// ParseAddress decodes a base58-encoded address.
func ParseAddress(s string) (Address, error) {
	var a Address
	decoded, err := base58.Decode(s)
	if err != nil {
		return a, fmt.Errorf("decode address %q: %w", s, err)
	}
	if len(decoded) != AddressLength {
		return a, fmt.Errorf("address %q decodes to %d bytes, want %d", s, len(decoded), AddressLength)
	}
	copy(a[:], decoded)
	return a, nil
}

// Bytes returns the address's raw bytes.
func (a Address) Bytes() []byte { return a[:] }

// String returns the base58 rendering of the address.
func (a Address) String() string {
	return base58.Encode(a[:])
}

// IsZero reports whether a is the zero address (used to detect an
// absent/unset account slot).
func (a Address) IsZero() bool {
	return a == Address{}
}

// Cmp compares two addresses byte-wise.
func (a Address) Cmp(other Address) int {
	return bytes.Compare(a[:], other[:])
}

// MarshalText renders the address as base58 text.
func (a Address) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

// UnmarshalText parses a base58-encoded address.
func (a *Address) UnmarshalText(text []byte) error {
	parsed, err := ParseAddress(string(text))
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}

// UnmarshalJSON parses an address from its JSON string form.
func (a *Address) UnmarshalJSON(input []byte) error {
	var s string
	if err := json.Unmarshal(input, &s); err != nil {
		return fmt.Errorf("unmarshal address: %w", err)
	}
	if s == "" {
		*a = Address{}
		return nil
	}
	return a.UnmarshalText([]byte(s))
}

// Signature is an ed25519 transaction signature.
type Signature [SignatureLength]byte

// ParseSignature decodes a base58-encoded signature.
func ParseSignature(s string) (Signature, error) {
	var sig Signature
	decoded, err := base58.Decode(s)
	if err != nil {
		return sig, fmt.Errorf("decode signature %q: %w", s, err)
	}
	if len(decoded) != SignatureLength {
		return sig, fmt.Errorf("signature %q decodes to %d bytes, want %d", s, len(decoded), SignatureLength)
	}
	copy(sig[:], decoded)
	return sig, nil
}

// String returns the base58 rendering of the signature.
func (s Signature) String() string {
	return base58.Encode(s[:])
}

// UnmarshalJSON parses a signature from its JSON string form.
func (s *Signature) UnmarshalJSON(input []byte) error {
	var str string
	if err := json.Unmarshal(input, &str); err != nil {
		return fmt.Errorf("unmarshal signature: %w", err)
	}
	parsed, err := ParseSignature(str)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}
