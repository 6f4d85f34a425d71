// Copyright 2025 The txstream Authors
// This file is part of the txstream service.

package solana

// Commitment is the RPC commitment level requested of the cluster.
type Commitment string

const (
	// CommitmentFinalized queries the most recent supermajority-confirmed block.
	CommitmentFinalized Commitment = "finalized"
	// CommitmentConfirmed queries the most recent vote-confirmed block.
	CommitmentConfirmed Commitment = "confirmed"
	// CommitmentProcessed queries the most recent block seen by the node.
	CommitmentProcessed Commitment = "processed"
)

// Encoding is the wire encoding requested for account/transaction data.
type Encoding string

const (
	EncodingBase58     Encoding = "base58"
	EncodingBase64     Encoding = "base64"
	EncodingBase64Zstd Encoding = "base64+zstd"
	EncodingJSON       Encoding = "json"
	EncodingJSONParsed Encoding = "jsonParsed"
)

// WellKnownMint returns a human-friendly name for a small set of mints
// that show up constantly in logs, or "" if address isn't one of them.
// This is strictly cosmetic: callers must keep using the raw address in
// any outbound request.
func WellKnownMint(address Address) string {
	if address == wsolMint {
		return "WSOL"
	}
	return ""
}

var wsolMint = MustAddress("So11111111111111111111111111111111111111112")
