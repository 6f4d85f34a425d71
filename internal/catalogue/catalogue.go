// Copyright 2025 The txstream Authors
// This file is part of the txstream service.

// Package catalogue implements the program + discriminator catalogue:
// a closed, pure mapping from on-chain program address to a recognized
// program tag, and from a program tag plus an instruction's base58
// payload to a recognized function tag.
package catalogue

import (
	"encoding/binary"
	"strings"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/mr-tron/base58"

	"github.com/solrelay/txstream/internal/solana"
)

// ProgramTag names a recognized on-chain program.
type ProgramTag int

const (
	ProgramUnknown ProgramTag = iota
	ProgramPumpFun
	ProgramDaosFundDeployer
	ProgramRaydium
	ProgramSerum
)

func (p ProgramTag) String() string {
	switch p {
	case ProgramPumpFun:
		return "PUMP_FUN"
	case ProgramDaosFundDeployer:
		return "DAOS_FUND_DEPLOYER"
	case ProgramRaydium:
		return "RAYDIUM"
	case ProgramSerum:
		return "SERUM"
	default:
		return "UNKNOWN"
	}
}

// FunctionTag names a recognized (program, function) pair.
type FunctionTag int

const (
	FunctionUnknown FunctionTag = iota
	FunctionPumpFunCreation
	FunctionPumpFunBuy
	FunctionPumpFunSell
	FunctionDaosFundInitializeCurve
	FunctionRaydiumInitialize2
	FunctionSerumInitializeMarket
)

// Well-known program addresses. The DaosFundDeployer literal is
// published upstream with trailing whitespace; it is trimmed here,
// once, at registration, so lookups never have to.
var (
	pumpFunProgramID         = solana.MustAddress("6EF8rrecthR5Dkzon8Nwu78hRvfCKubJ14M5uBEwF6P")
	daosFundDeployerProgram  = solana.MustAddress(strings.TrimSpace("4FqThZWv3QKWkSyXCDmATpWkpEiCHq5yhkdGWpSEDAZM  "))
	raydiumProgramID         = solana.MustAddress("675kPX9MHTjS2zt1qfr1NYHuzeLXfQM9H24wFSUt1Mp8")
	serumProgramID           = solana.MustAddress("srmqPvymJeFKQ4zGQed1GFppgkRHL9kaELCbyksJtPX")

	// PumpFunRaydiumMigration is pump.fun's public migration authority,
	// the well-known account that gates the Serum/Raydium
	// pump.fun-provenance handlers.
	PumpFunRaydiumMigration = solana.MustAddress("39azUYFWPz3VHgKCf3VChUwbpURdCHRxjWVowf5jUJjg")
)

// programsByAddress maps recognized program addresses to their tag.
var programsByAddress = map[solana.Address]ProgramTag{
	pumpFunProgramID:        ProgramPumpFun,
	daosFundDeployerProgram: ProgramDaosFundDeployer,
	raydiumProgramID:        ProgramRaydium,
	serumProgramID:          ProgramSerum,
}

// recognizedPrograms is a set mirror of programsByAddress used for O(1)
// membership checks where only "is this a program we care about at
// all" matters (diagnostics, metrics) without needing the tag itself.
var recognizedPrograms = mapset.NewSet(
	pumpFunProgramID,
	daosFundDeployerProgram,
	raydiumProgramID,
	serumProgramID,
)

// FriendlyMint returns a human-readable name for a handful of
// well-known mints (currently just wrapped SOL), for log fields only —
// it must never replace the raw address in an outbound request.
func FriendlyMint(address solana.Address) string {
	return solana.WellKnownMint(address)
}

// ProgramOf returns the recognized program tag for address, or
// (ProgramUnknown, false) if address isn't in the closed catalogue.
func ProgramOf(address solana.Address) (ProgramTag, bool) {
	tag, ok := programsByAddress[address]
	return tag, ok
}

// IsRecognizedProgram reports whether address belongs to the catalogue,
// without resolving which program it is.
func IsRecognizedProgram(address solana.Address) bool {
	return recognizedPrograms.Contains(address)
}

// FunctionOf decodes the leading bytes of payloadBase58 per program and
// returns the recognized function tag, or (FunctionUnknown, false) if
// the program has no decoder, the discriminator is unrecognized, or the
// payload is shorter than the program's discriminator width.
func FunctionOf(program ProgramTag, payloadBase58 string) (FunctionTag, bool) {
	decoded, err := base58.Decode(payloadBase58)
	if err != nil {
		return FunctionUnknown, false
	}
	switch program {
	case ProgramPumpFun:
		return pumpFunFunctionOf(decoded)
	case ProgramDaosFundDeployer:
		return daosFundFunctionOf(decoded)
	case ProgramRaydium:
		return raydiumFunctionOf(decoded)
	case ProgramSerum:
		return serumFunctionOf(decoded)
	default:
		return FunctionUnknown, false
	}
}

const (
	pumpFunDiscCreation uint64 = 0x181ec828051c0777
	pumpFunDiscBuy      uint64 = 0x66063d1201daebea
	pumpFunDiscSell     uint64 = 0x33e685a4017f83ad

	daosFundDiscInitializeCurve uint64 = 0x265d01d63bb94c59

	raydiumDiscInitialize2 byte = 0x01

	serumDiscInitializeMarket uint32 = 0x00000000
)

// pumpFunFunctionOf and daosFundFunctionOf share an 8-byte,
// big-endian discriminator width.
func pumpFunFunctionOf(data []byte) (FunctionTag, bool) {
	if len(data) < 8 {
		return FunctionUnknown, false
	}
	switch binary.BigEndian.Uint64(data[:8]) {
	case pumpFunDiscCreation:
		return FunctionPumpFunCreation, true
	case pumpFunDiscBuy:
		return FunctionPumpFunBuy, true
	case pumpFunDiscSell:
		return FunctionPumpFunSell, true
	default:
		return FunctionUnknown, false
	}
}

func daosFundFunctionOf(data []byte) (FunctionTag, bool) {
	if len(data) < 8 {
		return FunctionUnknown, false
	}
	if binary.BigEndian.Uint64(data[:8]) == daosFundDiscInitializeCurve {
		return FunctionDaosFundInitializeCurve, true
	}
	return FunctionUnknown, false
}

func raydiumFunctionOf(data []byte) (FunctionTag, bool) {
	if len(data) < 1 {
		return FunctionUnknown, false
	}
	if data[0] == raydiumDiscInitialize2 {
		return FunctionRaydiumInitialize2, true
	}
	return FunctionUnknown, false
}

// serumFunctionOf reads a 1-byte version followed by a 4-byte
// little-endian discriminator; InitializeMarket is discriminator 0.
func serumFunctionOf(data []byte) (FunctionTag, bool) {
	if len(data) < 5 {
		return FunctionUnknown, false
	}
	if binary.LittleEndian.Uint32(data[1:5]) == serumDiscInitializeMarket {
		return FunctionSerumInitializeMarket, true
	}
	return FunctionUnknown, false
}
