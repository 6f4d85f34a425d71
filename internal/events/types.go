// Package events holds one handler per recognized (program, function)
// pair from the catalogue, each producing zero or one bus event from a
// transaction's flattened instruction view. One file per program.
package events

import (
	"github.com/solrelay/txstream/internal/bus"
	"github.com/solrelay/txstream/internal/solana"
)

// SplTokenCreationNotification is the event emitted by PumpFun's
// Creation handler, on topic TopicSplTokenCreation.
type SplTokenCreationNotification struct {
	Deployer               solana.Address
	TokenAddress           solana.Address
	BondingCurve           solana.Address
	AssociatedBondingCurve solana.Address
	TokenName              string
	TokenSymbol            string
	TokenURI               string
	CreatorBuyPercentage   float64
	TimestampMs            int64
	TxHash                 string
	Source                 string
	Platform               string
}

func (e SplTokenCreationNotification) encode() []byte {
	return bus.NewEncoder().
		String(e.Deployer.String()).
		String(e.TokenAddress.String()).
		String(e.BondingCurve.String()).
		String(e.AssociatedBondingCurve.String()).
		String(e.TokenName).
		String(e.TokenSymbol).
		String(e.TokenURI).
		Float64(e.CreatorBuyPercentage).
		Int64(e.TimestampMs).
		String(e.TxHash).
		String(e.Source).
		String(e.Platform).
		Bytes()
}

// PumpFunBondingCurveUpdate is emitted by the shared Buy/Sell handler,
// on topic TopicPumpFunBondingCurve, only when the token is tracked.
type PumpFunBondingCurveUpdate struct {
	TokenAddress           solana.Address
	BondingCurve           solana.Address
	RealLamportReserves    uint64
	RealTokenReserves      uint64
	VirtualLamportReserves uint64
	VirtualTokenReserves   uint64
}

func (e PumpFunBondingCurveUpdate) encode() []byte {
	return bus.NewEncoder().
		String(e.TokenAddress.String()).
		String(e.BondingCurve.String()).
		Uint64(e.RealLamportReserves).
		Uint64(e.RealTokenReserves).
		Uint64(e.VirtualLamportReserves).
		Uint64(e.VirtualTokenReserves).
		Bytes()
}

// DaosFundInitializeCurveNotification is emitted by the DaosFund
// InitializeCurve handler, on topic TopicDaosFundInitializeCurve.
type DaosFundInitializeCurveNotification struct {
	TokenAddress  solana.Address
	ConfigAddress solana.Address
	CurveAddress  solana.Address
}

func (e DaosFundInitializeCurveNotification) encode() []byte {
	return bus.NewEncoder().
		String(e.TokenAddress.String()).
		String(e.ConfigAddress.String()).
		String(e.CurveAddress.String()).
		Bytes()
}

// LamportsBalanceUpdate is emitted per tracked address whose native
// lamport balance changed within a notification.
type LamportsBalanceUpdate struct {
	Address     solana.Address
	PreBalance  uint64
	PostBalance uint64
}

func (e LamportsBalanceUpdate) encode() []byte {
	return bus.NewEncoder().
		String(e.Address.String()).
		Uint64(e.PreBalance).
		Uint64(e.PostBalance).
		Bytes()
}

// SplBalanceUpdate is emitted per (owner, mint) with a tracked owner
// that appears in a notification's pre or post SPL-token balances,
// whether or not the amount changed.
type SplBalanceUpdate struct {
	Address     solana.Address
	Mint        solana.Address
	PreBalance  uint64
	PostBalance uint64
	Decimals    uint8
}

func (e SplBalanceUpdate) encode() []byte {
	return bus.NewEncoder().
		String(e.Address.String()).
		String(e.Mint.String()).
		Uint64(e.PreBalance).
		Uint64(e.PostBalance).
		Uint8(e.Decimals).
		Bytes()
}
