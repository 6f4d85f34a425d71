package events

import (
	"context"
	"strconv"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/solrelay/txstream/internal/balances"
	"github.com/solrelay/txstream/internal/decode"
	"github.com/solrelay/txstream/internal/solana"
	"github.com/solrelay/txstream/internal/txcontext"
	"github.com/solrelay/txstream/internal/xerrors"
)

// PumpFun bonding-curve protocol constants, never mutated.
const (
	initialLamportReserves      = 30_000_000_000
	initialVirtualTokenReserves = 1_073_000_000_000_000
	initialRealTokenReserves    = 793_100_000_000_000
	initialTokenTotalSupply     = 1_000_000_000_000_000
)

// HandleCreation implements the PumpFun Creation handler.
func HandleCreation(_ context.Context, d *Deps, tx *txcontext.Transaction, instr txcontext.Instruction) error {
	creation, err := decode.DecodeCreation(instr.PayloadBase58)
	if err != nil {
		return xerrors.Decode("PUMP_FUN", instr.PayloadBase58, err)
	}

	// Absent post-token-balances is a hard invariant violation, not
	// "deployer isn't in the list" — abandon the notification instead
	// of silently defaulting the buy percentage.
	if !tx.HasPostTokenBalances {
		return xerrors.Protocol("pump fun creation: transaction meta has no postTokenBalances")
	}

	tokenAddress := instr.Account(0)
	bondingCurve := instr.Account(2)
	associatedBondingCurve := instr.Account(3)
	deployer := instr.Account(7)

	var creatorBuyPercentage float64
	if deployerBalance, ok := balances.FindByOwner(tx.PostTokenBalances, deployer); ok && deployerBalance.HasUIAmount {
		creatorBuyPercentage = deployerBalance.UIAmount / 1e9
	}

	event := SplTokenCreationNotification{
		Deployer:               deployer,
		TokenAddress:           tokenAddress,
		BondingCurve:           bondingCurve,
		AssociatedBondingCurve: associatedBondingCurve,
		TokenName:              creation.Name,
		TokenSymbol:            creation.Symbol,
		TokenURI:               creation.URI,
		CreatorBuyPercentage:   creatorBuyPercentage,
		TimestampMs:            time.Now().UnixMilli(),
		TxHash:                 tx.Signature,
		Source:                 "HELIUS",
		Platform:               "PUMP_FUN",
	}
	d.publish(TopicSplTokenCreation, event.encode())
	d.Log.WithFields(logrus.Fields{
		"token_address": tokenAddress.String(),
		"token_name":    creation.Name,
		"token_symbol":  creation.Symbol,
	}).Info("spl token creation")
	return nil
}

// HandleTrade implements the shared PumpFun Buy/Sell handler. fn is
// "BUY" or "SELL", used only for logging.
func HandleTrade(ctx context.Context, d *Deps, tx *txcontext.Transaction, instr txcontext.Instruction, fn string) error {
	tokenAddress := instr.Account(2)
	bondingCurve := instr.Account(3)

	realLamportReserves := postBalanceOf(tx, bondingCurve)

	var bondingCurveTokenBalance uint64
	if tb, ok := balances.FindByOwner(tx.PostTokenBalances, bondingCurve); ok {
		bondingCurveTokenBalance = parseAmount(tb.Amount)
	}

	virtualLamportReserves := realLamportReserves + initialLamportReserves
	virtualTokenReserves := bondingCurveTokenBalance + (initialVirtualTokenReserves - initialTokenTotalSupply)

	const reserveDelta = initialTokenTotalSupply - initialRealTokenReserves
	if bondingCurveTokenBalance < reserveDelta {
		// Skip emission rather than wrap the subtraction below.
		d.Log.WithField("token_address", tokenAddress.String()).Warn("pump fun trade: reserve underflow, skipping emission")
		return nil
	}
	realTokenReserves := bondingCurveTokenBalance - reserveDelta

	if realTokenReserves == 0 {
		d.Log.WithFields(logrus.Fields{
			"token_address": tokenAddress.String(),
			"bonding_curve": bondingCurve.String(),
		}).Info("pump fun token bonded, migrating")
	}

	tracked, _ := d.KV.SIsMember(ctx, "tracked_token_addresses", tokenAddress.String())
	if !tracked {
		return nil
	}

	event := PumpFunBondingCurveUpdate{
		TokenAddress:           tokenAddress,
		BondingCurve:           bondingCurve,
		RealLamportReserves:    realLamportReserves,
		RealTokenReserves:      realTokenReserves,
		VirtualLamportReserves: virtualLamportReserves,
		VirtualTokenReserves:   virtualTokenReserves,
	}
	d.publish(TopicPumpFunBondingCurve, event.encode())
	d.Log.WithFields(logrus.Fields{
		"token_address": tokenAddress.String(),
		"function":      fn,
	}).Info("pump fun bonding curve update")
	return nil
}

func postBalanceOf(tx *txcontext.Transaction, address solana.Address) uint64 {
	idx := tx.IndexOf(address)
	if idx < 0 || idx >= len(tx.PostBalances) {
		return 0
	}
	return tx.PostBalances[idx]
}

func parseAmount(s string) uint64 {
	v, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0
	}
	return v
}
