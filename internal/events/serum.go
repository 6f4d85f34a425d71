package events

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/solrelay/txstream/internal/catalogue"
	"github.com/solrelay/txstream/internal/decode"
	"github.com/solrelay/txstream/internal/marketclient"
	"github.com/solrelay/txstream/internal/solana"
	"github.com/solrelay/txstream/internal/txcontext"
	"github.com/solrelay/txstream/internal/xerrors"
)

// HandleInitializeMarket implements the Serum InitializeMarket handler:
// gated on pump.fun provenance, decodes the payload, and issues a unary
// RPC to the external market-registration service. RPC failure is a
// side-effect failure: logged, swallowed, the transaction remains
// processed.
func HandleInitializeMarket(ctx context.Context, d *Deps, tx *txcontext.Transaction, instr txcontext.Instruction) error {
	if !tx.IsSigner(catalogue.PumpFunRaydiumMigration) {
		return nil
	}

	market, err := decode.DecodeInitializeMarket(instr.PayloadBase58)
	if err != nil {
		return xerrors.Decode("SERUM", instr.PayloadBase58, err)
	}

	req := marketclient.CreateSerumMarketRequest{
		MarketID:           instr.Account(0),
		RequestQueue:       instr.Account(1),
		EventQueue:         instr.Account(2),
		Bids:               instr.Account(3),
		Asks:               instr.Account(4),
		BaseSplVault:       instr.Account(5),
		QuoteSplVault:      instr.Account(6),
		BaseToken:          instr.Account(7),
		QuoteToken:         instr.Account(8),
		BaseLotSize:        market.BaseLotSize,
		QuoteLotSize:       market.QuoteLotSize,
		FeeRateBps:         market.FeeRateBps,
		VaultSignerNonce:   market.VaultSignerNonce,
		QuoteDustThreshold: market.QuoteDustThreshold,
	}

	start := time.Now()
	err = d.Market.CreateSerumMarket(ctx, req)
	elapsed := time.Since(start)

	fields := logrus.Fields{
		"market":      req.MarketID.String(),
		"base_token":  friendlyMintOrRaw(req.BaseToken),
		"quote_token": friendlyMintOrRaw(req.QuoteToken),
		"provenance":  provenanceTag(tx),
		"duration_ms": elapsed.Milliseconds(),
	}
	if err != nil {
		d.Log.WithFields(fields).WithError(err).Warn("create serum market failed")
		return nil
	}
	d.Log.WithFields(fields).Info("serum market registered")
	return nil
}

// friendlyMintOrRaw substitutes a known friendly name (e.g. "WSOL") for
// logging only; the RPC request above always carries the raw address.
func friendlyMintOrRaw(mint solana.Address) string {
	if name := catalogue.FriendlyMint(mint); name != "" {
		return name
	}
	return mint.String()
}

func provenanceTag(tx *txcontext.Transaction) string {
	if tx.IsSigner(catalogue.PumpFunRaydiumMigration) {
		return "official_pump_fun"
	}
	return "external"
}
