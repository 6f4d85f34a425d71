package events

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/solrelay/txstream/internal/txcontext"
)

// HandleInitialize2 implements the Raydium Initialize2 handler:
// log-only, no bus event. Detects pump.fun provenance the same way the
// Serum handler does, purely for the log line.
func HandleInitialize2(_ context.Context, d *Deps, tx *txcontext.Transaction, instr txcontext.Instruction) error {
	mint := instr.Account(9)
	marketID := instr.Account(16)

	d.Log.WithFields(logrus.Fields{
		"mint":       friendlyMintOrRaw(mint),
		"market_id":  marketID.String(),
		"provenance": provenanceTag(tx),
	}).Info("raydium initialize2")
	return nil
}
