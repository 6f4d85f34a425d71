package events

import (
	"context"

	"github.com/solrelay/txstream/internal/catalogue"
	"github.com/solrelay/txstream/internal/txcontext"
)

// Dispatch resolves instr's program and function via the catalogue and
// invokes the matching handler. An unrecognized program or discriminator
// is a silent skip, reported as (false, nil). A decode failure on a
// recognized discriminator returns a non-nil error wrapping
// xerrors.ErrDecode, and a PumpFun Creation whose transaction has no
// postTokenBalances returns one wrapping xerrors.ErrProtocol; in both
// cases the caller must abandon the notification. Any other handler
// failure is swallowed internally and reported as (true, nil).
func Dispatch(ctx context.Context, d *Deps, tx *txcontext.Transaction, instr txcontext.Instruction) (dispatched bool, err error) {
	program, ok := catalogue.ProgramOf(instr.ProgramAddress)
	if !ok {
		return false, nil
	}
	function, ok := catalogue.FunctionOf(program, instr.PayloadBase58)
	if !ok {
		return false, nil
	}

	switch function {
	case catalogue.FunctionPumpFunCreation:
		return true, HandleCreation(ctx, d, tx, instr)
	case catalogue.FunctionPumpFunBuy:
		return true, HandleTrade(ctx, d, tx, instr, "BUY")
	case catalogue.FunctionPumpFunSell:
		return true, HandleTrade(ctx, d, tx, instr, "SELL")
	case catalogue.FunctionDaosFundInitializeCurve:
		return true, HandleInitializeCurve(ctx, d, tx, instr)
	case catalogue.FunctionRaydiumInitialize2:
		return true, HandleInitialize2(ctx, d, tx, instr)
	case catalogue.FunctionSerumInitializeMarket:
		return true, HandleInitializeMarket(ctx, d, tx, instr)
	default:
		return false, nil
	}
}
