package ingest

import (
	"context"

	"github.com/solrelay/txstream/internal/events"
	"github.com/solrelay/txstream/internal/txcontext"
	"github.com/solrelay/txstream/internal/xerrors"
)

// maxConcurrentNotifications bounds how many transaction notifications
// the session's read loop processes at once: up to 16 notifications in
// flight, with no ordering guarantee across them. It is enforced by the
// caller (session.go), not here — a single notification's instructions
// dispatch sequentially, awaiting each one in turn.
const maxConcurrentNotifications = 16

// dispatcher runs one notification's flattened instructions through
// the event handlers, then emits the native/SPL balance events once
// every instruction has been handled.
type dispatcher struct {
	deps *events.Deps
}

func newDispatcher(deps *events.Deps) *dispatcher {
	return &dispatcher{deps: deps}
}

// handleNotification dispatches every instruction in source order,
// awaiting each one before moving to the next, then emits the
// balance-change events in the order native-then-SPL. A decode failure
// or protocol violation returned for any instruction is fatal for the
// whole notification: it is
// abandoned, including the balance emission that would otherwise
// follow the fan-out.
func (d *dispatcher) handleNotification(ctx context.Context, tx *txcontext.Transaction) error {
	for _, instr := range tx.Instructions {
		if _, err := events.Dispatch(ctx, d.deps, tx, instr); err != nil {
			d.deps.Log.WithError(err).Warn("instruction dispatch failure, notification abandoned")
			return xerrors.Wrap("instruction dispatch", err)
		}
	}

	events.EmitBalanceUpdates(ctx, d.deps, tx)
	return nil
}
