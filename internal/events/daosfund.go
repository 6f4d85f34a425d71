package events

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/solrelay/txstream/internal/txcontext"
)

// HandleInitializeCurve implements the DaosFund InitializeCurve handler.
func HandleInitializeCurve(_ context.Context, d *Deps, _ *txcontext.Transaction, instr txcontext.Instruction) error {
	event := DaosFundInitializeCurveNotification{
		TokenAddress:  instr.Account(1),
		ConfigAddress: instr.Account(3),
		CurveAddress:  instr.Account(9),
	}
	d.publish(TopicDaosFundInitializeCurve, event.encode())
	d.Log.WithFields(logrus.Fields{
		"token_address": event.TokenAddress.String(),
		"curve_address": event.CurveAddress.String(),
	}).Info("daos fund initialize curve")
	return nil
}
