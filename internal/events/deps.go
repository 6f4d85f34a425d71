package events

import (
	"github.com/sirupsen/logrus"

	"github.com/solrelay/txstream/internal/bus"
	"github.com/solrelay/txstream/internal/kv"
	"github.com/solrelay/txstream/internal/marketclient"
)

// Topic literals handlers publish on, re-exported from the bus package
// so handler code and tests read against a single name set.
const (
	TopicSplTokenCreation        = bus.TopicSplTokenCreation
	TopicPumpFunBondingCurve     = bus.TopicPumpFunBondingCurve
	TopicDaosFundInitializeCurve = bus.TopicDaosFundInitializeCurve
	TopicLamportsBalanceUpdate   = bus.TopicLamportsBalanceUpdate
	TopicSplBalanceUpdate        = bus.TopicSplBalanceUpdate
)

// Deps bundles the collaborators a handler may need: the outbound bus
// queue every handler can publish to, and the KV store / market client
// only some handlers consult. The dispatcher owns this wiring, the
// catalogue stays pure.
type Deps struct {
	Queue  *bus.Queue
	KV     kv.Store
	Market marketclient.Client
	Log    *logrus.Logger
}

func (d *Deps) publish(topic string, payload []byte) {
	d.Queue.Send(bus.Message{Topic: topic, Payload: payload})
}
