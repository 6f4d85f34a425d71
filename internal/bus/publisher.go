package bus

import (
	"github.com/pebbe/zmq4"
	"github.com/sirupsen/logrus"
)

// BindAddr is the outbound PUB socket address.
const BindAddr = "tcp://127.0.0.1:6900"

// Publisher drains a Queue and writes each item as a two-frame
// (topic, payload) message on a PUB-style socket. Construction binds
// the socket immediately; a bind failure is a startup error.
type Publisher struct {
	sock *zmq4.Socket
	log  *logrus.Logger
}

// NewPublisher creates and binds the PUB socket.
func NewPublisher(log *logrus.Logger) (*Publisher, error) {
	sock, err := zmq4.NewSocket(zmq4.PUB)
	if err != nil {
		return nil, err
	}
	if err := sock.Bind(BindAddr); err != nil {
		sock.Close()
		return nil, err
	}
	return &Publisher{sock: sock, log: log}, nil
}

// Run drains q until it is closed and drained, writing each message as
// it arrives. A write failure is logged and the next item attempted —
// writes are best-effort.
func (p *Publisher) Run(q *Queue) {
	for {
		msg, ok := q.Recv()
		if !ok {
			return
		}
		if _, err := p.sock.SendMessage(msg.Topic, msg.Payload); err != nil {
			p.log.WithError(err).WithField("topic", msg.Topic).Warn("bus publish failed")
		}
	}
}

// Close releases the underlying socket.
func (p *Publisher) Close() error {
	return p.sock.Close()
}
