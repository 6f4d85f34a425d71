package ingest

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"github.com/solrelay/txstream/internal/events"
	"github.com/solrelay/txstream/internal/logging"
	"github.com/solrelay/txstream/internal/xerrors"
)

// State names a position in the session state machine:
//
//	Disconnected -> Connecting -> Subscribed -> Running -> (Disconnected | Resubscribing)
type State int

const (
	StateDisconnected State = iota
	StateConnecting
	StateSubscribed
	StateRunning
	StateResubscribing
)

func (s State) String() string {
	switch s {
	case StateConnecting:
		return "connecting"
	case StateSubscribed:
		return "subscribed"
	case StateRunning:
		return "running"
	case StateResubscribing:
		return "resubscribing"
	default:
		return "disconnected"
	}
}

const (
	reconnectBackoff = time.Second
	keepAliveEvery   = 30 * time.Second
	pingWriteTimeout = 10 * time.Second
)

// Session owns the websocket connection backing the enhanced-transaction
// subscription: connect, subscribe, keep-alive, and the read loop that
// feeds the bounded-concurrency dispatcher.
type Session struct {
	url  string
	deps *events.Deps
	log  *logrus.Logger

	mu    sync.Mutex // guards conn and state; short critical section only
	conn  *websocket.Conn
	state State

	// notificationSem bounds concurrently-processed transaction
	// notifications to maxConcurrentNotifications — a per-notification
	// bound, not a per-instruction one (instructions within a
	// notification dispatch sequentially).
	notificationSem chan struct{}
}

// NewSession builds a Session dialing wss://host/?api-key=apiKey.
func NewSession(host, apiKey string, deps *events.Deps) *Session {
	return &Session{
		url:             fmt.Sprintf("wss://%s/?api-key=%s", host, apiKey),
		deps:            deps,
		log:             deps.Log,
		notificationSem: make(chan struct{}, maxConcurrentNotifications),
	}
}

func (s *Session) setState(state State) {
	s.mu.Lock()
	s.state = state
	s.mu.Unlock()
	s.log.Infof("session state -> %s", logging.Accent(state.String()))
}

// State returns the session's current lifecycle state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Run drives the session until ctx is canceled, reconnecting on any
// transport failure with a fixed 1-second backoff.
func (s *Session) Run(ctx context.Context) {
	for {
		if ctx.Err() != nil {
			return
		}
		if err := s.runOnce(ctx); err != nil {
			s.log.WithError(err).Warn("websocket session ended, reconnecting")
		}
		s.setState(StateDisconnected)

		select {
		case <-ctx.Done():
			return
		case <-time.After(reconnectBackoff):
		}
	}
}

func (s *Session) runOnce(ctx context.Context) error {
	s.setState(StateConnecting)
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, s.url, nil)
	if err != nil {
		return xerrors.Wrap("dial websocket", err)
	}
	s.mu.Lock()
	s.conn = conn
	s.mu.Unlock()
	defer conn.Close()

	if err := s.writeSubscribe(); err != nil {
		return xerrors.Wrap("send subscribe", err)
	}
	s.setState(StateSubscribed)

	keepAliveCtx, stopKeepAlive := context.WithCancel(ctx)
	defer stopKeepAlive()
	keepAliveErr := make(chan error, 1)
	go s.runKeepAlive(keepAliveCtx, keepAliveErr)

	d := newDispatcher(s.deps)
	readErr := make(chan error, 1)
	go s.readLoop(ctx, d, readErr)

	select {
	case err := <-keepAliveErr:
		return xerrors.Wrap("keep-alive", err)
	case err := <-readErr:
		return err
	case <-ctx.Done():
		return nil
	}
}

func (s *Session) writeSubscribe() error {
	req := buildSubscribeRequest()
	payload, err := json.Marshal(req)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.conn.WriteMessage(websocket.TextMessage, payload)
}

func (s *Session) runKeepAlive(ctx context.Context, errCh chan<- error) {
	ticker := time.NewTicker(keepAliveEvery)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.mu.Lock()
			err := s.conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(pingWriteTimeout))
			s.mu.Unlock()
			if err != nil {
				errCh <- err
				return
			}
		}
	}
}

func (s *Session) readLoop(ctx context.Context, d *dispatcher, errCh chan<- error) {
	first := true
	for {
		_, data, err := s.conn.ReadMessage()
		if err != nil {
			errCh <- err
			return
		}

		var env envelope
		if err := json.Unmarshal(data, &env); err != nil {
			s.log.WithError(err).Info("dropping unparseable frame")
			continue
		}

		switch classify(env) {
		case frameKindSubscriptionSuccessful:
			if first {
				s.setState(StateRunning)
				first = false
			}
		case frameKindSubscriptionError:
			s.setState(StateResubscribing)
			if err := s.writeSubscribe(); err != nil {
				errCh <- xerrors.Wrap("resubscribe", err)
				return
			}
			s.setState(StateRunning)
		case frameKindTransactionNotification:
			var notif transactionNotificationJSON
			if err := json.Unmarshal(data, &notif); err != nil {
				s.log.WithError(err).Warn("malformed transaction notification, dropping")
				continue
			}
			tx, ok := notif.toTransaction()
			if !ok {
				s.log.Warn("transaction notification missing meta, abandoning (protocol violation)")
				continue
			}
			s.notificationSem <- struct{}{}
			go func() {
				defer func() { <-s.notificationSem }()
				if err := d.handleNotification(ctx, tx); err != nil {
					s.log.WithError(err).WithField("signature", tx.Signature).Warn("notification abandoned")
				}
			}()
		default:
			s.log.Info("dropping unrecognized frame")
		}
	}
}
