// Command txstream runs the long-lived tasks that make up the
// transaction-stream processor: the websocket session driver (which
// owns its own keep-alive goroutine and bounded-concurrency
// dispatcher), the blockhash freshness engine, and the bus publisher.
package main

import (
	"context"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/solrelay/txstream/internal/blockhash"
	"github.com/solrelay/txstream/internal/bus"
	"github.com/solrelay/txstream/internal/config"
	"github.com/solrelay/txstream/internal/events"
	"github.com/solrelay/txstream/internal/ingest"
	"github.com/solrelay/txstream/internal/kv"
	"github.com/solrelay/txstream/internal/logging"
	"github.com/solrelay/txstream/internal/marketclient"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		// Startup misconfiguration: fail immediately.
		logging.New("info").WithError(err).Fatal("startup configuration invalid")
	}

	log := logging.New(cfg.LogLevel)

	store, err := kv.Dial(cfg.RedisURL)
	if err != nil {
		log.WithError(err).Fatal("redis dial failed")
	}
	defer store.Close()

	publisher, err := bus.NewPublisher(log)
	if err != nil {
		log.WithError(err).Fatal("bus publisher bind failed")
	}
	defer publisher.Close()

	queue := bus.NewQueue()
	market := marketclient.New(cfg.DBGatewayURL, cfg.DBGatewayKey)

	deps := &events.Deps{
		Queue:  queue,
		KV:     store,
		Market: market,
		Log:    log,
	}

	engine, err := blockhash.NewEngine(cfg.Proxies, store, log)
	if err != nil {
		log.WithError(err).Fatal("blockhash engine configuration invalid")
	}

	session := ingest.NewSession(cfg.HeliusHost, cfg.HeliusAPIKey, deps)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		publisher.Run(queue)
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		engine.Run(ctx)
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		session.Run(ctx)
	}()

	log.Info("txstream running")
	<-ctx.Done()
	log.Info("shutdown signal received, draining")

	queue.Close()
	wg.Wait()
}
