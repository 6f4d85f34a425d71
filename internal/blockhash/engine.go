package blockhash

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/sirupsen/logrus"

	"github.com/solrelay/txstream/internal/kv"
	"github.com/solrelay/txstream/internal/logging"
	"github.com/solrelay/txstream/internal/rolling"
	"github.com/solrelay/txstream/internal/solana"
)

const (
	rpcEndpoint      = "https://api.mainnet-beta.solana.com"
	defaultWorkers   = 2
	softCadence      = 400 * time.Millisecond
	windowCap        = 200
	maxValiditySlots = 150
)

var expiryTargets = [...]int{5, 15, 30, 45, 60}

// slotBlockhash is one observed (slot, blockhash) pair.
type slotBlockhash struct {
	Slot       uint64
	Blockhash  string
	ObservedAt time.Time
}

// Engine is the single-goroutine-owned blockhash freshness loop.
// Nothing outside Run ever mutates its fields.
type Engine struct {
	workers int
	rot     *rotation
	kv      kv.Store
	log     *logrus.Logger

	avg50  *rolling.Average
	avg150 *rolling.Average

	window      []slotBlockhash
	lastSlot    uint64
	lastInstant time.Time
	haveLast    bool
}

// NewEngine builds an Engine rotating over proxies (already validated
// non-empty by internal/config, in `host:port:user:pass` form) with the
// default worker count.
func NewEngine(proxies []string, store kv.Store, log *logrus.Logger) (*Engine, error) {
	parsed := make([]string, len(proxies))
	for i, raw := range proxies {
		url, err := parseProxy(raw)
		if err != nil {
			return nil, err
		}
		parsed[i] = url
	}
	return &Engine{
		workers: defaultWorkers,
		rot:     newRotation(parsed),
		kv:      store,
		log:     log,
		avg50:   rolling.New(50),
		avg150:  rolling.New(150),
	}, nil
}

// Run drives the engine until ctx is canceled. Each iteration races
// `workers` proxies for a getLatestBlockhash observation, updates the
// rolling slot-time estimate, and writes the freshness buckets.
func (e *Engine) Run(ctx context.Context) {
	for {
		if ctx.Err() != nil {
			return
		}
		start := time.Now()

		obs, err := e.observe(ctx)
		if err != nil {
			e.log.WithError(err).Warn("blockhash poll failed, retrying next iteration")
			continue
		}

		if elapsed := time.Since(start); elapsed < softCadence {
			select {
			case <-ctx.Done():
				return
			case <-time.After(softCadence - elapsed):
			}
		}

		e.observeSlot(obs)
		e.appendWindow(obs)
		e.writeRecentBlockhash(ctx, obs.Blockhash)
		e.writeExpiryBuckets(ctx, obs.Slot)

		e.log.Infof("blockhash cadence: slot=%s avg_block_time=%ss", logging.Accent(fmt.Sprint(obs.Slot)), logging.AccentAlt(fmt.Sprintf("%.3f", e.avg50.Average())))

		e.lastSlot = obs.Slot
		e.lastInstant = obs.ObservedAt
		e.haveLast = true
	}
}

func (e *Engine) observe(ctx context.Context) (slotBlockhash, error) {
	proxies := e.rot.stride(e.workers)
	if len(proxies) == 0 {
		return slotBlockhash{}, fmt.Errorf("blockhash: no proxies configured")
	}

	type result struct {
		obs slotBlockhash
		err error
	}
	raceCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	results := make(chan result, len(proxies))
	for _, proxy := range proxies {
		proxy := proxy
		go func() {
			obs, err := fetchLatestBlockhash(raceCtx, proxy)
			results <- result{obs, err}
		}()
	}

	var lastErr error
	for i := 0; i < len(proxies); i++ {
		r := <-results
		if r.err == nil {
			cancel()
			return r.obs, nil
		}
		lastErr = r.err
	}
	return slotBlockhash{}, lastErr
}

func (e *Engine) observeSlot(obs slotBlockhash) {
	if !e.haveLast || obs.Slot <= e.lastSlot {
		return
	}
	slotDelta := obs.Slot - e.lastSlot
	perSlot := obs.ObservedAt.Sub(e.lastInstant).Seconds() / float64(slotDelta)
	for i := uint64(0); i < slotDelta; i++ {
		e.avg50.Push(perSlot)
		e.avg150.Push(perSlot)
	}
}

func (e *Engine) appendWindow(obs slotBlockhash) {
	e.window = append(e.window, obs)
	if len(e.window) > windowCap {
		e.window = e.window[len(e.window)-windowCap:]
	}
}

func (e *Engine) writeRecentBlockhash(ctx context.Context, blockhash string) {
	if err := e.kv.Set(ctx, "recent_blockhash", blockhash, 0); err != nil {
		e.log.WithError(err).Warn("write recent_blockhash failed")
	}
}

// writeExpiryBuckets picks, for each target age, the window entry
// whose remaining validity is closest to the target and writes it to
// recent_blockhash_with_expiration:<t>. Declines to write any bucket
// until the rolling average has a real estimate.
func (e *Engine) writeExpiryBuckets(ctx context.Context, currentSlot uint64) {
	avg := e.avg50.Average()
	if avg == 0 {
		return
	}

	for _, target := range expiryTargets {
		best, ok := e.pickExpiryEntry(currentSlot, avg, float64(target))
		if !ok {
			continue
		}
		key := fmt.Sprintf("recent_blockhash_with_expiration:%d", target)
		if err := e.kv.Set(ctx, key, best.Blockhash, 0); err != nil {
			e.log.WithError(err).WithField("target", target).Warn("write expiry bucket failed")
		}
	}
}

func (e *Engine) pickExpiryEntry(currentSlot uint64, avgBlockTime, target float64) (slotBlockhash, bool) {
	var (
		best     slotBlockhash
		bestDiff float64
		found    bool
	)
	for _, entry := range e.window {
		age := currentSlot - entry.Slot
		if age >= maxValiditySlots {
			continue
		}
		remaining := float64(maxValiditySlots-age) * avgBlockTime
		diff := remaining - target
		if diff < 0 {
			diff = -diff
		}
		if !found || diff < bestDiff {
			best, bestDiff, found = entry, diff, true
		}
	}
	return best, found
}

type rpcRequest struct {
	JSONRPC string        `json:"jsonrpc"`
	ID      int           `json:"id"`
	Method  string        `json:"method"`
	Params  []interface{} `json:"params"`
}

type getLatestBlockhashResponse struct {
	Result struct {
		Context struct {
			Slot uint64 `json:"slot"`
		} `json:"context"`
		Value struct {
			Blockhash string `json:"blockhash"`
		} `json:"value"`
	} `json:"result"`
	Error *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func fetchLatestBlockhash(ctx context.Context, proxy string) (slotBlockhash, error) {
	client, err := proxiedClient(proxy)
	if err != nil {
		return slotBlockhash{}, err
	}

	body := rpcRequest{
		JSONRPC: "2.0",
		ID:      1,
		Method:  "getLatestBlockhash",
		Params:  []interface{}{map[string]solana.Commitment{"commitment": solana.CommitmentConfirmed}},
	}
	result := &getLatestBlockhashResponse{}
	resp, err := client.R().
		SetContext(ctx).
		SetBody(body).
		SetResult(result).
		Post(rpcEndpoint)
	if err != nil {
		return slotBlockhash{}, fmt.Errorf("getLatestBlockhash via %s: %w", proxy, err)
	}
	if resp.IsError() {
		return slotBlockhash{}, fmt.Errorf("getLatestBlockhash via %s: status %d", proxy, resp.StatusCode())
	}
	if result.Error != nil {
		return slotBlockhash{}, fmt.Errorf("getLatestBlockhash via %s: rpc error %d: %s", proxy, result.Error.Code, result.Error.Message)
	}
	return slotBlockhash{
		Slot:       result.Result.Context.Slot,
		Blockhash:  result.Result.Value.Blockhash,
		ObservedAt: time.Now(),
	}, nil
}

func proxiedClient(proxy string) (*resty.Client, error) {
	parsed, err := url.Parse(proxy)
	if err != nil {
		return nil, fmt.Errorf("parse proxy url: %w", err)
	}
	transport := &http.Transport{Proxy: http.ProxyURL(parsed)}
	httpClient := &http.Client{Transport: transport, Timeout: 5 * time.Second}
	return resty.NewWithClient(httpClient), nil
}
