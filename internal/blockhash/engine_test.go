package blockhash

import (
	"context"
	"testing"
	"time"

	"github.com/solrelay/txstream/internal/kv"
	"github.com/solrelay/txstream/internal/logging"
)

func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	e, err := NewEngine([]string{"127.0.0.1:1:u:p"}, kv.NewFake(), logging.New("error"))
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}
	return e
}

func TestObserveSlotFeedsRollingAverages(t *testing.T) {
	e := newTestEngine(t)

	first := slotBlockhash{Slot: 100, ObservedAt: time.Unix(0, 0)}
	e.observeSlot(first) // no previous observation: no-op
	e.lastSlot = first.Slot
	e.lastInstant = first.ObservedAt
	e.haveLast = true

	second := slotBlockhash{Slot: 102, ObservedAt: time.Unix(0, 0).Add(800 * time.Millisecond)}
	e.observeSlot(second)

	if e.avg50.Count() != 2 {
		t.Fatalf("avg50.Count() = %d, want 2 (one push per elapsed slot)", e.avg50.Count())
	}
	if got := e.avg50.Average(); got < 0.399 || got > 0.401 {
		t.Fatalf("avg50.Average() = %v, want ~0.4s per slot", got)
	}
}

func TestObserveSlotIgnoresNonAdvancingSlot(t *testing.T) {
	e := newTestEngine(t)
	e.lastSlot = 50
	e.lastInstant = time.Unix(0, 0)
	e.haveLast = true

	e.observeSlot(slotBlockhash{Slot: 50, ObservedAt: time.Unix(0, 1)})
	if e.avg50.Count() != 0 {
		t.Fatalf("avg50.Count() = %d, want 0 for a non-advancing slot", e.avg50.Count())
	}
}

func TestAppendWindowTrimsToCapacity(t *testing.T) {
	e := newTestEngine(t)
	for i := 0; i < windowCap+10; i++ {
		e.appendWindow(slotBlockhash{Slot: uint64(i)})
	}
	if len(e.window) != windowCap {
		t.Fatalf("len(window) = %d, want %d", len(e.window), windowCap)
	}
	if e.window[0].Slot != 10 {
		t.Fatalf("window[0].Slot = %d, want 10 (oldest 10 entries trimmed)", e.window[0].Slot)
	}
}

// remaining = (150 - (current_slot - entry.slot)) * avg_block_time.
func TestPickExpiryEntryMinimizesDistanceToTarget(t *testing.T) {
	e := newTestEngine(t)
	e.window = []slotBlockhash{
		{Slot: 1000, Blockhash: "too-old"},  // age 100 -> remaining 50*0.4=20s
		{Slot: 1080, Blockhash: "close"},    // age 20  -> remaining 130*0.4=52s
		{Slot: 1095, Blockhash: "closest"},  // age 5   -> remaining 145*0.4=58s
	}
	currentSlot := uint64(1100)
	avgBlockTime := 0.4

	got, ok := e.pickExpiryEntry(currentSlot, avgBlockTime, 60)
	if !ok {
		t.Fatal("pickExpiryEntry() reported no candidate")
	}
	if got.Blockhash != "closest" {
		t.Fatalf("pickExpiryEntry(target=60) = %q, want %q", got.Blockhash, "closest")
	}
}

func TestPickExpiryEntryExcludesExpiredEntries(t *testing.T) {
	e := newTestEngine(t)
	e.window = []slotBlockhash{
		{Slot: 900, Blockhash: "expired"}, // age 200 >= 150, excluded
	}
	if _, ok := e.pickExpiryEntry(1100, 0.4, 30); ok {
		t.Fatal("pickExpiryEntry() should exclude entries past max validity")
	}
}

// TestWriteExpiryBucketsSkipsUntilAverageWarm covers the bootstrap
// rule: no bucket writes happen while the rolling average is zero.
func TestWriteExpiryBucketsSkipsUntilAverageWarm(t *testing.T) {
	e := newTestEngine(t)
	e.window = []slotBlockhash{{Slot: 100, Blockhash: "h"}}

	store := e.kv.(*kv.Fake)
	e.writeExpiryBuckets(context.Background(), 105)

	if _, err := store.Get(context.Background(), "recent_blockhash_with_expiration:30"); err == nil {
		t.Fatal("expected no expiry bucket written while rolling average is still zero")
	}
}
