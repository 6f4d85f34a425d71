package events

import (
	"context"
	"errors"
	"time"
)

// failingStore is a kv.Store whose every method errors, used to test
// that a KV network error degrades to not-tracked.
type failingStore struct{}

func (failingStore) Get(context.Context, string) (string, error) {
	return "", errors.New("kv unavailable")
}

func (failingStore) Set(context.Context, string, string, time.Duration) error {
	return errors.New("kv unavailable")
}

func (failingStore) SMembers(context.Context, string) ([]string, error) {
	return nil, errors.New("kv unavailable")
}

func (failingStore) SIsMember(context.Context, string, string) (bool, error) {
	return false, errors.New("kv unavailable")
}
