// Copyright 2025 The txstream Authors
// This file is part of the txstream service.

// Package kv wraps the Redis-backed key/value store behind the narrow
// interface the pipeline needs — tracked-address set membership and the
// published blockhash records — rather than the full redis.Cmdable
// surface.
package kv

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// Store is the subset of Redis commands the pipeline depends on.
type Store interface {
	// Get returns the string value at key, or an error if absent
	// (redis.Nil from Client, which IsNil recognizes; Fake returns its
	// own not-found error).
	Get(ctx context.Context, key string) (string, error)
	// Set writes value at key with an optional TTL (zero means no expiry).
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	// SMembers returns every member of the set at key.
	SMembers(ctx context.Context, key string) ([]string, error)
	// SIsMember reports whether member is present in the set at key.
	SIsMember(ctx context.Context, key, member string) (bool, error)
}

// Client adapts a *redis.Client to Store.
type Client struct {
	rdb *redis.Client
}

// Dial parses url and returns a Client ready for use. It does not probe
// the connection; a dead Redis surfaces on first command, not as a
// startup misconfiguration, since the server may come up after us.
func Dial(url string) (*Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, err
	}
	return &Client{rdb: redis.NewClient(opts)}, nil
}

func (c *Client) Get(ctx context.Context, key string) (string, error) {
	return c.rdb.Get(ctx, key).Result()
}

func (c *Client) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	return c.rdb.Set(ctx, key, value, ttl).Err()
}

func (c *Client) SMembers(ctx context.Context, key string) ([]string, error) {
	return c.rdb.SMembers(ctx, key).Result()
}

func (c *Client) SIsMember(ctx context.Context, key, member string) (bool, error) {
	return c.rdb.SIsMember(ctx, key, member).Result()
}

// Close releases the underlying connection pool.
func (c *Client) Close() error {
	return c.rdb.Close()
}

// IsNil reports whether err is the Redis "key does not exist" sentinel,
// letting callers distinguish a missing key from a transport failure.
func IsNil(err error) bool {
	return err == redis.Nil
}
