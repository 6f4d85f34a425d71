package kv

import (
	"context"
	"testing"
	"time"
)

func TestFakeSetGet(t *testing.T) {
	f := NewFake()
	ctx := context.Background()

	if err := f.Set(ctx, "recent_blockhash", "abc", 0); err != nil {
		t.Fatalf("Set: %v", err)
	}
	v, err := f.Get(ctx, "recent_blockhash")
	if err != nil || v != "abc" {
		t.Fatalf("Get() = %q, %v", v, err)
	}
}

func TestFakeGetMissingErrors(t *testing.T) {
	f := NewFake()
	if _, err := f.Get(context.Background(), "missing"); err == nil {
		t.Fatal("expected error for missing key")
	}
}

func TestFakeSIsMember(t *testing.T) {
	f := NewFake()
	ctx := context.Background()
	f.AddMember("tracked_token_addresses", "mintA")

	ok, err := f.SIsMember(ctx, "tracked_token_addresses", "mintA")
	if err != nil || !ok {
		t.Fatalf("SIsMember(mintA) = %v, %v", ok, err)
	}
	ok, err = f.SIsMember(ctx, "tracked_token_addresses", "mintB")
	if err != nil || ok {
		t.Fatalf("SIsMember(mintB) = %v, %v", ok, err)
	}
}

func TestFakeSMembers(t *testing.T) {
	f := NewFake()
	ctx := context.Background()
	f.AddMember("tracked_user_addresses", "userA")
	f.AddMember("tracked_user_addresses", "userB")

	members, err := f.SMembers(ctx, "tracked_user_addresses")
	if err != nil || len(members) != 2 {
		t.Fatalf("SMembers() = %v, %v", members, err)
	}
}

func TestSetAcceptsTTL(t *testing.T) {
	f := NewFake()
	if err := f.Set(context.Background(), "k", "v", time.Second); err != nil {
		t.Fatalf("Set with TTL: %v", err)
	}
}
