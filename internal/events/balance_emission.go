package events

import (
	"context"

	mapset "github.com/deckarep/golang-set/v2"

	"github.com/solrelay/txstream/internal/balances"
	"github.com/solrelay/txstream/internal/txcontext"
)

// EmitBalanceUpdates runs after all per-instruction handlers for a
// notification: fetch the tracked-user set once and emit native, then
// SPL, balance-change events for tracked addresses.
func EmitBalanceUpdates(ctx context.Context, d *Deps, tx *txcontext.Transaction) {
	trackedUsers, err := d.KV.SMembers(ctx, "tracked_user_addresses")
	if err != nil {
		d.Log.WithError(err).Warn("tracked_user_addresses lookup failed, skipping balance emission")
		return
	}
	tracked := mapset.NewSet(trackedUsers...)

	for i, address := range tx.AccountAddresses {
		if i >= len(tx.PreBalances) || i >= len(tx.PostBalances) {
			continue
		}
		pre, post := tx.PreBalances[i], tx.PostBalances[i]
		if pre == post {
			continue
		}
		if !tracked.Contains(address.String()) {
			continue
		}
		event := LamportsBalanceUpdate{Address: address, PreBalance: pre, PostBalance: post}
		d.publish(TopicLamportsBalanceUpdate, event.encode())
	}

	updates := balances.Compile(tx.PreTokenBalances, tx.PostTokenBalances)
	for key, update := range updates {
		if !tracked.Contains(key.Owner.String()) {
			continue
		}
		event := SplBalanceUpdate{
			Address:     key.Owner,
			Mint:        key.Mint,
			PreBalance:  update.Pre,
			PostBalance: update.Post,
			Decimals:    update.Decimals,
		}
		d.publish(TopicSplBalanceUpdate, event.encode())
	}
}
