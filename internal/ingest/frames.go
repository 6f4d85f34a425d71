// Package ingest implements the websocket session lifecycle,
// per-message JSON parsing and instruction flattening, and the
// bounded-concurrency dispatcher that hands each instruction to its
// event handler and emits the native/SPL balance-change events. The
// service drives exactly one always-on subscription, so the session is
// built directly on a gorilla/websocket connection rather than a
// general-purpose multiplexed RPC client.
package ingest

import (
	"encoding/json"

	"github.com/solrelay/txstream/internal/solana"
	"github.com/solrelay/txstream/internal/txcontext"
)

// subscribeRequest is the literal transactionSubscribe payload.
type subscribeRequest struct {
	JSONRPC string        `json:"jsonrpc"`
	ID      string        `json:"id"`
	Method  string        `json:"method"`
	Params  []interface{} `json:"params"`
}

func buildSubscribeRequest() subscribeRequest {
	return subscribeRequest{
		JSONRPC: "2.0",
		ID:      "1",
		Method:  "transactionSubscribe",
		Params: []interface{}{
			map[string]interface{}{
				"vote":            false,
				"failed":          false,
				"accountInclude":  []string{},
				"accountRequired": []string{},
				"accountExclude":  []string{},
			},
			map[string]interface{}{
				"commitment":                     solana.CommitmentProcessed,
				"encoding":                       solana.EncodingJSONParsed,
				"transaction_details":            "full",
				"showRewards":                    true,
				"maxSupportedTransactionVersion": 0,
			},
		},
	}
}

// envelope is the minimal shape every inbound frame is first parsed as,
// to decide which of the three recognized frame kinds it is.
type envelope struct {
	Method string          `json:"method"`
	ID     json.RawMessage `json:"id"`
	Result json.RawMessage `json:"result"`
	Error  *rpcError       `json:"error"`
}

type rpcError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// frameKind identifies which of the three recognized server frames a
// message was, or frameKindUnrecognized for anything else.
type frameKind int

const (
	frameKindUnrecognized frameKind = iota
	frameKindTransactionNotification
	frameKindSubscriptionSuccessful
	frameKindSubscriptionError
)

func classify(env envelope) frameKind {
	switch {
	case env.Method == "transactionNotification":
		return frameKindTransactionNotification
	case env.Error != nil:
		return frameKindSubscriptionError
	case len(env.Result) > 0:
		return frameKindSubscriptionSuccessful
	default:
		return frameKindUnrecognized
	}
}

// accountKeyJSON is one entry of the parsed-JSON accountKeys array.
type accountKeyJSON struct {
	Pubkey   string `json:"pubkey"`
	Signer   bool   `json:"signer"`
	Writable bool   `json:"writable"`
}

// rawInstructionJSON is the partially-decoded instruction shape this
// pipeline dispatches. A Parsed field being present marks the
// fully-parsed-JSON shape, which is ignored.
type rawInstructionJSON struct {
	ProgramID string          `json:"programId"`
	Accounts  []string        `json:"accounts"`
	Data      string          `json:"data"`
	Parsed    json.RawMessage `json:"parsed,omitempty"`
}

func (r rawInstructionJSON) isPartiallyDecoded() bool {
	return len(r.Parsed) == 0 && r.ProgramID != "" && r.Data != ""
}

type innerInstructionGroupJSON struct {
	Index        int                  `json:"index"`
	Instructions []rawInstructionJSON `json:"instructions"`
}

type uiTokenAmountJSON struct {
	Amount   string   `json:"amount"`
	Decimals uint8    `json:"decimals"`
	UIAmount *float64 `json:"uiAmount"`
}

type tokenBalanceJSON struct {
	AccountIndex  int               `json:"accountIndex"`
	Mint          string            `json:"mint"`
	Owner         string            `json:"owner,omitempty"`
	UITokenAmount uiTokenAmountJSON `json:"uiTokenAmount"`
}

type txMetaJSON struct {
	PreBalances       []uint64                    `json:"preBalances"`
	PostBalances      []uint64                    `json:"postBalances"`
	PreTokenBalances  []tokenBalanceJSON          `json:"preTokenBalances"`
	PostTokenBalances []tokenBalanceJSON          `json:"postTokenBalances"`
	InnerInstructions []innerInstructionGroupJSON `json:"innerInstructions"`
}

type messageJSON struct {
	AccountKeys  []accountKeyJSON     `json:"accountKeys"`
	Instructions []rawInstructionJSON `json:"instructions"`
}

type transactionJSON struct {
	Signatures []string    `json:"signatures"`
	Message    messageJSON `json:"message"`
}

type transactionResultJSON struct {
	Transaction transactionJSON `json:"transaction"`
	Meta        *txMetaJSON     `json:"meta"`
	Slot        uint64          `json:"slot"`
}

type transactionNotificationJSON struct {
	Params struct {
		Result transactionResultJSON `json:"result"`
	} `json:"params"`
}

// toTransaction converts the wire shape into the immutable context
// handlers consume, flattening instructions outer-then-inner. Returns
// (nil, false) if meta is absent — a protocol violation the caller
// must treat as fatal for this message — or if the first signature is
// not a valid base58 signature.
func (n transactionNotificationJSON) toTransaction() (*txcontext.Transaction, bool) {
	result := n.Params.Result
	if result.Meta == nil {
		return nil, false
	}
	meta := result.Meta

	accounts := make([]solana.Address, len(result.Transaction.Message.AccountKeys))
	signers := make([]bool, len(result.Transaction.Message.AccountKeys))
	for i, k := range result.Transaction.Message.AccountKeys {
		addr, err := solana.ParseAddress(k.Pubkey)
		if err != nil {
			continue
		}
		accounts[i] = addr
		signers[i] = k.Signer
	}

	var signature string
	if len(result.Transaction.Signatures) > 0 {
		sig, err := solana.ParseSignature(result.Transaction.Signatures[0])
		if err != nil {
			return nil, false
		}
		signature = sig.String()
	}

	tx := &txcontext.Transaction{
		Slot:                 result.Slot,
		Signature:            signature,
		AccountAddresses:     accounts,
		Signers:              signers,
		PreBalances:          meta.PreBalances,
		PostBalances:         meta.PostBalances,
		PreTokenBalances:     convertTokenBalances(meta.PreTokenBalances),
		PostTokenBalances:    convertTokenBalances(meta.PostTokenBalances),
		HasPostTokenBalances: meta.PostTokenBalances != nil,
		Instructions:         flatten(result.Transaction.Message.Instructions, meta.InnerInstructions),
	}
	return tx, true
}

func convertTokenBalances(in []tokenBalanceJSON) []txcontext.TokenBalance {
	out := make([]txcontext.TokenBalance, 0, len(in))
	for _, b := range in {
		tb := txcontext.TokenBalance{
			AccountIndex: b.AccountIndex,
			Amount:       b.UITokenAmount.Amount,
			Decimals:     b.UITokenAmount.Decimals,
		}
		if b.Owner != "" {
			if addr, err := solana.ParseAddress(b.Owner); err == nil {
				tb.Owner = addr
				tb.HasOwner = true
			}
		}
		if addr, err := solana.ParseAddress(b.Mint); err == nil {
			tb.Mint = addr
		}
		if b.UITokenAmount.UIAmount != nil {
			tb.UIAmount = *b.UITokenAmount.UIAmount
			tb.HasUIAmount = true
		}
		out = append(out, tb)
	}
	return out
}

// flatten returns outer instructions in source order, followed by each
// inner-instruction group's instructions in source order. Only
// partially-decoded instructions are kept; fully-parsed ones are
// dropped.
func flatten(outer []rawInstructionJSON, innerGroups []innerInstructionGroupJSON) []txcontext.Instruction {
	var out []txcontext.Instruction
	for _, ins := range outer {
		if i, ok := convertInstruction(ins, false); ok {
			out = append(out, i)
		}
	}
	for _, group := range innerGroups {
		for _, ins := range group.Instructions {
			if i, ok := convertInstruction(ins, true); ok {
				out = append(out, i)
			}
		}
	}
	return out
}

func convertInstruction(ins rawInstructionJSON, isInner bool) (txcontext.Instruction, bool) {
	if !ins.isPartiallyDecoded() {
		return txcontext.Instruction{}, false
	}
	program, err := solana.ParseAddress(ins.ProgramID)
	if err != nil {
		return txcontext.Instruction{}, false
	}
	accounts := make([]solana.Address, 0, len(ins.Accounts))
	for _, a := range ins.Accounts {
		addr, err := solana.ParseAddress(a)
		if err != nil {
			continue
		}
		accounts = append(accounts, addr)
	}
	return txcontext.Instruction{
		ProgramAddress: program,
		PayloadBase58:  ins.Data,
		Accounts:       accounts,
		IsInner:        isInner,
	}, true
}
