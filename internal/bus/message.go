// Copyright 2025 The txstream Authors
// This file is part of the txstream service.

// Package bus implements the process-local fan-out queue and its
// PUB-socket publisher, plus the length-prefixed binary wire encoding
// every event payload uses.
package bus

// Message is one item destined for the outbound bus: a topic from the
// closed set of literal strings below and its encoded payload.
type Message struct {
	Topic   string
	Payload []byte
}

// Topic literals.
const (
	TopicSplTokenCreation        = "spl_token_creation_update"
	TopicPumpFunBondingCurve     = "pump_fun_bonding_curve_update"
	TopicDaosFundInitializeCurve = "daos_fund_initialize_curve"
	TopicLamportsBalanceUpdate   = "lamports_balance_update"
	TopicSplBalanceUpdate        = "spl_token_balance_update"
)
