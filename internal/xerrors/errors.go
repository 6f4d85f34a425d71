// Copyright 2025 The txstream Authors
// This file is part of the txstream service.

// Package xerrors carries the error taxonomy every component maps its
// failures onto: a fatal startup class, and the per-message/per-instruction
// classes the ingest pipeline can recover from by abandoning one unit of
// work and continuing.
package xerrors

import (
	"errors"
	"fmt"
)

// Sentinel errors identifying the taxonomy. Use errors.Is against these,
// not string matching.
var (
	// ErrStartupConfig means the process cannot safely start: missing
	// env var, malformed proxy file, or a transport that failed to bind.
	// The only class that should terminate the process.
	ErrStartupConfig = errors.New("startup misconfiguration")

	// ErrProtocol means an upstream frame violated the subscribe
	// contract (missing meta, binary-encoded transaction/message).
	// Fatal for the one notification that carried it; the session
	// continues.
	ErrProtocol = errors.New("protocol violation")

	// ErrDecode means a recognized discriminator's payload failed to
	// decode. Fatal for the notification that carried the instruction.
	ErrDecode = errors.New("instruction decode failure")
)

// Wrap annotates err with reason.
func Wrap(reason string, err error) error {
	return fmt.Errorf("%s: %w", reason, err)
}

// Startup wraps err as a fatal startup misconfiguration.
func Startup(reason string, err error) error {
	return fmt.Errorf("%s: %w: %v", reason, ErrStartupConfig, err)
}

// Protocol wraps err (or just reason, if err is nil) as a fatal-per-message
// protocol violation.
func Protocol(reason string) error {
	return fmt.Errorf("%s: %w", reason, ErrProtocol)
}

// Decode wraps a decode failure, carrying the raw payload so the warn
// log keeps it for forensics.
func Decode(program, rawPayload string, err error) error {
	return fmt.Errorf("decode %s instruction (payload=%s): %w: %v", program, rawPayload, ErrDecode, err)
}
