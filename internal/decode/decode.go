// Copyright 2025 The txstream Authors
// This file is part of the txstream service.

// Package decode implements binary decoders for the handful of
// recognized instruction payload layouts, consuming base58-decoded
// bytes into typed records. Each layout is little-endian with u32
// length-prefixed strings, the borsh convention the on-chain programs
// serialize with.
package decode

import (
	"encoding/binary"
	"fmt"
)

// Error reports a decode failure on a recognized discriminator,
// carrying the raw base58 payload for forensics.
type Error struct {
	Program    string
	RawPayload string
	Offset     int
	Reason     string
}

func (e *Error) Error() string {
	return fmt.Sprintf("decode %s payload %q at offset %d: %s", e.Program, e.RawPayload, e.Offset, e.Reason)
}

// reader is a small little-endian cursor over a decoded instruction
// payload. It never panics: every Read* method returns an error once
// the cursor runs past the end of buf.
type reader struct {
	buf []byte
	pos int
}

func newReader(buf []byte) *reader {
	return &reader{buf: buf}
}

func (r *reader) need(n int) error {
	if r.pos+n > len(r.buf) {
		return fmt.Errorf("need %d bytes at offset %d, have %d", n, r.pos, len(r.buf)-r.pos)
	}
	return nil
}

func (r *reader) u8() (byte, error) {
	if err := r.need(1); err != nil {
		return 0, err
	}
	v := r.buf[r.pos]
	r.pos++
	return v, nil
}

func (r *reader) u16() (uint16, error) {
	if err := r.need(2); err != nil {
		return 0, err
	}
	v := binary.LittleEndian.Uint16(r.buf[r.pos:])
	r.pos += 2
	return v, nil
}

func (r *reader) u32() (uint32, error) {
	if err := r.need(4); err != nil {
		return 0, err
	}
	v := binary.LittleEndian.Uint32(r.buf[r.pos:])
	r.pos += 4
	return v, nil
}

func (r *reader) u64() (uint64, error) {
	if err := r.need(8); err != nil {
		return 0, err
	}
	v := binary.LittleEndian.Uint64(r.buf[r.pos:])
	r.pos += 8
	return v, nil
}

// str reads a u32-length-prefixed UTF-8 string.
func (r *reader) str() (string, error) {
	n, err := r.u32()
	if err != nil {
		return "", err
	}
	if err := r.need(int(n)); err != nil {
		return "", err
	}
	s := string(r.buf[r.pos : r.pos+int(n)])
	r.pos += int(n)
	return s, nil
}
