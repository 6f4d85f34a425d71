// Copyright 2025 The txstream Authors
// This file is part of the txstream service.

package bus

import (
	"bytes"
	"encoding/binary"
	"math"
)

// Encoder builds a bus payload: a flat little-endian binary record with
// u32-length-prefixed strings, trimmed to the primitives the five event
// schemas need.
type Encoder struct {
	buf bytes.Buffer
}

// NewEncoder returns an empty Encoder.
func NewEncoder() *Encoder {
	return &Encoder{}
}

// Bytes returns the encoded record.
func (e *Encoder) Bytes() []byte {
	return e.buf.Bytes()
}

// String writes a u32-length-prefixed UTF-8 string.
func (e *Encoder) String(s string) *Encoder {
	var lenBuf [4]byte
	binary.LittleEndian.PutUint32(lenBuf[:], uint32(len(s)))
	e.buf.Write(lenBuf[:])
	e.buf.WriteString(s)
	return e
}

// Uint64 writes a little-endian u64.
func (e *Encoder) Uint64(v uint64) *Encoder {
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], v)
	e.buf.Write(b[:])
	return e
}

// Int64 writes a little-endian i64.
func (e *Encoder) Int64(v int64) *Encoder {
	return e.Uint64(uint64(v))
}

// Uint8 writes a single byte.
func (e *Encoder) Uint8(v uint8) *Encoder {
	e.buf.WriteByte(v)
	return e
}

// Float64 writes a little-endian IEEE-754 double.
func (e *Encoder) Float64(v float64) *Encoder {
	return e.Uint64(math.Float64bits(v))
}
