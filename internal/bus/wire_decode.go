// Copyright 2025 The txstream Authors
// This file is part of the txstream service.

package bus

import (
	"encoding/binary"
	"fmt"
	"math"
)

// Decoder reads back a record built by Encoder. Used by tests that
// assert on a handler's emitted payload.
type Decoder struct {
	buf []byte
	pos int
}

// NewDecoder wraps buf for sequential reads.
func NewDecoder(buf []byte) *Decoder {
	return &Decoder{buf: buf}
}

func (d *Decoder) need(n int) error {
	if d.pos+n > len(d.buf) {
		return fmt.Errorf("wire: need %d bytes at offset %d, have %d", n, d.pos, len(d.buf)-d.pos)
	}
	return nil
}

// String reads a u32-length-prefixed UTF-8 string.
func (d *Decoder) String() (string, error) {
	if err := d.need(4); err != nil {
		return "", err
	}
	n := binary.LittleEndian.Uint32(d.buf[d.pos:])
	d.pos += 4
	if err := d.need(int(n)); err != nil {
		return "", err
	}
	s := string(d.buf[d.pos : d.pos+int(n)])
	d.pos += int(n)
	return s, nil
}

// Uint64 reads a little-endian u64.
func (d *Decoder) Uint64() (uint64, error) {
	if err := d.need(8); err != nil {
		return 0, err
	}
	v := binary.LittleEndian.Uint64(d.buf[d.pos:])
	d.pos += 8
	return v, nil
}

// Int64 reads a little-endian i64.
func (d *Decoder) Int64() (int64, error) {
	v, err := d.Uint64()
	return int64(v), err
}

// Uint8 reads a single byte.
func (d *Decoder) Uint8() (uint8, error) {
	if err := d.need(1); err != nil {
		return 0, err
	}
	v := d.buf[d.pos]
	d.pos++
	return v, nil
}

// Float64 reads a little-endian IEEE-754 double.
func (d *Decoder) Float64() (float64, error) {
	v, err := d.Uint64()
	if err != nil {
		return 0, err
	}
	return math.Float64frombits(v), nil
}
