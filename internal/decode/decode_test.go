package decode

import (
	"encoding/binary"
	"testing"

	"github.com/mr-tron/base58"
)

func TestDecodeCreation(t *testing.T) {
	payload := buildCreationPayload(0x181ec828051c0777, "A", "B", "u")
	got, err := DecodeCreation(payload)
	if err != nil {
		t.Fatalf("DecodeCreation: %v", err)
	}
	if got.Name != "A" || got.Symbol != "B" || got.URI != "u" {
		t.Errorf("DecodeCreation() = %+v", got)
	}
}

func TestDecodeCreationTooShort(t *testing.T) {
	payload := base58.Encode([]byte{1, 2, 3})
	if _, err := DecodeCreation(payload); err == nil {
		t.Fatal("expected error decoding truncated payload")
	}
}

func TestDecodeInitializeMarket(t *testing.T) {
	buf := make([]byte, 0, 28)
	buf = append(buf, 0) // version
	discBuf := make([]byte, 4)
	binary.LittleEndian.PutUint32(discBuf, 0)
	buf = append(buf, discBuf...)
	u64 := func(v uint64) []byte {
		b := make([]byte, 8)
		binary.LittleEndian.PutUint64(b, v)
		return b
	}
	u16 := func(v uint16) []byte {
		b := make([]byte, 2)
		binary.LittleEndian.PutUint16(b, v)
		return b
	}
	buf = append(buf, u64(100)...)  // base lot size
	buf = append(buf, u64(200)...)  // quote lot size
	buf = append(buf, u16(30)...)   // fee rate bps
	buf = append(buf, u64(7)...)    // vault signer nonce
	buf = append(buf, u64(500)...)  // quote dust threshold

	payload := base58.Encode(buf)
	got, err := DecodeInitializeMarket(payload)
	if err != nil {
		t.Fatalf("DecodeInitializeMarket: %v", err)
	}
	if got.BaseLotSize != 100 || got.QuoteLotSize != 200 || got.FeeRateBps != 30 ||
		got.VaultSignerNonce != 7 || got.QuoteDustThreshold != 500 {
		t.Errorf("DecodeInitializeMarket() = %+v", got)
	}
}

func encodeString(buf []byte, s string) []byte {
	lenBuf := make([]byte, 4)
	binary.LittleEndian.PutUint32(lenBuf, uint32(len(s)))
	buf = append(buf, lenBuf...)
	buf = append(buf, s...)
	return buf
}

func buildCreationPayload(disc uint64, name, symbol, uri string) string {
	buf := make([]byte, 8)
	binary.LittleEndian.PutUint64(buf, disc)
	buf = encodeString(buf, name)
	buf = encodeString(buf, symbol)
	buf = encodeString(buf, uri)
	return base58.Encode(buf)
}
