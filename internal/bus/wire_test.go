package bus

import "testing"

func TestEncodeDecodeRoundTrip(t *testing.T) {
	enc := NewEncoder().String("hello").Uint64(42).Float64(0.5e-9).Uint8(7).Int64(-3)
	dec := NewDecoder(enc.Bytes())

	s, err := dec.String()
	if err != nil || s != "hello" {
		t.Fatalf("String() = %q, %v", s, err)
	}
	u, err := dec.Uint64()
	if err != nil || u != 42 {
		t.Fatalf("Uint64() = %d, %v", u, err)
	}
	f, err := dec.Float64()
	if err != nil || f != 0.5e-9 {
		t.Fatalf("Float64() = %v, %v", f, err)
	}
	b, err := dec.Uint8()
	if err != nil || b != 7 {
		t.Fatalf("Uint8() = %d, %v", b, err)
	}
	i, err := dec.Int64()
	if err != nil || i != -3 {
		t.Fatalf("Int64() = %d, %v", i, err)
	}
}

func TestDecodeTruncatedErrors(t *testing.T) {
	dec := NewDecoder([]byte{1, 2})
	if _, err := dec.Uint64(); err == nil {
		t.Fatal("expected error reading past end of buffer")
	}
}
