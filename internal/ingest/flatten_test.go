package ingest

import "testing"

func TestFlattenOrderOuterThenInner(t *testing.T) {
	outer := []rawInstructionJSON{
		{ProgramID: "11111111111111111111111111111111", Data: "a"},
		{ProgramID: "11111111111111111111111111111111", Data: "b"},
	}
	inner := []innerInstructionGroupJSON{
		{Index: 0, Instructions: []rawInstructionJSON{
			{ProgramID: "11111111111111111111111111111111", Data: "c"},
		}},
		{Index: 1, Instructions: []rawInstructionJSON{
			{ProgramID: "11111111111111111111111111111111", Data: "d"},
			{ProgramID: "11111111111111111111111111111111", Data: "e"},
		}},
	}

	got := flatten(outer, inner)
	want := []string{"a", "b", "c", "d", "e"}
	if len(got) != len(want) {
		t.Fatalf("flatten() len = %d, want %d", len(got), len(want))
	}
	for i, payload := range want {
		if got[i].PayloadBase58 != payload {
			t.Fatalf("flatten()[%d] = %q, want %q", i, got[i].PayloadBase58, payload)
		}
	}
	if got[0].IsInner || got[2].IsInner == false {
		t.Fatal("outer/inner flag not set correctly")
	}
}

func TestFlattenSkipsFullyParsedInstructions(t *testing.T) {
	outer := []rawInstructionJSON{
		{ProgramID: "11111111111111111111111111111111", Data: "a"},
		{ProgramID: "11111111111111111111111111111111", Parsed: []byte(`{"type":"transfer"}`)},
	}
	got := flatten(outer, nil)
	if len(got) != 1 || got[0].PayloadBase58 != "a" {
		t.Fatalf("flatten() = %+v, want only the partially-decoded instruction", got)
	}
}

func TestClassifyFrameKinds(t *testing.T) {
	cases := []struct {
		name string
		env  envelope
		want frameKind
	}{
		{"notification", envelope{Method: "transactionNotification"}, frameKindTransactionNotification},
		{"error", envelope{Error: &rpcError{Code: 1, Message: "bad"}}, frameKindSubscriptionError},
		{"success", envelope{Result: []byte("123")}, frameKindSubscriptionSuccessful},
		{"unrecognized", envelope{}, frameKindUnrecognized},
	}
	for _, c := range cases {
		if got := classify(c.env); got != c.want {
			t.Errorf("%s: classify() = %v, want %v", c.name, got, c.want)
		}
	}
}
