package mint

import (
	"strings"
	"testing"

	"github.com/google/uuid"
)

func TestStubReceiptShape(t *testing.T) {
	r := NewStub().Mint("0xABCDEF", "mod-1")
	if !strings.HasPrefix(r.TransactionHash, "0x") || len(r.TransactionHash) != 66 {
		t.Fatalf("unexpected tx hash: %q", r.TransactionHash)
	}
	if !strings.HasPrefix(r.MetadataURI, "ipfs://Qm") {
		t.Fatalf("unexpected metadata uri: %q", r.MetadataURI)
	}
}

func TestStubIsDeterministicForSameID(t *testing.T) {
	fixed := uuid.MustParse("6f1c1a52-2a7e-4c39-9a4d-6f0b7e1f3c11")
	s := &Stub{newID: func() uuid.UUID { return fixed }}
	a := s.Mint("0xabc", "mod-1")
	b := s.Mint("0xABC", "mod-1")
	if a != b {
		t.Fatalf("expected wallet case to be ignored: %+v vs %+v", a, b)
	}
	if c := s.Mint("0xabc", "mod-2"); c == a {
		t.Fatalf("expected different module to change the hash")
	}
}
