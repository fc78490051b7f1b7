// Package mint is a stand-in for on-chain certificate minting. It fabricates
// the identifiers a real mint would return; no network is contacted.
package mint

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"

	"github.com/google/uuid"
)

const metadataScheme = "ipfs://"

// Receipt is what a mint call hands back.
type Receipt struct {
	TransactionHash string
	MetadataURI     string
}

// Minter issues certificate receipts.
type Minter interface {
	Mint(walletAddress, moduleID string) Receipt
}

// Stub fills receipts with random but well-formed values.
type Stub struct {
	// newID is swappable for deterministic tests.
	newID func() uuid.UUID
}

func NewStub() *Stub { return &Stub{newID: uuid.New} }

// Mint returns a 0x-prefixed 32-byte hex hash and an ipfs:// URI derived from it.
func (s *Stub) Mint(walletAddress, moduleID string) Receipt {
	id := s.newID()
	h := sha256.New()
	h.Write(id[:])
	h.Write([]byte(strings.ToLower(walletAddress)))
	h.Write([]byte(moduleID))
	sum := h.Sum(nil)
	return Receipt{
		TransactionHash: "0x" + hex.EncodeToString(sum),
		MetadataURI:     metadataScheme + "Qm" + hex.EncodeToString(sum[:16]),
	}
}
