package services

import (
	"encoding/hex"

	"golang.org/x/crypto/blake2b"
)

// VoterIdentifier turns a client address into the voter id stored with a
// like. With a salt configured only a keyed hash of the address is kept.
type VoterIdentifier struct {
	key []byte
}

func NewVoterIdentifier(salt string) *VoterIdentifier {
	if salt == "" {
		return &VoterIdentifier{}
	}
	sum := blake2b.Sum256([]byte(salt))
	return &VoterIdentifier{key: sum[:]}
}

func (v *VoterIdentifier) FromAddr(addr string) string {
	if len(v.key) == 0 {
		return addr
	}
	h, err := blake2b.New256(v.key)
	if err != nil {
		// unreachable: the key is always 32 bytes
		panic(err)
	}
	h.Write([]byte(addr))
	return hex.EncodeToString(h.Sum(nil))
}
