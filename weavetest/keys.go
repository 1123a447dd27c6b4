package weavetest

import (
	"crypto/rand"
	"encoding/binary"

	"github.com/iov-one/rentbook"
	"golang.org/x/crypto/ed25519"
)

// NewKey returns a fresh ed25519 key pair.
func NewKey() (ed25519.PublicKey, ed25519.PrivateKey) {
	pub, priv, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		panic(err)
	}
	return pub, priv
}

// NewCondition returns a signature condition of a random ed25519 key, in
// the same format as the sigs extension produces.
func NewCondition() rentbook.Condition {
	pub, _ := NewKey()
	return rentbook.NewCondition("sigs", "ed25519", pub)
}

// SequenceID returns an 8 byte big-endian encoded number, the same format
// orm.Sequence uses for the ids it generates.
func SequenceID(n uint64) []byte {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, n)
	return b
}
