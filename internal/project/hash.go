package project

import (
	"crypto/sha256"
)

// Digest - фиксированный 256 битный хеш содержимого модуля
type Digest [32]byte

// HashContent hashes raw module bytes.
func HashContent(content []byte) Digest {
	return sha256.Sum256(content)
}

// Combine строит производный хеш: H( content || salt1 || salt2 ... ).
// Порядок частей должен быть детерминированным.
func Combine(content Digest, parts ...string) Digest {
	h := sha256.New()
	_, _ = h.Write(content[:])
	for _, p := range parts {
		_, _ = h.Write([]byte{0})
		_, _ = h.Write([]byte(p))
	}
	var out Digest
	copy(out[:], h.Sum(nil))
	return out
}

// IsZero reports whether d was never computed.
func (d Digest) IsZero() bool {
	return d == Digest{}
}
