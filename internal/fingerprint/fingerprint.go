// Package fingerprint computes SHAKE-256 content digests for paving
// cell identities and canonical Taylor-model coefficient vectors,
// grounded on DECS/merkle.go's shake16 leaf hashing: same extendable-
// output construction, widened from a 16-byte truncation to a 32-byte
// one since fingerprints here are compared for equality rather than
// walked as a Merkle path.
package fingerprint

import (
	"encoding/binary"
	"math"

	"golang.org/x/crypto/sha3"
)

const Size = 32

// Digest is a fixed-size content fingerprint.
type Digest [Size]byte

const (
	cellPrefix  byte = 0x00
	modelPrefix byte = 0x01
)

func hash(prefix byte, chunks ...[]byte) Digest {
	h := sha3.NewShake256()
	_, _ = h.Write([]byte{prefix})
	for _, c := range chunks {
		var lenBuf [8]byte
		binary.LittleEndian.PutUint64(lenBuf[:], uint64(len(c)))
		_, _ = h.Write(lenBuf[:])
		_, _ = h.Write(c)
	}
	var out Digest
	_, _ = h.Read(out[:])
	return out
}

// Cell fingerprints a paving cell identity: primary-cell height plus
// subdivision path, packed one byte per path bit.
func Cell(primaryHeight int, path []bool) Digest {
	h := make([]byte, 8)
	binary.LittleEndian.PutUint64(h, uint64(int64(primaryHeight)))
	p := make([]byte, len(path))
	for i, bit := range path {
		if bit {
			p[i] = 1
		}
	}
	return hash(cellPrefix, h, p)
}

// Coefficients fingerprints a canonical coefficient vector — for
// instance a Taylor model's monomial coefficients in a fixed exponent
// order — as raw big-endian float64 bit patterns per entry.
func Coefficients(values []float64) Digest {
	buf := make([]byte, 8*len(values))
	for i, v := range values {
		binary.BigEndian.PutUint64(buf[8*i:8*i+8], math.Float64bits(v))
	}
	return hash(modelPrefix, buf)
}
