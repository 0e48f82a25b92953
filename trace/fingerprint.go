package trace

import (
	"encoding/binary"

	"golang.org/x/crypto/sha3"
)

// Fingerprint computes a structural fingerprint of an input system's
// shape: number of variables, ordering, and, for each polynomial, its
// term count and exponent vectors, never its coefficients, since two
// inputs differing only in coefficients are structurally identical
// and should Apply to the same trace.
func Fingerprint(nvars int, ordering string, exponents [][][]uint32) [32]byte {
	h := sha3.NewShake256()
	writeUint64(h, uint64(nvars))
	h.Write([]byte(ordering))
	writeUint64(h, uint64(len(exponents)))
	for _, poly := range exponents {
		writeUint64(h, uint64(len(poly)))
		for _, exp := range poly {
			for _, e := range exp {
				writeUint64(h, uint64(e))
			}
		}
	}
	var out [32]byte
	h.Read(out[:])
	return out
}

func writeUint64(h interface{ Write([]byte) (int, error) }, v uint64) {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], v)
	h.Write(buf[:])
}
