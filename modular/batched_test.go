package modular

import (
	"math/big"
	"testing"
)

func TestBatchedRNSPackUnpackRoundTrip(t *testing.T) {
	primes := [4]uint64{17, 19, 23, 29}
	batch, err := NewBatchedRNS(4, primes)
	if err != nil {
		t.Fatalf("NewBatchedRNS: %v", err)
	}

	coeffs := []*big.Int{big.NewInt(5), big.NewInt(100), big.NewInt(-3), big.NewInt(0)}
	packed := batch.Pack(coeffs)

	for limb, p := range primes {
		got := batch.Unpack(packed, limb)[:len(coeffs)]
		for i, c := range coeffs {
			want := new(big.Int).Mod(c, new(big.Int).SetUint64(p)).Uint64()
			if got[i] != want {
				t.Fatalf("limb %d coeff %d = %d want %d", limb, i, got[i], want)
			}
		}
	}

	if len(batch.Primes()) != 4 {
		t.Fatalf("Primes() returned %d entries want 4", len(batch.Primes()))
	}
}
