package modular

import "math/big"

// PrimeStream yields an increasing sequence of primes suitable as
// lucky-prime candidates, skipping any that divide a given leading
// coefficient. It is the single-producer critical section the
// parallel driver locks around.
type PrimeStream struct {
	next uint64
}

// NewPrimeStream starts a stream at start (inclusive), raised to 3 if
// smaller and rounded up to odd. The stream has no upper bound.
func NewPrimeStream(start uint64) *PrimeStream {
	if start < 3 {
		start = 3
	}
	if start%2 == 0 {
		start++
	}
	return &PrimeStream{next: start}
}

// Next returns the next prime at or after the stream's cursor that
// does not divide any of avoid, advancing the cursor past it.
func (s *PrimeStream) Next(avoid []uint64) uint64 {
	for {
		p := s.advance()
		if !dividesAny(p, avoid) {
			return p
		}
	}
}

func (s *PrimeStream) advance() uint64 {
	for {
		candidate := new(big.Int).SetUint64(s.next)
		isPrime := candidate.ProbablyPrime(20)
		s.next += 2
		if isPrime {
			return candidate.Uint64()
		}
	}
}

func dividesAny(p uint64, avoid []uint64) bool {
	for _, a := range avoid {
		if a != 0 && a%p == 0 {
			return true
		}
	}
	return false
}
