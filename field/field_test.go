package field

import "testing"

func TestNewPrimeRejectsOutOfRange(t *testing.T) {
	if _, err := NewPrime(1, Deferred); err != ErrInvalidModulus {
		t.Fatalf("err = %v want ErrInvalidModulus", err)
	}
	if _, err := NewPrime(1<<63, Deferred); err != ErrInvalidModulus {
		t.Fatalf("err = %v want ErrInvalidModulus", err)
	}
}

func TestArithmeticMod13(t *testing.T) {
	f, err := NewPrime(13, Deferred)
	if err != nil {
		t.Fatalf("NewPrime: %v", err)
	}
	if got := f.Add(10, 6); got != 3 {
		t.Fatalf("10+6 mod 13 = %d want 3", got)
	}
	if got := f.Sub(3, 10); got != 6 {
		t.Fatalf("3-10 mod 13 = %d want 6", got)
	}
	if got := f.Neg(5); got != 8 {
		t.Fatalf("-5 mod 13 = %d want 8", got)
	}
	if got := f.Mul(7, 11); got != 12 {
		t.Fatalf("7*11 mod 13 = %d want 12", got)
	}
}

func TestInvIsMultiplicativeInverse(t *testing.T) {
	f, err := NewPrime(1000000007, Deferred)
	if err != nil {
		t.Fatalf("NewPrime: %v", err)
	}
	for _, a := range []Elem{1, 2, 3, 999999999} {
		inv := f.Inv(a)
		if f.Mul(a, inv) != 1 {
			t.Fatalf("a=%d * inv(a)=%d != 1 mod p", a, inv)
		}
	}
}

func TestMulShoupMatchesMul(t *testing.T) {
	f, err := NewPrime(2147483647, Deferred)
	if err != nil {
		t.Fatalf("NewPrime: %v", err)
	}
	m := Elem(123456789)
	mShoup := f.ShoupPrecompute(m)
	for _, a := range []Elem{0, 1, 2, 55555, 2147483646} {
		want := f.Mul(a, m)
		got := f.MulShoup(a, m, mShoup)
		if got != want {
			t.Fatalf("MulShoup(%d, %d) = %d want %d", a, m, got, want)
		}
	}
}

func TestIsZero(t *testing.T) {
	if !IsZero(0) {
		t.Fatalf("IsZero(0) = false")
	}
	if IsZero(1) {
		t.Fatalf("IsZero(1) = true")
	}
}
