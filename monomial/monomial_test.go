package monomial

import "testing"

func TestOrderingString(t *testing.T) {
	cases := map[Ordering]string{
		DegRevLex: "degrevlex",
		Lex:       "lex",
		DegLex:    "deglex",
		Weighted:  "weighted",
	}
	for ord, want := range cases {
		if got := ord.String(); got != want {
			t.Fatalf("%d.String() = %q want %q", ord, got, want)
		}
	}
}

func TestSumDegreeOverflow(t *testing.T) {
	if _, err := sumDegree([]uint32{1 << 31, 1 << 31}); err != ErrOverflow {
		t.Fatalf("err = %v want ErrOverflow", err)
	}
	sum, err := sumDegree([]uint32{3, 4})
	if err != nil || sum != 7 {
		t.Fatalf("sumDegree = (%d, %v) want (7, nil)", sum, err)
	}
}
