package soundalike

import "testing"

func TestScoreIdentityIsZero(t *testing.T) {
	for _, s := range []string{"", "KT", "*ASTN", "FLX"} {
		if got := Score(s, s); got != 0 {
			t.Errorf("Score(%q, %q) = %d, want 0", s, s, got)
		}
	}
}

func TestScoreSymmetric(t *testing.T) {
	cases := [][2]string{
		{"KT", "KAT"},
		{"*ASTN", "ASTN"},
		{"FLKS", "FLX"},
	}
	for _, c := range cases {
		a := Score(c[0], c[1])
		b := Score(c[1], c[0])
		if a != b {
			t.Errorf("Score not symmetric for %v: %d vs %d", c, a, b)
		}
	}
}

func TestScoreBeyondLengthDeltaIsMaxMax(t *testing.T) {
	if got := Score("K", "KATKATKAT"); got != ScoreMaxMax {
		t.Errorf("Score with large length delta = %d, want ScoreMaxMax", got)
	}
}

func TestRescoreFormula(t *testing.T) {
	if got := Rescore(65, 0); got != 48 {
		t.Errorf("Rescore(65, 0) = %d, want 48", got)
	}
	if got := Rescore(0, 0); got != 0 {
		t.Errorf("Rescore(0, 0) = %d, want 0", got)
	}
}

func TestVowelStartMismatchCosted(t *testing.T) {
	withStar := Score("*KT", "*KT")
	mismatch := Score("*KT", "KT")
	if withStar != 0 {
		t.Fatalf("Score(*KT, *KT) = %d, want 0", withStar)
	}
	if mismatch <= withStar {
		t.Errorf("vowel-start mismatch not costed: got %d", mismatch)
	}
}
