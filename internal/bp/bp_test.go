package bp

import "testing"

func TestUpdateProbabilitiesNormalizesPerVariable(t *testing.T) {
	domains := [][]bool{
		{true, true},
		{true, true},
	}
	b := New(2, 2, []int{1, 1})
	b.UpdateProbabilities(domains)

	for i := 0; i < 2; i++ {
		sum := b.Probability(i, 0) + b.Probability(i, 1)
		if sum < 0.99 || sum > 1.01 {
			t.Fatalf("variable %d marginals do not sum to 1: %v", i, sum)
		}
	}
}

func TestUpdateProbabilitiesRespectsSingleton(t *testing.T) {
	domains := [][]bool{
		{true, false},
		{true, true},
	}
	b := New(2, 2, []int{1, 1})
	b.UpdateProbabilities(domains)

	if got := b.Probability(0, 0); got < 0.99 {
		t.Fatalf("piece 0 forced to value 0, got probability %v", got)
	}
	if got := b.Probability(1, 0); got > 0.01 {
		t.Fatalf("piece 1 excluded from value 0 should have ~0 probability, got %v", got)
	}
}

// TestUpdateProbabilitiesMatchesBruteForce checks a case with a known
// closed-form answer: 3 pieces, 3 values, one each required, piece 0
// restricted to {0,1} and pieces 1/2 free over all three values. By
// symmetry pieces 1 and 2 split value 0 and value 1 evenly between
// themselves and piece 0, and value 2 can only go to one of them, giving
// marginals (0.25, 0.25, 0.5) for pieces 1 and 2.
func TestUpdateProbabilitiesMatchesBruteForce(t *testing.T) {
	domains := [][]bool{
		{true, true, false},
		{true, true, true},
		{true, true, true},
	}
	b := New(3, 3, []int{1, 1, 1})
	b.UpdateProbabilities(domains)

	for _, piece := range []int{1, 2} {
		want := []float64{0.25, 0.25, 0.5}
		for v, w := range want {
			if got := b.Probability(piece, v); got < w-0.02 || got > w+0.02 {
				t.Fatalf("piece %d value %d marginal = %v, want ~%v", piece, v, got, w)
			}
		}
	}
}
