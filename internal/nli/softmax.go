package nli

import "math"

// softmax converts raw scores into a probability distribution. The max score
// is subtracted before exponentiation to keep the computation stable for
// large magnitudes.
func softmax(scores [NumClasses]float32) [NumClasses]float64 {
	maxScore := float64(scores[0])
	for _, s := range scores[1:] {
		if float64(s) > maxScore {
			maxScore = float64(s)
		}
	}
	var exps [NumClasses]float64
	var sum float64
	for i, s := range scores {
		exps[i] = math.Exp(float64(s) - maxScore)
		sum += exps[i]
	}
	for i := range exps {
		exps[i] /= sum
	}
	return exps
}

// argmax returns the index of the largest value. Ties resolve to the first
// maximum in index order.
func argmax(probs [NumClasses]float64) int {
	best := 0
	for i := 1; i < NumClasses; i++ {
		if probs[i] > probs[best] {
			best = i
		}
	}
	return best
}
