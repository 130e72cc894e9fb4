package solver

import "math"

// Estimate returns the heuristic chance, as a percentage, of finding the
// solution given the candidates and guesses left.
//
// With one candidate (or none, which is floored to one) the result is 100.
// If there are fewer guesses than candidates, each guess is treated as an
// independent uniform pick: 100 × (1 − ((n−1)/n)^g), rounded to two decimals.
// Otherwise every candidate can be tried and the result is 100.
//
// The estimate assumes the solution survived filtering; it is an upper bound.
func Estimate(candidatesRemaining, guessesRemaining int) float64 {
	words := max(candidatesRemaining, 1)
	if words == 1 {
		return 100.0
	}
	guesses := max(guessesRemaining, 0)
	if guesses < words {
		miss := math.Pow(float64(words-1)/float64(words), float64(guesses))
		return math.Round((1-miss)*100*100) / 100
	}
	return 100.0
}
