package playlist

import "math/rand/v2"

// Order returns the song indices of one full pass over n songs.
// RandomOff yields playlist order; any other mode yields a fresh permutation.
func Order(n int, mode RandomMode, rng *rand.Rand) []int {
	if n <= 0 {
		return nil
	}
	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	if mode == RandomOff {
		return order
	}
	rng.Shuffle(n, func(i, j int) {
		order[i], order[j] = order[j], order[i]
	})
	return order
}

// Pick returns one index drawn uniformly from [0, n).
// Previous picks are not taken into account, so the same index may come twice in a row.
func Pick(n int, rng *rand.Rand) int {
	return rng.IntN(n)
}
