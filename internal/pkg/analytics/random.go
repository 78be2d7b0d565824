package analytics

import "hash/fnv"

// SeededRandom returns a deterministic value in [0,1) derived from seed.
// Only used where no real value exists yet.
func SeededRandom(seed string) float64 {
	h := fnv.New32a()
	_, _ = h.Write([]byte(seed))
	return float64(h.Sum32()) / (1 << 32)
}
