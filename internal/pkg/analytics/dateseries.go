package analytics

// MaxBuckets upper bound on generated keys, ten years of days. ResolveRange rejects
// longer custom ranges, so the cap in GenerateKeys only guards termination.
const MaxBuckets = 3660

// GenerateKeys returns the ordered gap-free bucket keys covering r.
func GenerateKeys(r DateRange, g Granularity) []string {
	first := BucketKey(r.From, g)
	last := BucketKey(r.To, g)

	keys := []string{first}
	if r.To.Before(r.From) {
		return keys
	}

	cur := step(bucketStart(r.From, g), g)
	for len(keys) < MaxBuckets {
		key := BucketKey(cur, g)
		if key > last {
			break
		}
		keys = append(keys, key)
		cur = step(cur, g)
	}
	return keys
}
