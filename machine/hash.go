// machine/hash.go
package machine

// Golden-ratio constant for 64-bit hash combination.
const goldenRatio64 = 0x9e3779b97f4a7c15

// CombineHash folds value into seed with a golden-ratio mix. Used to build
// registry and digest keys out of the small identifier tuples below.
func CombineHash(seed, value uint64) uint64 {
	return seed ^ (value + goldenRatio64 + seed<<6 + seed>>2)
}

func combineAll(seed uint64, values ...uint64) uint64 {
	for _, v := range values {
		seed = CombineHash(seed, v)
	}
	return seed
}
