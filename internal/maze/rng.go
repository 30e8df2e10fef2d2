package maze

// defaultSeed is used when a generator is created without a seed.
const defaultSeed = 88172645463325252

// RNG is a deterministic pseudo-random number generator (xorshift64).
// Seeds are scrambled with splitmix64 so that small consecutive seeds
// produce unrelated streams.
type RNG struct {
	state uint64
}

// NewRNG creates a new RNG with the given seed.
func NewRNG(seed uint64) *RNG {
	r := &RNG{}
	r.SetSeed(seed)
	return r
}

// SetSeed resets the internal state; subsequent draws are fully reproducible.
func (r *RNG) SetSeed(seed uint64) {
	if seed == 0 {
		r.state = defaultSeed
		return
	}
	z := seed + 0x9E3779B97F4A7C15
	z = (z ^ (z >> 30)) * 0xBF58476D1CE4E5B9
	z = (z ^ (z >> 27)) * 0x94D049BB133111EB
	z ^= z >> 31
	if z == 0 {
		z = defaultSeed
	}
	r.state = z
}

// Next returns the next random uint64.
func (r *RNG) Next() uint64 {
	r.state ^= r.state << 13
	r.state ^= r.state >> 7
	r.state ^= r.state << 17
	return r.state
}

// Float returns a random float64 in [0, 1).
func (r *RNG) Float() float64 {
	return float64(r.Next()>>11) / float64(1<<53)
}

// FloatRange returns a random float64 in [lo, hi).
func (r *RNG) FloatRange(lo, hi float64) float64 {
	return lo + r.Float()*(hi-lo)
}

// Intn returns a random int in [0, n). Returns 0 when n <= 0.
func (r *RNG) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	return int(r.Next() % uint64(n))
}

// IntRange returns a random int in [lo, hi). Returns lo when the range is empty.
func (r *RNG) IntRange(lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + r.Intn(hi-lo)
}

// Select returns a uniformly chosen element of items.
// Weighting is expressed by repeating elements, as the carver alphabet does.
func Select[T any](r *RNG, items []T) T {
	var zero T
	if len(items) == 0 {
		return zero
	}
	return items[r.Intn(len(items))]
}
