package simulate

// Option applies a configuration option to the Generator.
type Option func(*Generator)

// WithSeed selects the generation stream. Any value is valid.
func WithSeed(seed uint32) Option {
	return func(g *Generator) {
		g.seed = seed
	}
}

// WithCount sets the number of throws per session.
func WithCount(n int) Option {
	return func(g *Generator) {
		if n > 0 {
			g.count = n
		}
	}
}

// WithDropout sets the per-cell sensor dropout fraction.
func WithDropout(rate float64) Option {
	return func(g *Generator) {
		if rate >= 0 && rate < 1 {
			g.dropout = rate
		}
	}
}
