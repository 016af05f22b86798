package mark

// Option adjusts the Config used by NewString.
type Option func(*Config)

// WithStrength sets the multiplier applied to the alphabet index sum.
// Larger values make the mark easier to detect and more visible.
func WithStrength(strength float32) Option {
	return func(c *Config) {
		c.Strength = strength
	}
}
