package terrago

type options struct {
	initialCapacity int
	logger          *Logger
}

// Option configures PointStore construction.
type Option func(*options)

// WithInitialCapacity sets the initial slot capacity hint. Backing
// storage doubles whenever it fills, so a hint near the expected final
// size avoids repeated reallocation during bulk loads. Must be >= 1;
// the default is 64.
func WithInitialCapacity(n int) Option {
	return func(o *options) {
		o.initialCapacity = n
	}
}

// WithLogger configures structured logging for the store.
//
// If nil is passed, the noop logger is used.
func WithLogger(l *Logger) Option {
	return func(o *options) {
		if l == nil {
			l = NoopLogger()
		}
		o.logger = l
	}
}
