package verify

import (
	"go.uber.org/zap"
)

type option struct {
	logger *zap.Logger
	// properties to check; nil means all of them.
	only map[string]bool
}

func applyOpts(options ...OptionFunc) *option {
	opts := &option{
		logger: zap.NewNop(),
	}
	for _, opt := range options {
		opt(opts)
	}
	return opts
}

type OptionFunc func(*option)

func WithLogger(logger *zap.Logger) OptionFunc {
	return func(o *option) {
		o.logger = logger
	}
}

// OnlyProperties restricts the run to the named properties.
func OnlyProperties(names ...string) OptionFunc {
	return func(o *option) {
		o.only = make(map[string]bool, len(names))
		for _, n := range names {
			o.only[n] = true
		}
	}
}

func (o *option) enabled(property string) bool {
	return o.only == nil || o.only[property]
}
