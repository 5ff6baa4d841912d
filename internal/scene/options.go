package scene

import "github.com/san-kum/orbitlab/internal/logging"

type options struct {
	logger logging.Logger
}

// Option configures a scene manager.
type Option func(*options)

// WithLogger routes lifecycle logs to l.
func WithLogger(l logging.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

func buildOptions(opts []Option) options {
	o := options{logger: logging.Noop()}
	for _, fn := range opts {
		fn(&o)
	}
	return o
}
