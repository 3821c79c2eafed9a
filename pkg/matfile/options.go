package matfile

// Option configures a dense save or load.
type Option func(*denseConfig)

type denseConfig struct {
	transpose bool
	dtype     DataType
	dtypeSet  bool
}

// Transposed treats the in-memory buffer as row-major: logical element (i, j)
// lives at buf[j + i*ld] instead of buf[i + j*ld]. The file is column-major
// either way.
func Transposed() Option {
	return func(c *denseConfig) {
		c.transpose = true
	}
}

// WithElementType selects the on-disk element kind written by a save.
// Each element is converted from the in-memory type. Loads ignore it; they
// always decode the kind recorded in the header.
func WithElementType(dt DataType) Option {
	return func(c *denseConfig) {
		c.dtype = dt
		c.dtypeSet = true
	}
}

func applyOptions(opts []Option) denseConfig {
	var cfg denseConfig
	for _, o := range opts {
		if o != nil {
			o(&cfg)
		}
	}
	return cfg
}
