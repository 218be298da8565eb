package globevents

const defaultMaxDepth = 1024

// Options configures a parser. The zero value is valid; With methods return
// modified copies.
type Options struct {
	maxDepth int
	nodeHook func(name string)
}

// NewOptions returns default options.
func NewOptions() Options {
	return Options{}
}

// WithMaxDepth sets the maximum element nesting depth (0 uses the default,
// negative disables the limit).
func (o Options) WithMaxDepth(value int) Options {
	o.maxDepth = value
	return o
}

// WithNodeHook installs an instrumentation callback invoked with the element
// name each time a node is constructed. Intended for tests and memory
// accounting.
func (o Options) WithNodeHook(fn func(name string)) Options {
	o.nodeHook = fn
	return o
}

func (o Options) resolvedMaxDepth() int {
	switch {
	case o.maxDepth > 0:
		return o.maxDepth
	case o.maxDepth < 0:
		return 0
	default:
		return defaultMaxDepth
	}
}
