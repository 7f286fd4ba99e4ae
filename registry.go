package retrogfx

// Registry is an ordered, immutable list of format handlers. The order is
// significant: handlers with reliable identification (magic signatures) come
// first, handlers that can only judge plausibility come last, so that
// autodetection prefers the most authoritative answer available.
//
// A Registry is constructed once at startup and never mutated, so it is safe
// to share between goroutines without locking.
type Registry struct {
	handlers []Handler
}

// NewRegistry returns a registry holding the given handlers in the given
// order.
func NewRegistry(handlers ...Handler) *Registry {
	return &Registry{
		handlers: append([]Handler(nil), handlers...),
	}
}

// Handler returns the handler whose descriptor ID matches id, or nil if
// there is none.
func (r *Registry) Handler(id string) Handler {
	for _, h := range r.handlers {
		if h.Metadata().ID == id {
			return h
		}
	}
	return nil
}

// Find identifies which formats the content could be. Handlers are consulted
// in registry order; the first to report DefiniteMatch wins outright and is
// returned alone. Handlers reporting PossibleMatch are accumulated and
// returned, in registry order, only if no handler is definite. The result is
// empty when nothing matches.
func (r *Registry) Find(content []byte) []Handler {
	var candidates []Handler
	for _, h := range r.handlers {
		switch h.Identify(content) {
		case DefiniteMatch:
			return []Handler{h}
		case PossibleMatch:
			candidates = append(candidates, h)
		}
	}
	return candidates
}

// Handlers returns all registered handlers in registry order.
func (r *Registry) Handlers() []Handler {
	return append([]Handler(nil), r.handlers...)
}
