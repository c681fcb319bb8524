package backtrace

// Resolver maps addresses to display strings. It never panics: an
// address that cannot be resolved becomes a fallback entry, so the
// output always has one entry per input address.
type Resolver struct {
	backend Backend
}

// NewResolver creates a resolver on top of b
func NewResolver(b Backend) Resolver {
	return Resolver{backend: b}
}

// Symbol resolves one address
func (r Resolver) Symbol(pc uintptr) (sym Symbol) {
	defer func() {
		if rec := recover(); rec != nil {
			sym = fallbackSymbol(pc)
		}
	}()

	if r.backend == nil {
		return fallbackSymbol(pc)
	}
	sym, ok := r.backend.Lookup(pc)
	if !ok {
		return fallbackSymbol(pc)
	}
	return sym
}

// Resolve renders every address, preserving order and count
func (r Resolver) Resolve(pcs []uintptr) []string {
	out := make([]string, len(pcs))
	for i, pc := range pcs {
		out[i] = r.Symbol(pc).String()
	}
	return out
}

func fallbackSymbol(pc uintptr) Symbol {
	return Symbol{Module: executableName(), Addr: pc}
}
