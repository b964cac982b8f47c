package wltest

// Global is a global the server advertises.
type Global struct {
	Name      uint32
	Interface string
	Version   uint32
}

// Core answers wl_display.get_registry with globals and wl_display.sync with
// an immediate done, then hands every request to next, which may be nil.
func Core(globals []Global, next Handler) Handler {
	return func(s *Server, r Request) {
		if r.ID == 1 {
			switch r.Opcode {
			case 0: // sync
				s.Done(r.Args().Uint())
			case 1: // get_registry
				registry := r.Args().Uint()
				for _, g := range globals {
					s.Event(registry, 0, nil, g.Name, g.Interface, g.Version)
				}
			}
		}
		if next != nil {
			next(s, r)
		}
	}
}

// Done fires a wl_callback and deletes it.
func (s *Server) Done(callback uint32) {
	s.Event(callback, 0, nil, uint32(0))
	s.Event(1, 1, nil, callback)
}
