package gpuboot

// Stack tracks acquired resources and releases them in reverse order.
// The zero value is ready to use. A Stack is not safe for concurrent use.
type Stack struct {
	entries []stackEntry
	unwound bool
}

type stackEntry struct {
	name    string
	release func()
}

// Push records a resource. release runs once, during Unwind.
// Pushing onto an unwound Stack releases the resource immediately.
func (s *Stack) Push(name string, release func()) {
	if s.unwound {
		Logger().Warn("gpuboot: resource acquired after teardown, releasing", "resource", name)
		release()
		return
	}
	s.entries = append(s.entries, stackEntry{name: name, release: release})
}

// Len returns the number of resources not yet released.
func (s *Stack) Len() int { return len(s.entries) }

// Names returns the recorded resource names in acquisition order.
func (s *Stack) Names() []string {
	names := make([]string, len(s.entries))
	for i, e := range s.entries {
		names[i] = e.name
	}
	return names
}

// Unwind releases every recorded resource, last acquired first. Only the
// first call has an effect.
func (s *Stack) Unwind() {
	if s.unwound {
		return
	}
	s.unwound = true

	for i := len(s.entries) - 1; i >= 0; i-- {
		e := s.entries[i]
		s.entries = s.entries[:i]
		e.release()
		Logger().Debug("gpuboot: released", "resource", e.name)
	}
	s.entries = nil
}
