// Package params holds the externally settable report parameters and
// pushes change notifications to registered observers. The store performs
// no validation and no fetching; it is observed by the fetch coordinator.
package params

import "sync"

// Field identifies one settable parameter.
type Field int

const (
	FieldName Field = iota
	FieldStartTime
	FieldDuration
	FieldClientLabel
)

// String returns the parameter's wire name.
func (f Field) String() string {
	switch f {
	case FieldName:
		return "name"
	case FieldStartTime:
		return "start_time"
	case FieldDuration:
		return "duration"
	case FieldClientLabel:
		return "client_label"
	default:
		return "unknown"
	}
}

// Values is a point-in-time copy of the parameter set. Nil pointers mean
// "use default"; NameSet false means no report is selected.
type Values struct {
	Name        string
	NameSet     bool
	StartTime   *int64
	Duration    *int64
	ClientLabel *string
}

// Store is the mutable parameter set. Setters notify every observer
// synchronously, after the store's own lock is released, so an observer
// may call back into the store. Deduplicating no-op changes is the
// observer's job; the store reports every write.
type Store struct {
	mu          sync.Mutex
	name        string
	nameSet     bool
	startTime   *int64
	duration    *int64
	clientLabel *string
	observers   []func(Field)
}

// NewStore returns an empty store: no report selected, all overrides
// unset.
func NewStore() *Store {
	return &Store{}
}

// Subscribe registers fn to be called on every parameter write.
// Registration order is notification order.
func (s *Store) Subscribe(fn func(Field)) {
	s.mu.Lock()
	s.observers = append(s.observers, fn)
	s.mu.Unlock()
}

// SetName selects the report to focus.
func (s *Store) SetName(name string) {
	s.mu.Lock()
	s.name = name
	s.nameSet = true
	obs := s.observerList()
	s.mu.Unlock()
	notify(obs, FieldName)
}

// SetStartTime records a window-start override in epoch seconds.
func (s *Store) SetStartTime(v int64) {
	s.mu.Lock()
	s.startTime = &v
	obs := s.observerList()
	s.mu.Unlock()
	notify(obs, FieldStartTime)
}

// SetDuration records a window-length override in seconds.
func (s *Store) SetDuration(v int64) {
	s.mu.Lock()
	s.duration = &v
	obs := s.observerList()
	s.mu.Unlock()
	notify(obs, FieldDuration)
}

// SetClientLabel records a client-label override.
func (s *Store) SetClientLabel(v string) {
	s.mu.Lock()
	s.clientLabel = &v
	obs := s.observerList()
	s.mu.Unlock()
	notify(obs, FieldClientLabel)
}

// Snapshot returns a copy of the current values. The returned pointers
// are private copies; mutating them does not affect the store.
func (s *Store) Snapshot() Values {
	s.mu.Lock()
	defer s.mu.Unlock()
	v := Values{Name: s.name, NameSet: s.nameSet}
	if s.startTime != nil {
		start := *s.startTime
		v.StartTime = &start
	}
	if s.duration != nil {
		dur := *s.duration
		v.Duration = &dur
	}
	if s.clientLabel != nil {
		label := *s.clientLabel
		v.ClientLabel = &label
	}
	return v
}

// observerList copies the observer slice; callers must hold s.mu.
func (s *Store) observerList() []func(Field) {
	obs := make([]func(Field), len(s.observers))
	copy(obs, s.observers)
	return obs
}

func notify(obs []func(Field), f Field) {
	for _, fn := range obs {
		fn(f)
	}
}
