package handle

import (
	"math"
	"sync"

	"github.com/coinforge/btcbridge/errors"
)

// Table maps handles to native-owned values with generation tracking.
type Table struct {
	slots     []slot
	free      []uint32
	observers []Observer
	mu        sync.Mutex
	obsMu     sync.RWMutex
	closed    bool
}

type slot struct {
	value    any
	typeName string
	gen      uint32
	state    State
}

// NewTable creates an empty handle table.
func NewTable() *Table {
	return &Table{
		slots: make([]slot, 0, 64),
		free:  make([]uint32, 0, 16),
	}
}

// New stores a value and returns its handle.
func (t *Table) New(typeName string, value any) (Handle, error) {
	t.mu.Lock()
	if t.closed {
		t.mu.Unlock()
		return Nil, errors.Closed(errors.PhaseHandle, "handle table")
	}

	var idx uint32
	if n := len(t.free); n > 0 {
		idx = t.free[n-1]
		t.free = t.free[:n-1]
		s := &t.slots[idx]
		s.value = value
		s.typeName = typeName
		s.state = StateAllocated
	} else {
		t.slots = append(t.slots, slot{
			value:    value,
			typeName: typeName,
			state:    StateAllocated,
		})
		idx = uint32(len(t.slots) - 1)
	}
	h := pack(idx, t.slots[idx].gen)
	t.mu.Unlock()

	t.notify(Event{Type: EventCreated, Handle: h, TypeName: typeName})
	return h, nil
}

// Get retrieves the value behind a live handle, checking its boundary type.
// The first successful Get moves the slot from Allocated to InUse.
func (t *Table) Get(h Handle, typeName string) (any, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	s, err := t.lookup(h)
	if err != nil {
		return nil, err
	}
	if s.typeName != typeName {
		return nil, errors.TypeMismatch(uint64(h), typeName, s.typeName)
	}
	if s.state == StateAllocated {
		s.state = StateInUse
	}
	return s.value, nil
}

// Destroy releases a handle. Exactly one Destroy per handle succeeds; every
// later one reports a double free.
func (t *Table) Destroy(h Handle) error {
	t.mu.Lock()

	idx, ok := h.index()
	if !ok || int(idx) >= len(t.slots) {
		t.mu.Unlock()
		return errors.InvalidHandle(uint64(h))
	}
	s := &t.slots[idx]
	if s.gen != h.generation() || s.state == StateReleased {
		// Either this exact handle was destroyed already, or the slot
		// moved on to a new generation - which also means the original
		// was destroyed. Both are a second destroy.
		t.mu.Unlock()
		return errors.DoubleFree(uint64(h))
	}

	value := s.value
	typeName := s.typeName
	s.value = nil
	s.state = StateReleased
	if s.gen < math.MaxUint32 {
		s.gen++
		t.free = append(t.free, idx)
	}
	// A slot at generation max is retired: never reused, so no stale
	// handle can ever alias a future occupant.
	t.mu.Unlock()

	if d, ok := value.(Dropper); ok {
		d.Drop()
	}
	t.notify(Event{Type: EventDestroyed, Handle: h, TypeName: typeName})
	return nil
}

// DestroyTyped releases a handle only if it holds the expected boundary
// type. Destroy revalidates the generation, so a destroy racing past the
// type check still resolves to exactly one winner.
func (t *Table) DestroyTyped(h Handle, typeName string) error {
	t.mu.Lock()
	idx, ok := h.index()
	if !ok || int(idx) >= len(t.slots) {
		t.mu.Unlock()
		return errors.InvalidHandle(uint64(h))
	}
	s := &t.slots[idx]
	if s.gen == h.generation() && s.state != StateReleased && s.typeName != typeName {
		got := s.typeName
		t.mu.Unlock()
		return errors.TypeMismatch(uint64(h), typeName, got)
	}
	t.mu.Unlock()
	return t.Destroy(h)
}

// State reports the lifecycle state of the slot a handle refers to.
func (t *Table) State(h Handle) (State, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	idx, ok := h.index()
	if !ok || int(idx) >= len(t.slots) {
		return 0, errors.InvalidHandle(uint64(h))
	}
	s := &t.slots[idx]
	if s.gen != h.generation() {
		return StateReleased, nil
	}
	return s.state, nil
}

// lookup resolves a handle to its live slot. Callers hold t.mu.
func (t *Table) lookup(h Handle) (*slot, error) {
	if t.closed {
		return nil, errors.Closed(errors.PhaseHandle, "handle table")
	}
	idx, ok := h.index()
	if !ok || int(idx) >= len(t.slots) {
		return nil, errors.InvalidHandle(uint64(h))
	}
	s := &t.slots[idx]
	if s.gen != h.generation() || s.state == StateReleased {
		return nil, errors.UseAfterFree(uint64(h))
	}
	return s, nil
}

// Len returns the number of live handles.
func (t *Table) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()

	count := 0
	for i := range t.slots {
		if t.slots[i].state != StateReleased {
			count++
		}
	}
	return count
}

// Subscribe adds an observer for lifecycle events.
func (t *Table) Subscribe(o Observer) {
	t.obsMu.Lock()
	defer t.obsMu.Unlock()
	t.observers = append(t.observers, o)
}

// Unsubscribe removes an observer.
func (t *Table) Unsubscribe(o Observer) {
	t.obsMu.Lock()
	defer t.obsMu.Unlock()
	for i, obs := range t.observers {
		if obs == o {
			t.observers = append(t.observers[:i], t.observers[i+1:]...)
			return
		}
	}
}

// Close releases every live handle and stops accepting operations.
func (t *Table) Close() error {
	t.mu.Lock()
	if t.closed {
		t.mu.Unlock()
		return nil
	}
	t.closed = true

	var dropped []any
	for i := range t.slots {
		s := &t.slots[i]
		if s.state != StateReleased {
			dropped = append(dropped, s.value)
			s.state = StateReleased
			s.value = nil
		}
	}
	t.slots = nil
	t.free = nil
	t.mu.Unlock()

	for _, v := range dropped {
		if d, ok := v.(Dropper); ok {
			d.Drop()
		}
	}
	return nil
}

func (t *Table) notify(e Event) {
	t.obsMu.RLock()
	defer t.obsMu.RUnlock()
	for _, o := range t.observers {
		o.OnHandleEvent(e)
	}
}
