package handle

// Handle is an opaque reference to a table slot. The low 32 bits hold the
// slot index plus one, the high 32 bits hold the slot's generation at
// allocation time. Handle 0 is reserved and always invalid.
type Handle uint64

// Nil is the invalid handle.
const Nil Handle = 0

func pack(idx, gen uint32) Handle {
	return Handle(uint64(gen)<<32 | uint64(idx+1))
}

func (h Handle) index() (uint32, bool) {
	low := uint32(h)
	if low == 0 {
		return 0, false
	}
	return low - 1, true
}

func (h Handle) generation() uint32 {
	return uint32(h >> 32)
}

// State is a slot's position in the lifecycle.
type State uint8

const (
	StateAllocated State = iota
	StateInUse
	StateReleased
)

func (s State) String() string {
	switch s {
	case StateAllocated:
		return "allocated"
	case StateInUse:
		return "in_use"
	case StateReleased:
		return "released"
	}
	return "unknown"
}

// Event types for handle lifecycle notifications.
type EventType uint8

const (
	EventCreated EventType = iota
	EventDestroyed
)

// Event represents a handle lifecycle event.
type Event struct {
	TypeName string
	Handle   Handle
	Type     EventType
}

// Observer receives notifications about handle lifecycle events.
type Observer interface {
	OnHandleEvent(Event)
}

// Dropper is optionally implemented by values that need cleanup on destroy.
type Dropper interface {
	Drop()
}
