package spell

// State is the lifecycle state of a checked document.
type State int

const (
	// StateUninitialized means the document has been opened but never
	// scanned.
	StateUninitialized State = iota

	// StateScanning means a recheck is in flight; the span set is not
	// authoritative.
	StateScanning

	// StateSettled means the span set is consistent with the current
	// document content.
	StateSettled

	// StateClosed means the document has been closed.
	StateClosed
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateScanning:
		return "scanning"
	case StateSettled:
		return "settled"
	case StateClosed:
		return "closed"
	default:
		return "unknown"
	}
}
