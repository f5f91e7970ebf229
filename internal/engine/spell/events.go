package spell

// ScanPayload accompanies scan lifecycle events.
type ScanPayload struct {
	ID      DocumentID
	Version uint64
}

// ChangePayload accompanies span delta events.
type ChangePayload struct {
	ID      DocumentID
	Version uint64
	Delta   Delta
}

// LoadPayload accompanies dictionary load events. Err is nil on
// success.
type LoadPayload struct {
	Lang string
	Err  error
}
