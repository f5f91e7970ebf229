package spell

import "errors"

// Errors returned by engine operations.
var (
	// ErrUnknownDocument indicates the document ID is not open.
	ErrUnknownDocument = errors.New("unknown document")

	// ErrDocumentClosed indicates an operation on a closed document.
	ErrDocumentClosed = errors.New("document is closed")

	// ErrEngineClosed indicates an operation on a closed engine.
	ErrEngineClosed = errors.New("engine is closed")
)
