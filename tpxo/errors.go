package tpxo

import "errors"

// Sentinel errors. Callers distinguish failure kinds with errors.Is; the
// wrapped message carries the specifics (path, constituent name, bounds).
var (
	ErrDatasetNotFound    = errors.New("tpxo dataset not found")
	ErrUnknownConstituent = errors.New("unknown constituent")
	ErrInvalidVertices    = errors.New("invalid vertices")
	ErrNoCandidates       = errors.New("no grid points near query")
)
