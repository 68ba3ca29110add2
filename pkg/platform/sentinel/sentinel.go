package sentinel

import "errors"

// Sentinel errors for storage facts. Stores return these (optionally wrapped)
// so services can translate them into domain errors.
//
//   - ErrNotFound: row does not exist
//   - ErrConflict: unique key already taken (shop api_key, verification_hash)
//   - ErrInvalidState: conditional update lost, the row no longer has the
//     status the caller observed
//   - ErrUnavailable: backing service unreachable (cache, broker)
var (
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
	ErrInvalidState = errors.New("invalid state")
	ErrUnavailable  = errors.New("unavailable")
)
