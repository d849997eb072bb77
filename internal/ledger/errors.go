package ledger

import "errors"

// ErrStorageUnavailable marks reads or writes rejected by the persistence
// layer. Callers treat it as non-fatal: failed reads resolve to empty data,
// failed writes are reported and not retried.
var ErrStorageUnavailable = errors.New("storage unavailable")
