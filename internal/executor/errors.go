package executor

import "errors"

// ErrNoBackend is reported when the executor has no content store.
var ErrNoBackend = errors.New("executor: no content store backend")
