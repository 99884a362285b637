package targets

import "errors"

// errStop is a sentinel used by tests to verify that Visit aborts
// immediately when a callback rejects the current element.
var errStop = errors.New("stop")
