package lattice

import "errors"

// ErrFinalUnreachable is returned by Build when the training pair admits
// no alignment at all under the configured size templates and emergence
// mode (the initial node never acquires a path to final).
var ErrFinalUnreachable = errors.New("lattice: final node not reachable")
