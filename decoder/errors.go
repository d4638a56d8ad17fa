package decoder

import "errors"

// ErrTranslationFailed is returned by Translate when the open queue empties
// without ever reaching the cul-de-sac history, i.e. no alignment of left
// under the configured inventory and sequence model terminates.
var ErrTranslationFailed = errors.New("decoder: translation failed: no path")

// ErrStackLimitExceeded is returned by Translate and NBestInit when the
// number of states pushed onto the open queue exceeds the configured
// stack limit before a result is found.
var ErrStackLimitExceeded = errors.New("decoder: translation failed: stack size limit exceeded")

// ErrNoFurtherTranslations is returned by NBestContext.Next once every alignment of
// the N-best context's input has already been returned.
var ErrNoFurtherTranslations = errors.New("decoder: no further translations")
