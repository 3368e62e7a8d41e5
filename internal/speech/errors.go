package speech

import "errors"

// Dictionary errors.
var (
	// ErrDictionaryClosed is returned when a closed dictionary is used.
	ErrDictionaryClosed = errors.New("speech: dictionary closed")

	// ErrNoRewriteFunction is returned when a loaded script does not
	// define a global rewrite function.
	ErrNoRewriteFunction = errors.New("speech: script does not define rewrite(text)")
)
