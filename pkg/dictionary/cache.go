package dictionary

import (
	"sync"

	"go.uber.org/zap"
)

// Set bundles the two static indexes the lookup pipeline depends on.
type Set struct {
	Words *Dict
	Chars *CharIndex
}

var (
	sharedOnce sync.Once
	shared     *Set
)

// Shared returns the process-wide index set, loading it on first use.
// The data files are static for the process lifetime, so there is no
// invalidation path; later calls ignore the arguments.
func Shared(wordsPath, charsPath string, log *zap.Logger) *Set {
	sharedOnce.Do(func() {
		shared = &Set{
			Words: LoadOrEmpty(wordsPath, log),
			Chars: LoadCharIndexOrEmpty(charsPath, log),
		}
	})
	return shared
}
