// Package verbose gates the chatty protocol-level tracing used inside
// the CI-V layers. It is independent of the daemon logger so library
// consumers can flip it without pulling in configuration.
package verbose

import (
	"log"
	"sync/atomic"
)

var enabled atomic.Bool

// SetEnabled switches protocol tracing on or off.
func SetEnabled(on bool) {
	enabled.Store(on)
}

// IsEnabled reports whether protocol tracing is on.
func IsEnabled() bool {
	return enabled.Load()
}

// Printf logs a trace message when tracing is enabled.
func Printf(format string, args ...interface{}) {
	if enabled.Load() {
		log.Printf("[TRACE] "+format, args...)
	}
}
