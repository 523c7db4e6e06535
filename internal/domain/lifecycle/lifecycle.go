// Package lifecycle holds shared shutdown constants.
package lifecycle

import "time"

// DefaultTimeout bounds graceful shutdown of any delivery.
const DefaultTimeout = 10 * time.Second
