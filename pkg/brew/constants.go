// pkg/brew/constants.go
package brew

import "time"

const (
	// DefaultUserAgent is sent with every catalog request
	DefaultUserAgent = "barrel/0.1"

	// UnknownVersion is reported when `brew --version` prints nothing usable
	UnknownVersion = "Unknown"

	// CaskFlag selects the cask form of a brew subcommand
	CaskFlag = "--cask"
)

// Progress fractions emitted around an install regardless of output
const (
	InitialProgress  = 0.01
	CompleteProgress = 1.0
)

// streamDrainDelay bounds how long a streaming run keeps reading after brew
// has exited
const streamDrainDelay = 500 * time.Millisecond
