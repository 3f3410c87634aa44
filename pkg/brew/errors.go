// pkg/brew/errors.go
package brew

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrExecutableNotFound indicates brew is absent from every known location
	ErrExecutableNotFound = errors.New("brew executable not found")

	// ErrCommandFailed matches any *CommandError
	ErrCommandFailed = errors.New("brew command failed")

	// ErrTransport matches a *FetchError raised before a response body was decoded
	ErrTransport = errors.New("catalog transport failed")

	// ErrDecode matches a *FetchError raised while decoding a response body
	ErrDecode = errors.New("catalog decode failed")
)

// SpawnError is returned when the operating system could not start brew
type SpawnError struct {
	Path string
	Err  error
}

func (e *SpawnError) Error() string {
	return fmt.Sprintf("starting %s: %v", e.Path, e.Err)
}

func (e *SpawnError) Unwrap() error {
	return e.Err
}

// CommandError is returned when brew ran and exited with a nonzero status.
// Output is the captured diagnostic text, verbatim.
type CommandError struct {
	Args     []string
	Output   string
	ExitCode int
}

func (e *CommandError) Error() string {
	msg := fmt.Sprintf("brew %s: exit status %d", strings.Join(e.Args, " "), e.ExitCode)
	if out := strings.TrimSpace(e.Output); out != "" {
		msg += ": " + out
	}
	return msg
}

// Is lets errors.Is(err, ErrCommandFailed) match
func (e *CommandError) Is(target error) bool {
	return target == ErrCommandFailed
}

// FetchStage tells where a catalog retrieval failed
type FetchStage string

const (
	StageTransport FetchStage = "transport"
	StageDecode    FetchStage = "decode"
)

// FetchError is returned by catalog retrievals
type FetchError struct {
	URL   string
	Stage FetchStage
	Err   error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetching %s (%s): %v", e.URL, e.Stage, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// Is matches ErrTransport or ErrDecode according to the failing stage
func (e *FetchError) Is(target error) bool {
	switch target {
	case ErrTransport:
		return e.Stage == StageTransport
	case ErrDecode:
		return e.Stage == StageDecode
	}
	return false
}
