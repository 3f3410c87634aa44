// pkg/brew/runner.go
package brew

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"time"

	"github.com/rs/zerolog"

	"github.com/arc-language/barrel/pkg/logging"
)

// Runner invokes the brew executable. It has no timeout of its own: a hung
// brew process blocks the call until ctx is cancelled.
type Runner struct {
	locator *Locator
	logger  zerolog.Logger
}

// NewRunner creates a Runner using locator to find brew before every call
func NewRunner(locator *Locator, logger *zerolog.Logger) *Runner {
	return &Runner{
		locator: locator,
		logger:  logging.OrDefault(logger, "runner"),
	}
}

// Locator returns the locator the runner probes before every call
func (r *Runner) Locator() *Locator {
	return r.locator
}

// Run executes brew with args and returns stdout and stderr merged into one
// text. A nonzero exit yields a *CommandError carrying that text.
func (r *Runner) Run(ctx context.Context, args ...string) (string, error) {
	path, ok := r.locator.Locate()
	if !ok {
		return "", ErrExecutableNotFound
	}

	r.logger.Debug().Str("path", path).Strs("args", args).Msg("Executing command")
	start := time.Now()

	var combined bytes.Buffer
	cmd := exec.CommandContext(ctx, path, args...)
	cmd.Stdout = &combined
	cmd.Stderr = &combined

	if err := cmd.Start(); err != nil {
		return "", &SpawnError{Path: path, Err: err}
	}

	waitErr := cmd.Wait()
	output := decodeText(combined.Bytes())

	return r.finish(ctx, args, start, waitErr, output, output)
}

// RunStreaming executes brew with args, collecting stdout and stderr on two
// independent goroutines. Every non-empty line fragment of either stream is
// passed to onLine as soon as it is read; fragments of one stream arrive in
// order, with no ordering between the streams. onLine is always called from
// the goroutine that called RunStreaming, never from two goroutines at once.
//
// Reading stops once brew exits: output still buffered is drained for up to
// streamDrainDelay, after which the pipes are closed even if a child process
// brew left behind still holds them.
//
// On success the accumulated stdout is returned; on a nonzero exit the
// *CommandError carries the accumulated stderr.
func (r *Runner) RunStreaming(ctx context.Context, args []string, onLine func(string)) (string, error) {
	path, ok := r.locator.Locate()
	if !ok {
		return "", ErrExecutableNotFound
	}

	r.logger.Debug().Str("path", path).Strs("args", args).Msg("Executing streaming command")
	start := time.Now()

	var stdout, stderr outputBuffer
	chunks := make(chan []byte)

	cmd := exec.CommandContext(ctx, path, args...)
	cmd.Stdout = &streamWriter{acc: &stdout, chunks: chunks}
	cmd.Stderr = &streamWriter{acc: &stderr, chunks: chunks}
	cmd.WaitDelay = streamDrainDelay

	if err := cmd.Start(); err != nil {
		return "", &SpawnError{Path: path, Err: err}
	}

	exited := make(chan error, 1)
	go func() {
		exited <- cmd.Wait()
	}()

	// Wait returns only after both copy goroutines have stopped writing, so
	// no chunk can be sent once exited fires.
	var waitErr error
	for running := true; running; {
		select {
		case chunk := <-chunks:
			if onLine == nil {
				continue
			}
			for _, line := range splitLines(decodeText(chunk)) {
				onLine(line)
			}
		case waitErr = <-exited:
			running = false
		}
	}

	if errors.Is(waitErr, exec.ErrWaitDelay) {
		r.logger.Debug().Strs("args", args).Msg("Output pipes still held after exit, stopped reading")
		waitErr = nil
	}

	return r.finish(ctx, args, start, waitErr, stdout.String(), stderr.String())
}

// streamWriter receives one stream from the goroutine exec runs for it,
// accumulating a private copy of every chunk and forwarding it for line
// delivery
type streamWriter struct {
	acc    *outputBuffer
	chunks chan<- []byte
}

func (w *streamWriter) Write(p []byte) (int, error) {
	chunk := make([]byte, len(p))
	copy(chunk, p)
	_, _ = w.acc.Write(chunk)
	w.chunks <- chunk
	return len(p), nil
}

// finish maps the process exit onto the success/failure rule shared by Run
// and RunStreaming
func (r *Runner) finish(ctx context.Context, args []string, start time.Time, waitErr error, success, failure string) (string, error) {
	if waitErr == nil {
		r.logger.Debug().
			Strs("args", args).
			Dur("duration", time.Since(start)).
			Msg("Command completed")
		return success, nil
	}

	if ctxErr := ctx.Err(); ctxErr != nil {
		return "", fmt.Errorf("brew %v: %w", args, ctxErr)
	}

	var exitErr *exec.ExitError
	if errors.As(waitErr, &exitErr) {
		r.logger.Debug().
			Strs("args", args).
			Int("exit_code", exitErr.ExitCode()).
			Dur("duration", time.Since(start)).
			Msg("Command failed")
		return "", &CommandError{
			Args:     append([]string(nil), args...),
			Output:   failure,
			ExitCode: exitErr.ExitCode(),
		}
	}

	return "", fmt.Errorf("waiting for brew: %w", waitErr)
}
