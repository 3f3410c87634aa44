package brew

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

// writeFakeBrew writes an executable shell script standing in for brew
func writeFakeBrew(t *testing.T, body string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("fake brew scripts need a POSIX shell")
	}
	path := filepath.Join(t.TempDir(), "brew")
	script := "#!/bin/sh\n" + body + "\n"
	require.NoError(t, os.WriteFile(path, []byte(script), 0755))
	return path
}

// newTestRunner creates a runner whose only candidate is path
func newTestRunner(path string) *Runner {
	logger := zerolog.Nop()
	return NewRunner(NewLocator(path), &logger)
}
