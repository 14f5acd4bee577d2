package runner

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	stratumerrors "github.com/felixgeelhaar/stratum/internal/errors"
)

func requireMake(t *testing.T) {
	t.Helper()
	if _, err := exec.LookPath("make"); err != nil {
		t.Skip("make not available in test environment")
	}
}

func writeMakefile(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "Makefile"), []byte(content), 0o644))
	return dir
}

func TestHasMakefile(t *testing.T) {
	requireMake(t)

	dir := writeMakefile(t, "all:\n\ttrue\n")
	assert.True(t, NewRunner(dir).HasMakefile())
	assert.False(t, NewRunner(t.TempDir()).HasMakefile())
}

func TestTargetExists(t *testing.T) {
	requireMake(t)
	ctx := context.Background()

	dir := writeMakefile(t, "validate-tdd:\n\ttrue\n")
	r := NewRunner(dir)

	assert.True(t, r.TargetExists(ctx, "validate-tdd"))
	assert.False(t, r.TargetExists(ctx, "validate-verify"))
}

func TestRun(t *testing.T) {
	requireMake(t)
	ctx := context.Background()

	t.Run("passing target", func(t *testing.T) {
		dir := writeMakefile(t, "check:\n\t@echo ok\n")

		result, err := NewRunner(dir).Run(ctx, "check")
		require.NoError(t, err)
		assert.True(t, result.Passed())
		assert.Equal(t, 0, result.ExitCode)
		assert.Contains(t, result.Output, "ok")
	})

	t.Run("failing target is a result", func(t *testing.T) {
		dir := writeMakefile(t, "check:\n\t@echo broken\n\t@exit 3\n")

		result, err := NewRunner(dir).Run(ctx, "check")
		require.NoError(t, err)
		assert.False(t, result.Passed())
		assert.NotZero(t, result.ExitCode)
		assert.Contains(t, result.Output, "broken")
	})

	t.Run("timeout is an error", func(t *testing.T) {
		dir := writeMakefile(t, "check:\n\t@sleep 5\n")

		_, err := NewRunner(dir).WithTimeout(100 * time.Millisecond).Run(ctx, "check")
		require.Error(t, err)

		var serr *stratumerrors.StratumError
		require.ErrorAs(t, err, &serr)
		assert.Equal(t, stratumerrors.ErrCodeGateTimeout, serr.Code)
	})

	t.Run("output keeps the tail", func(t *testing.T) {
		dir := writeMakefile(t, "check:\n\t@yes tailmarker | head -n 500\n\t@echo LASTLINE\n")

		result, err := NewRunner(dir).Run(ctx, "check")
		require.NoError(t, err)
		assert.LessOrEqual(t, len(result.Output), 2048)
		assert.Contains(t, result.Output, "LASTLINE")
	})
}
