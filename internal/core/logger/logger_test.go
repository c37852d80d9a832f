package logger

import (
	"io"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// caller 字段要指向真实调用点，而不是上一层栈帧
func TestCallerAttribution(t *testing.T) {
	r, w, err := os.Pipe()
	require.NoError(t, err)
	old := os.Stdout
	os.Stdout = w
	defer func() { os.Stdout = old }()

	l, cleanup := New(Options{Level: "info", JSON: true})
	l.Info("caller check")
	cleanup()
	require.NoError(t, w.Close())

	out, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Contains(t, string(out), "logger_test.go")
	assert.Contains(t, string(out), "caller check")
}
