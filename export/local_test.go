package export

import (
	"context"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalWriterRoundTrip(t *testing.T) {
	w, err := NewLocalWriter(LocalWriterConfig{Dir: t.TempDir()})
	require.NoError(t, err)

	res, err := w.Write(context.Background(), "reports/demo.txt", "text/plain", strings.NewReader("hello"))
	require.NoError(t, err)
	assert.Equal(t, "reports/demo.txt", res.Key)

	content, err := os.ReadFile(res.Location)
	require.NoError(t, err)
	assert.Equal(t, "hello", string(content))

	require.NoError(t, w.Remove(context.Background(), "reports/demo.txt"))
	_, err = os.Stat(res.Location)
	assert.True(t, os.IsNotExist(err))
}

func TestLocalWriterRejectsEscapingKeys(t *testing.T) {
	w, err := NewLocalWriter(LocalWriterConfig{Dir: t.TempDir()})
	require.NoError(t, err)

	for _, key := range []string{"", "../outside.txt", "/etc/passwd", "a/../../b"} {
		_, err := w.Write(context.Background(), key, "text/plain", strings.NewReader("x"))
		assert.Error(t, err, "key %q", key)
	}
}

func TestNewLocalWriterRequiresDir(t *testing.T) {
	_, err := NewLocalWriter(LocalWriterConfig{})
	assert.Error(t, err)
}
