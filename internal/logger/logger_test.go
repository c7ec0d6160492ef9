package logger

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigure_FiltersBelowLevel(t *testing.T) {
	t.Cleanup(func() { zerolog.SetGlobalLevel(zerolog.TraceLevel) })

	var buf bytes.Buffer
	require.NoError(t, Configure(&buf, "warn"))

	log.Info().Msg("hidden")
	log.Warn().Str("section", "chats").Msg("shown")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "shown")
	assert.Contains(t, out, `"section":"chats"`)
}

func TestConfigure_RejectsUnknownLevel(t *testing.T) {
	var buf bytes.Buffer
	assert.Error(t, Configure(&buf, "loud"))
}

func TestSetup_CreatesLogFile(t *testing.T) {
	t.Cleanup(func() { zerolog.SetGlobalLevel(zerolog.TraceLevel) })
	dir := filepath.Join(t.TempDir(), "nested")

	closer, err := Setup(dir, "info")
	require.NoError(t, err)
	log.Info().Msg("hello")
	require.NoError(t, closer.Close())
	Discard()

	data, err := os.ReadFile(filepath.Join(dir, FileName))
	require.NoError(t, err)
	assert.Contains(t, string(data), "hello")
}
