package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetup_WritesBothSinks(t *testing.T) {
	dir := t.TempDir()
	var console bytes.Buffer

	logger, err := Setup(Options{Dir: dir, Console: &console, NoColor: true})
	require.NoError(t, err)

	logger.Info().Str("param", "volume").Msg("skipped sample")

	assert.Contains(t, console.String(), "skipped sample")
	data, err := os.ReadFile(filepath.Join(dir, FileName))
	require.NoError(t, err)
	assert.Contains(t, string(data), `"param":"volume"`)
	assert.Contains(t, string(data), `"service":"prelev-mcp"`)
}

func TestSetup_Verbose(t *testing.T) {
	t.Cleanup(func() { zerolog.SetGlobalLevel(zerolog.InfoLevel) })

	_, err := Setup(Options{Dir: t.TempDir(), Console: &bytes.Buffer{}, Verbose: true})
	require.NoError(t, err)
	assert.Equal(t, zerolog.DebugLevel, zerolog.GlobalLevel())
}

func TestResolveDir(t *testing.T) {
	assert.Equal(t, "explicit", ResolveDir("explicit"))

	t.Setenv("LOGS_FOLDER", "/tmp/prelev-logs")
	assert.Equal(t, "/tmp/prelev-logs", ResolveDir(""))
}

func TestSetup_UnwritableDir(t *testing.T) {
	file := filepath.Join(t.TempDir(), "not-a-dir")
	require.NoError(t, os.WriteFile(file, nil, 0644))

	_, err := Setup(Options{Dir: filepath.Join(file, "logs"), Console: &bytes.Buffer{}})
	assert.Error(t, err)
}
