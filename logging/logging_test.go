package logging_test

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/katalvlaran/capkmeans/config"
	"github.com/katalvlaran/capkmeans/logging"
)

func TestNewToFiltersByLevel(t *testing.T) {
	var buf bytes.Buffer
	log, cleanup, err := logging.NewTo(&buf, config.Log{Level: "info"})
	require.NoError(t, err)

	log.Debug("hidden")
	log.Info("Computing clusters", zap.Int("k", 3))
	cleanup()

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 1)
	var entry map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &entry))
	assert.Equal(t, "Computing clusters", entry["msg"])
	assert.Equal(t, "info", entry["level"])
	assert.EqualValues(t, 3, entry["k"])
}

func TestNewToWritesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "capkmeans.log")
	var buf bytes.Buffer
	log, cleanup, err := logging.NewTo(&buf, config.Log{Level: "debug", File: path, MaxSizeMB: 1})
	require.NoError(t, err)

	log.Debug("Clusters ready")
	cleanup()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Clusters ready")
	assert.Contains(t, buf.String(), "Clusters ready")
}

func TestNewToBadLevel(t *testing.T) {
	_, _, err := logging.NewTo(&bytes.Buffer{}, config.Log{Level: "loud"})
	require.Error(t, err)
}
