package iologger_test

import (
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inslake/inslake/internal/iologger"
	"github.com/inslake/inslake/pkg/config"
)

func TestInitFile(t *testing.T) {
	logDir := t.TempDir()
	cfg := config.LogConfig{
		Format:      "json",
		Level:       "info",
		Destination: "file",
	}

	require.NoError(t, iologger.Init(logDir, cfg))
	slog.Info("pipeline started", "stage", "bronze")
	slog.Debug("below threshold")

	data, err := os.ReadFile(filepath.Join(logDir, "inslake.log"))
	require.NoError(t, err)
	require.NotEmpty(t, data)

	var rec map[string]any
	require.NoError(t, json.Unmarshal(data[:len(data)-1], &rec))
	assert.Equal(t, "pipeline started", rec["msg"])
	assert.Equal(t, "bronze", rec["stage"])
	assert.NotContains(t, string(data), "below threshold",
		"debug is filtered at info level")
}

func TestInitMissingDir(t *testing.T) {
	cfg := config.LogConfig{Destination: "file"}
	err := iologger.Init(
		filepath.Join(t.TempDir(), "no", "such", "dir"), cfg,
	)
	assert.Error(t, err)
}
