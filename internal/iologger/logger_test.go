package iologger_test

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/gnames/gn"
	"github.com/gnames/gnview/internal/iologger"
	"github.com/gnames/gnview/pkg/config"
	"github.com/gnames/gnview/pkg/errcode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInit_File(t *testing.T) {
	defer slog.SetDefault(slog.Default())
	logDir := t.TempDir()
	cfg := config.LogConfig{
		Format:      "text",
		Level:       "debug",
		Destination: "file",
	}

	err := iologger.Init(logDir, cfg)
	require.NoError(t, err)

	slog.Debug("refresh issued", "view", "people")

	data, err := os.ReadFile(filepath.Join(logDir, iologger.LogFileName))
	require.NoError(t, err)
	assert.Contains(t, string(data), "refresh issued")
	assert.Contains(t, string(data), "view=people")
}

func TestInit_Level(t *testing.T) {
	defer slog.SetDefault(slog.Default())
	logDir := t.TempDir()
	cfg := config.LogConfig{
		Format:      "json",
		Level:       "warn",
		Destination: "file",
	}

	err := iologger.Init(logDir, cfg)
	require.NoError(t, err)

	slog.Info("hidden")
	slog.Warn("shown")

	data, err := os.ReadFile(filepath.Join(logDir, iologger.LogFileName))
	require.NoError(t, err)
	assert.NotContains(t, string(data), "hidden")
	assert.Contains(t, string(data), `"msg":"shown"`)
}

func TestInit_BadDir(t *testing.T) {
	defer slog.SetDefault(slog.Default())
	cfg := config.LogConfig{Destination: "file"}

	logDir := filepath.Join(t.TempDir(), "missing")
	err := iologger.Init(logDir, cfg)
	require.Error(t, err)

	gnErr, ok := err.(*gn.Error)
	require.True(t, ok)
	assert.Equal(t, errcode.CreateLogFileError, gnErr.Code)
	logPath := filepath.Join(logDir, iologger.LogFileName)
	assert.Equal(t, []any{logPath}, gnErr.Vars)
	assert.Contains(t, gnErr.Msg, "GNVIEW_LOG_DESTINATION")
	assert.Contains(t, gnErr.Err.Error(), "open log "+logPath)
}
