package logger_test

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/shiptrack/internal/logger"
)

func TestNew_Levels(t *testing.T) {
	dev := logger.New("dev", "")
	assert.True(t, dev.Enabled(context.Background(), slog.LevelDebug))

	prod := logger.New("prod", "")
	assert.False(t, prod.Enabled(context.Background(), slog.LevelDebug))
	assert.True(t, prod.Enabled(context.Background(), slog.LevelInfo))
}

func TestNew_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "shiptrack.log")

	log := logger.New("prod", path)
	log.Info("shipment created", "id", 1)

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(content), `"msg":"shipment created"`)
	assert.Contains(t, string(content), `"id":1`)
}
