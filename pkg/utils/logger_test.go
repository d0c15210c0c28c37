package utils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitLogger_WritesRotatingFile(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "logs")

	logger, err := InitLogger(dir, "shop", false)
	require.NoError(t, err)

	logger.Info("order placed")
	_ = logger.Sync()

	data, err := os.ReadFile(filepath.Join(dir, "shop.log"))
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"order placed"`)
}

func TestInitLogger_NoDirSkipsFile(t *testing.T) {
	logger, err := InitLogger("", "shop", true)
	require.NoError(t, err)
	assert.NotNil(t, logger)
}
