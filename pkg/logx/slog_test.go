package logx_test

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"gb_market/pkg/logx"
)

func TestNewWritesToFile(t *testing.T) {
	rq := require.New(t)

	fileName := filepath.Join(t.TempDir(), "gb_market.log")

	logger := logx.New(logx.Options{Level: slog.LevelInfo, File: fileName})
	logger.Debug("hidden")
	logger.Info("widget mounted", slog.String(logx.FieldWidgetKind, "flash_deals"))

	b, err := os.ReadFile(fileName)
	rq.NoError(err)
	rq.Contains(string(b), "widget mounted")
	rq.Contains(string(b), "widget-kind=flash_deals")
	rq.NotContains(string(b), "hidden")
}
