package logx

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/lmittmann/tint"
	"gopkg.in/natefinch/lumberjack.v2"
)

var Error = tint.Err //nolint:gochecknoglobals

func Stringer(name string, value fmt.Stringer) slog.Attr {
	return slog.String(name, value.String())
}

const (
	logFileMaxSizeMB  = 100
	logFileMaxAgeDays = 7
)

type Options struct {
	Level slog.Level
	// File switches output from stdout to a rotated log file.
	File string
}

// New builds the application logger. Colors are only used for stdout.
func New(opts Options) *slog.Logger {
	var (
		w       io.Writer = os.Stdout
		noColor bool
	)

	if opts.File != "" {
		w = &lumberjack.Logger{
			Filename: opts.File,
			MaxSize:  logFileMaxSizeMB,
			MaxAge:   logFileMaxAgeDays,
			Compress: true,
		}
		noColor = true
	}

	return slog.New(tint.NewHandler(w, &tint.Options{
		Level:      opts.Level,
		TimeFormat: time.DateTime,
		NoColor:    noColor,
	}))
}
