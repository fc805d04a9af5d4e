// Package log sets up the structured logger used for debug output.
package log

import (
	"context"
	"io"
	"log/slog"
)

type Logger = slog.Logger

const (
	LevelDebug = slog.LevelDebug
	LevelInfo  = slog.LevelInfo
	LevelWarn  = slog.LevelWarn
	LevelError = slog.LevelError
)

const (
	KeyPath   = "path"
	KeyFile   = "file"
	KeyURL    = "url"
	KeyStatus = "status"
	KeyBytes  = "bytes"
	KeyError  = "error"
	KeyDepth  = "depth"
	KeySHA    = "sha"
)

// Null discards everything.
var Null = slog.New(discard{})

// New returns a text logger writing to out at the given level. Timestamps are
// dropped, the output is meant for a terminal session.
func New(out io.Writer, lvl slog.Level) *Logger {
	opts := slog.HandlerOptions{
		Level: lvl,
		ReplaceAttr: func(_ []string, attr slog.Attr) slog.Attr {
			if attr.Key == slog.TimeKey {
				return slog.Attr{}
			}
			return attr
		},
	}
	return slog.New(slog.NewTextHandler(out, &opts))
}

// ErrAttr is a shortcut for slog.Any(KeyError, err).
func ErrAttr(err error) slog.Attr {
	return slog.Any(KeyError, err)
}

type discard struct{}

func (discard) Enabled(context.Context, slog.Level) bool  { return false }
func (discard) Handle(context.Context, slog.Record) error { return nil }
func (d discard) WithAttrs([]slog.Attr) slog.Handler      { return d }
func (d discard) WithGroup(string) slog.Handler           { return d }
