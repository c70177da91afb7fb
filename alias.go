package scopelog

import (
	"golang.org/x/exp/slog"
)

type (
	Attr  = slog.Attr
	Level = slog.Level
	Value = slog.Value
)

const (
	DEBUG = slog.LevelDebug
	INFO  = slog.LevelInfo
	WARN  = slog.LevelWarn
	ERROR = slog.LevelError
)

const (
	missingArg = "!missing-arg"
	missingKey = "!missing-key"
)
