package main

import (
	"log/slog"
	"os"
)

var (
	logLevel = new(slog.LevelVar)

	// stdout carries the protocol stream.
	theLog = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: logLevel,
		ReplaceAttr: func(_ []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey {
				return slog.Attr{}
			}
			return a
		},
	}))
)

func init() {
	logLevel.Set(slog.LevelWarn)
}
