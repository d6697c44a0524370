package cmd

import (
	"errors"
	"log/slog"
	"os"

	"github.com/Manu343726/mclog/pkg/utils"
	slogmulti "github.com/samber/slog-multi"
)

var ErrInvalidLogLevel = errors.New("invalid log level")

// Log file kept open for the lifetime of the process
var logFile *os.File

// Installs the process logger: human readable records on stderr plus, if a log file is given,
// JSON records on that file
func setupLogging(level string, path string) error {
	var logLevel slog.Level
	if err := logLevel.UnmarshalText([]byte(level)); err != nil {
		return utils.MakeError(ErrInvalidLogLevel, "'%v'", level)
	}

	handlers := []slog.Handler{
		slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}),
	}

	if path != "" {
		file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return err
		}

		logFile = file
		handlers = append(handlers, slog.NewJSONHandler(file, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}

	slog.SetDefault(slog.New(slogmulti.Fanout(handlers...)))
	return nil
}
