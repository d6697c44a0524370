package dump

import (
	"context"
	"errors"
	"log/slog"

	"github.com/Manu343726/mclog/pkg/logging"
	"github.com/Manu343726/mclog/pkg/utils"
	"golang.org/x/sync/errgroup"
)

type renderConfig struct {
	Options logging.FormatOptions
	// Append a "db" dump of the encoded instructions
	Binary bool
	// Maximum bytes of output per file, 0 means unlimited
	MaxOutput int
	// Write a comment line with the file name before each listing
	Header bool
	// Maximum number of files rendered at the same time, 0 means GOMAXPROCS
	Jobs int
	// If set, the listing lines are sent as log records instead of being collected
	Slog      *slog.Logger
	SlogLevel slog.Level
}

func (c *renderConfig) newLogger(path string, buffer *logging.BufferSink) *logging.Logger {
	var sink logging.Sink = buffer

	if c.Slog != nil {
		sink = &logging.SlogSink{Logger: c.Slog.With("file", path), Level: c.SlogLevel}
	}

	logger := logging.New(sink)
	*logger.Options() = c.Options
	return logger
}

// Renders one program description file. Running out of output space only truncates the listing
func renderFile(path string, config *renderConfig) ([]byte, error) {
	program, err := LoadProgram(path)
	if err != nil {
		return nil, err
	}

	b, err := program.Build()
	if err != nil {
		return nil, err
	}

	buffer := &logging.BufferSink{Limit: config.MaxOutput}
	logger := config.newLogger(path, buffer)

	err = func() error {
		if config.Header {
			if err := logger.Logf("; %v\n", path); err != nil {
				return err
			}
		}

		if err := b.Dump(logger); err != nil {
			return err
		}

		if !config.Binary {
			return nil
		}

		encoding, err := program.Encoding()
		if err != nil {
			return err
		}

		return logger.LogBinary(encoding)
	}()

	if errors.Is(err, logging.ErrOutOfMemory) {
		slog.Warn("listing truncated", "file", path, "limit", config.MaxOutput, "error", err)
		err = nil
	}

	if err != nil {
		return nil, err
	}

	return buffer.Bytes(), nil
}

// Renders all files concurrently. Listings are returned in the same order as the paths
func renderFiles(ctx context.Context, paths []string, config *renderConfig) ([][]byte, error) {
	listings := make([][]byte, len(paths))

	g, gctx := errgroup.WithContext(ctx)
	if config.Jobs > 0 {
		g.SetLimit(config.Jobs)
	}

	for i, path := range paths {
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}

			slog.Debug("rendering", "file", path)

			listing, err := renderFile(path, config)
			if err != nil {
				return utils.MakeError(ErrRender, "%v: %v", path, err)
			}

			listings[i] = listing
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return listings, nil
}
