package watch

import (
	"context"
	"sync"

	"go.uber.org/zap"
)

// RunFunc performs one pass. changed is nil for the initial pass.
type RunFunc func(ctx context.Context, changed []string) error

// Loop runs fn once and then again every time one of files changes, until
// ctx is cancelled. Failed passes are logged and the loop keeps watching.
// Passes never overlap.
func Loop(ctx context.Context, files []string, fn RunFunc, logger *zap.Logger, opts ...Option) error {
	if logger == nil {
		logger = zap.NewNop()
	}

	var mu sync.Mutex
	run := func(changed []string) error {
		mu.Lock()
		defer mu.Unlock()
		if ctx.Err() != nil {
			return nil
		}
		return fn(ctx, changed)
	}

	if err := run(nil); err != nil {
		logger.Error("initial pass failed", zap.Error(err))
	}

	opts = append([]Option{WithLogger(logger)}, opts...)
	fw, err := NewFileWatcher(files, func(changed []string) error {
		logger.Info("inputs changed, re-running", zap.Strings("files", changed))
		return run(changed)
	}, opts...)
	if err != nil {
		return err
	}
	if err := fw.Start(); err != nil {
		_ = fw.Stop()
		return err
	}

	logger.Info("watching for changes", zap.Strings("files", files))
	<-ctx.Done()
	return fw.Stop()
}
