package tileworker

import (
	"log/slog"

	"github.com/gogpu/tileworker/internal/featureindex"
)

// WorkerOption configures a Worker at construction time, matching the
// functional-options idiom used throughout the teacher codebase's
// options.go.
type WorkerOption func(*workerOptions)

// workerOptions holds optional configuration for Worker creation.
type workerOptions struct {
	logger               *slog.Logger
	featureIndexCellSize int
	mailboxCapacity      int
}

func defaultWorkerOptions() workerOptions {
	return workerOptions{
		logger:               Logger(),
		featureIndexCellSize: featureindex.DefaultCellSize,
		mailboxCapacity:      defaultMailboxCapacity,
	}
}

// WithLogger overrides the package-default logger for one Worker.
func WithLogger(l *slog.Logger) WorkerOption {
	return func(o *workerOptions) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithFeatureIndexGrid overrides the feature index's grid cell size (see
// internal/featureindex.New); cellSize <= 0 uses the package default.
func WithFeatureIndexGrid(cellSize int) WorkerOption {
	return func(o *workerOptions) {
		if cellSize > 0 {
			o.featureIndexCellSize = cellSize
		}
	}
}

// WithMailboxCapacity overrides the worker's inbound mailbox buffer size.
// The default comfortably absorbs a burst of set* messages queued while a
// layout or placement runs (spec §4.4 "Why coalesce").
func WithMailboxCapacity(n int) WorkerOption {
	return func(o *workerOptions) {
		if n > 0 {
			o.mailboxCapacity = n
		}
	}
}
