package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/sitecrawl"
)

// Ensure LoggingVisitor implements sitecrawl.Visitor.
var _ sitecrawl.Visitor = (*LoggingVisitor)(nil)

// LoggingVisitor wraps a Visitor with debug logging.
type LoggingVisitor struct {
	next   sitecrawl.Visitor
	logger *slog.Logger
}

// NewLoggingVisitor creates a new LoggingVisitor.
func NewLoggingVisitor(next sitecrawl.Visitor, logger *slog.Logger) *LoggingVisitor {
	return &LoggingVisitor{next: next, logger: logger}
}

func (v *LoggingVisitor) Visit(ctx context.Context, visit *sitecrawl.Visit) (err error) {
	defer func(begin time.Time) {
		v.logger.Debug("visit",
			"url", visit.URL,
			"log_lines", len(visit.Log),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return v.next.Visit(ctx, visit)
}
