package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/onobori/chintai"
)

var _ chintai.Suggester = (*LoggingSuggester)(nil)

// LoggingSuggester wraps a Suggester with logging. Diagnostics are logged
// at warn level.
type LoggingSuggester struct {
	next   chintai.Suggester
	logger *slog.Logger
}

// NewLoggingSuggester creates a new LoggingSuggester.
func NewLoggingSuggester(next chintai.Suggester, logger *slog.Logger) *LoggingSuggester {
	return &LoggingSuggester{next: next, logger: logger}
}

// Suggest delegates to the wrapped suggester and logs the outcome.
func (s *LoggingSuggester) Suggest(ctx context.Context, station string, minutes int) (sug *chintai.Suggestion, err error) {
	defer func(begin time.Time) {
		if sug != nil && sug.Diagnostic != "" {
			s.logger.Warn("suggest",
				"station", station,
				"minutes", minutes,
				"diagnostic", sug.Diagnostic,
				"duration", time.Since(begin),
			)
			return
		}
		var count int
		if sug != nil {
			count = len(sug.Stations)
		}
		s.logger.Info("suggest",
			"station", station,
			"minutes", minutes,
			"stations", count,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.Suggest(ctx, station, minutes)
}
