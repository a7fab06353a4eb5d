package slog

import (
	"log/slog"
	"time"

	"github.com/onobori/chintai"
)

var _ chintai.ListingParser = (*LoggingParser)(nil)

// LoggingParser wraps a ListingParser with debug logging.
type LoggingParser struct {
	next   chintai.ListingParser
	logger *slog.Logger
}

// NewLoggingParser creates a new LoggingParser.
func NewLoggingParser(next chintai.ListingParser, logger *slog.Logger) *LoggingParser {
	return &LoggingParser{next: next, logger: logger}
}

// ParseListings delegates to the wrapped parser and logs block counts.
func (p *LoggingParser) ParseListings(html string) (result *chintai.ParseResult, err error) {
	defer func(begin time.Time) {
		var listings, skipped int
		if result != nil {
			listings = len(result.Listings)
			skipped = len(result.Errors)
		}
		p.logger.Debug("parse",
			"listings", listings,
			"skipped", skipped,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return p.next.ParseListings(html)
}
