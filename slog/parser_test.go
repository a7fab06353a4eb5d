package slog_test

import (
	"bytes"
	"errors"
	"log/slog"
	"testing"

	"github.com/onobori/chintai"
	"github.com/onobori/chintai/mock"
	chslog "github.com/onobori/chintai/slog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggingParser_ParseListings(t *testing.T) {
	t.Parallel()

	t.Run("logs listing and skipped counts", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
		inner := &mock.ListingParser{
			ParseListingsFn: func(html string) (*chintai.ParseResult, error) {
				return &chintai.ParseResult{
					Listings: []*chintai.Listing{{Name: "a"}, {Name: "b"}},
					Errors:   []error{errors.New("missing title")},
				}, nil
			},
		}

		parser := chslog.NewLoggingParser(inner, logger)
		result, err := parser.ParseListings("<html></html>")

		require.NoError(t, err)
		assert.Len(t, result.Listings, 2)
		output := buf.String()
		assert.Contains(t, output, "msg=parse")
		assert.Contains(t, output, "listings=2")
		assert.Contains(t, output, "skipped=1")
	})

	t.Run("logs error on failure", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
		inner := &mock.ListingParser{
			ParseListingsFn: func(html string) (*chintai.ParseResult, error) {
				return nil, errors.New("bad document")
			},
		}

		parser := chslog.NewLoggingParser(inner, logger)
		_, err := parser.ParseListings("")

		require.Error(t, err)
		output := buf.String()
		assert.Contains(t, output, "listings=0")
		assert.Contains(t, output, "err=\"bad document\"")
	})
}
