package main_test

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/onobori/chintai"
	main "github.com/onobori/chintai/cmd/chintai"
	"github.com/onobori/chintai/mock"
	chprom "github.com/onobori/chintai/prometheus"
	"github.com/onobori/chintai/scrape"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScrapeCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("scrapes page range and prints summary", func(t *testing.T) {
		t.Parallel()

		var stored []*chintai.Property
		var fetched []string
		scraper := &scrape.Scraper{
			Fetcher: &mock.Fetcher{
				FetchFn: func(_ context.Context, url string) (string, error) {
					fetched = append(fetched, url)
					return url, nil
				},
			},
			Parser: &mock.ListingParser{
				ParseListingsFn: func(html string) (*chintai.ParseResult, error) {
					return &chintai.ParseResult{Listings: []*chintai.Listing{{
						Name:   "物件 " + html,
						Access: []string{"ＪＲ山手線/渋谷駅 歩5分"},
						Rooms:  []chintai.Room{{Rent: "8.5万円", Layout: "1K"}},
					}}}, nil
				},
			},
			Properties: &mock.PropertyService{
				CreatePropertiesFn: func(_ context.Context, props []*chintai.Property) error {
					stored = append(stored, props...)
					return nil
				},
			},
			RetryDelays: []time.Duration{},
		}

		stdout := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:     context.Background(),
			Stdout:  stdout,
			Stderr:  &bytes.Buffer{},
			Scraper: scraper,
		}

		cmd := &main.ScrapeCmd{URL: "https://example.com/list?page={page}", Start: 2, Pages: 2}
		require.NoError(t, cmd.Run(deps))

		assert.Equal(t, []string{
			"https://example.com/list?page=2",
			"https://example.com/list?page=3",
		}, fetched)
		assert.Len(t, stored, 2)
		out := stdout.String()
		assert.Contains(t, out, "Scraping pages 2-3")
		assert.Contains(t, out, "page 2: 1 listings")
		assert.Contains(t, out, "Stored 2 records from 2 listings (2 pages, 0 failed)")
	})

	t.Run("writes metrics file", func(t *testing.T) {
		t.Parallel()

		reg := prometheus.NewRegistry()
		scraper := &scrape.Scraper{
			Fetcher: &mock.Fetcher{
				FetchFn: func(context.Context, string) (string, error) { return "<html></html>", nil },
			},
			Parser: &mock.ListingParser{
				ParseListingsFn: func(string) (*chintai.ParseResult, error) {
					return &chintai.ParseResult{Errors: []error{errors.New("missing title")}}, nil
				},
			},
			Properties:  &mock.PropertyService{},
			Observer:    chprom.NewMetrics(reg),
			RetryDelays: []time.Duration{},
		}

		path := filepath.Join(t.TempDir(), "chintai.prom")
		deps := &main.Dependencies{
			Ctx:     context.Background(),
			Stdout:  &bytes.Buffer{},
			Stderr:  &bytes.Buffer{},
			Scraper: scraper,
			Metrics: reg,
		}

		cmd := &main.ScrapeCmd{URL: "https://example.com/?page={page}", Start: 1, Pages: 1, MetricsFile: path}
		require.NoError(t, cmd.Run(deps))

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Contains(t, string(data), `chintai_pages_fetched_total{result="ok"} 1`)
		assert.Contains(t, string(data), "chintai_blocks_skipped_total 1")
	})

	t.Run("rejects zero pages", func(t *testing.T) {
		t.Parallel()

		stderr := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:     context.Background(),
			Stdout:  &bytes.Buffer{},
			Stderr:  stderr,
			Scraper: &scrape.Scraper{},
		}

		err := (&main.ScrapeCmd{URL: "https://example.com/?page={page}", Start: 1, Pages: 0}).Run(deps)
		require.Error(t, err)
		assert.Equal(t, chintai.EINVALID, chintai.ErrorCode(err))
		assert.Contains(t, stderr.String(), "pages must be at least 1")
	})

	t.Run("reports failure when every page fails", func(t *testing.T) {
		t.Parallel()

		scraper := &scrape.Scraper{
			Fetcher: &mock.Fetcher{
				FetchFn: func(context.Context, string) (string, error) {
					return "", errors.New("connection refused")
				},
			},
			Parser:      &mock.ListingParser{},
			Properties:  &mock.PropertyService{},
			RetryDelays: []time.Duration{},
		}

		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:     context.Background(),
			Stdout:  stdout,
			Stderr:  stderr,
			Scraper: scraper,
		}

		err := (&main.ScrapeCmd{URL: "https://example.com/?page={page}", Start: 1, Pages: 1}).Run(deps)
		require.Error(t, err)
		assert.Contains(t, stdout.String(), "page 1: failed")
		assert.Contains(t, stderr.String(), "error: ")
	})
}
