// Package scrape orchestrates the extraction pipeline: it fetches listing
// pages, parses building blocks, normalizes the flattened rows, and appends
// them to a property store.
package scrape

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/onobori/chintai"
)

// Limiter paces page requests. *rate.Limiter satisfies it.
type Limiter interface {
	Wait(ctx context.Context) error
}

// Scraper runs the extraction pipeline over a range of listing pages.
type Scraper struct {
	Fetcher    chintai.Fetcher
	Parser     chintai.ListingParser
	Properties chintai.PropertyService

	// Limiter is optional. When nil, pages are fetched back to back.
	Limiter Limiter

	// RetryDelays defaults to DefaultRetryDelays when nil.
	RetryDelays []time.Duration

	Observer chintai.Observer
	Logger   *slog.Logger
}

// Result holds the outcome of a scrape run.
type Result struct {
	Pages         int
	FailedPages   int
	Listings      int
	SkippedBlocks int
	RawRecords    int
	Stored        int

	// InvalidRecords counts deduplicated rows dropped by validation.
	InvalidRecords int
}

// ProgressEvent reports the outcome of one page.
type ProgressEvent struct {
	Page     int
	URL      string
	Listings int
	Skipped  int
	Error    error
}

// ProgressFunc is a callback for reporting scrape progress.
type ProgressFunc func(event ProgressEvent)

// Run scrapes pages firstPage through lastPage of the listing URL template.
// A page whose fetch fails after all retries is logged and counted, and the
// run moves on. The run stops early when a page repeats the previous page's
// listings, which is how the site answers requests past the last page.
// Rows from all pages are deduplicated together before they are stored.
func (s *Scraper) Run(ctx context.Context, template string, firstPage, lastPage int, progress ProgressFunc) (*Result, error) {
	if firstPage < 1 || lastPage < firstPage {
		return nil, chintai.Errorf(chintai.EINVALID, "invalid page range %d-%d", firstPage, lastPage)
	}

	logger := s.logger()
	observer := s.observer()
	delays := s.RetryDelays
	if delays == nil {
		delays = DefaultRetryDelays()
	}

	result := &Result{}
	var raw []chintai.RawRecord
	var prevHash uint64

	for page := firstPage; page <= lastPage; page++ {
		if s.Limiter != nil {
			if err := s.Limiter.Wait(ctx); err != nil {
				return nil, err
			}
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		url := chintai.PageURL(template, page)
		result.Pages++

		html, err := FetchWithRetryDelays(ctx, url, s.Fetcher.Fetch, logger, delays)
		observer.PageFetched(err)
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return nil, ctxErr
			}
			logger.Error("page failed", "page", page, "url", url, "error", err)
			result.FailedPages++
			notify(progress, ProgressEvent{Page: page, URL: url, Error: err})
			continue
		}

		parsed, err := s.Parser.ParseListings(html)
		if err != nil {
			logger.Error("page unparseable", "page", page, "url", url, "error", err)
			result.FailedPages++
			notify(progress, ProgressEvent{Page: page, URL: url, Error: err})
			continue
		}

		for _, blockErr := range parsed.Errors {
			logger.Warn("skipped listing", "page", page, "error", blockErr)
			observer.BlockSkipped()
		}
		result.SkippedBlocks += len(parsed.Errors)

		hash := pageHash(parsed.Listings)
		if len(parsed.Listings) > 0 && hash == prevHash {
			logger.Info("page repeats previous page, stopping", "page", page)
			notify(progress, ProgressEvent{Page: page, URL: url, Skipped: len(parsed.Errors)})
			break
		}
		prevHash = hash

		result.Listings += len(parsed.Listings)
		for _, l := range parsed.Listings {
			raw = append(raw, chintai.ExpandListing(l)...)
		}
		logger.Info("page scraped", "page", page, "listings", len(parsed.Listings), "skipped", len(parsed.Errors))
		notify(progress, ProgressEvent{Page: page, URL: url, Listings: len(parsed.Listings), Skipped: len(parsed.Errors)})
	}

	if result.Pages > 0 && result.FailedPages == result.Pages {
		return result, chintai.Errorf(chintai.EINTERNAL, "all %d pages failed", result.Pages)
	}

	result.RawRecords = len(raw)
	normalized := chintai.Normalize(raw)
	props := s.valid(normalized)
	result.InvalidRecords = len(normalized) - len(props)
	if len(props) > 0 {
		if err := s.Properties.CreateProperties(ctx, props); err != nil {
			return result, fmt.Errorf("store properties: %w", err)
		}
	}
	result.Stored = len(props)
	observer.RecordsStored(len(props))

	return result, nil
}

// valid drops records that would fail the store's validation, so one bad
// record cannot reject the whole run's batch.
func (s *Scraper) valid(props []*chintai.Property) []*chintai.Property {
	out := props[:0]
	for _, p := range props {
		if err := p.Validate(); err != nil {
			s.logger().Warn("dropped invalid record", "address", p.Address, "error", err)
			s.observer().BlockSkipped()
			continue
		}
		out = append(out, p)
	}
	return out
}

// pageHash fingerprints the identities of a page's listings so a repeated
// page can be recognized.
func pageHash(listings []*chintai.Listing) uint64 {
	h := xxhash.New()
	for _, l := range listings {
		_, _ = h.WriteString(l.Name)
		_, _ = h.WriteString("\x00")
		_, _ = h.WriteString(l.Address)
		_, _ = h.WriteString("\x00")
		if l.DetailURL != nil {
			_, _ = h.WriteString(*l.DetailURL)
		}
		_, _ = h.WriteString("\x00")
		_, _ = h.WriteString(strconv.Itoa(len(l.Rooms)))
		_, _ = h.WriteString("\n")
	}
	return h.Sum64()
}

func notify(progress ProgressFunc, event ProgressEvent) {
	if progress != nil {
		progress(event)
	}
}

func (s *Scraper) logger() *slog.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return slog.New(slog.DiscardHandler)
}

func (s *Scraper) observer() chintai.Observer {
	if s.Observer != nil {
		return s.Observer
	}
	return chintai.NopObserver{}
}
