package chintai

// Observer receives pipeline and browsing events, typically for metrics.
type Observer interface {
	// PageFetched is called once per listing page with the final fetch error, if any.
	PageFetched(err error)

	// BlockSkipped is called for every malformed building block.
	BlockSkipped()

	// RecordsStored is called with the number of records appended to the table.
	RecordsStored(n int)

	// SuggestionServed is called after each suggestion request.
	SuggestionServed(s *Suggestion)
}

// NopObserver ignores all events.
type NopObserver struct{}

func (NopObserver) PageFetched(error) {}
func (NopObserver) BlockSkipped() {}
func (NopObserver) RecordsStored(int) {}
func (NopObserver) SuggestionServed(*Suggestion) {}
