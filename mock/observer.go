package mock

import (
	"sync"

	"github.com/onobori/chintai"
)

var _ chintai.Observer = (*Observer)(nil)

// Observer records the events it receives. Safe for concurrent use.
type Observer struct {
	mu          sync.Mutex
	PageErrors  []error
	Skipped     int
	Stored      int
	Suggestions []*chintai.Suggestion
}

func (o *Observer) PageFetched(err error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.PageErrors = append(o.PageErrors, err)
}

func (o *Observer) BlockSkipped() {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.Skipped++
}

func (o *Observer) RecordsStored(n int) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.Stored += n
}

func (o *Observer) SuggestionServed(s *chintai.Suggestion) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.Suggestions = append(o.Suggestions, s)
}
