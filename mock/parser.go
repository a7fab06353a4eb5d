package mock

import "github.com/onobori/chintai"

var _ chintai.ListingParser = (*ListingParser)(nil)

// ListingParser is a mock implementation of chintai.ListingParser.
type ListingParser struct {
	ParseListingsFn func(html string) (*chintai.ParseResult, error)
}

func (p *ListingParser) ParseListings(html string) (*chintai.ParseResult, error) {
	return p.ParseListingsFn(html)
}
