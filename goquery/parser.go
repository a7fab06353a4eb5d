// Package goquery implements listing page parsing on top of
// github.com/PuerkitoBio/goquery.
package goquery

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/onobori/chintai"
)

// DetailBaseURL is the origin relative detail links are resolved against.
const DetailBaseURL = "https://suumo.jp"

// CSS selectors for the listing page markup.
const (
	selectorBlock          = "div.cassetteitem"
	selectorTitle          = "div.cassetteitem_content-title"
	selectorCategory       = "div.cassetteitem_content-label"
	selectorAddress        = "li.cassetteitem_detail-col1"
	selectorAgeStructure   = "li.cassetteitem_detail-col3"
	selectorAccess         = "div.cassetteitem_detail-text"
	selectorRoomTable      = "table.cassetteitem_other"
	selectorImage          = ".cassetteitem_object-item img"
	selectorFloorPlanImage = ".casssetteitem_other-thumbnail img" // sic, matches the site markup
	selectorDetailLink     = "a[href*='/chintai/jnc_']"
)

var _ chintai.ListingParser = (*ListingParser)(nil)

// ListingParser extracts building blocks from a listing results page.
type ListingParser struct {
	base *url.URL
}

// NewListingParser creates a ListingParser that resolves detail links
// against DetailBaseURL.
func NewListingParser() *ListingParser {
	base, _ := url.Parse(DetailBaseURL)
	return &ListingParser{base: base}
}

// ParseListings parses every building block on the page. Blocks with a
// missing or blank title, or without a room table, are reported in ParseResult.Errors and skipped.
func (p *ListingParser) ParseListings(html string) (*chintai.ParseResult, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, chintai.Errorf(chintai.EINVALID, "failed to parse HTML: %v", err)
	}

	result := &chintai.ParseResult{}
	doc.Find(selectorBlock).Each(func(i int, block *goquery.Selection) {
		listing, err := p.parseBlock(block)
		if err != nil {
			result.Errors = append(result.Errors, fmt.Errorf("listing %d: %w", i, err))
			return
		}
		result.Listings = append(result.Listings, listing)
	})

	return result, nil
}

func (p *ListingParser) parseBlock(block *goquery.Selection) (*chintai.Listing, error) {
	title := block.Find(selectorTitle).First()
	if title.Length() == 0 || text(title) == "" {
		return nil, chintai.Errorf(chintai.EINVALID, "missing title")
	}
	table := block.Find(selectorRoomTable).First()
	if table.Length() == 0 {
		return nil, chintai.Errorf(chintai.EINVALID, "missing room table")
	}

	ageStructure := block.Find(selectorAgeStructure).First().Find("div")

	l := &chintai.Listing{
		Name:              text(title),
		Category:          text(block.Find(selectorCategory).First()),
		Address:           text(block.Find(selectorAddress).First()),
		Age:               text(ageStructure.Eq(0)),
		Structure:         text(ageStructure.Eq(1)),
		ImageURL:          attr(block.Find(selectorImage).First(), "rel"),
		FloorPlanImageURL: attr(block.Find(selectorFloorPlanImage).First(), "rel"),
		DetailURL:         p.detailURL(block),
	}

	block.Find(selectorAccess).Each(func(_ int, s *goquery.Selection) {
		l.Access = append(l.Access, text(s))
	})

	table.Find("tbody").Each(func(_ int, tbody *goquery.Selection) {
		l.Rooms = append(l.Rooms, parseRoom(tbody))
	})

	return l, nil
}

// parseRoom reads one room row. Missing cells yield empty text.
func parseRoom(tbody *goquery.Selection) chintai.Room {
	cells := tbody.Find("td")
	rent := cells.Eq(3).Find("li")
	deposit := cells.Eq(4).Find("li")
	layout := cells.Eq(5).Find("li")

	return chintai.Room{
		Floor:         text(cells.Eq(2)),
		Rent:          text(rent.Eq(0)),
		ManagementFee: text(rent.Eq(1)),
		Deposit:       text(deposit.Eq(0)),
		KeyMoney:      text(deposit.Eq(1)),
		Layout:        text(layout.Eq(0)),
		Area:          areaText(layout.Eq(1)),
	}
}

// areaText returns the area cell text without the superscript of "m²".
func areaText(s *goquery.Selection) string {
	if s.Length() == 0 {
		return ""
	}
	clone := s.Clone()
	clone.Find("sup").Remove()
	return text(clone)
}

func (p *ListingParser) detailURL(block *goquery.Selection) *string {
	href := attr(block.Find(selectorDetailLink).First(), "href")
	if href == nil {
		return nil
	}
	ref, err := url.Parse(*href)
	if err != nil {
		return nil
	}
	resolved := p.base.ResolveReference(ref).String()
	return &resolved
}

func text(s *goquery.Selection) string {
	return strings.TrimSpace(s.Text())
}

// attr returns the trimmed attribute value, or nil when the selection is
// empty or the attribute is absent or blank.
func attr(s *goquery.Selection, name string) *string {
	v, ok := s.Attr(name)
	if !ok {
		return nil
	}
	v = strings.TrimSpace(v)
	if v == "" {
		return nil
	}
	return &v
}
