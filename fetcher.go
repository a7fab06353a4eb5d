package chintai

import (
	"context"
	"net/url"
	"strconv"
	"strings"
)

// PagePlaceholder marks where the page number goes in a listing URL template.
const PagePlaceholder = "{page}"

// DefaultListingURL searches rental listings in Tokyo's 23 wards, 50 per page.
const DefaultListingURL = "https://suumo.jp/jj/chintai/ichiran/FR301FC001/?ar=030&bs=040&ta=13" +
	"&sc=13101&sc=13102&sc=13103&sc=13104&sc=13105&sc=13113&sc=13106&sc=13107&sc=13108&sc=13118" +
	"&sc=13121&sc=13122&sc=13123&sc=13109&sc=13110&sc=13111&sc=13112&sc=13114&sc=13115&sc=13120" +
	"&sc=13116&sc=13117&sc=13119&cb=0.0&ct=9999999&mb=0&mt=9999999&et=9999999&cn=9999999" +
	"&shkr1=03&shkr2=03&shkr3=03&shkr4=03&sngz=&po1=25&pc=50&page=" + PagePlaceholder

// Fetcher retrieves raw HTML from URLs.
type Fetcher interface {
	// Fetch performs a single request for the URL and returns the body as
	// UTF-8 text. Retrying is the caller's concern.
	// The context controls timeout and cancellation.
	Fetch(ctx context.Context, url string) (html string, err error)

	// Close releases any resources held by the fetcher.
	Close() error
}

// PageURL returns the listing URL for the given page number.
// The template may contain PagePlaceholder or a bare "{}"; without either,
// the page is set as the "page" query parameter.
func PageURL(template string, page int) string {
	n := strconv.Itoa(page)
	switch {
	case strings.Contains(template, PagePlaceholder):
		return strings.ReplaceAll(template, PagePlaceholder, n)
	case strings.Contains(template, "{}"):
		return strings.ReplaceAll(template, "{}", n)
	}

	u, err := url.Parse(template)
	if err != nil {
		return template
	}
	q := u.Query()
	q.Set("page", n)
	u.RawQuery = q.Encode()
	return u.String()
}
