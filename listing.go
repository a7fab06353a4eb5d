package chintai

// Listing is one building block scraped from a listing page, before any
// normalization. Text fields hold the trimmed element text, empty when the
// element is absent. URL fields are nil when the element is absent.
type Listing struct {
	Name      string
	Category  string
	Address   string
	Age       string
	Structure string

	// Access holds one free-text descriptor per transit-access element,
	// e.g. "ＪＲ山手線/渋谷駅 歩9分".
	Access []string

	Rooms []Room

	ImageURL          *string
	FloorPlanImageURL *string
	DetailURL         *string
}

// Room is one rentable unit row inside a Listing.
type Room struct {
	Floor         string
	Rent          string
	ManagementFee string
	Deposit       string
	KeyMoney      string
	Layout        string
	Area          string
}

// RawRecord is one flattened (building × room × access context) row before
// numeric coercion and access splitting. It is comparable so that exact
// duplicates can be detected. Empty URL fields mean absent.
type RawRecord struct {
	Name      string
	Category  string
	Address   string
	Access    string
	Age       string
	Structure string

	Floor         string
	Rent          string
	ManagementFee string
	Deposit       string
	KeyMoney      string
	Layout        string
	Area          string

	ImageURL          string
	FloorPlanImageURL string
	DetailURL         string
}

// ParseResult holds the listings parsed from one page.
type ParseResult struct {
	Listings []*Listing

	// Errors holds one error per skipped building block.
	// A malformed block never aborts the rest of the page.
	Errors []error
}

// ListingParser extracts building blocks from a listing page.
type ListingParser interface {
	// ParseListings parses the page HTML. It returns an error only when the
	// document itself cannot be parsed.
	ParseListings(html string) (*ParseResult, error)
}

// ExpandListing flattens a listing into raw records. Every room is paired
// with every access context, so the result has len(Access) × len(Rooms)
// rows, ordered by access context first. A listing without access
// descriptors yields no rows.
func ExpandListing(l *Listing) []RawRecord {
	if l == nil {
		return nil
	}

	records := make([]RawRecord, 0, len(l.Access)*len(l.Rooms))
	for _, access := range l.Access {
		for _, room := range l.Rooms {
			records = append(records, RawRecord{
				Name:              l.Name,
				Category:          l.Category,
				Address:           l.Address,
				Access:            access,
				Age:               l.Age,
				Structure:         l.Structure,
				Floor:             room.Floor,
				Rent:              room.Rent,
				ManagementFee:     room.ManagementFee,
				Deposit:           room.Deposit,
				KeyMoney:          room.KeyMoney,
				Layout:            room.Layout,
				Area:              room.Area,
				ImageURL:          deref(l.ImageURL),
				FloorPlanImageURL: deref(l.FloorPlanImageURL),
				DetailURL:         deref(l.DetailURL),
			})
		}
	}
	return records
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
