package chintai

import "context"

// Selection is the browsing state carried across one user's interactions:
// the last suggestion received and the suggestion lines picked from it.
type Selection struct {
	WorkStation    string      `json:"workStation,omitempty"`
	CommuteMinutes int         `json:"commuteMinutes,omitempty"`
	Suggestion     *Suggestion `json:"suggestion,omitempty"`
	Selected       []string    `json:"selected"`
}

// Select replaces the picked lines with those of lines that appear in the
// current suggestion, keeping suggestion order and at most MaxStations.
// Lines that were never suggested are dropped.
func (s *Selection) Select(lines []string) {
	s.Selected = []string{}
	if s.Suggestion == nil {
		return
	}

	want := make(map[string]bool, len(lines))
	for _, l := range lines {
		want[l] = true
	}
	for _, station := range s.Suggestion.Stations {
		if len(s.Selected) == MaxStations {
			break
		}
		if want[station] {
			s.Selected = append(s.Selected, station)
		}
	}
}

// IsSelected reports whether the suggestion line is currently picked.
func (s *Selection) IsSelected(line string) bool {
	for _, l := range s.Selected {
		if l == line {
			return true
		}
	}
	return false
}

// StationNames returns the station names of the picked lines, ready to use
// as PropertyFilter.Stations.
func (s *Selection) StationNames() []string {
	names := make([]string, 0, len(s.Selected))
	for _, l := range s.Selected {
		if name := StationName(l); name != "" {
			names = append(names, name)
		}
	}
	return names
}

// SelectionStore persists selections per browsing session.
type SelectionStore interface {
	// FindSelection returns the selection for a session.
	// Returns ENOTFOUND if the session has none.
	FindSelection(ctx context.Context, sessionID string) (*Selection, error)

	// SaveSelection stores the selection for a session, replacing any previous one.
	SaveSelection(ctx context.Context, sessionID string, sel *Selection) error
}
