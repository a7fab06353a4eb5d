package chintai

import (
	"context"
	"fmt"
	"strings"
)

// MaxSuggestions is the number of stations requested from the model.
const MaxSuggestions = 5

// Commute limits accepted by Suggester implementations, in minutes.
const (
	MinCommuteMinutes = 1
	MaxCommuteMinutes = 60
)

// SuggestionSystemPrompt is the system message sent with every suggestion request.
const SuggestionSystemPrompt = "You are a helpful assistant."

// Suggestion is a parsed model reply: numbered station lines and the
// free-text lines around them.
type Suggestion struct {
	Stations []string `json:"stations"`
	Reasons  []string `json:"reasons"`

	// Diagnostic is set when the remote call failed or the reply had an
	// unexpected shape. Stations and Reasons are empty then.
	Diagnostic string `json:"diagnostic,omitempty"`
}

// Reason returns the reason line at index i, or "" when there is none.
// Reasons pair with stations by position.
func (s *Suggestion) Reason(i int) string {
	if s == nil || i < 0 || i >= len(s.Reasons) {
		return ""
	}
	return s.Reasons[i]
}

// Suggester proposes stations within a commute of a workplace station.
type Suggester interface {
	// Suggest asks for up to MaxSuggestions stations reachable from station
	// within minutes. Remote failures are reported through
	// Suggestion.Diagnostic, not the error. Returns EINVALID for bad input.
	Suggest(ctx context.Context, station string, minutes int) (*Suggestion, error)
}

// ValidateSuggestRequest returns an error if the suggestion input is invalid.
func ValidateSuggestRequest(station string, minutes int) error {
	if strings.TrimSpace(station) == "" {
		return Errorf(EINVALID, "work station required")
	}
	if minutes < MinCommuteMinutes || minutes > MaxCommuteMinutes {
		return Errorf(EINVALID, "commute minutes must be between %d and %d", MinCommuteMinutes, MaxCommuteMinutes)
	}
	return nil
}

// SuggestionPrompt builds the user message for a suggestion request.
func SuggestionPrompt(station string, minutes int) string {
	return fmt.Sprintf("%sに%d分以内に行ける、生活が便利で、住みやすい穴場の駅を%dつ提案し、その理由を述べてください。",
		strings.TrimSpace(station), minutes, MaxSuggestions)
}

// SuggestionFailure returns an empty suggestion carrying a diagnostic.
func SuggestionFailure(format string, args ...any) *Suggestion {
	return &Suggestion{
		Stations:   []string{},
		Reasons:    []string{},
		Diagnostic: fmt.Sprintf(format, args...),
	}
}

// SuggestionFromReply parses a model reply. A reply without any station
// line has an unexpected shape and yields a diagnostic.
func SuggestionFromReply(reply string) *Suggestion {
	s := ParseSuggestions(reply)
	if len(s.Stations) == 0 {
		return SuggestionFailure("reply contained no suggestions")
	}
	return s
}

// ParseSuggestions classifies each line of a model reply. Lines starting
// with "1. " through "5. " are stations, of which at most MaxSuggestions are
// kept; every other non-blank line is a reason.
func ParseSuggestions(reply string) *Suggestion {
	s := &Suggestion{Stations: []string{}, Reasons: []string{}}
	for _, line := range strings.Split(strings.TrimSpace(reply), "\n") {
		line = strings.TrimRight(line, " \r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		if isSuggestionLine(line) {
			// Replies that repeat numbers may list more than asked for.
			if len(s.Stations) < MaxSuggestions {
				s.Stations = append(s.Stations, line)
			}
		} else {
			s.Reasons = append(s.Reasons, strings.TrimSpace(line))
		}
	}
	return s
}

func isSuggestionLine(line string) bool {
	for i := 1; i <= MaxSuggestions; i++ {
		if strings.HasPrefix(line, fmt.Sprintf("%d. ", i)) {
			return true
		}
	}
	return false
}

// stationSeparators end the station name inside a suggestion line.
var stationSeparators = []string{"：", ":", "（", "(", " - ", "、", "　"}

// StationName extracts the station name from a suggestion line such as
// "1. 中野駅：新宿まで5分" or "2. **Station Y** (Line Z)".
func StationName(line string) string {
	name := strings.TrimSpace(line)
	if isSuggestionLine(name) {
		name = name[3:]
	}
	for _, sep := range stationSeparators {
		if i := strings.Index(name, sep); i >= 0 {
			name = name[:i]
		}
	}
	return strings.TrimSpace(strings.Trim(strings.TrimSpace(name), "*"))
}
