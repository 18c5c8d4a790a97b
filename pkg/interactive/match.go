package interactive

import "strings"

// Action tells the prompt loop what to do with a free-typed value.
type Action int

const (
	// ActionAccept takes the typed value as-is (exact candidate match).
	ActionAccept Action = iota
	// ActionAutoSelect resolved the typed text to a unique candidate.
	ActionAutoSelect
	// ActionRefine re-prompts over the matching subset.
	ActionRefine
	// ActionRetry re-prompts over the original, unfiltered list.
	ActionRetry
)

// Decision is the outcome of resolving free-typed input against a
// candidate list.
type Decision struct {
	Action Action
	// Value is set for ActionAccept and ActionAutoSelect.
	Value string
	// Candidates is the matching subset for ActionRefine.
	Candidates []string
}

// ResolveFreeText decides what to do with input that may or may not name a
// listed candidate. It is a pure function, separate from terminal I/O:
//
//   - exact candidate match: accept immediately, no substring search
//   - unique case-insensitive substring match: auto-select it
//   - several matches: re-prompt with just those
//   - no match (or blank input): re-prompt with the full list
func ResolveFreeText(typed string, candidates []string) Decision {
	for _, c := range candidates {
		if typed == c {
			return Decision{Action: ActionAccept, Value: typed}
		}
	}

	needle := strings.ToLower(strings.TrimSpace(typed))
	if needle == "" {
		return Decision{Action: ActionRetry}
	}
	var matches []string
	for _, c := range candidates {
		if strings.Contains(strings.ToLower(c), needle) {
			matches = append(matches, c)
		}
	}

	switch len(matches) {
	case 0:
		return Decision{Action: ActionRetry}
	case 1:
		return Decision{Action: ActionAutoSelect, Value: matches[0]}
	default:
		return Decision{Action: ActionRefine, Candidates: matches}
	}
}
