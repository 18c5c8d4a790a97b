// Package interactive drives the human side of an import: selection over
// dynamic lists, free-text filtering with fallback matching, and the
// product/engagement/test wizard.
//
// All prompting goes through a Prompter bound to explicit reader/writer
// pairs, so the flow is testable with scripted input.
package interactive

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/dojoctl/dojoctl/pkg/ui"
)

// Prompter reads answers line by line. Prompts block indefinitely awaiting
// input; an interrupt simply terminates the process, there is no partial
// state to clean up.
type Prompter struct {
	in  *bufio.Reader
	out io.Writer
}

// NewPrompter wraps an input stream and an output stream.
func NewPrompter(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{in: bufio.NewReader(in), out: out}
}

// Text asks for a single line. An empty answer returns defaultValue.
func (p *Prompter) Text(label, defaultValue string) (string, error) {
	if defaultValue != "" {
		fmt.Fprintf(p.out, "  %s [%s]: ", ui.PromptStyle.Render(label), defaultValue)
	} else {
		fmt.Fprintf(p.out, "  %s: ", ui.PromptStyle.Render(label))
	}
	answer, err := p.readLine()
	if err != nil {
		return "", err
	}
	if answer == "" {
		return defaultValue, nil
	}
	return answer, nil
}

// Select asks the user to pick exactly one listed choice, by number or by
// exact text, re-asking until a valid choice is made.
func (p *Prompter) Select(label string, choices []string) (string, error) {
	for {
		value, err := p.promptList(label, choices)
		if err != nil {
			return "", err
		}
		for _, c := range choices {
			if value == c {
				return c, nil
			}
		}
		fmt.Fprintf(p.out, "  %s\n", ui.HelpStyle.Render("pick a number or exact name from the list"))
	}
}

// AutoComplete asks for one value over a filterable candidate list. Unlike
// Select, the typed text does not have to name a listed candidate: a unique
// case-insensitive substring auto-selects, an ambiguous one re-prompts over
// the matching subset, and no match re-prompts over the full list. The
// re-prompt's answer is returned verbatim without re-checking exactness;
// server-side validation is the safety net for unrecognized values.
func (p *Prompter) AutoComplete(label string, candidates []string) (string, error) {
	value, err := p.promptList(label, candidates)
	if err != nil {
		return "", err
	}

	d := ResolveFreeText(value, candidates)
	switch d.Action {
	case ActionAccept:
		return d.Value, nil
	case ActionAutoSelect:
		fmt.Fprintf(p.out, "  %s %s\n", ui.SubtitleStyle.Render("Auto-selected:"), d.Value)
		return d.Value, nil
	case ActionRefine:
		return p.promptList(label+" (refine)", d.Candidates)
	default:
		return p.promptList(label+" (choose)", candidates)
	}
}

// Notice prints a one-line informational message into the prompt stream.
func (p *Prompter) Notice(message string) {
	fmt.Fprintf(p.out, "  %s\n", ui.HelpStyle.Render(message))
}

// promptList shows a numbered list and reads one answer. A number within
// range resolves to that choice; anything else is returned as typed.
func (p *Prompter) promptList(label string, choices []string) (string, error) {
	fmt.Fprintf(p.out, "\n  %s\n", ui.PromptStyle.Render(label+":"))
	for i, choice := range choices {
		fmt.Fprintf(p.out, "   %2d) %s\n", i+1, choice)
	}
	fmt.Fprint(p.out, "  > ")

	value, err := p.readLine()
	if err != nil {
		return "", err
	}
	if n, err := strconv.Atoi(value); err == nil && n >= 1 && n <= len(choices) {
		return choices[n-1], nil
	}
	return value, nil
}

func (p *Prompter) readLine() (string, error) {
	line, err := p.in.ReadString('\n')
	if err != nil && line == "" {
		return "", err
	}
	return strings.TrimSpace(line), nil
}
