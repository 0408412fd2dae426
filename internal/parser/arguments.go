package parser

import (
	"strings"

	"github.com/cashbuddy-dev/cashbuddy/internal/failure"
)

// Recognized field prefixes.
const (
	PrefixIndex       = "id/"
	PrefixAmount      = "a/"
	PrefixDescription = "desc/"
	PrefixCategory    = "cat/"
)

var allPrefixes = []string{PrefixIndex, PrefixAmount, PrefixDescription, PrefixCategory}

// Arguments slices prefixed values out of the argument text of a command,
// e.g. "a/50 desc/Lunch cat/Food". A value runs from its prefix to the
// nearest following prefix of any kind, so fields may appear in any order.
//
// Prefixes are matched as plain substrings. A value that itself contains a
// prefix (for example "desc/Sofa a/b testing") is cut short at that point.
type Arguments struct {
	command string
	input   string
}

// NewArguments wraps the argument text of command.
func NewArguments(command, input string) Arguments {
	return Arguments{command: command, input: strings.TrimSpace(input)}
}

// Required returns the trimmed value following prefix, or a MissingPrefix
// failure if prefix does not occur.
func (a Arguments) Required(prefix string) (string, error) {
	v, ok := a.Optional(prefix)
	if !ok {
		return "", failure.MissingPrefix(a.command, prefix)
	}
	return v, nil
}

// Optional returns the trimmed value following prefix and whether the prefix
// occurs at all. A present prefix with nothing after it yields ("", true).
func (a Arguments) Optional(prefix string) (string, bool) {
	start := strings.Index(a.input, prefix)
	if start == -1 {
		return "", false
	}

	valueStart := start + len(prefix)
	end := a.nextPrefix(start)
	if end == -1 || end < valueStart {
		end = len(a.input)
	}
	return strings.TrimSpace(a.input[valueStart:end]), true
}

// Empty reports whether there is no argument text at all.
func (a Arguments) Empty() bool {
	return a.input == ""
}

// nextPrefix returns the lowest index greater than current at which any
// known prefix starts, or -1.
func (a Arguments) nextPrefix(current int) int {
	next := -1
	for _, p := range allPrefixes {
		idx := strings.Index(a.input[current+1:], p)
		if idx == -1 {
			continue
		}
		idx += current + 1
		if next == -1 || idx < next {
			next = idx
		}
	}
	return next
}
