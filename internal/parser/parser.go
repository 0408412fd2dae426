// Package parser turns a raw input line into a validated Request.
package parser

import (
	"log/slog"
	"strings"
	"unicode"

	"github.com/cashbuddy-dev/cashbuddy/internal/failure"
)

// Parser is stateless between calls to Parse.
type Parser struct {
	log *slog.Logger
}

// New creates a Parser. A nil logger discards diagnostics.
func New(logger *slog.Logger) *Parser {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Parser{log: logger}
}

// Parse splits line into a keyword and argument text and builds the request
// for that keyword. Every failure is a *failure.Error.
func (p *Parser) Parse(line string) (Request, error) {
	keyword, rest := splitCommand(line)
	p.log.Debug("parsing command", "keyword", keyword)

	req, err := p.build(keyword, rest)
	if err != nil {
		p.log.Debug("parse failed", "keyword", keyword, "kind", failure.KindOf(err), "error", err)
		return nil, err
	}
	return req, nil
}

func (p *Parser) build(keyword, rest string) (Request, error) {
	switch keyword {
	case CmdAdd:
		return parseAdd(rest)
	case CmdDelete:
		index, err := ValidateIndex(rest, CmdDelete)
		if err != nil {
			return nil, err
		}
		return DeleteRequest{Index: index}, nil
	case CmdEdit:
		return parseEdit(rest)
	case CmdMark:
		index, err := ValidateIndex(rest, CmdMark)
		if err != nil {
			return nil, err
		}
		return MarkRequest{Index: index}, nil
	case CmdUnmark:
		index, err := ValidateIndex(rest, CmdUnmark)
		if err != nil {
			return nil, err
		}
		return UnmarkRequest{Index: index}, nil
	case CmdSetBudget:
		return parseSetBudget(rest)
	case CmdFind:
		return parseFind(rest)
	case CmdList:
		return noArguments(CmdList, rest, ListRequest{})
	case CmdSort:
		return noArguments(CmdSort, rest, SortRequest{})
	case CmdHelp:
		return noArguments(CmdHelp, rest, HelpRequest{})
	case CmdBye:
		return noArguments(CmdBye, rest, ByeRequest{})
	default:
		return nil, failure.UnknownCommand(keyword)
	}
}

// splitCommand returns the lower-cased first word and the remaining text.
func splitCommand(line string) (keyword, rest string) {
	trimmed := strings.TrimSpace(line)
	i := strings.IndexFunc(trimmed, unicode.IsSpace)
	if i == -1 {
		return strings.ToLower(trimmed), ""
	}
	return strings.ToLower(trimmed[:i]), strings.TrimSpace(trimmed[i:])
}

func parseAdd(rest string) (Request, error) {
	args := NewArguments(CmdAdd, rest)

	rawAmount, err := args.Required(PrefixAmount)
	if err != nil {
		return nil, err
	}
	rawDesc, err := args.Required(PrefixDescription)
	if err != nil {
		return nil, err
	}
	rawCategory, hasCategory := args.Optional(PrefixCategory)

	amount, err := ValidateAmount(rawAmount, CmdAdd)
	if err != nil {
		return nil, err
	}
	desc, err := ValidateDescription(rawDesc, CmdAdd)
	if err != nil {
		return nil, err
	}
	category, err := ValidateCategory(rawCategory, hasCategory, CmdAdd)
	if err != nil {
		return nil, err
	}

	return AddRequest{Amount: amount, Description: desc, Category: category}, nil
}

func parseEdit(rest string) (Request, error) {
	args := NewArguments(CmdEdit, rest)

	rawIndex, err := args.Required(PrefixIndex)
	if err != nil {
		return nil, err
	}
	index, err := ValidateIndex(rawIndex, CmdEdit)
	if err != nil {
		return nil, err
	}

	// Zero-valued fields are Unchanged.
	req := EditRequest{Index: index}

	if raw, ok := args.Optional(PrefixAmount); ok {
		amount, err := ValidateAmount(raw, CmdEdit)
		if err != nil {
			return nil, err
		}
		req.Amount = SetTo(amount)
	}
	if raw, ok := args.Optional(PrefixDescription); ok {
		desc, err := ValidateDescription(raw, CmdEdit)
		if err != nil {
			return nil, err
		}
		req.Description = SetTo(desc)
	}
	if raw, ok := args.Optional(PrefixCategory); ok {
		category, err := ValidateCategory(raw, true, CmdEdit)
		if err != nil {
			return nil, err
		}
		req.Category = SetTo(category)
	}

	return req, nil
}

func parseSetBudget(rest string) (Request, error) {
	args := NewArguments(CmdSetBudget, rest)
	if args.Empty() {
		return nil, failure.MissingBudgetAmount(CmdSetBudget)
	}

	raw, err := args.Required(PrefixAmount)
	if err != nil {
		return nil, err
	}
	amount, err := ValidateAmount(raw, CmdSetBudget)
	if err != nil {
		return nil, err
	}
	return SetBudgetRequest{Amount: amount}, nil
}

// parseFind accepts cat/ or desc/; cat/ wins when both are given.
func parseFind(rest string) (Request, error) {
	args := NewArguments(CmdFind, rest)

	if raw, ok := args.Optional(PrefixCategory); ok {
		if raw == "" {
			return nil, failure.EmptyCategory(CmdFind)
		}
		return FindRequest{By: FindByCategory, Term: raw}, nil
	}
	if raw, ok := args.Optional(PrefixDescription); ok {
		if raw == "" {
			return nil, failure.EmptyDescription(CmdFind)
		}
		return FindRequest{By: FindByDescription, Term: raw}, nil
	}
	return nil, failure.MissingSearchPrefix(CmdFind)
}

func noArguments(command, rest string, req Request) (Request, error) {
	if strings.TrimSpace(rest) != "" {
		return nil, failure.ExtraArguments(command, rest)
	}
	return req, nil
}
