// Package backend wraps the independent SQL parsing backends behind one
// contract and runs them in a fixed priority order. Each backend either
// translates raw SQL into the canonical IR or fails with a structured error;
// the first success wins and no trees are ever merged across backends.
package backend

import (
	"fmt"
	"strings"

	"github.com/sqleaner/sqleaner/pkg/ir"
)

// Backend is one independent SQL grammar implementation. Translate parses raw
// SQL (a single statement, no trailing semicolon) with the backend's native
// grammar and normalizes the native tree into canonical IR. Failures are
// *ParseError when the grammar rejected the input and *NormalizationError
// when the grammar accepted a shape the normalizer cannot faithfully
// translate. Backends hold no mutable state and are safe for concurrent use.
type Backend interface {
	Name() string
	Translate(sql string) (ir.Statement, error)
}

// ParseError reports that a backend's grammar rejected the input.
type ParseError struct {
	Backend string
	Message string
	Line    int // 1-based, 0 when unknown
	Column  int
}

func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("%s: parse error at line %d, column %d: %s", e.Backend, e.Line, e.Column, e.Message)
	}
	return fmt.Sprintf("%s: parse error: %s", e.Backend, e.Message)
}

// NormalizationError reports that a backend accepted the input but produced a
// tree shape the normalizer does not understand. The orchestrator treats it
// exactly like a parse failure and falls through to the next backend.
type NormalizationError struct {
	Backend string
	Detail  string
}

func (e *NormalizationError) Error() string {
	return fmt.Sprintf("%s: cannot translate: %s", e.Backend, e.Detail)
}

// Diagnostic records one backend's failure, in attempt order.
type Diagnostic struct {
	Backend string
	Message string
	Line    int
	Column  int
}

// AggregateError is returned when every backend failed. Diagnostics are
// ordered by attempt; Error presents the last backend's message first since
// later backends tend to be the most diagnostic.
type AggregateError struct {
	Diagnostics []Diagnostic
}

func (e *AggregateError) Error() string {
	if len(e.Diagnostics) == 0 {
		return "no backends available"
	}
	var b strings.Builder
	last := e.Diagnostics[len(e.Diagnostics)-1]
	fmt.Fprintf(&b, "%s: %s", last.Backend, last.Message)
	if len(e.Diagnostics) > 1 {
		fmt.Fprintf(&b, " (%d backends failed:", len(e.Diagnostics))
		for _, d := range e.Diagnostics {
			fmt.Fprintf(&b, " %s", d.Backend)
		}
		b.WriteString(")")
	}
	return b.String()
}

// Chain is a priority-ordered backend list. The order is a fixed policy
// constant, never derived from the input.
type Chain struct {
	backends []Backend
}

// NewChain creates a Chain that attempts the given backends in order.
func NewChain(backends ...Backend) *Chain {
	return &Chain{backends: backends}
}

// DefaultChain returns the standard priority order: native first (the only
// backend that preserves identifier quoting and case natively), the
// cockroachdb parser second for its broad Postgres grammar, and vitess last
// as the conservative MySQL fallback.
func DefaultChain() *Chain {
	return NewChain(Native(), CRDB(), Vitess())
}

// Resolve runs the chain against one raw statement. On success it returns the
// winning backend's name and the canonical tree, with source trivia
// (comments, identifier quoting) restored from the raw text. On total failure
// it returns an *AggregateError with one diagnostic per backend in attempt
// order.
func (c *Chain) Resolve(sql string) (string, ir.Statement, error) {
	var diags []Diagnostic
	for _, b := range c.backends {
		stmt, err := b.Translate(sql)
		if err != nil {
			diags = append(diags, toDiagnostic(b.Name(), err))
			continue
		}
		restoreIdentifiers(stmt, sql)
		attachComments(stmt, sql)
		return b.Name(), stmt, nil
	}
	return "", nil, &AggregateError{Diagnostics: diags}
}

func toDiagnostic(name string, err error) Diagnostic {
	switch e := err.(type) {
	case *ParseError:
		return Diagnostic{Backend: name, Message: e.Message, Line: e.Line, Column: e.Column}
	case *NormalizationError:
		return Diagnostic{Backend: name, Message: "cannot translate: " + e.Detail}
	default:
		return Diagnostic{Backend: name, Message: err.Error()}
	}
}
