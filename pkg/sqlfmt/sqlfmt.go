// Package sqlfmt is the top-level formatting pipeline: it splits raw SQL
// into statements, resolves each one through the backend chain, and prints
// the canonical trees in the fixed output style. Formatting is all-or-nothing
// per input; a statement no backend accepts fails the whole call with the
// chain's ordered diagnostics.
package sqlfmt

import (
	"strings"

	"github.com/pkg/errors"
	"github.com/sqleaner/sqleaner/pkg/backend"
	"github.com/sqleaner/sqleaner/pkg/format"
	"github.com/sqleaner/sqleaner/pkg/token"
)

// Formatter runs the full pipeline with a fixed backend chain and formatting
// options. The zero value is not usable; use New.
type Formatter struct {
	chain   *backend.Chain
	options *format.FormatterOptions
}

// New creates a pipeline Formatter. A nil options uses the defaults.
func New(options *format.FormatterOptions) *Formatter {
	return &Formatter{
		chain:   backend.DefaultChain(),
		options: options,
	}
}

// Format reformats raw SQL text into the canonical style. Every statement is
// terminated with a semicolon on its own line and the output ends with a
// single newline. Comment-only statement segments are preserved verbatim.
func (f *Formatter) Format(raw string) (string, error) {
	segments := token.SplitStatements(raw)

	var out strings.Builder
	for i, seg := range segments {
		if !seg.HasTokens() {
			out.WriteString(strings.TrimSpace(seg.Text))
			out.WriteString("\n")
			continue
		}

		_, stmt, err := f.chain.Resolve(seg.Text)
		if err != nil {
			return "", errors.Wrapf(err, "statement %d", i+1)
		}

		if err := format.Format(&out, f.options, stmt); err != nil {
			return "", err
		}
	}
	return out.String(), nil
}

// Format reformats raw SQL with default options (convenience function).
func Format(raw string) (string, error) {
	return New(nil).Format(raw)
}
