// Package ofx parses Open Financial Exchange documents — bank, credit-card,
// and investment statements — into the flattened, typed records of the model
// package. Both wire dialects are accepted transparently: OFX v1 (SGML with
// a line-oriented header and, commonly, unclosed leaf tags) and OFX v2
// (well-formed XML behind an <?OFX ...?> declaration).
package ofx

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/Veraticus/paper-trail/internal/model"
)

// Parser is the entry point for OFX ingestion. One Parse call owns its
// source exclusively from open to close; instances are not safe for
// concurrent use, but distinct instances may run in parallel since they
// share nothing except the schema, which must be safe for concurrent reads.
type Parser struct {
	schema  Schema
	lenient bool

	// Results of the last Parse. Any subset may be present depending on
	// which statement responses the document carried.
	Header     Header
	Bank       *model.BankStatement
	CreditCard *model.CreditCardStatement
	Investment *model.InvestmentStatement
}

// Option configures a Parser.
type Option func(*Parser)

// WithLenient makes the parser skip the strict attempt and go straight to
// the lenient SGML back-end.
func WithLenient(lenient bool) Option {
	return func(p *Parser) { p.lenient = lenient }
}

// NewParser returns a parser validating against the given schema.
func NewParser(schema Schema, opts ...Option) *Parser {
	p := &Parser{schema: schema}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Reset clears the header and all three statement slots, making the parser
// reusable for another source. Parse calls it implicitly.
func (p *Parser) Reset() {
	p.Header = nil
	p.Bank = nil
	p.CreditCard = nil
	p.Investment = nil
}

// ParseFile opens path in binary mode and parses it. The file is released on
// every exit path.
func (p *Parser) ParseFile(ctx context.Context, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open OFX file: %w", err)
	}
	defer func() {
		_ = f.Close()
	}()
	return p.Parse(ctx, f)
}

// Parse reads the whole source, parses the header, builds the element tree
// (strict first, lenient on syntax error), and constructs whichever
// statements the document contains.
//
// On failure the statement slots hold whatever the partial parse produced:
// statements built before the failing one remain populated.
func (p *Parser) Parse(ctx context.Context, r io.Reader) error {
	p.Reset()

	data, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("read OFX source: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	header, bodyStart, err := readHeader(data, p.schema)
	if err != nil {
		return err
	}
	p.Header = header

	body, err := decodeBody(data[bodyStart:], header)
	if err != nil {
		return err
	}

	root, err := p.buildTree(body)
	if err != nil {
		return err
	}

	if stmtrs := root.Find("STMTRS"); stmtrs != nil {
		if p.Bank, err = buildBankStatement(p.schema, stmtrs); err != nil {
			return err
		}
	}
	if ccstmtrs := root.Find("CCSTMTRS"); ccstmtrs != nil {
		if p.CreditCard, err = buildCreditCardStatement(p.schema, ccstmtrs); err != nil {
			return err
		}
	}
	if invstmtrs := root.Find("INVSTMTRS"); invstmtrs != nil {
		seclist := root.Find("SECLIST")
		if seclist == nil {
			return &SchemaError{Tag: invstmtrs.Tag, Msg: "investment statement without SECLIST"}
		}
		if p.Investment, err = buildInvestmentStatement(p.schema, seclist, invstmtrs); err != nil {
			return err
		}
	}
	return nil
}

// buildTree runs the strict back-end over the body and falls back to the
// lenient one on syntax errors. The body is fully buffered, so the retry
// always restarts from the first body byte regardless of how far the strict
// attempt read.
func (p *Parser) buildTree(body []byte) (*Element, error) {
	if p.lenient {
		return buildLenient(bytes.NewReader(body))
	}
	root, err := buildStrict(bytes.NewReader(body))
	if err != nil && errors.Is(err, ErrSyntax) {
		slog.Debug("ofx: strict parse failed, retrying with lenient back-end", "error", err)
		return buildLenient(bytes.NewReader(body))
	}
	return root, err
}
