// internal/assistant/assistant.go
// Package assistant resolves user queries against the formula store, the
// document extractor, and the model backend.
package assistant

import (
	"context"
	"fmt"

	"github.com/mwiater/studybot/internal/logging"
	"github.com/mwiater/studybot/internal/providers"
)

// Source tags where an answer came from.
type Source int

const (
	// SourceDatabase marks an answer served from the formula store.
	SourceDatabase Source = iota
	// SourceGenerated marks an answer freshly generated by the model.
	SourceGenerated
	// SourcePDF marks an answer derived from an extracted document.
	SourcePDF
)

// Answer is a resolved response with its provenance tag.
type Answer struct {
	Text   string
	Source Source
}

// FormulaStore is the cache the assistant consults before generating.
type FormulaStore interface {
	Lookup(query string) (string, bool)
	Record(query, text string) error
}

// Extractor pulls text from a named document.
type Extractor interface {
	Extract(filename string) (string, error)
}

// Assistant orchestrates formula lookups and PDF question answering. It owns
// no ambient state; every dependency is injected.
type Assistant struct {
	store     FormulaStore
	extractor Extractor
	generator providers.Generator
	charLimit int
}

// New constructs an Assistant. charLimit bounds how much extracted document
// text is embedded into a model prompt.
func New(store FormulaStore, extractor Extractor, generator providers.Generator, charLimit int) *Assistant {
	return &Assistant{
		store:     store,
		extractor: extractor,
		generator: generator,
		charLimit: charLimit,
	}
}

// ResolveFormula answers a formula query from the store when possible,
// otherwise it generates a new explanation and records it. A failure to
// persist the new entry is logged but never blocks the answer.
func (a *Assistant) ResolveFormula(ctx context.Context, query string) (Answer, error) {
	if text, ok := a.store.Lookup(query); ok {
		logging.LogEvent("formula for %q found in database", query)
		return Answer{Text: text, Source: SourceDatabase}, nil
	}

	logging.LogEvent("formula for %q not found, generating", query)
	prompt := fmt.Sprintf("Provide the exact formula for %s with brief explanation. Use LaTeX math formatting with $$ when appropriate.", query)
	text, err := a.generator.Generate(ctx, prompt)
	if err != nil {
		return Answer{}, fmt.Errorf("generate formula: %w", err)
	}

	if err := a.store.Record(query, text); err != nil {
		logging.LogEvent("failed to save formula for %q: %v", query, err)
	} else {
		logging.LogEvent("formula for %q saved", query)
	}
	return Answer{Text: text, Source: SourceGenerated}, nil
}

// ResolvePDFQuestion extracts text from the named document and asks the
// model the question grounded in that text. Extraction errors are returned
// as-is; the model is never called for a failed extraction.
func (a *Assistant) ResolvePDFQuestion(ctx context.Context, filename, question string) (Answer, error) {
	text, err := a.extractor.Extract(filename)
	if err != nil {
		return Answer{}, err
	}

	prompt := fmt.Sprintf("Answer based on this document:\n%s\n\nQuestion: %s\nAnswer:", truncateRunes(text, a.charLimit), question)
	logging.LogEvent("generating response for question about %s", filename)
	response, err := a.generator.Generate(ctx, prompt)
	if err != nil {
		return Answer{}, fmt.Errorf("generate answer: %w", err)
	}
	return Answer{Text: response, Source: SourcePDF}, nil
}

// truncateRunes bounds text to max runes without altering its content.
func truncateRunes(text string, max int) string {
	if max <= 0 {
		return text
	}
	runes := []rune(text)
	if len(runes) <= max {
		return text
	}
	return string(runes[:max])
}
