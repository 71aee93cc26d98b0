// internal/formula/store.go
// Package formula persists generated formula explanations in a JSON cache.
package formula

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/mwiater/studybot/internal/logging"
	"github.com/xeipuuv/gojsonschema"
)

// document is the on-disk shape of the formula cache.
type document struct {
	Formulas map[string]string `json:"formulas"`
}

// storeSchema describes the only shape the cache file is allowed to have:
// a single object whose "formulas" field maps query strings to text.
var storeSchema = gojsonschema.NewGoLoader(map[string]any{
	"type":     "object",
	"required": []string{"formulas"},
	"properties": map[string]any{
		"formulas": map[string]any{
			"type":                 "object",
			"additionalProperties": map[string]any{"type": "string"},
		},
	},
})

// Store is a lookup cache of formula explanations keyed by normalized query.
// All mutation goes through Record so the backing file never drifts from the
// in-memory map.
type Store struct {
	path     string
	formulas map[string]string
}

// NewStore returns a Store backed by the document at path. Call Load before
// first use.
func NewStore(path string) *Store {
	return &Store{
		path:     path,
		formulas: make(map[string]string),
	}
}

// Load reads and validates the backing document. A missing, unparsable, or
// wrongly shaped document is replaced with a fresh default and the store
// continues with an empty map; the returned error is non-nil only when the
// replacement document could not be written.
func (s *Store) Load() error {
	s.formulas = make(map[string]string)

	raw, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			logging.LogEvent("formula store %s does not exist, creating default", s.path)
		} else {
			logging.LogEvent("formula store %s unreadable: %v, resetting to default", s.path, err)
		}
		return s.save()
	}

	if err := validate(raw); err != nil {
		logging.LogEvent("formula store %s is invalid: %v, resetting to default", s.path, err)
		return s.save()
	}

	var doc document
	if err := json.Unmarshal(raw, &doc); err != nil {
		logging.LogEvent("formula store %s failed to decode: %v, resetting to default", s.path, err)
		return s.save()
	}
	if doc.Formulas != nil {
		s.formulas = doc.Formulas
	}
	logging.LogEvent("formula store loaded with %d entries", len(s.formulas))
	return nil
}

// validate checks raw against the store schema.
func validate(raw []byte) error {
	result, err := gojsonschema.Validate(storeSchema, gojsonschema.NewBytesLoader(raw))
	if err != nil {
		return err
	}
	if !result.Valid() {
		details := make([]string, 0, len(result.Errors()))
		for _, desc := range result.Errors() {
			details = append(details, desc.String())
		}
		return fmt.Errorf("schema violation: %s", strings.Join(details, "; "))
	}
	return nil
}

// Normalize lowercases and trims a query to form its cache key.
func Normalize(query string) string {
	return strings.ToLower(strings.TrimSpace(query))
}

// Lookup returns the stored text for the normalized query, if present.
func (s *Store) Lookup(query string) (string, bool) {
	text, ok := s.formulas[Normalize(query)]
	return text, ok
}

// Record stores text under the normalized query and rewrites the whole
// document. The in-memory entry is kept even when the write fails, so the
// answer remains servable for the rest of the process lifetime.
func (s *Store) Record(query, text string) error {
	s.formulas[Normalize(query)] = text
	return s.save()
}

// Len reports the number of cached formulas.
func (s *Store) Len() int {
	return len(s.formulas)
}

// save rewrites the entire document. The cache is small by design; the full
// rewrite keeps the file consistent with memory after every change.
func (s *Store) save() error {
	data, err := json.MarshalIndent(document{Formulas: s.formulas}, "", "  ")
	if err != nil {
		return fmt.Errorf("encode formula store: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("write formula store %s: %w", s.path, err)
	}
	return nil
}
