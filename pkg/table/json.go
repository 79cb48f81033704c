package table

import (
	"encoding/json"
	"io"
	"os"
	"strconv"

	"github.com/cascadevis/cascade/pkg/errors"
)

// jsonDoc mirrors yamlDoc; it is also the render request body schema used
// by the HTTP service.
type jsonDoc struct {
	Category []string  `json:"category"`
	Type     []string  `json:"type"`
	Sequence []float64 `json:"sequence,omitempty"`
	Measures []Measure `json:"measures"`
}

// FromJSON reads a table from a structured JSON document.
func FromJSON(r io.Reader) (*Table, error) {
	var doc jsonDoc
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "failed to parse JSON")
	}

	t := &Table{
		Categories: doc.Category,
		Kinds:      doc.Type,
		Sequence:   sequenceStrings(doc.Sequence),
		Measures:   doc.Measures,
	}
	t.normalize()
	return t, nil
}

// FromJSONFile reads a table from a JSON file on disk.
func FromJSONFile(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "table file not found: %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "failed to open table file")
	}
	defer f.Close()
	return FromJSON(f)
}

// UnmarshalJSON decodes the structured-document schema, so tables embedded
// in API request bodies parse the same way as JSON files.
func (t *Table) UnmarshalJSON(data []byte) error {
	var doc jsonDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return err
	}
	t.Categories = doc.Category
	t.Kinds = doc.Type
	t.Sequence = sequenceStrings(doc.Sequence)
	t.Measures = doc.Measures
	t.normalize()
	return nil
}

// MarshalJSON encodes the table in the structured-document schema so that
// tables round-trip through the HTTP API and cache keys hash consistently.
func (t *Table) MarshalJSON() ([]byte, error) {
	doc := jsonDoc{
		Category: t.Categories,
		Type:     t.Kinds,
		Measures: t.Measures,
	}
	if len(t.Sequence) > 0 {
		doc.Sequence = make([]float64, len(t.Sequence))
		for i, s := range t.Sequence {
			doc.Sequence[i] = parseSequence(s, float64(i))
		}
	}
	return json.Marshal(doc)
}

// parseSequence parses a raw sequence cell, falling back to def.
func parseSequence(s string, def float64) float64 {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return def
	}
	return v
}
