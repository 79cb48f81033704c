package table

import (
	"io"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/cascadevis/cascade/pkg/errors"
)

// yamlDoc is the structured-document schema shared with JSON input:
// parallel columns plus named measure arrays.
//
//	category: [Start, Add, Subtotal]
//	type: [step, step, subtotal]
//	sequence: [0, 1, 2]
//	measures:
//	  - name: Revenue
//	    values: [100, 50, 0]
type yamlDoc struct {
	Category []string  `yaml:"category"`
	Type     []string  `yaml:"type"`
	Sequence []float64 `yaml:"sequence"`
	Measures []Measure `yaml:"measures"`
}

// FromYAML reads a table from a structured YAML document.
func FromYAML(r io.Reader) (*Table, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "failed to read YAML input")
	}

	var doc yamlDoc
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "failed to parse YAML")
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

// FromYAMLFile reads a table from a YAML file on disk.
func FromYAMLFile(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "table file not found: %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "failed to open table file")
	}
	defer f.Close()
	return FromYAML(f)
}

// sequenceStrings converts structured-document sequence numbers to the raw
// cell representation the parser expects.
func sequenceStrings(seq []float64) []string {
	if len(seq) == 0 {
		return nil
	}
	out := make([]string, len(seq))
	for i, v := range seq {
		out[i] = strconv.FormatFloat(v, 'f', -1, 64)
	}
	return out
}
