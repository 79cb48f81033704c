package table

import (
	"strings"
	"testing"
)

func TestFromCSV(t *testing.T) {
	input := `category,type,sequence,Revenue,Costs
Start,step,0,100,10
Add,step,1,50,5
Subtotal,subtotal,2,0,0
Other,bar,3,30,3
`
	tbl, err := FromCSV(strings.NewReader(input))
	if err != nil {
		t.Fatalf("FromCSV error: %v", err)
	}

	if tbl.Rows() != 4 {
		t.Fatalf("Rows = %d, want 4", tbl.Rows())
	}
	if tbl.Empty() {
		t.Error("table should not be empty")
	}
	if tbl.Categories[0] != "Start" || tbl.Categories[3] != "Other" {
		t.Errorf("unexpected categories: %v", tbl.Categories)
	}
	if tbl.Kinds[2] != "subtotal" {
		t.Errorf("Kinds[2] = %q, want subtotal", tbl.Kinds[2])
	}
	if len(tbl.Sequence) != 4 || tbl.Sequence[3] != "3" {
		t.Errorf("unexpected sequence column: %v", tbl.Sequence)
	}
	if len(tbl.Measures) != 2 {
		t.Fatalf("Measures = %d, want 2", len(tbl.Measures))
	}
	if tbl.Measures[0].Name != "Revenue" || tbl.Measures[1].Name != "Costs" {
		t.Errorf("unexpected measure names: %q, %q", tbl.Measures[0].Name, tbl.Measures[1].Name)
	}
	if tbl.Measures[0].Values[1] != 50 {
		t.Errorf("Revenue[1] = %v, want 50", tbl.Measures[0].Values[1])
	}
}

func TestFromCSVWithoutSequence(t *testing.T) {
	input := "category,type,Revenue\nStart,step,100\nEnd,total,0\n"
	tbl, err := FromCSV(strings.NewReader(input))
	if err != nil {
		t.Fatalf("FromCSV error: %v", err)
	}
	if len(tbl.Sequence) != 0 {
		t.Errorf("expected no sequence column, got %v", tbl.Sequence)
	}
	if len(tbl.Measures) != 1 || tbl.Measures[0].Name != "Revenue" {
		t.Fatalf("unexpected measures: %+v", tbl.Measures)
	}
}

func TestFromCSVMalformed(t *testing.T) {
	tests := []struct {
		name  string
		input string
		empty bool
	}{
		{"no rows", "category,type,Revenue\n", true},
		{"single column header", "category\nStart\n", true},
		{"empty input", "", true},
		{"ragged rows", "category,type,Revenue\nStart,step\nAdd\n", false},
		{"non-numeric measures", "category,type,Revenue\nStart,step,abc\n", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tbl, err := FromCSV(strings.NewReader(tt.input))
			if err != nil {
				t.Fatalf("FromCSV error: %v", err)
			}
			if tbl.Empty() != tt.empty {
				t.Errorf("Empty = %v, want %v", tbl.Empty(), tt.empty)
			}
			// Every column stays row-aligned regardless of input shape.
			for _, m := range tbl.Measures {
				if len(m.Values) != tbl.Rows() {
					t.Errorf("measure %q has %d values for %d rows", m.Name, len(m.Values), tbl.Rows())
				}
			}
		})
	}
}

func TestFromCSVRaggedCoercion(t *testing.T) {
	tbl, err := FromCSV(strings.NewReader("category,type,Revenue\nStart,step,oops\nAdd\n"))
	if err != nil {
		t.Fatalf("FromCSV error: %v", err)
	}
	if tbl.Rows() != 2 {
		t.Fatalf("Rows = %d, want 2", tbl.Rows())
	}
	// Missing kind cell becomes empty string, non-numeric measure becomes 0.
	if tbl.Kinds[1] != "" {
		t.Errorf("Kinds[1] = %q, want empty", tbl.Kinds[1])
	}
	if tbl.Measures[0].Values[0] != 0 {
		t.Errorf("non-numeric measure should coerce to 0, got %v", tbl.Measures[0].Values[0])
	}
}

func TestFromYAML(t *testing.T) {
	input := `
category: [Start, Add, Subtotal]
type: [step, step, subtotal]
sequence: [0, 1, 2]
measures:
  - name: Revenue
    values: [100, 50, 0]
`
	tbl, err := FromYAML(strings.NewReader(input))
	if err != nil {
		t.Fatalf("FromYAML error: %v", err)
	}
	if tbl.Rows() != 3 {
		t.Fatalf("Rows = %d, want 3", tbl.Rows())
	}
	if tbl.Sequence[2] != "2" {
		t.Errorf("Sequence[2] = %q, want 2", tbl.Sequence[2])
	}
	if tbl.Measures[0].Values[0] != 100 {
		t.Errorf("Revenue[0] = %v, want 100", tbl.Measures[0].Values[0])
	}
}

func TestFromYAMLInvalid(t *testing.T) {
	_, err := FromYAML(strings.NewReader("category: [a\n"))
	if err == nil {
		t.Fatal("expected error for invalid YAML")
	}
}

func TestFromJSON(t *testing.T) {
	input := `{
		"category": ["Start", "Other"],
		"type": ["step", "bar"],
		"measures": [{"name": "Revenue", "values": [100, 30]}]
	}`
	tbl, err := FromJSON(strings.NewReader(input))
	if err != nil {
		t.Fatalf("FromJSON error: %v", err)
	}
	if tbl.Rows() != 2 {
		t.Fatalf("Rows = %d, want 2", tbl.Rows())
	}
	if len(tbl.Sequence) != 0 {
		t.Errorf("expected no sequence, got %v", tbl.Sequence)
	}
	if tbl.Measures[0].Values[1] != 30 {
		t.Errorf("Revenue[1] = %v, want 30", tbl.Measures[0].Values[1])
	}
}

func TestFromJSONInvalid(t *testing.T) {
	_, err := FromJSON(strings.NewReader("{not json"))
	if err == nil {
		t.Fatal("expected error for invalid JSON")
	}
}

func TestFromFileUnsupported(t *testing.T) {
	_, err := FromFile("chart.txt")
	if err == nil {
		t.Fatal("expected error for unsupported extension")
	}
}

func TestIsSequenceHeader(t *testing.T) {
	tests := []struct {
		header string
		want   bool
	}{
		{"sequence", true},
		{"Sequence", true},
		{"SEQ", true},
		{"order", true},
		{" order ", true},
		{"Revenue", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := isSequenceHeader(tt.header); got != tt.want {
			t.Errorf("isSequenceHeader(%q) = %v, want %v", tt.header, got, tt.want)
		}
	}
}
