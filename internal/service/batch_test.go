package service

import (
	"strings"
	"testing"

	"github.com/joseluizmed/tempodeatestadonovo2/internal/model"
)

func TestLoadEntriesYAML(t *testing.T) {
	in := `
certificates:
  - start: 01/03/2024
    end: 10/03/2024
  - start: 2024-03-11
    days: 5
`
	entries, err := LoadEntries(strings.NewReader(in))
	if err != nil {
		t.Fatalf("LoadEntries: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("entries = %d, want 2", len(entries))
	}
	if e := entries[0]; e.Mode != model.EndDateMode || e.Start != "01/03/2024" || e.End != "10/03/2024" {
		t.Fatalf("entry 0 = %+v", e)
	}
	if e := entries[1]; e.Mode != model.DayCountMode || e.Days != "5" {
		t.Fatalf("entry 1 = %+v", e)
	}
}

func TestLoadEntriesJSON(t *testing.T) {
	in := `{"certificates": [{"start": "01/03/2024", "end": "02/03/2024"}]}`
	entries, err := LoadEntries(strings.NewReader(in))
	if err != nil {
		t.Fatalf("LoadEntries: %v", err)
	}
	if len(entries) != 1 || entries[0].End != "02/03/2024" {
		t.Fatalf("entries = %+v", entries)
	}
}

func TestLoadEntriesEmptyAndInvalid(t *testing.T) {
	entries, err := LoadEntries(strings.NewReader(""))
	if err != nil || len(entries) != 0 {
		t.Fatalf("empty file = %v, %v", entries, err)
	}
	if _, err := LoadEntries(strings.NewReader("certificates: [\n")); err == nil {
		t.Fatalf("expected error for broken YAML")
	}
}

func TestParseCertFlag(t *testing.T) {
	tests := []struct {
		arg     string
		want    model.Entry
		wantErr bool
	}{
		{"01/03/2024:10/03/2024", model.Entry{Start: "01/03/2024", Mode: model.EndDateMode, End: "10/03/2024"}, false},
		{"2024-03-01:2024-03-10", model.Entry{Start: "2024-03-01", Mode: model.EndDateMode, End: "2024-03-10"}, false},
		{"01/03/2024+10d", model.Entry{Start: "01/03/2024", Mode: model.DayCountMode, Days: "10"}, false},
		{"01/03/2024+3", model.Entry{Start: "01/03/2024", Mode: model.DayCountMode, Days: "3"}, false},
		{"01/03/2024", model.Entry{}, true},
	}

	for _, tt := range tests {
		got, err := ParseCertFlag(tt.arg)
		if (err != nil) != tt.wantErr {
			t.Fatalf("ParseCertFlag(%q) err = %v", tt.arg, err)
		}
		if got != tt.want {
			t.Fatalf("ParseCertFlag(%q) = %+v, want %+v", tt.arg, got, tt.want)
		}
	}
}
