package service

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/joseluizmed/tempodeatestadonovo2/internal/model"
	"gopkg.in/yaml.v3"
)

// batchFile is the on-disk certificate list. JSON files decode too since YAML is a superset.
type batchFile struct {
	Certificates []batchEntry `yaml:"certificates"`
}

type batchEntry struct {
	Start string `yaml:"start"`
	End   string `yaml:"end"`
	Days  int    `yaml:"days"`
}

// LoadEntries reads a certificate list file. An entry with days and no end date is a
// day-count entry.
func LoadEntries(r io.Reader) ([]model.Entry, error) {
	var f batchFile
	if err := yaml.NewDecoder(r).Decode(&f); err != nil {
		if err == io.EOF {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to decode certificate file: %w", err)
	}

	entries := make([]model.Entry, 0, len(f.Certificates))
	for _, c := range f.Certificates {
		e := model.Entry{Start: c.Start, Mode: model.EndDateMode, End: c.End}
		if c.End == "" && c.Days != 0 {
			e.Mode = model.DayCountMode
			e.Days = strconv.Itoa(c.Days)
		}
		entries = append(entries, e)
	}
	return entries, nil
}

// ParseCertFlag parses a compact entry: "START:END" for an end date or "START+Nd" for a
// day count, e.g. "01/03/2024:10/03/2024" or "2024-03-01+10d".
func ParseCertFlag(arg string) (model.Entry, error) {
	arg = strings.TrimSpace(arg)

	if start, days, ok := strings.Cut(arg, "+"); ok {
		days = strings.TrimSuffix(strings.ToLower(strings.TrimSpace(days)), "d")
		return model.Entry{Start: start, Mode: model.DayCountMode, Days: days}, nil
	}

	// ISO dates contain no colon, so the first colon separates the two dates
	if start, end, ok := strings.Cut(arg, ":"); ok {
		return model.Entry{Start: start, Mode: model.EndDateMode, End: end}, nil
	}

	return model.Entry{}, fmt.Errorf("invalid certificate %q: use START:END or START+Nd", arg)
}
