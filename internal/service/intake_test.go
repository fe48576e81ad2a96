package service

import (
	"errors"
	"strings"
	"testing"

	"github.com/joseluizmed/tempodeatestadonovo2/internal/model"
)

func TestResolveEntry(t *testing.T) {
	tests := []struct {
		name    string
		entry   model.Entry
		start   string
		end     string
		days    int
		wantErr error
	}{
		{
			name:  "end date",
			entry: model.Entry{Start: "01/03/2024", Mode: model.EndDateMode, End: "10/03/2024"},
			start: "01/03/2024", end: "10/03/2024", days: 10,
		},
		{
			name:  "same day",
			entry: model.Entry{Start: "2024-03-01", End: "2024-03-01"},
			start: "01/03/2024", end: "01/03/2024", days: 1,
		},
		{
			name:  "day count across month",
			entry: model.Entry{Start: "25/02/2024", Mode: model.DayCountMode, Days: " 7 "},
			start: "25/02/2024", end: "02/03/2024", days: 7,
		},
		{
			name:    "bad start",
			entry:   model.Entry{Start: "32/01/2024", End: "01/02/2024"},
			wantErr: ErrInvalidStartDate,
		},
		{
			name:    "bad end",
			entry:   model.Entry{Start: "01/01/2024", End: "01-02-2024"},
			wantErr: ErrInvalidEndDate,
		},
		{
			name:    "end before start",
			entry:   model.Entry{Start: "10/01/2024", End: "09/01/2024"},
			wantErr: ErrEndBeforeStart,
		},
		{
			name:    "zero days",
			entry:   model.Entry{Start: "10/01/2024", Mode: model.DayCountMode, Days: "0"},
			wantErr: ErrInvalidDayCount,
		},
		{
			name:    "days not a number",
			entry:   model.Entry{Start: "10/01/2024", Mode: model.DayCountMode, Days: "dez"},
			wantErr: ErrInvalidDayCount,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := ResolveEntry("id-1", tt.entry)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("err = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if c.ID != "id-1" {
				t.Fatalf("id = %q", c.ID)
			}
			if c.StartDate != model.MustParseDate(tt.start) || c.EndDate != model.MustParseDate(tt.end) {
				t.Fatalf("range = %s..%s, want %s..%s", c.StartDate.Format(), c.EndDate.Format(), tt.start, tt.end)
			}
			if c.Days != tt.days {
				t.Fatalf("days = %d, want %d", c.Days, tt.days)
			}
			if c.Entry == nil {
				t.Fatalf("entry not kept")
			}
		})
	}
}

func TestEntryForReopensInSameMode(t *testing.T) {
	c, err := ResolveEntry("x", model.Entry{Start: "01/03/2024", Mode: model.DayCountMode, Days: "5"})
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	e := EntryFor(c)
	if e.Mode != model.DayCountMode || e.Days != "5" || e.Start != "01/03/2024" {
		t.Fatalf("entry = %+v", e)
	}

	// certificates without a stored entry reopen as end-date entries
	c.Entry = nil
	e = EntryFor(c)
	if e.Mode != model.EndDateMode || e.Start != "01/03/2024" || e.End != "05/03/2024" {
		t.Fatalf("rebuilt entry = %+v", e)
	}
}

func TestNewCertificateIDIsUnique(t *testing.T) {
	a, b := NewCertificateID(), NewCertificateID()
	if a == b || !strings.HasPrefix(a, "cert-") {
		t.Fatalf("ids = %q, %q", a, b)
	}
}
