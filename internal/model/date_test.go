package model

import (
	"encoding/json"
	"testing"
	"time"
)

func TestParseDate(t *testing.T) {
	tests := []struct {
		in      string
		want    Date
		wantErr bool
	}{
		{"2024-03-01", Date{2024, time.March, 1}, false},
		{"01/03/2024", Date{2024, time.March, 1}, false},
		{" 29/02/2024 ", Date{2024, time.February, 29}, false},
		{"29/02/2023", Date{}, true},
		{"31/04/2024", Date{}, true},
		{"1/3/2024", Date{}, true},
		{"2024-3-1", Date{}, true},
		{"", Date{}, true},
		{"amanhã", Date{}, true},
	}

	for _, tt := range tests {
		got, err := ParseDate(tt.in)
		if (err != nil) != tt.wantErr {
			t.Fatalf("ParseDate(%q) err = %v, wantErr %v", tt.in, err, tt.wantErr)
		}
		if got != tt.want {
			t.Fatalf("ParseDate(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestDateArithmetic(t *testing.T) {
	d := MustParseDate("28/02/2024")
	if got := d.AddDays(1); got != MustParseDate("29/02/2024") {
		t.Fatalf("AddDays(1) = %v, want leap day", got)
	}
	if got := d.AddDays(2); got != MustParseDate("01/03/2024") {
		t.Fatalf("AddDays(2) = %v, want 2024-03-01", got)
	}
	if got := MustParseDate("31/12/2023").AddDays(1); got != MustParseDate("01/01/2024") {
		t.Fatalf("year rollover = %v", got)
	}
	if got := MustParseDate("01/01/2024").AddDays(-1); got != MustParseDate("31/12/2023") {
		t.Fatalf("AddDays(-1) = %v", got)
	}

	if got := MustParseDate("01/01/2024").DaysUntil(MustParseDate("01/01/2025")); got != 366 {
		t.Fatalf("DaysUntil leap year = %d, want 366", got)
	}
	if got := MustParseDate("10/03/2024").DaysUntil(MustParseDate("01/03/2024")); got != -9 {
		t.Fatalf("DaysUntil backwards = %d, want -9", got)
	}

	// DST in a local zone must not shift the day count
	if got := MustParseDate("01/10/2023").DaysUntil(MustParseDate("01/04/2024")); got != 183 {
		t.Fatalf("DaysUntil = %d, want 183", got)
	}
}

func TestDaysUntilLongSpans(t *testing.T) {
	tests := []struct {
		from, to string
		want     int
	}{
		{"01/03/0204", "01/03/2024", 664742},
		{"01/03/2024", "01/03/0204", -664742},
		{"0001-01-01", "9999-12-31", 3652058},
		{"31/12/1969", "01/01/1970", 1},
	}

	for _, tt := range tests {
		if got := MustParseDate(tt.from).DaysUntil(MustParseDate(tt.to)); got != tt.want {
			t.Fatalf("%s.DaysUntil(%s) = %d, want %d", tt.from, tt.to, got, tt.want)
		}
	}

	// day counting must agree with stepping one day at a time across centuries
	d := MustParseDate("28/02/1700")
	for i := 0; i < 150000; i += 997 {
		if got := d.DaysUntil(d.AddDays(i)); got != i {
			t.Fatalf("DaysUntil(AddDays(%d)) = %d", i, got)
		}
	}
}

func TestDateCompare(t *testing.T) {
	a, b := MustParseDate("31/01/2024"), MustParseDate("01/02/2024")
	if !a.Before(b) || a.After(b) || a.Equal(b) {
		t.Fatalf("compare %v %v wrong", a, b)
	}
	if !b.After(a) || b.Compare(a) != 1 {
		t.Fatalf("compare %v %v wrong", b, a)
	}
	if !a.Equal(MustParseDate("2024-01-31")) {
		t.Fatalf("equal dates compare unequal")
	}
}

func TestDateFormatting(t *testing.T) {
	d := MustParseDate("05/03/2024")
	if d.String() != "2024-03-05" {
		t.Fatalf("String() = %q", d.String())
	}
	if d.Format() != "05/03/2024" {
		t.Fatalf("Format() = %q", d.Format())
	}
	if (Date{}).String() != "" || (Date{}).Format() != "" {
		t.Fatalf("zero date should format empty")
	}
}

func TestDateJSON(t *testing.T) {
	c := Certificate{ID: "a", StartDate: MustParseDate("01/03/2024")}
	data, err := json.Marshal(c)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	want := `{"id":"a","startDate":"2024-03-01","endDate":null,"days":0}`
	if string(data) != want {
		t.Fatalf("json = %s, want %s", data, want)
	}

	var back Certificate
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if back.StartDate != c.StartDate || !back.EndDate.IsZero() {
		t.Fatalf("round trip = %+v", back)
	}

	var d Date
	if err := json.Unmarshal([]byte(`"2024-02-30"`), &d); err == nil {
		t.Fatalf("impossible date accepted: %v", d)
	}
	if err := json.Unmarshal([]byte(`""`), &d); err != nil || !d.IsZero() {
		t.Fatalf("empty string = %v, %v", d, err)
	}
}

func TestNewDateNormalizes(t *testing.T) {
	if got := NewDate(2024, time.February, 30); got != MustParseDate("01/03/2024") {
		t.Fatalf("NewDate overflow = %v", got)
	}
}
