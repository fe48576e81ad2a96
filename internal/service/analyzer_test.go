package service

import (
	"math/rand"
	"reflect"
	"testing"

	"github.com/joseluizmed/tempodeatestadonovo2/internal/model"
)

func cert(id, start, end string) model.Certificate {
	s, e := model.MustParseDate(start), model.MustParseDate(end)
	return model.Certificate{ID: id, StartDate: s, EndDate: e, Days: s.DaysUntil(e) + 1}
}

type wantSegment struct {
	start, end string
	days       int
	kind       model.CoverKind
	ids        []string
}

func checkSegments(t *testing.T, got []model.TimelineSegment, want []wantSegment) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("segments = %d, want %d: %+v", len(got), len(want), got)
	}
	for i, w := range want {
		g := got[i]
		if g.StartDate != model.MustParseDate(w.start) || g.EndDate != model.MustParseDate(w.end) {
			t.Errorf("segment %d = %s..%s, want %s..%s", i, g.StartDate.Format(), g.EndDate.Format(), w.start, w.end)
		}
		if g.DurationDays != w.days {
			t.Errorf("segment %d duration = %d, want %d", i, g.DurationDays, w.days)
		}
		if g.Kind != w.kind {
			t.Errorf("segment %d kind = %s, want %s", i, g.Kind, w.kind)
		}
		if len(g.CertificateIDs) != len(w.ids) || (len(w.ids) > 0 && !reflect.DeepEqual(g.CertificateIDs, w.ids)) {
			t.Errorf("segment %d ids = %v, want %v", i, g.CertificateIDs, w.ids)
		}
	}
}

func statuses(a model.Analysis) []model.ContinuityStatus {
	out := make([]model.ContinuityStatus, len(a.Annotated))
	for i, c := range a.Annotated {
		out[i] = c.Status
	}
	return out
}

func TestAnalyzeEmpty(t *testing.T) {
	for _, in := range [][]model.Certificate{nil, {}} {
		a := Analyze(in)
		if a.Annotated == nil || len(a.Annotated) != 0 {
			t.Fatalf("annotated = %#v, want empty non-nil", a.Annotated)
		}
		if a.Segments == nil || len(a.Segments) != 0 {
			t.Fatalf("segments = %#v, want empty non-nil", a.Segments)
		}
		if a.Summary != (model.AnalysisSummary{}) {
			t.Fatalf("summary = %+v, want zero", a.Summary)
		}
	}
}

func TestAnalyzeSingleCertificate(t *testing.T) {
	a := Analyze([]model.Certificate{cert("a", "01/03/2024", "10/03/2024")})

	if got := statuses(a); !reflect.DeepEqual(got, []model.ContinuityStatus{model.StatusFirst}) {
		t.Fatalf("statuses = %v", got)
	}
	checkSegments(t, a.Segments, []wantSegment{
		{"01/03/2024", "10/03/2024", 10, model.KindCovered, []string{"a"}},
	})

	l := a.Summary.LongestContinuousLeave
	if l.TotalDays != 10 || *l.StartDate != model.MustParseDate("01/03/2024") || *l.EndDate != model.MustParseDate("10/03/2024") {
		t.Fatalf("longest = %d days %v..%v", l.TotalDays, l.StartDate, l.EndDate)
	}
	if a.Summary.TotalCertificates != 1 || a.Summary.GapCount != 0 {
		t.Fatalf("summary = %+v", a.Summary)
	}
}

func TestAnalyzeContinuous(t *testing.T) {
	a := Analyze([]model.Certificate{
		cert("a", "01/03/2024", "10/03/2024"),
		cert("b", "11/03/2024", "20/03/2024"),
	})

	want := []model.ContinuityStatus{model.StatusFirst, model.StatusContinuous}
	if got := statuses(a); !reflect.DeepEqual(got, want) {
		t.Fatalf("statuses = %v, want %v", got, want)
	}
	checkSegments(t, a.Segments, []wantSegment{
		{"01/03/2024", "10/03/2024", 10, model.KindCovered, []string{"a"}},
		{"11/03/2024", "20/03/2024", 10, model.KindCovered, []string{"b"}},
	})
	if a.Summary.ContinuousSequenceCount != 1 {
		t.Fatalf("continuous = %d, want 1", a.Summary.ContinuousSequenceCount)
	}
	if l := a.Summary.LongestContinuousLeave; l.TotalDays != 20 || *l.EndDate != model.MustParseDate("20/03/2024") {
		t.Fatalf("longest = %d days ending %v, want 20 ending 20/03/2024", l.TotalDays, l.EndDate)
	}
}

func TestAnalyzeOverlap(t *testing.T) {
	a := Analyze([]model.Certificate{
		cert("a", "01/03/2024", "10/03/2024"),
		cert("b", "05/03/2024", "15/03/2024"),
	})

	want := []model.ContinuityStatus{model.StatusFirst, model.StatusOverlapping}
	if got := statuses(a); !reflect.DeepEqual(got, want) {
		t.Fatalf("statuses = %v, want %v", got, want)
	}
	checkSegments(t, a.Segments, []wantSegment{
		{"01/03/2024", "04/03/2024", 4, model.KindCovered, []string{"a"}},
		{"05/03/2024", "10/03/2024", 6, model.KindOverlapping, []string{"a", "b"}},
		{"11/03/2024", "15/03/2024", 5, model.KindCovered, []string{"b"}},
	})
	if a.Summary.OverlappingCertificatesCount != 2 {
		t.Fatalf("overlapping = %d, want 2", a.Summary.OverlappingCertificatesCount)
	}
	if a.Summary.LongestContinuousLeave.TotalDays != 15 {
		t.Fatalf("longest = %d, want 15", a.Summary.LongestContinuousLeave.TotalDays)
	}
}

func TestAnalyzeGap(t *testing.T) {
	a := Analyze([]model.Certificate{
		cert("a", "01/03/2024", "10/03/2024"),
		cert("b", "15/03/2024", "20/03/2024"),
	})

	want := []model.ContinuityStatus{model.StatusFirst, model.StatusNonContinuous}
	if got := statuses(a); !reflect.DeepEqual(got, want) {
		t.Fatalf("statuses = %v, want %v", got, want)
	}
	checkSegments(t, a.Segments, []wantSegment{
		{"01/03/2024", "10/03/2024", 10, model.KindCovered, []string{"a"}},
		{"11/03/2024", "14/03/2024", 4, model.KindGap, nil},
		{"15/03/2024", "20/03/2024", 6, model.KindCovered, []string{"b"}},
	})
	if a.Summary.GapCount != 1 || a.Summary.TotalNonCoveredDays != 4 {
		t.Fatalf("gaps = %d (%d days), want 1 (4 days)", a.Summary.GapCount, a.Summary.TotalNonCoveredDays)
	}
	if ids := a.Segments[1].CertificateIDs; ids == nil {
		t.Fatalf("gap ids = nil, want empty slice")
	}
	if l := a.Summary.LongestContinuousLeave; l.TotalDays != 10 || *l.StartDate != model.MustParseDate("01/03/2024") {
		t.Fatalf("longest = %d from %v, want 10 from 01/03/2024", l.TotalDays, l.StartDate)
	}
}

func TestAnalyzeLongestLeaveTieKeepsEarliest(t *testing.T) {
	a := Analyze([]model.Certificate{
		cert("late", "10/03/2024", "14/03/2024"),
		cert("early", "01/03/2024", "05/03/2024"),
	})

	l := a.Summary.LongestContinuousLeave
	if l.TotalDays != 5 || *l.StartDate != model.MustParseDate("01/03/2024") {
		t.Fatalf("longest = %d from %v, want 5 from 01/03/2024", l.TotalDays, l.StartDate)
	}
}

func TestAnalyzeIdenticalRanges(t *testing.T) {
	a := Analyze([]model.Certificate{
		cert("a", "01/03/2024", "05/03/2024"),
		cert("b", "01/03/2024", "05/03/2024"),
	})

	if a.Annotated[0].ID != "a" || a.Annotated[1].ID != "b" {
		t.Fatalf("order = %s,%s, want input order for equal starts", a.Annotated[0].ID, a.Annotated[1].ID)
	}
	if a.Annotated[1].Status != model.StatusOverlapping {
		t.Fatalf("status = %s, want OVERLAPPING", a.Annotated[1].Status)
	}
	checkSegments(t, a.Segments, []wantSegment{
		{"01/03/2024", "05/03/2024", 5, model.KindOverlapping, []string{"a", "b"}},
	})
}

// Continuity is judged against the immediate predecessor only, so a certificate inside a
// longer one can still be non-continuous.
func TestAnalyzeClassifiesAgainstPredecessorOnly(t *testing.T) {
	a := Analyze([]model.Certificate{
		cert("a", "01/03/2024", "20/03/2024"),
		cert("b", "05/03/2024", "08/03/2024"),
		cert("c", "10/03/2024", "12/03/2024"),
	})

	want := []model.ContinuityStatus{model.StatusFirst, model.StatusOverlapping, model.StatusNonContinuous}
	if got := statuses(a); !reflect.DeepEqual(got, want) {
		t.Fatalf("statuses = %v, want %v", got, want)
	}
	checkSegments(t, a.Segments, []wantSegment{
		{"01/03/2024", "04/03/2024", 4, model.KindCovered, []string{"a"}},
		{"05/03/2024", "08/03/2024", 4, model.KindOverlapping, []string{"a", "b"}},
		{"09/03/2024", "09/03/2024", 1, model.KindCovered, []string{"a"}},
		{"10/03/2024", "12/03/2024", 3, model.KindOverlapping, []string{"a", "c"}},
		{"13/03/2024", "20/03/2024", 8, model.KindCovered, []string{"a"}},
	})
	if a.Summary.GapCount != 0 || a.Summary.LongestContinuousLeave.TotalDays != 20 {
		t.Fatalf("summary = %+v", a.Summary)
	}
	if a.Summary.OverlappingCertificatesCount != 3 {
		t.Fatalf("overlapping = %d, want 3", a.Summary.OverlappingCertificatesCount)
	}
}

func TestAnalyzeDropsInvalidCertificates(t *testing.T) {
	a := Analyze([]model.Certificate{
		{ID: "zero-start", EndDate: model.MustParseDate("10/03/2024")},
		{ID: "zero-end", StartDate: model.MustParseDate("01/03/2024")},
		cert("ok", "01/03/2024", "03/03/2024"),
		{ID: "reversed", StartDate: model.MustParseDate("10/03/2024"), EndDate: model.MustParseDate("01/03/2024")},
	})

	if len(a.Annotated) != 1 || a.Annotated[0].ID != "ok" {
		t.Fatalf("annotated = %+v, want only ok", a.Annotated)
	}
	if a.Annotated[0].Rank != 1 || a.Annotated[0].Status != model.StatusFirst {
		t.Fatalf("ok = rank %d %s", a.Annotated[0].Rank, a.Annotated[0].Status)
	}
	if a.Summary.TotalCertificates != 1 {
		t.Fatalf("total = %d, want 1", a.Summary.TotalCertificates)
	}
}

func TestAnalyzeIgnoresInputOrder(t *testing.T) {
	certs := []model.Certificate{
		cert("a", "28/12/2023", "03/01/2024"),
		cert("b", "04/01/2024", "10/01/2024"),
		cert("c", "08/01/2024", "15/01/2024"),
		cert("d", "20/01/2024", "20/01/2024"),
	}
	reversed := []model.Certificate{certs[3], certs[2], certs[1], certs[0]}

	a, b := Analyze(certs), Analyze(reversed)
	if !reflect.DeepEqual(a, b) {
		t.Fatalf("analysis depends on input order:\n%+v\n%+v", a, b)
	}
	if a.Annotated[0].Rank != 1 || a.Annotated[3].Rank != 4 {
		t.Fatalf("ranks = %d..%d, want 1..4", a.Annotated[0].Rank, a.Annotated[3].Rank)
	}
}

func TestAnalyzeDoesNotMutateInput(t *testing.T) {
	certs := []model.Certificate{
		cert("b", "11/03/2024", "20/03/2024"),
		cert("a", "01/03/2024", "10/03/2024"),
	}
	Analyze(certs)
	if certs[0].ID != "b" || certs[1].ID != "a" {
		t.Fatalf("input reordered: %s,%s", certs[0].ID, certs[1].ID)
	}
}

// spanDays counts the days from start to end inclusive by stepping through the calendar
// in years, then days, without going through Date.DaysUntil.
func spanDays(start, end model.Date) int {
	a, b := start.Time(), end.Time()
	days := 0
	for a.AddDate(1, 0, 0).Before(b) || a.AddDate(1, 0, 0).Equal(b) {
		next := a.AddDate(1, 0, 0)
		days += int(next.Sub(a).Hours() / 24)
		a = next
	}
	for !a.After(b) {
		days++
		a = a.AddDate(0, 0, 1)
	}
	return days
}

func TestAnalyzeCenturiesApart(t *testing.T) {
	first, err := ResolveEntry("typo", model.Entry{Start: "01/03/0204", End: "05/03/0204"})
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	second, err := ResolveEntry("real", model.Entry{Start: "01/03/2024", End: "05/03/2024"})
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}

	a := Analyze([]model.Certificate{first, second})

	if got := a.TotalDays(); got != 664747 {
		t.Fatalf("partition days = %d, want 664747", got)
	}
	if len(a.Segments) != 3 || a.Segments[1].Kind != model.KindGap {
		t.Fatalf("segments = %+v", a.Segments)
	}
	if got := a.Summary.TotalNonCoveredDays; got != 664737 {
		t.Fatalf("non-covered days = %d, want 664737", got)
	}
	if first.Days != 5 || second.Days != 5 {
		t.Fatalf("days = %d, %d, want 5, 5", first.Days, second.Days)
	}
}

// The partition must tile the span exactly and each segment's kind must match the number
// of certificates covering it.
func TestAnalyzePartitionProperties(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	base := model.MustParseDate("01/01/2024")

	for round := 0; round < 200; round++ {
		n := 1 + rng.Intn(6)
		// every fourth round spreads certificates over several centuries
		window := 60
		if round%4 == 0 {
			window = 400 * 365
		}

		certs := make([]model.Certificate, n)
		for i := range certs {
			start := base.AddDays(-rng.Intn(window))
			end := start.AddDays(rng.Intn(20))
			certs[i] = model.Certificate{ID: string(rune('a' + i)), StartDate: start, EndDate: end}
		}

		a := Analyze(certs)
		if len(a.Annotated) != n {
			t.Fatalf("round %d: annotated = %d, want %d", round, len(a.Annotated), n)
		}

		minStart, maxEnd := certs[0].StartDate, certs[0].EndDate
		for _, c := range certs {
			if c.StartDate.Before(minStart) {
				minStart = c.StartDate
			}
			if c.EndDate.After(maxEnd) {
				maxEnd = c.EndDate
			}
		}

		start, end, ok := a.Span()
		if !ok || start != minStart || end != maxEnd {
			t.Fatalf("round %d: span = %v..%v, want %v..%v", round, start, end, minStart, maxEnd)
		}
		if got, want := a.TotalDays(), spanDays(minStart, maxEnd); got != want {
			t.Fatalf("round %d: total days = %d, want %d", round, got, want)
		}

		nonCovered := 0
		for i, s := range a.Segments {
			if s.DurationDays <= 0 || spanDays(s.StartDate, s.EndDate) != s.DurationDays {
				t.Fatalf("round %d: bad segment %+v", round, s)
			}
			if i > 0 && !a.Segments[i-1].EndDate.AddDays(1).Equal(s.StartDate) {
				t.Fatalf("round %d: segments %d and %d are not contiguous", round, i-1, i)
			}

			covering := 0
			for _, c := range certs {
				if !s.StartDate.Before(c.StartDate) && !s.StartDate.After(c.EndDate) {
					covering++
				}
			}
			want := model.KindOverlapping
			switch covering {
			case 0:
				want = model.KindGap
			case 1:
				want = model.KindCovered
			}
			if s.Kind != want {
				t.Fatalf("round %d: segment %d kind = %s, want %s", round, i, s.Kind, want)
			}
			if len(s.CertificateIDs) != covering {
				t.Fatalf("round %d: segment %d ids = %v, want %d", round, i, s.CertificateIDs, covering)
			}
			if s.Kind == model.KindGap {
				nonCovered += s.DurationDays
			}
		}
		if a.Summary.TotalNonCoveredDays != nonCovered {
			t.Fatalf("round %d: non-covered = %d, want %d", round, a.Summary.TotalNonCoveredDays, nonCovered)
		}
		if l := a.Summary.LongestContinuousLeave; l.TotalDays > a.TotalDays()-nonCovered {
			t.Fatalf("round %d: longest %d exceeds covered days", round, l.TotalDays)
		}
	}
}
