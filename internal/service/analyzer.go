package service

import (
	"sort"

	"github.com/joseluizmed/tempodeatestadonovo2/internal/model"
)

// event marks a certificate becoming active (delta +1) or inactive (delta -1) on a day
type event struct {
	date   model.Date
	delta  int
	certID string
}

// Analyze ranks and classifies certificates and partitions their overall span into
// gap, covered and overlapping segments. Invalid certificates are dropped silently.
// The result depends only on the date values, never on the input order.
func Analyze(certs []model.Certificate) model.Analysis {
	valid := filterValid(certs)
	if len(valid) == 0 {
		return model.Analysis{
			Annotated: []model.AnnotatedCertificate{},
			Segments:  []model.TimelineSegment{},
		}
	}

	annotated := annotate(valid)
	segments := sweep(annotated)

	return model.Analysis{
		Annotated: annotated,
		Segments:  segments,
		Summary:   summarize(annotated, segments),
	}
}

func filterValid(certs []model.Certificate) []model.Certificate {
	valid := make([]model.Certificate, 0, len(certs))
	for _, c := range certs {
		if c.StartDate.IsZero() || c.EndDate.IsZero() || c.StartDate.After(c.EndDate) {
			continue
		}
		valid = append(valid, c)
	}
	return valid
}

// annotate sorts by start date (stable) and classifies each certificate against its
// immediate predecessor only
func annotate(certs []model.Certificate) []model.AnnotatedCertificate {
	sorted := make([]model.Certificate, len(certs))
	copy(sorted, certs)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].StartDate.Before(sorted[j].StartDate)
	})

	annotated := make([]model.AnnotatedCertificate, len(sorted))
	for i, c := range sorted {
		status := model.StatusFirst
		if i > 0 {
			prev := sorted[i-1]
			switch {
			case prev.EndDate.AddDays(1).Equal(c.StartDate):
				status = model.StatusContinuous
			case !c.StartDate.After(prev.EndDate):
				status = model.StatusOverlapping
			default:
				status = model.StatusNonContinuous
			}
		}
		annotated[i] = model.AnnotatedCertificate{Certificate: c, Rank: i + 1, Status: status}
	}
	return annotated
}

// sweep builds the partition from start/end events. End events fall on the day after the
// last covered day since certificate ranges are inclusive.
func sweep(certs []model.AnnotatedCertificate) []model.TimelineSegment {
	events := make([]event, 0, 2*len(certs))
	for _, c := range certs {
		events = append(events,
			event{date: c.StartDate, delta: 1, certID: c.ID},
			event{date: c.EndDate.AddDays(1), delta: -1, certID: c.ID},
		)
	}
	sort.SliceStable(events, func(i, j int) bool {
		return events[i].date.Before(events[j].date)
	})

	// counts rather than a plain set so duplicate ids stay balanced
	active := make(map[string]int)
	segments := []model.TimelineSegment{}

	for i := 0; i < len(events); {
		date := events[i].date

		j := i
		for j < len(events) && events[j].date.Equal(date) {
			active[events[j].certID] += events[j].delta
			if active[events[j].certID] <= 0 {
				delete(active, events[j].certID)
			}
			j++
		}
		if j == len(events) {
			break
		}

		next := events[j].date
		end := next.AddDays(-1)
		duration := date.DaysUntil(end) + 1
		if duration > 0 {
			segments = append(segments, model.TimelineSegment{
				StartDate:      date,
				EndDate:        end,
				DurationDays:   duration,
				Kind:           kindFor(active),
				CertificateIDs: activeIDs(active),
			})
		}
		i = j
	}

	return segments
}

func kindFor(active map[string]int) model.CoverKind {
	n := 0
	for _, count := range active {
		n += count
	}
	switch {
	case n == 0:
		return model.KindGap
	case n == 1:
		return model.KindCovered
	default:
		return model.KindOverlapping
	}
}

func activeIDs(active map[string]int) []string {
	ids := make([]string, 0, len(active))
	for id := range active {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

func summarize(annotated []model.AnnotatedCertificate, segments []model.TimelineSegment) model.AnalysisSummary {
	summary := model.AnalysisSummary{
		LongestContinuousLeave: longestLeave(segments),
		TotalCertificates:      len(annotated),
	}

	for _, c := range annotated {
		if c.Status == model.StatusContinuous {
			summary.ContinuousSequenceCount++
		}
	}

	overlapping := make(map[string]struct{})
	for _, s := range segments {
		switch s.Kind {
		case model.KindGap:
			summary.GapCount++
			summary.TotalNonCoveredDays += s.DurationDays
		case model.KindOverlapping:
			for _, id := range s.CertificateIDs {
				overlapping[id] = struct{}{}
			}
		}
	}
	summary.OverlappingCertificatesCount = len(overlapping)

	return summary
}

// longestLeave finds the longest streak of covered/overlapping segments. A gap resets the
// streak; ties keep the earliest streak.
func longestLeave(segments []model.TimelineSegment) model.LongestLeave {
	var best model.LongestLeave
	var streakStart *model.Date
	streakDays := 0

	for i := range segments {
		seg := segments[i]
		if seg.Kind == model.KindGap {
			streakStart = nil
			streakDays = 0
			continue
		}
		if streakStart == nil {
			start := seg.StartDate
			streakStart = &start
		}
		streakDays += seg.DurationDays
		if streakDays > best.TotalDays {
			start, end := *streakStart, seg.EndDate
			best = model.LongestLeave{StartDate: &start, EndDate: &end, TotalDays: streakDays}
		}
	}
	return best
}
