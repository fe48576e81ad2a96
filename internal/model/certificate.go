package model

// EntryMode is how the user expressed a certificate's length
type EntryMode string

const (
	EndDateMode  EntryMode = "endDate"
	DayCountMode EntryMode = "dayCount"
)

// Entry is the raw form input a certificate was resolved from
type Entry struct {
	Start string    `json:"start"`
	Mode  EntryMode `json:"mode"`
	End   string    `json:"end,omitempty"`
	Days  string    `json:"days,omitempty"`
}

// Certificate represents one medical leave document
type Certificate struct {
	ID        string `json:"id"`
	StartDate Date   `json:"startDate"`
	EndDate   Date   `json:"endDate"`
	Days      int    `json:"days"`
	Entry     *Entry `json:"entry,omitempty"`
}

// ContinuityStatus classifies a certificate against its predecessor by start date
type ContinuityStatus string

const (
	StatusFirst         ContinuityStatus = "FIRST"
	StatusContinuous    ContinuityStatus = "CONTINUOUS"
	StatusOverlapping   ContinuityStatus = "OVERLAPPING"
	StatusNonContinuous ContinuityStatus = "NON_CONTINUOUS"
)

// Label returns the status as shown on the site
func (s ContinuityStatus) Label() string {
	switch s {
	case StatusFirst:
		return "Primeiro Atestado"
	case StatusContinuous:
		return "Contínuo"
	case StatusOverlapping:
		return "Sobreposto"
	case StatusNonContinuous:
		return "Não Contínuo"
	default:
		return string(s)
	}
}

// AnnotatedCertificate is a valid certificate with its chronological rank and status
type AnnotatedCertificate struct {
	Certificate
	Rank   int              `json:"rank"`
	Status ContinuityStatus `json:"continuityStatus"`
}

// CoverKind is the number of certificates active over a segment, bucketed
type CoverKind string

const (
	KindGap         CoverKind = "gap"
	KindCovered     CoverKind = "covered"
	KindOverlapping CoverKind = "overlapping"
)

// Label returns the kind as shown on the site
func (k CoverKind) Label() string {
	switch k {
	case KindGap:
		return "Não Coberto"
	case KindCovered:
		return "Coberto"
	case KindOverlapping:
		return "Sobreposto"
	default:
		return string(k)
	}
}

// TimelineSegment is a maximal run of days with a constant set of active certificates
type TimelineSegment struct {
	StartDate      Date      `json:"startDate"`
	EndDate        Date      `json:"endDate"`
	DurationDays   int       `json:"durationDays"`
	Kind           CoverKind `json:"coverKind"`
	CertificateIDs []string  `json:"involvedCertificateIds"`
}

// LongestLeave is the longest run of consecutive covered or overlapping segments
type LongestLeave struct {
	StartDate *Date `json:"startDate"`
	EndDate   *Date `json:"endDate"`
	TotalDays int   `json:"totalDays"`
}

// AnalysisSummary holds the aggregate statistics over a partition
type AnalysisSummary struct {
	LongestContinuousLeave       LongestLeave `json:"longestContinuousLeave"`
	TotalCertificates            int          `json:"totalCertificates"`
	ContinuousSequenceCount      int          `json:"continuousSequenceCount"`
	OverlappingCertificatesCount int          `json:"overlappingCertificatesCount"`
	GapCount                     int          `json:"gapCount"`
	TotalNonCoveredDays          int          `json:"totalNonCoveredDays"`
}

// Analysis is the full result of analysing a certificate collection
type Analysis struct {
	Annotated []AnnotatedCertificate `json:"annotated"`
	Segments  []TimelineSegment      `json:"segments"`
	Summary   AnalysisSummary        `json:"summary"`
}

// Span returns the first and last day of the partition. ok is false when there are no segments.
func (a Analysis) Span() (start, end Date, ok bool) {
	if len(a.Segments) == 0 {
		return Date{}, Date{}, false
	}
	return a.Segments[0].StartDate, a.Segments[len(a.Segments)-1].EndDate, true
}

// TotalDays returns the number of days in the partition
func (a Analysis) TotalDays() int {
	total := 0
	for _, s := range a.Segments {
		total += s.DurationDays
	}
	return total
}
