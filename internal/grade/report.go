package grade

import "math"

// Report is a calculation together with its per-subject scores.
//
// Non-finite values are reported as null so the report always encodes as
// JSON; Display keeps the formatted text in every case.
type Report struct {
	Subjects map[Subject]*float64 `json:"subjects"`
	CGPA     *float64             `json:"cgpa"`
	Display  string               `json:"display"`
}

// Explain scores marks and returns the full report.
func Explain(marks Marks) Report {
	scores := SubjectScores(marks.Normalize())
	result := Aggregate(scores)
	report := Report{
		Subjects: make(map[Subject]*float64, len(scores)),
		CGPA:     finite(result),
		Display:  FormatResult(result),
	}
	for subject, score := range scores {
		report.Subjects[subject] = finite(score)
	}
	return report
}

func finite(v float64) *float64 {
	if math.IsInf(v, 0) || math.IsNaN(v) {
		return nil
	}
	return &v
}
