package grade

import (
	"math"
	"strconv"
	"strings"
)

// ParseMark converts raw mark text to a number.
//
// Decimal text with an optional sign parses as written. Empty, non-numeric,
// hexadecimal, infinite and NaN inputs are zero.
func ParseMark(text string) float64 {
	text = strings.TrimSpace(text)
	if text == "" || !isDecimalText(text) {
		return 0
	}
	value, err := strconv.ParseFloat(text, 64)
	if err != nil || math.IsInf(value, 0) || math.IsNaN(value) {
		return 0
	}
	return value
}

func isDecimalText(text string) bool {
	digits := 0
	for idx, r := range text {
		switch {
		case r >= '0' && r <= '9':
			digits++
		case (r == '+' || r == '-') && idx == 0:
		case r == '.' || r == 'e' || r == 'E':
		case (r == '+' || r == '-') && idx > 0 && (text[idx-1] == 'e' || text[idx-1] == 'E'):
		default:
			return false
		}
	}
	return digits > 0
}

// Score returns a subject score on the nominal 0-10 scale.
//
// iaMax is the combined IA1+IA2 denominator. Inputs are not clamped, so
// marks above their maximum or below zero move the score outside 0-10.
func Score(ia1, ia2, assignment, see, iaMax float64) float64 {
	iaFraction := (ia1 + ia2) / iaMax
	assignmentFraction := assignment / AssignmentMax
	seeFraction := see / SEEMax
	// Conversions keep each product rounded so results do not depend on FMA.
	return float64(IAWeight*iaFraction) + float64(AssignmentWeight*assignmentFraction) + float64(SEEWeight*seeFraction)
}

// SubjectScores scores every subject from raw marks.
func SubjectScores(marks Marks) map[Subject]float64 {
	scores := make(map[Subject]float64, len(subjectOrder))
	for _, subject := range subjectOrder {
		scores[subject] = Score(
			ParseMark(marks.IA1[subject]),
			ParseMark(marks.IA2[subject]),
			ParseMark(marks.Assignment[subject]),
			ParseMark(marks.SEE[subject]),
			float64(subject.IAMax()),
		)
	}
	return scores
}

// Aggregate returns the credit-weighted average of subject scores.
// Missing subjects contribute zero.
func Aggregate(scores map[Subject]float64) float64 {
	weightedSum := float64(4*scores[SubjectDDCO]) +
		float64(4*scores[SubjectDSA]) +
		float64(3*scores[SubjectOS]) +
		float64(3*scores[SubjectMath]) +
		float64(2*scores[SubjectUHV]) +
		float64(2*scores[SubjectRWD])
	return weightedSum / TotalCredits
}

// Calculate returns the grade point average for raw marks.
func Calculate(marks Marks) float64 {
	return Aggregate(SubjectScores(marks))
}
