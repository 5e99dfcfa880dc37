package grade

import "strings"

// Subject identifies one curriculum subject.
type Subject string

const (
	SubjectDSA  Subject = "DSA"
	SubjectDDCO Subject = "DDCO"
	SubjectOS   Subject = "OS"
	SubjectMath Subject = "MATH"
	SubjectUHV  Subject = "UHV"
	SubjectRWD  Subject = "RWD"
)

// TotalCredits is the sum of every subject credit weight.
const TotalCredits = 18

const (
	// StandardIAMax is the combined IA1+IA2 denominator for subjects whose
	// internal assessments are marked out of 60.
	StandardIAMax = 120
	// FullScaleIAMax is the combined IA1+IA2 denominator for subjects whose
	// internal assessments are marked out of 100.
	FullScaleIAMax = 200
	// AssignmentMax is the assignment denominator for every subject.
	AssignmentMax = 20
	// SEEMax is the semester-end-exam denominator for every subject.
	SEEMax = 100
)

// Score weights applied to the IA, assignment and SEE fractions.
const (
	IAWeight         = 3
	AssignmentWeight = 2
	SEEWeight        = 5
)

type subjectInfo struct {
	label   string
	credits int
	iaMax   int
}

var subjectTable = map[Subject]subjectInfo{
	SubjectDSA:  {label: "DSA", credits: 4, iaMax: StandardIAMax},
	SubjectDDCO: {label: "DDCO", credits: 4, iaMax: StandardIAMax},
	SubjectOS:   {label: "OS", credits: 3, iaMax: StandardIAMax},
	SubjectMath: {label: "Math", credits: 3, iaMax: StandardIAMax},
	SubjectUHV:  {label: "UHV", credits: 2, iaMax: FullScaleIAMax},
	SubjectRWD:  {label: "RWD", credits: 2, iaMax: FullScaleIAMax},
}

var subjectOrder = []Subject{
	SubjectDSA,
	SubjectDDCO,
	SubjectOS,
	SubjectMath,
	SubjectUHV,
	SubjectRWD,
}

// Subjects returns every subject in form order.
func Subjects() []Subject {
	out := make([]Subject, len(subjectOrder))
	copy(out, subjectOrder)
	return out
}

// ParseSubject resolves a subject code, ignoring case and surrounding space.
func ParseSubject(value string) (Subject, bool) {
	subject := Subject(strings.ToUpper(strings.TrimSpace(value)))
	if _, ok := subjectTable[subject]; !ok {
		return "", false
	}
	return subject, true
}

// Valid reports whether s is one of the curriculum subjects.
func (s Subject) Valid() bool {
	_, ok := subjectTable[s]
	return ok
}

// Label returns the display label.
func (s Subject) Label() string {
	if info, ok := subjectTable[s]; ok {
		return info.label
	}
	return string(s)
}

// Credits returns the credit weight, or zero for unknown subjects.
func (s Subject) Credits() int {
	return subjectTable[s].credits
}

// IAMax returns the combined IA1+IA2 denominator, or zero for unknown subjects.
func (s Subject) IAMax() int {
	return subjectTable[s].iaMax
}

// FullScaleIA reports whether the subject's IA marks use the 100-point scale.
func (s Subject) FullScaleIA() bool {
	return s.IAMax() == FullScaleIAMax
}
