package session

import (
	"encoding/json"
	"fmt"
	"math"

	"github.com/louisbranch/cgpa/internal/grade"
)

// StorageKey is the fixed key of the persisted snapshot document.
const StorageKey = "cgpa-calculator-data"

// Snapshot is the persisted state of one calculation session.
type Snapshot struct {
	IA1        grade.SubjectMarks `json:"ia1"`
	IA2        grade.SubjectMarks `json:"ia2"`
	Assignment grade.SubjectMarks `json:"assignment"`
	SEE        grade.SubjectMarks `json:"see"`
	CGPA       *float64           `json:"cgpa"`
}

// DefaultSnapshot returns empty marks and no result.
func DefaultSnapshot() Snapshot {
	return FromMarks(grade.NewMarks(), nil)
}

// FromMarks builds a snapshot from marks and an optional result.
func FromMarks(marks grade.Marks, cgpa *float64) Snapshot {
	marks = marks.Normalize()
	return Snapshot{
		IA1:        marks.IA1,
		IA2:        marks.IA2,
		Assignment: marks.Assignment,
		SEE:        marks.SEE,
		CGPA:       cloneResult(cgpa),
	}
}

// Marks returns the four mark sheets.
func (s Snapshot) Marks() grade.Marks {
	return grade.Marks{
		IA1:        s.IA1,
		IA2:        s.IA2,
		Assignment: s.Assignment,
		SEE:        s.SEE,
	}.Normalize()
}

// Clone returns a deep copy.
func (s Snapshot) Clone() Snapshot {
	return FromMarks(s.Marks(), s.CGPA)
}

// Encode serializes the snapshot document. A non-finite result is stored as
// null.
func (s Snapshot) Encode() ([]byte, error) {
	out := s.Clone()
	if out.CGPA != nil && (math.IsInf(*out.CGPA, 0) || math.IsNaN(*out.CGPA)) {
		out.CGPA = nil
	}
	data, err := json.Marshal(out)
	if err != nil {
		return nil, fmt.Errorf("encode snapshot: %w", err)
	}
	return data, nil
}

// DecodeSnapshot parses a stored document.
//
// Absent or malformed data yields DefaultSnapshot and ok=false; it is never an
// error.
func DecodeSnapshot(data []byte) (snapshot Snapshot, ok bool) {
	if len(data) == 0 {
		return DefaultSnapshot(), false
	}
	var decoded Snapshot
	if err := json.Unmarshal(data, &decoded); err != nil {
		return DefaultSnapshot(), false
	}
	return decoded.Clone(), true
}

func cloneResult(value *float64) *float64 {
	if value == nil {
		return nil
	}
	out := *value
	return &out
}
