package grade

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// Category identifies one of the four mark sheets of a calculation.
type Category string

const (
	CategoryIA1        Category = "ia1"
	CategoryIA2        Category = "ia2"
	CategoryAssignment Category = "assignment"
	CategorySEE        Category = "see"
)

var categoryOrder = []Category{
	CategoryIA1,
	CategoryIA2,
	CategoryAssignment,
	CategorySEE,
}

// Categories returns every category in form order.
func Categories() []Category {
	out := make([]Category, len(categoryOrder))
	copy(out, categoryOrder)
	return out
}

// ParseCategory resolves a category name, ignoring case and surrounding space.
func ParseCategory(value string) (Category, bool) {
	category := Category(strings.ToLower(strings.TrimSpace(value)))
	for _, known := range categoryOrder {
		if category == known {
			return category, true
		}
	}
	return "", false
}

// SubjectMarks maps every subject to its raw mark text.
//
// The key set is fixed: values built with NewSubjectMarks or decoded from JSON
// always hold all six subjects.
type SubjectMarks map[Subject]string

// NewSubjectMarks returns marks with every subject set to the empty string.
func NewSubjectMarks() SubjectMarks {
	marks := make(SubjectMarks, len(subjectOrder))
	for _, subject := range subjectOrder {
		marks[subject] = ""
	}
	return marks
}

// Clone returns a copy holding every subject.
func (m SubjectMarks) Clone() SubjectMarks {
	out := NewSubjectMarks()
	for _, subject := range subjectOrder {
		out[subject] = m[subject]
	}
	return out
}

// MarshalJSON encodes the marks as an object in form order.
func (m SubjectMarks) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for idx, subject := range subjectOrder {
		if idx > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(string(subject))
		if err != nil {
			return nil, err
		}
		value, err := json.Marshal(m[subject])
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes an object of subject marks.
//
// A null object or missing subjects become empty, unknown keys are dropped,
// and numeric values keep their literal text. Any other value type is treated as empty.
func (m *SubjectMarks) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("decode subject marks: %w", err)
	}
	out := NewSubjectMarks()
	for _, subject := range subjectOrder {
		value, ok := raw[string(subject)]
		if !ok {
			continue
		}
		out[subject] = rawMarkText(value)
	}
	*m = out
	return nil
}

func rawMarkText(value json.RawMessage) string {
	var text string
	if err := json.Unmarshal(value, &text); err == nil {
		return text
	}
	var number json.Number
	if err := json.Unmarshal(value, &number); err == nil {
		return number.String()
	}
	return ""
}

// Marks holds the four mark sheets of one calculation.
type Marks struct {
	IA1        SubjectMarks `json:"ia1"`
	IA2        SubjectMarks `json:"ia2"`
	Assignment SubjectMarks `json:"assignment"`
	SEE        SubjectMarks `json:"see"`
}

// NewMarks returns four empty mark sheets.
func NewMarks() Marks {
	return Marks{
		IA1:        NewSubjectMarks(),
		IA2:        NewSubjectMarks(),
		Assignment: NewSubjectMarks(),
		SEE:        NewSubjectMarks(),
	}
}

// Normalize fills nil sheets and missing subjects with empty values.
func (m Marks) Normalize() Marks {
	return Marks{
		IA1:        m.IA1.Clone(),
		IA2:        m.IA2.Clone(),
		Assignment: m.Assignment.Clone(),
		SEE:        m.SEE.Clone(),
	}
}

// Sheet returns the mark sheet for category, or nil for unknown categories.
func (m Marks) Sheet(category Category) SubjectMarks {
	switch category {
	case CategoryIA1:
		return m.IA1
	case CategoryIA2:
		return m.IA2
	case CategoryAssignment:
		return m.Assignment
	case CategorySEE:
		return m.SEE
	default:
		return nil
	}
}

// Value returns the raw text for one field.
func (m Marks) Value(category Category, subject Subject) string {
	return m.Sheet(category)[subject]
}

// Set stores the raw text for one field. It reports false when the category
// or subject is unknown or the sheet has not been initialised.
func (m Marks) Set(category Category, subject Subject, value string) bool {
	if !subject.Valid() {
		return false
	}
	sheet := m.Sheet(category)
	if sheet == nil {
		return false
	}
	sheet[subject] = value
	return true
}
