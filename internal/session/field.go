package session

import (
	"strings"

	"github.com/louisbranch/cgpa/internal/grade"
)

// Field identifies one of the 24 mark inputs.
type Field struct {
	Category grade.Category
	Subject  grade.Subject
}

// Name returns the form name of the field, for example "ia1.DSA".
func (f Field) Name() string {
	return string(f.Category) + "." + string(f.Subject)
}

// Valid reports whether the field names a known category and subject.
func (f Field) Valid() bool {
	for _, category := range grade.Categories() {
		if category == f.Category {
			return f.Subject.Valid()
		}
	}
	return false
}

// ParseField resolves a form name produced by Field.Name.
func ParseField(name string) (Field, bool) {
	categoryText, subjectText, ok := strings.Cut(strings.TrimSpace(name), ".")
	if !ok {
		return Field{}, false
	}
	return LookupField(categoryText, subjectText)
}

// LookupField resolves a field from separate category and subject names.
func LookupField(categoryText, subjectText string) (Field, bool) {
	category, ok := grade.ParseCategory(categoryText)
	if !ok {
		return Field{}, false
	}
	subject, ok := grade.ParseSubject(subjectText)
	if !ok {
		return Field{}, false
	}
	return Field{Category: category, Subject: subject}, true
}

// Fields returns every field in focus order: all subjects of IA1, then IA2,
// Assignment and SEE.
func Fields() []Field {
	fields := make([]Field, 0, len(grade.Categories())*len(grade.Subjects()))
	for _, category := range grade.Categories() {
		for _, subject := range grade.Subjects() {
			fields = append(fields, Field{Category: category, Subject: subject})
		}
	}
	return fields
}

// NextField returns the field that receives focus after f. It reports false
// for the last field, where Enter submits the form instead.
func NextField(f Field) (Field, bool) {
	fields := Fields()
	for idx, candidate := range fields {
		if candidate != f {
			continue
		}
		if idx+1 < len(fields) {
			return fields[idx+1], true
		}
		return Field{}, false
	}
	return Field{}, false
}

// DigitsOnly strips every character that is not an ASCII digit.
func DigitsOnly(text string) string {
	var b strings.Builder
	b.Grow(len(text))
	for i := 0; i < len(text); i++ {
		if c := text[i]; c >= '0' && c <= '9' {
			b.WriteByte(c)
		}
	}
	return b.String()
}
