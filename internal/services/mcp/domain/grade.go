package domain

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/louisbranch/cgpa/internal/grade"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

// FormulaResourceURI addresses the read-only formula description.
const FormulaResourceURI = "cgpa://grade/formula"

// CalculateInput represents the MCP tool input for a CGPA calculation.
type CalculateInput struct {
	IA1        map[string]string `json:"ia1,omitempty" jsonschema:"IA1 mark text keyed by subject code (DSA, DDCO, OS, MATH, UHV, RWD)"`
	IA2        map[string]string `json:"ia2,omitempty" jsonschema:"IA2 mark text keyed by subject code"`
	Assignment map[string]string `json:"assignment,omitempty" jsonschema:"assignment mark text keyed by subject code"`
	SEE        map[string]string `json:"see,omitempty" jsonschema:"semester end exam mark text keyed by subject code"`
}

// SubjectScore reports the derived score of one subject.
type SubjectScore struct {
	Subject string   `json:"subject" jsonschema:"subject code"`
	Label   string   `json:"label" jsonschema:"display label"`
	Credits int      `json:"credits" jsonschema:"credit weight"`
	Score   *float64 `json:"score" jsonschema:"subject score on a 0 to 10 scale, null when not finite"`
}

// CalculateResult represents the MCP tool output for a CGPA calculation.
type CalculateResult struct {
	Subjects []SubjectScore `json:"subjects" jsonschema:"per-subject scores in form order"`
	CGPA     *float64       `json:"cgpa" jsonschema:"credit weighted average, null when not finite"`
	Display  string         `json:"display" jsonschema:"result rounded to two fraction digits"`
	Ignored  []string       `json:"ignored,omitempty" jsonschema:"input keys that are not known subjects"`
}

// DescribeFormulaInput represents the MCP tool input for the formula
// description.
type DescribeFormulaInput struct{}

// SubjectFormula describes the constants applied to one subject.
type SubjectFormula struct {
	Subject    string `json:"subject" jsonschema:"subject code"`
	Label      string `json:"label" jsonschema:"display label"`
	Credits    int    `json:"credits" jsonschema:"credit weight"`
	IAMax      int    `json:"ia_max" jsonschema:"combined IA1 plus IA2 denominator"`
	IAFieldMax int    `json:"ia_field_max" jsonschema:"maximum of a single IA field"`
}

// DescribeFormulaResult represents the MCP tool output for the formula
// description.
type DescribeFormulaResult struct {
	ScoreFormula     string           `json:"score_formula" jsonschema:"per-subject score expression"`
	AggregateFormula string           `json:"aggregate_formula" jsonschema:"credit weighted aggregate expression"`
	IAWeight         int              `json:"ia_weight" jsonschema:"weight of the IA fraction"`
	AssignmentWeight int              `json:"assignment_weight" jsonschema:"weight of the assignment fraction"`
	SEEWeight        int              `json:"see_weight" jsonschema:"weight of the SEE fraction"`
	AssignmentMax    int              `json:"assignment_max" jsonschema:"assignment denominator"`
	SEEMax           int              `json:"see_max" jsonschema:"SEE denominator"`
	TotalCredits     int              `json:"total_credits" jsonschema:"sum of credit weights"`
	Subjects         []SubjectFormula `json:"subjects" jsonschema:"per-subject constants in form order"`
	InvalidMarkRule  string           `json:"invalid_mark_rule" jsonschema:"how unparsable mark text is treated"`
}

// CalculateTool defines the MCP tool schema for CGPA calculations.
func CalculateTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "calculate_cgpa",
		Description: "Computes per-subject scores and the credit weighted CGPA from IA1, IA2, assignment and SEE marks",
	}
}

// DescribeFormulaTool defines the MCP tool schema for the formula
// description.
func DescribeFormulaTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "describe_grade_formula",
		Description: "Describes the weights, credits and denominators used by calculate_cgpa",
	}
}

// FormulaResource defines the MCP resource exposing the formula description.
func FormulaResource() *mcp.Resource {
	return &mcp.Resource{
		Name:        "grade_formula",
		Title:       "Grade formula",
		Description: "Weights, credits and denominators of the CGPA calculation",
		MIMEType:    "application/json",
		URI:         FormulaResourceURI,
	}
}

// CalculateHandler scores the submitted marks. A nil tracer disables spans.
func CalculateHandler(tracer trace.Tracer) mcp.ToolHandlerFor[CalculateInput, CalculateResult] {
	if tracer == nil {
		tracer = noop.NewTracerProvider().Tracer("")
	}
	return func(ctx context.Context, _ *mcp.CallToolRequest, input CalculateInput) (*mcp.CallToolResult, CalculateResult, error) {
		invocationID, err := NewInvocationID()
		if err != nil {
			return nil, CalculateResult{}, fmt.Errorf("generate invocation id: %w", err)
		}
		_, span := tracer.Start(ctx, "mcp.calculate_cgpa")
		defer span.End()

		marks, ignored := marksFromInput(input)
		report := grade.Explain(marks)

		result := CalculateResult{
			Subjects: make([]SubjectScore, 0, len(grade.Subjects())),
			CGPA:     report.CGPA,
			Display:  report.Display,
			Ignored:  ignored,
		}
		for _, subject := range grade.Subjects() {
			result.Subjects = append(result.Subjects, SubjectScore{
				Subject: string(subject),
				Label:   subject.Label(),
				Credits: subject.Credits(),
				Score:   report.Subjects[subject],
			})
		}

		span.SetAttributes(
			attribute.String("cgpa.invocation_id", invocationID),
			attribute.String("cgpa.display", result.Display),
			attribute.Int("cgpa.ignored_keys", len(ignored)),
		)
		return CallToolResultWithMetadata(invocationID), result, nil
	}
}

// DescribeFormulaHandler returns the constants of the grade engine.
func DescribeFormulaHandler() mcp.ToolHandlerFor[DescribeFormulaInput, DescribeFormulaResult] {
	return func(_ context.Context, _ *mcp.CallToolRequest, _ DescribeFormulaInput) (*mcp.CallToolResult, DescribeFormulaResult, error) {
		invocationID, err := NewInvocationID()
		if err != nil {
			return nil, DescribeFormulaResult{}, fmt.Errorf("generate invocation id: %w", err)
		}
		return CallToolResultWithMetadata(invocationID), DescribeFormula(), nil
	}
}

// FormulaResourceHandler serves DescribeFormula as JSON.
func FormulaResourceHandler() mcp.ResourceHandler {
	return func(_ context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
		uri := FormulaResourceURI
		if req != nil && req.Params != nil && req.Params.URI != "" {
			uri = req.Params.URI
		}
		if uri != FormulaResourceURI {
			return nil, mcp.ResourceNotFoundError(uri)
		}
		data, err := json.MarshalIndent(DescribeFormula(), "", "  ")
		if err != nil {
			return nil, fmt.Errorf("marshal formula: %w", err)
		}
		return &mcp.ReadResourceResult{
			Contents: []*mcp.ResourceContents{
				{
					URI:      uri,
					MIMEType: "application/json",
					Text:     string(data),
				},
			},
		}, nil
	}
}

// DescribeFormula lists the grade engine constants.
func DescribeFormula() DescribeFormulaResult {
	result := DescribeFormulaResult{
		ScoreFormula:     fmt.Sprintf("%d*(ia1+ia2)/ia_max + %d*assignment/%d + %d*see/%d", grade.IAWeight, grade.AssignmentWeight, grade.AssignmentMax, grade.SEEWeight, grade.SEEMax),
		AggregateFormula: fmt.Sprintf("sum(credits*score)/%d", grade.TotalCredits),
		IAWeight:         grade.IAWeight,
		AssignmentWeight: grade.AssignmentWeight,
		SEEWeight:        grade.SEEWeight,
		AssignmentMax:    grade.AssignmentMax,
		SEEMax:           grade.SEEMax,
		TotalCredits:     grade.TotalCredits,
		InvalidMarkRule:  "empty or non-numeric mark text counts as zero",
	}
	for _, subject := range grade.Subjects() {
		result.Subjects = append(result.Subjects, SubjectFormula{
			Subject:    string(subject),
			Label:      subject.Label(),
			Credits:    subject.Credits(),
			IAMax:      subject.IAMax(),
			IAFieldMax: subject.IAMax() / 2,
		})
	}
	return result
}

// marksFromInput copies the known subjects of each sheet and reports the
// other keys as category.key. Subject codes match exactly, as in stored
// snapshots, so case variants of a code are ignored rather than competing.
func marksFromInput(input CalculateInput) (grade.Marks, []string) {
	marks := grade.NewMarks()
	var ignored []string
	sheets := []struct {
		category grade.Category
		values   map[string]string
	}{
		{grade.CategoryIA1, input.IA1},
		{grade.CategoryIA2, input.IA2},
		{grade.CategoryAssignment, input.Assignment},
		{grade.CategorySEE, input.SEE},
	}
	for _, sheet := range sheets {
		for key, value := range sheet.values {
			subject := grade.Subject(key)
			if !subject.Valid() {
				ignored = append(ignored, string(sheet.category)+"."+key)
				continue
			}
			marks.Set(sheet.category, subject, value)
		}
	}
	sort.Strings(ignored)
	return marks, ignored
}
