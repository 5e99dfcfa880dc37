package service

import (
	"github.com/louisbranch/cgpa/internal/services/mcp/domain"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.opentelemetry.io/otel/trace"
)

const (
	gradeToolsModuleName     = "grade-tools"
	gradeResourcesModuleName = "grade-resources"
)

type registrationModule struct {
	name     string
	register func(*mcp.Server) error
}

func newRegistrationModules(tracer trace.Tracer) []registrationModule {
	return []registrationModule{
		{
			name: gradeToolsModuleName,
			register: func(server *mcp.Server) error {
				mcp.AddTool(server, domain.CalculateTool(), domain.CalculateHandler(tracer))
				mcp.AddTool(server, domain.DescribeFormulaTool(), domain.DescribeFormulaHandler())
				return nil
			},
		},
		{
			name: gradeResourcesModuleName,
			register: func(server *mcp.Server) error {
				server.AddResource(domain.FormulaResource(), domain.FormulaResourceHandler())
				return nil
			},
		},
	}
}
