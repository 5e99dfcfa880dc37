package domain

import (
	"github.com/google/uuid"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// InvocationIDMetaKey names the correlation id attached to tool results.
const InvocationIDMetaKey = "x-invocation-id"

// NewInvocationID generates an invocation identifier for a tool call.
func NewInvocationID() (string, error) {
	id, err := uuid.NewRandom()
	if err != nil {
		return "", err
	}
	return id.String(), nil
}

// CallToolResultWithMetadata builds a tool result carrying the invocation id.
func CallToolResultWithMetadata(invocationID string) *mcp.CallToolResult {
	result := &mcp.CallToolResult{}
	if invocationID != "" {
		result.Meta = map[string]any{InvocationIDMetaKey: invocationID}
	}
	return result
}
