// Package domain holds the MCP tool and resource handlers of the grade
// engine.
//
// Handlers are transport agnostic: the service package registers them on an
// MCP server and picks stdio or HTTP.
package domain
