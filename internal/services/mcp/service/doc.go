// Package service wires MCP transports to the grade tools.
//
// It is the transport adapter layer: the package knows how to run MCP over
// stdio or streamable HTTP and delegates tool semantics to the domain package.
package service
