// Package kernel provides the shared domain primitives of the repair booking service.
//
// The package includes:
//   - UUID: A value object for booking and event identifiers
//   - Clock: The time source injected into use cases so status timestamps are testable
//
// These primitives are immutable and safe for concurrent use.
package kernel
