// Package errors provides structured error types for the wirebuf codec.
//
// Errors are categorized by Phase (where the error occurred) and Kind (error category).
// The Error type includes rich context: field path, Go type name, and cause chain.
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.PhaseResolve, errors.KindUnsupported).
//		Path("player", "inventory").
//		GoType("chan int").
//		Detail("channels cannot be serialized").
//		Build()
//
// Or use convenience constructors for common patterns:
//
//	err := errors.OutOfBounds(errors.PhaseDecode, 4, 1)
//	err := errors.Unsupported(errors.PhaseResolve, path, "game.Node", "direct self-reference")
//
// All errors implement the standard error interface and support errors.Is/As.
package errors
