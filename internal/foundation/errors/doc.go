// Package errors provides classified error primitives used at pyrefgen's
// boundaries (configuration loading, module lookup, the CLI).
//
// Packages keep their own sentinel errors and wrap them with fmt.Errorf;
// callers that need an exit code or a user-facing message classify the
// failure once with the fluent builder:
//
//	err := errors.WrapError(cause, errors.CategoryNotFound, "module not found").
//		WithContext("module", name).
//		Build()
//
// CLIErrorAdapter maps categories to process exit codes.
package errors
