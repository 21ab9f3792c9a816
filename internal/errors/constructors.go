package errors

// Convenience functions for common error patterns

// Validation errors

func ValidationFailed(field, reason string) *PyBuilderError {
	return New(CategoryValidation, SeverityFatal, "validation failed").
		WithContext("field", field).
		WithContext("reason", reason)
}

// Manifest errors

func ManifestNotPep517(path string, cause error) *PyBuilderError {
	// Non-fatal: the caller is expected to fall back to another build
	// system strategy.
	return Wrap(cause, CategoryManifest, SeverityWarning, "not a PEP 517 project").
		WithContext("path", path)
}

func ManifestReadFailed(path string, cause error) *PyBuilderError {
	return Wrap(cause, CategoryFileSystem, SeverityError, "manifest read failed").
		WithContext("path", path)
}

// Build pipeline errors

func BackendBuildFailed(backend string, cause error) *PyBuilderError {
	return Wrap(cause, CategoryBuild, SeverityError, "backend build failed").
		WithContext("backend", backend)
}

func BuildCancelled(backend string, cause error) *PyBuilderError {
	return Wrap(cause, CategoryBuild, SeverityWarning, "backend build cancelled").
		WithContext("backend", backend)
}

func NoBackendResolved(operation string) *PyBuilderError {
	return New(CategoryBackend, SeverityError, "no build backend resolved").
		WithContext("operation", operation)
}

// Environment errors

func EnvProvisionFailed(path string, cause error) *PyBuilderError {
	return Wrap(cause, CategoryEnvironment, SeverityError, "virtual environment provisioning failed").
		WithContext("path", path)
}

// Lint errors

func LintSpawnFailed(linter string, cause error) *PyBuilderError {
	return Wrap(cause, CategoryLint, SeverityError, "linter subprocess failed").
		WithContext("linter", linter)
}

func LintDecodeFailed(linter string, cause error) *PyBuilderError {
	return Wrap(cause, CategoryLint, SeverityWarning, "linter output decode failed").
		WithContext("linter", linter)
}

// Infrastructure errors

func EventStoreFailed(operation string, cause error) *PyBuilderError {
	return Wrap(cause, CategoryRuntime, SeverityWarning, "event store operation failed").
		WithContext("operation", operation)
}

func DaemonStartFailed(component string, cause error) *PyBuilderError {
	return Wrap(cause, CategoryDaemon, SeverityFatal, "daemon component failed to start").
		WithContext("component", component)
}
