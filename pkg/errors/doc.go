// Package errors provides structured error types for better observability
// and programmatic error handling across hostprobe.
//
// Backends never return errors to callers of the collector facade. Partial
// read failures are instead reported as FIELD_UNAVAILABLE structured errors
// through the optional diagnostics callback.
//
// Example usage:
//
//	err := errors.WrapWithContext(
//	    errors.ErrCodeFieldUnavailable,
//	    "failed to read meminfo",
//	    cause,
//	    map[string]any{
//	        "backend": "linux",
//	        "field":   "memory",
//	    },
//	)
//
//	if errors.IsCode(err, errors.ErrCodeFieldUnavailable) {
//	    // degrade
//	}
package errors
