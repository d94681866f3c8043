// Package analytics is the computation engine behind the dashboard: pure
// functions from cleaned samples and app records to statistical summaries.
//
// Every exported operation is safe on empty, partial or degenerate input and
// never panics into its caller. Data-quality problems resolve to the result
// type's zero value rather than an error.
package analytics

import (
	"log"
)

// guard is deferred by every exported operation. A recovered fault is logged
// and the named result is replaced with fallback().
func guard[T any](op string, result *T, fallback func() T) {
	if r := recover(); r != nil {
		log.Printf("[Analytics] %s recovered from fault: %v", op, r)
		*result = fallback()
	}
}
