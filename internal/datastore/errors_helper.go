// Package datastore provides error handling helpers for database operations
package datastore

import (
	"fmt"

	"github.com/tvalderas/battfit-go/internal/errors"
)

// dbError creates a categorized database error with context pairs.
func dbError(err error, operation string, context ...any) error {
	builder := errors.New(err).
		Component("datastore").
		Category(errors.CategoryDatabase).
		Context("operation", operation)

	for i := 0; i < len(context)-1; i += 2 {
		if key, ok := context[i].(string); ok {
			builder = builder.Context(key, context[i+1])
		}
	}

	return builder.Build()
}

// connectivityError marks an error as retryable by the readiness prober.
func connectivityError(err error, operation string) error {
	return errors.New(err).
		Component("datastore").
		Category(errors.CategoryConnectivity).
		Context("operation", operation).
		Build()
}

// validationError creates a validation error for a malformed record.
func validationError(message, field string, value any) error {
	return errors.Newf("%s", message).
		Component("datastore").
		Category(errors.CategoryValidation).
		Context("field", field).
		Context("value", fmt.Sprintf("%v", value)).
		Build()
}

// notFoundError reports a referenced row that does not exist.
func notFoundError(kind string, key any) error {
	return errors.Newf("%s %v not found", kind, key).
		Component("datastore").
		Category(errors.CategoryNotFound).
		Context("kind", kind).
		Build()
}

// notOpenError reports an operation attempted before Open.
func notOpenError(operation string) error {
	return errors.Newf("database connection is not initialized").
		Component("datastore").
		Category(errors.CategoryDatabase).
		Context("operation", operation).
		Build()
}
