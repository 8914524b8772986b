// Package errs provides standardized error types for the order processing
// application. It implements a consistent pattern for error creation,
// formatting, and unwrapping that is used throughout the application.
//
// The package includes several error types for common error scenarios:
//   - ValueIsRequiredError: for when a required value is missing
//   - ValueIsInvalidError: for when a value is invalid
//   - ValueIsOutOfRangeError: for when a value lies outside its allowed range
//   - ObjectNotFoundError: for when an object cannot be found
//   - StateConflictError: for when an operation's precondition state does not
//     match the aggregate's current state; an expected, recoverable outcome
//
// Each error type follows a consistent pattern:
//   - A sentinel error variable (e.g., ErrStateConflict)
//   - A struct type with fields for error details
//   - Constructor functions with and without cause
//   - Error() method for formatting the error message
//   - Unwrap() method for error wrapping/unwrapping support
//
// This standardized approach to error handling improves error reporting,
// makes error handling more consistent, and enables better error classification
// and handling throughout the application.
package errs
