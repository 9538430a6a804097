// Package errs provides the standardized error types used across the
// production tracking application.
//
// Four recurring failure classes get their own type:
//   - ValueIsRequiredError / ValueIsInvalidError / ValueIsOutOfRangeError:
//     bad input, rejected before any write happens
//   - ObjectNotFoundError: a referenced order, user, or product does not exist
//   - NotAllowedError: the acting user may not perform the operation
//
// Each type follows the same pattern: a package-level sentinel error
// (e.g. ErrObjectNotFound), a struct carrying the details, constructor
// functions with and without an underlying cause, and an Unwrap method so
// callers can classify with errors.Is without caring about the concrete type.
package errs
