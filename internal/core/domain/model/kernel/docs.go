// Package kernel contains the shared value objects of the staffing domain:
// identifiers, actors with their marketplace roles, and order schedules.
//
// All value objects in this package are immutable and must be created through
// their constructor functions. The zero value of any of them is invalid and is
// rejected by its Validate method, which keeps half-initialized values from
// leaking into aggregates restored from persistence.
package kernel
