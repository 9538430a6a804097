// Package kernel contains shared value objects used across the production
// domain: the UUID identifier wrapper and the LotCode, the human-readable
// per-day-sequential order code.
//
// Value objects in this package are immutable. Their zero values are invalid
// and Validate rejects anything that did not come out of a constructor.
package kernel
