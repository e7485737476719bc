// Package kernel contains the shared building blocks of the domain model:
// identifiers and value objects used across aggregates.
//
// The package provides:
//   - UUID: an immutable identifier value object for entities and aggregates
//   - Address: a validated postal contact point with a six digit pincode
//
// Value objects in this package are immutable and must be created through
// their constructor functions. Zero values fail validation.
package kernel
