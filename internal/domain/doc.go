// Package domain defines the core business types for the newsletter
// subscription service.
//
// Types in this package are pure value objects with no behavior, no storage
// dependencies, and no HTTP concerns. They are the shared language between
// adapters, the subscription service, and the storage backends.
//
// Rules for this package:
//   - No imports from other internal/ packages
//   - No clients, no http.Request, no context.Context in struct fields
//   - JSON/DB tags are allowed (they're metadata, not behavior)
//   - Validation and normalization helpers are allowed (pure functions)
package domain
