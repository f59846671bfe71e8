// Package domain contains the core domain entities and value objects for bananascale.
//
// This package represents the innermost layer of the Clean Architecture. It has
// no dependencies on infrastructure concerns (HTTP, file system, logging) and
// contains only pure business logic.
//
// # Entities
//
//   - [Progress]: How far through the UTC calendar year an instant is
//   - [State]: The last percent that was successfully posted
//   - [PublishResult]: Identifiers returned by the platform for a post
//   - [RunReport]: The outcome of a single invocation
//
// # Design Principles
//
// Domain entities are:
//   - Derived from their inputs only (no clock or file system access)
//   - Free of infrastructure dependencies
//   - Testable without mocks or external systems
package domain
