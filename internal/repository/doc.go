// Package repository implements the data access layer for the Gatherhub API.
//
// The repository package contains all document-store operations using
// SurrealDB. Each repository struct handles CRUD operations for a specific
// domain entity.
//
// # Repository Pattern
//
// All repositories follow a consistent pattern:
//
//   - Constructor function (NewXxxRepository) accepts a database connection
//   - Methods implement specific data operations (Create, GetByID, Update, Delete, etc.)
//   - SurrealQL queries are used for all database interactions
//   - Results are parsed and mapped to model structs
//
// # Query Patterns
//
// Common query patterns used:
//
//   - Parameterized queries with $variable syntax for security
//   - type::record() for safe ID handling
//   - time::now() for automatic timestamps
//   - array::union with a NOT INSIDE guard for atomic set membership
//     (registration relies on this to avoid a read-modify-write race)
package repository
