// Package tests contains end-to-end acceptance tests for the Gatherhub API.
//
// These tests run against a real SurrealDB instance to validate actual
// database behavior including the unique email index and the atomic
// attendee registration query. When no instance is reachable the tests
// skip themselves.
//
// To run tests:
//  1. Start SurrealDB: surreal start memory -A --user root --pass root
//  2. Run tests: go test ./tests/...
//
// Environment variables:
//
//	TEST_DB_HOST     - SurrealDB host (default: localhost)
//	TEST_DB_PORT     - SurrealDB port (default: 8000)
//	TEST_DB_USER     - SurrealDB username (default: root)
//	TEST_DB_PASSWORD - SurrealDB password (default: root)
package tests
