// Package testdb provides isolated SurrealDB environments for acceptance
// testing.
//
// Each TestDB instance gets a unique namespace so tests can run in parallel
// without seeing each other's records. Tests using this package require a
// running SurrealDB instance; when none is reachable the test is skipped.
//
// Usage:
//
//	func TestSomething(t *testing.T) {
//	    tdb := testdb.New(t)
//	    defer tdb.Close()
//
//	    result, err := tdb.DB.Query(ctx, "SELECT * FROM event", nil)
//	}
//
// Environment variables:
//
//	TEST_DB_HOST     - SurrealDB host (default: localhost)
//	TEST_DB_PORT     - SurrealDB port (default: 8000)
//	TEST_DB_USER     - SurrealDB username (default: root)
//	TEST_DB_PASSWORD - SurrealDB password (default: root)
package testdb

import (
	"context"
	"fmt"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/gatherhub/api/internal/database"
)

// TestDB provides an isolated database environment for testing.
// Each TestDB instance gets a unique namespace to ensure test isolation.
type TestDB struct {
	DB        database.Database
	Namespace string
	Database  string
	t         *testing.T
}

var (
	// counterMu protects the namespace counter
	counterMu sync.Mutex
	counter   int64
)

// schema holds the index definitions the store relies on. Production
// provisioning applies the same definitions; tests apply them per namespace.
const schema = `
	DEFINE INDEX user_email_unique ON TABLE user FIELDS email UNIQUE;
`

// getTestConfig returns database config from environment or defaults
func getTestConfig() database.Config {
	host := os.Getenv("TEST_DB_HOST")
	if host == "" {
		host = "localhost"
	}

	port := os.Getenv("TEST_DB_PORT")
	if port == "" {
		port = "8000"
	}

	user := os.Getenv("TEST_DB_USER")
	if user == "" {
		user = "root"
	}

	password := os.Getenv("TEST_DB_PASSWORD")
	if password == "" {
		password = "root"
	}

	return database.Config{
		Host:     host,
		Port:     port,
		User:     user,
		Password: password,
	}
}

// uniqueNamespace generates a unique namespace for test isolation
func uniqueNamespace() string {
	counterMu.Lock()
	defer counterMu.Unlock()
	counter++
	return fmt.Sprintf("test_%d_%d", time.Now().UnixNano(), counter)
}

// New creates a new isolated test database with the schema applied.
// The database uses a unique namespace to ensure test isolation.
// The test is skipped when no SurrealDB instance is reachable.
// Call Close() when done to clean up the namespace.
func New(t *testing.T) *TestDB {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	cfg := getTestConfig()
	cfg.Namespace = uniqueNamespace()
	cfg.Database = "test"

	db := database.NewSurrealDB(cfg)
	if err := db.Connect(ctx); err != nil {
		t.Skipf("testdb: surrealdb not reachable at %s:%s: %v", cfg.Host, cfg.Port, err)
	}

	if err := db.Execute(ctx, schema, nil); err != nil {
		db.Close()
		t.Fatalf("testdb: applying schema: %v", err)
	}

	return &TestDB{
		DB:        db,
		Namespace: cfg.Namespace,
		Database:  cfg.Database,
		t:         t,
	}
}

// Close cleans up the test database by removing the namespace.
func (tdb *TestDB) Close() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	query := fmt.Sprintf("REMOVE NAMESPACE IF EXISTS %s", tdb.Namespace)
	if err := tdb.DB.Execute(ctx, query, nil); err != nil {
		tdb.t.Logf("testdb: cleanup of namespace %s failed: %v", tdb.Namespace, err)
	}

	if err := tdb.DB.Close(); err != nil {
		tdb.t.Logf("testdb: closing connection: %v", err)
	}
}
