package hushauth

// Helper constructors for SQLite connection pools. If your application reads
// or writes the account database alongside hushauth, share a single pool to
// avoid SQLITE_BUSY errors: create it here and pass it both to hushauth (via
// WithZombiezenPool) and to your own data layer.

import (
	"fmt"
	"runtime"
	"time"

	"zombiezen.com/go/sqlite/sqlitex"
)

// NewZombiezenPool creates a SQLite connection pool with reasonable defaults
// (WAL mode enabled, pool sized to the CPU count).
func NewZombiezenPool(dbPath string) (*sqlitex.Pool, error) {
	poolSize := runtime.NumCPU()
	initString := fmt.Sprintf("file:%s", dbPath)

	// sqlitex.NewPool with default options uses flags:
	// sqlite.OpenReadWrite | sqlite.OpenCreate | sqlite.OpenWAL | sqlite.OpenURI
	pool, err := sqlitex.NewPool(initString, sqlitex.PoolOptions{
		PoolSize: poolSize,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create default zombiezen pool at %s: %w", dbPath, err)
	}
	return pool, nil
}

var explicitBusyTimeout = 5 * time.Second

// NewZombiezenPerformancePool creates a SQLite connection pool tuned via
// explicit PRAGMA settings in the DSN string.
func NewZombiezenPerformancePool(dbPath string) (*sqlitex.Pool, error) {
	poolSize := runtime.NumCPU()

	// busy_timeout in the DSN is in milliseconds.
	dsn := fmt.Sprintf("file:%s?_journal_mode=WAL&_synchronous=NORMAL&_busy_timeout=%d&_foreign_keys=off",
		dbPath,
		explicitBusyTimeout.Milliseconds(),
	)

	pool, err := sqlitex.NewPool(dsn, sqlitex.PoolOptions{
		PoolSize: poolSize,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create performance zombiezen pool at %s using DSN '%s': %w", dbPath, dsn, err)
	}
	return pool, nil
}
