package zombiezen

import (
	"fmt"

	"github.com/hushbox/hushauth/db"
	"zombiezen.com/go/sqlite/sqlitex"
)

type Db struct {
	pool *sqlitex.Pool
}

// Verify interface implementation
var _ db.DbAuth = (*Db)(nil)

// New creates a new Db instance using an existing pool provided by the user.
// The lifecycle of the pool is managed externally; this type does not close it.
func New(pool *sqlitex.Pool) (*Db, error) {
	if pool == nil {
		return nil, fmt.Errorf("provided pool cannot be nil")
	}
	return &Db{pool: pool}, nil
}
